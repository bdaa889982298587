package tree

import "fmt"

// addChild links c into parent's child list, keeping it ascending by the first
// key byte. First bytes must not collide; the splitter guarantees that.
func (t *Tree[V]) addChild(parent, c nodeID) {
	p := t.at(parent)
	cn := t.at(c)
	cn.parent = parent
	cn.left, cn.right = none, none

	if p.child == none {
		p.child = c
		return
	}

	b := cn.key[0]
	prev := none
	cur := p.child
	for cur != none && t.nodes[cur].key[0] < b {
		prev = cur
		cur = t.nodes[cur].right
	}
	if cur != none && t.nodes[cur].key[0] == b {
		panic(fmt.Sprintf("radix: sibling first-byte collision on %q", b))
	}

	cn.left = prev
	cn.right = cur
	if prev == none {
		p.child = c
	} else {
		t.nodes[prev].right = c
	}
	if cur != none {
		t.nodes[cur].left = c
	}
}

// unlink removes id from its parent's child list, patching its neighbours.
func (t *Tree[V]) unlink(id nodeID) {
	n := t.at(id)
	if n.left != none {
		t.nodes[n.left].right = n.right
	} else if n.parent != none {
		t.nodes[n.parent].child = n.right
	}
	if n.right != none {
		t.nodes[n.right].left = n.left
	}
	n.left, n.right = none, none
}

// reparent points every node of the sibling list headed by head at parent.
func (t *Tree[V]) reparent(head, parent nodeID) {
	for c := head; c != none; c = t.nodes[c].right {
		t.nodes[c].parent = parent
	}
}
