// Package tree implements a compressed prefix tree (Patricia/radix trie)
// over byte-string keys.
//
// Nodes live in an arena and refer to each other by index. Children of a node
// form a doubly linked sibling list ordered by the first byte of their keys;
// no two siblings share a first byte. A non-root node without a value always
// has at least two children: insertion splits nodes as keys diverge and
// deletion merges them back.
//
// A Tree is not safe for concurrent use.
package tree

import (
	"github.com/CVDpl/go-radix-trie/internal/common"
)

// Tree is a radix tree mapping byte-string keys to values of type V.
// Values are stored as given and handed back on overwrite or deletion.
type Tree[V any] struct {
	nodes []node[V]
	free  []nodeID

	live      int // allocated nodes, root included
	values    int
	keyBytes  int
	maxNodes  int
	destroyed bool

	splits uint64
	merges uint64

	log common.Logger
}

// New creates an empty tree. maxNodes bounds the number of live nodes
// (root included); zero means unbounded.
func New[V any](logger common.Logger, maxNodes int) *Tree[V] {
	t := &Tree[V]{
		maxNodes: maxNodes,
		log:      common.OrNull(logger),
	}
	t.alloc(nil)
	return t
}

// Set stores v under key and returns the previous value, if any.
func (t *Tree[V]) Set(key []byte, v V) (V, bool, error) {
	var zero V
	if t.destroyed {
		return zero, false, common.ErrDestroyed
	}
	id, err := t.getOrCreate(key)
	if err != nil {
		return zero, false, err
	}
	n := t.at(id)
	old, had := n.value, n.set
	n.value, n.set = v, true
	if !had {
		t.values++
	}
	return old, had, nil
}

// Get returns the value stored under exactly key.
func (t *Tree[V]) Get(key []byte) (V, bool) {
	var zero V
	if t.destroyed {
		return zero, false
	}
	id := t.lookup(key)
	if id == none {
		return zero, false
	}
	n := t.at(id)
	return n.value, n.set
}

// Delete removes key and returns its value. Deleting an absent key is a no-op.
func (t *Tree[V]) Delete(key []byte) (V, bool) {
	var zero V
	if t.destroyed {
		return zero, false
	}
	id := t.lookup(key)
	if id == none {
		return zero, false
	}
	v, had := t.deleteNode(id)
	if had {
		t.values--
	}
	return v, had
}

// LongestMatch returns the value of the deepest stored key that is a prefix
// of key, together with the unmatched remainder. When no stored key matches,
// ok is false and rest is key itself.
func (t *Tree[V]) LongestMatch(key []byte) (v V, rest []byte, ok bool) {
	if t.destroyed {
		return v, key, false
	}
	m := t.longestMatch(key)
	if m.valued == none {
		return v, key, false
	}
	return t.nodes[m.valued].value, key[m.valuedLen:], true
}

// Root returns a read-only view on the root node.
func (t *Tree[V]) Root() View[V] {
	if t.destroyed {
		return View[V]{}
	}
	return View[V]{t: t, id: root}
}

// Destroy drops every node and key buffer. Stored values are only
// un-referenced. Any later mutation fails with ErrDestroyed.
func (t *Tree[V]) Destroy() {
	if t.destroyed {
		return
	}
	t.nodes = nil
	t.free = nil
	t.live, t.values, t.keyBytes = 0, 0, 0
	t.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (t *Tree[V]) Destroyed() bool { return t.destroyed }

// Len returns the number of stored values.
func (t *Tree[V]) Len() int { return t.values }

// Nodes returns the number of live nodes, root included.
func (t *Tree[V]) Nodes() int { return t.live }

// KeyBytes returns the total length of all edge labels.
func (t *Tree[V]) KeyBytes() int { return t.keyBytes }

// Splits returns how many node splits have happened.
func (t *Tree[V]) Splits() uint64 { return t.splits }

// Merges returns how many node merges have happened.
func (t *Tree[V]) Merges() uint64 { return t.merges }

// MaxDepth returns the number of edges on the longest root-to-leaf path.
func (t *Tree[V]) MaxDepth() int {
	if t.destroyed {
		return 0
	}
	return t.depth(root)
}

func (t *Tree[V]) depth(id nodeID) int {
	d := 0
	for c := t.nodes[id].child; c != none; c = t.nodes[c].right {
		if cd := t.depth(c) + 1; cd > d {
			d = cd
		}
	}
	return d
}
