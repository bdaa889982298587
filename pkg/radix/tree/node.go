package tree

// nodeID addresses a node in the arena. It stays valid until the node is freed.
type nodeID int32

const (
	none nodeID = -1
	root nodeID = 0
)

// node is one edge-labeled segment of the tree.
//
// Ownership runs along child edges only: a node is alive while it is reachable
// from the root through child/right links. parent, left and right are plain
// lookups.
type node[V any] struct {
	// Edge label from parent (empty for root)
	key []byte

	value V
	set   bool

	parent nodeID
	child  nodeID // head of the sibling list, ascending by key[0]
	left   nodeID
	right  nodeID
}

func (n *node[V]) reset() {
	var zero V
	n.key = nil
	n.value = zero
	n.set = false
	n.parent, n.child, n.left, n.right = none, none, none, none
}

// alloc takes a slot from the free list or grows the arena.
// The key is copied; the tree never aliases caller memory.
func (t *Tree[V]) alloc(key []byte) nodeID {
	k := make([]byte, len(key))
	copy(k, key)

	var id nodeID
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node[V]{})
		id = nodeID(len(t.nodes) - 1)
	}
	nd := &t.nodes[id]
	nd.reset()
	nd.key = k
	t.live++
	t.keyBytes += len(k)
	return id
}

// release returns a slot to the free list. The caller must have unlinked it.
func (t *Tree[V]) release(id nodeID) {
	nd := &t.nodes[id]
	t.keyBytes -= len(nd.key)
	nd.reset()
	t.free = append(t.free, id)
	t.live--
}

func (t *Tree[V]) at(id nodeID) *node[V] { return &t.nodes[id] }

// hasSingleChild reports whether id has exactly one child.
func (t *Tree[V]) hasSingleChild(id nodeID) bool {
	c := t.nodes[id].child
	return c != none && t.nodes[c].right == none
}

// View is a read-only handle on a node, for dumps and debugging.
// A View is invalidated by any mutation of the tree.
type View[V any] struct {
	t  *Tree[V]
	id nodeID
}

// Valid reports whether the view points at a node.
func (v View[V]) Valid() bool {
	return v.t != nil && v.id != none && !v.t.destroyed && int(v.id) < len(v.t.nodes)
}

// IsRoot reports whether the view is the root.
func (v View[V]) IsRoot() bool { return v.Valid() && v.id == root }

// Key returns the edge label. The slice must not be modified.
func (v View[V]) Key() []byte {
	if !v.Valid() {
		return nil
	}
	return v.t.nodes[v.id].key
}

// Value returns the stored value and whether one is present.
func (v View[V]) Value() (V, bool) {
	if !v.Valid() {
		var zero V
		return zero, false
	}
	n := &v.t.nodes[v.id]
	return n.value, n.set
}

// FirstChild returns the head of the child list.
func (v View[V]) FirstChild() View[V] {
	if !v.Valid() {
		return View[V]{}
	}
	return View[V]{t: v.t, id: v.t.nodes[v.id].child}
}

// Next returns the next sibling in ascending order.
func (v View[V]) Next() View[V] {
	if !v.Valid() {
		return View[V]{}
	}
	return View[V]{t: v.t, id: v.t.nodes[v.id].right}
}

// Parent returns the structural parent; invalid for the root.
func (v View[V]) Parent() View[V] {
	if !v.Valid() {
		return View[V]{}
	}
	return View[V]{t: v.t, id: v.t.nodes[v.id].parent}
}
