package tree

// split divides id at l (0 < l < len(key)). id keeps its identity and slot and
// becomes a valueless branch labeled key[:l]; a new child labeled key[l:]
// takes over id's value and children. Returns the branch.
func (t *Tree[V]) split(id nodeID, l int) nodeID {
	if l <= 0 || l >= len(t.nodes[id].key) {
		return id
	}

	// alloc may grow the arena, so take pointers afterwards.
	c := t.alloc(t.nodes[id].key[l:])
	n, cn := t.at(id), t.at(c)

	cn.value, cn.set = n.value, n.set
	cn.child = n.child
	t.reparent(cn.child, c)

	head := make([]byte, l)
	copy(head, n.key[:l])
	t.keyBytes -= len(n.key) - l
	n.key = head

	var zero V
	n.value, n.set = zero, false
	n.child = none
	t.addChild(id, c)

	t.splits++
	t.log.Debug("split node", "branch", string(head), "child", string(cn.key))
	return id
}
