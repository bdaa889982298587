package tree

// deleteNode clears id's value and restores compression around it.
func (t *Tree[V]) deleteNode(id nodeID) (V, bool) {
	n := t.at(id)
	old, had := n.value, n.set

	var zero V
	n.value, n.set = zero, false

	if id == root || !had {
		return old, had
	}

	switch {
	case n.child == none:
		parent := n.parent
		t.unlink(id)
		t.release(id)
		if parent != root && !t.nodes[parent].set && t.hasSingleChild(parent) {
			t.merge(parent)
		}
	case t.hasSingleChild(id):
		t.merge(id)
	}
	return old, had
}

// merge folds id's only child into id. id keeps its identity, takes the
// concatenated key, the child's value and the child's children.
func (t *Tree[V]) merge(id nodeID) {
	if id == root || !t.hasSingleChild(id) {
		return
	}
	n := t.at(id)
	c := n.child
	cn := t.at(c)

	key := make([]byte, 0, len(n.key)+len(cn.key))
	key = append(key, n.key...)
	key = append(key, cn.key...)
	t.keyBytes += len(cn.key)
	n.key = key

	n.value, n.set = cn.value, cn.set
	n.child = cn.child
	t.reparent(n.child, id)

	t.log.Debug("merge node", "key", string(key))
	t.release(c)
	t.merges++
}
