package tree

import (
	"bytes"
	"iter"
)

// All returns every stored key and value whose key starts with prefix
// (nil or empty prefix means the whole tree). Keys are yielded depth first,
// a node before its children and children in ascending order, which is
// lexicographic key order.
//
// Each call of the returned sequence starts a fresh walk. The tree must not
// be modified while a walk is in progress. Yielded keys are fresh copies.
func (t *Tree[V]) All(prefix []byte) iter.Seq2[[]byte, V] {
	return func(yield func([]byte, V) bool) {
		start, key := t.seek(prefix)
		if start == none {
			return
		}
		t.walk(start, key, yield)
	}
}

// Values is All without the keys.
func (t *Tree[V]) Values(prefix []byte) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All(prefix) {
			if !yield(v) {
				return
			}
		}
	}
}

// seek finds the topmost node whose full key starts with prefix and returns
// it with its full key.
func (t *Tree[V]) seek(prefix []byte) (nodeID, []byte) {
	if t.destroyed {
		return none, nil
	}
	m := t.longestMatch(prefix)
	switch {
	case m.exact():
		return m.full, bytes.Clone(prefix)
	case len(m.rest) == 0:
		// prefix ends inside partial's label
		key := make([]byte, 0, len(prefix)+len(t.nodes[m.partial].key)-m.matched)
		key = append(key, prefix...)
		key = append(key, t.nodes[m.partial].key[m.matched:]...)
		return m.partial, key
	default:
		return none, nil
	}
}

func (t *Tree[V]) walk(id nodeID, key []byte, yield func([]byte, V) bool) bool {
	if n := &t.nodes[id]; n.set {
		if !yield(bytes.Clone(key), n.value) {
			return false
		}
	}
	for c := t.nodes[id].child; c != none; c = t.nodes[c].right {
		ck := make([]byte, 0, len(key)+len(t.nodes[c].key))
		ck = append(ck, key...)
		ck = append(ck, t.nodes[c].key...)
		if !t.walk(c, ck, yield) {
			return false
		}
	}
	return true
}
