package tree

import "github.com/CVDpl/go-radix-trie/internal/common"

// match is the outcome of walking a query path down the tree.
type match struct {
	full    nodeID // deepest node whose whole key was consumed
	partial nodeID // deepest node matched at least partially; == full if none diverged
	matched int    // bytes of partial's key consumed
	rest    []byte // unmatched remainder of the query

	valued    nodeID // deepest fully matched node holding a value, or none
	valuedLen int    // query bytes leading to valued
}

// exact reports whether the query ended exactly on a node boundary.
func (m *match) exact() bool {
	return len(m.rest) == 0 && m.partial == m.full
}

// longestMatch walks path from the root following matching key segments.
func (t *Tree[V]) longestMatch(path []byte) match {
	m := match{full: root, partial: root, rest: path, valued: none}
	if t.nodes[root].set {
		m.valued = root
	}

	consumed := 0
	cur := t.nodes[root].child
	for cur != none && len(m.rest) > 0 {
		n := &t.nodes[cur]
		l := commonPrefixLength(n.key, m.rest)

		if l == 0 {
			// Siblings ascend by first byte: once one sorts after the
			// query byte, none further right can match.
			if n.key[0] > m.rest[0] {
				break
			}
			cur = n.right
			continue
		}

		m.partial = cur
		m.matched = l
		m.rest = m.rest[l:]
		consumed += l

		if l < len(n.key) {
			break
		}

		m.full = cur
		if n.set {
			m.valued = cur
			m.valuedLen = consumed
		}
		cur = n.child
	}
	return m
}

// lookup returns the node exactly representing path, or none.
func (t *Tree[V]) lookup(path []byte) nodeID {
	m := t.longestMatch(path)
	if m.exact() {
		return m.full
	}
	return none
}

// nodesNeeded is how many nodes getOrCreate would allocate for m.
func nodesNeeded(m *match) int {
	switch {
	case m.exact():
		return 0
	case m.partial == m.full:
		return 1
	case len(m.rest) > 0:
		return 2
	default:
		return 1
	}
}

// getOrCreate returns the node exactly representing path, creating structure
// as needed. It fails without touching the tree when the node budget is spent.
func (t *Tree[V]) getOrCreate(path []byte) (nodeID, error) {
	m := t.longestMatch(path)

	if need := nodesNeeded(&m); need > 0 && t.maxNodes > 0 && t.live+need > t.maxNodes {
		return none, common.ErrCapacityExceeded
	}

	switch {
	case m.exact():
		return m.full, nil

	case m.partial == m.full:
		// Nothing below full matched; the remainder hangs off it as a new leaf.
		leaf := t.alloc(m.rest)
		t.addChild(m.full, leaf)
		return leaf, nil
	}

	branch := t.split(m.partial, m.matched)
	if len(m.rest) == 0 {
		return branch, nil
	}
	leaf := t.alloc(m.rest)
	t.addChild(branch, leaf)
	return leaf, nil
}

// commonPrefixLength returns the length of the common prefix between two byte slices.
func commonPrefixLength(a, b []byte) int {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return minLen
}
