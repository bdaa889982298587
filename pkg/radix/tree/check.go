package tree

import (
	"fmt"
)

// Check verifies the structural invariants of the whole tree and returns the
// first violation found.
func (t *Tree[V]) Check() error {
	if t.destroyed {
		return nil
	}
	r := &t.nodes[root]
	if len(r.key) != 0 || r.parent != none || r.left != none || r.right != none {
		return fmt.Errorf("root: key=%q parent=%d left=%d right=%d", r.key, r.parent, r.left, r.right)
	}

	seen, values := 1, 0
	if r.set {
		values++
	}
	var visit func(id nodeID, path []byte) error
	visit = func(id nodeID, path []byte) error {
		prev := none
		for c := t.nodes[id].child; c != none; c = t.nodes[c].right {
			n := &t.nodes[c]
			cpath := append(path[:len(path):len(path)], n.key...)
			seen++
			if n.set {
				values++
			}

			if len(n.key) == 0 {
				return fmt.Errorf("node %q: empty key", cpath)
			}
			if n.parent != id {
				return fmt.Errorf("node %q: parent %d, want %d", cpath, n.parent, id)
			}
			if n.left != prev {
				return fmt.Errorf("node %q: left %d, want %d", cpath, n.left, prev)
			}
			if prev != none && t.nodes[prev].key[0] >= n.key[0] {
				return fmt.Errorf("node %q: siblings out of order (%q >= %q)", cpath, t.nodes[prev].key[0], n.key[0])
			}
			if !n.set && (n.child == none || t.hasSingleChild(c)) {
				return fmt.Errorf("node %q: valueless with fewer than two children", cpath)
			}
			if err := visit(c, cpath); err != nil {
				return err
			}
			prev = c
		}
		return nil
	}
	if err := visit(root, nil); err != nil {
		return err
	}

	if seen != t.live {
		return fmt.Errorf("reachable nodes %d, live %d", seen, t.live)
	}
	if values != t.values {
		return fmt.Errorf("reachable values %d, counted %d", values, t.values)
	}
	return nil
}
