package radix

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// String returns the Dump output.
func (tr *Trie[V]) String() string {
	w := new(strings.Builder)
	_ = tr.Dump(w)
	return w.String()
}

// Dump writes the tree to w, one node per line, indented two spaces per level:
//
//	'', <nil>
//	  'sup', <nil>
//	    'er', 2
//	    'per', 3
func (tr *Trie[V]) Dump(w io.Writer) error {
	if tr.t.Destroyed() {
		return ErrDestroyed
	}
	return dumpRec[V](w, tr.Root(), 0)
}

// dumpRec prints n, then its children, then its following siblings.
func dumpRec[V any](w io.Writer, n Node[V], depth int) error {
	for ; n.Valid(); n = n.Next() {
		val := "<nil>"
		if v, ok := n.Value(); ok {
			val = fmt.Sprint(v)
		}
		if _, err := fmt.Fprintf(w, "%s'%s', %s\n", strings.Repeat("  ", depth), n.Key(), val); err != nil {
			return err
		}
		if err := dumpRec[V](w, n.FirstChild(), depth+1); err != nil {
			return err
		}
	}
	return nil
}
