package radix

import (
	"encoding/binary"
	"fmt"
	"hash"

	blake3 "lukechampine.com/blake3"
)

// Digest returns the BLAKE3-256 hash of the trie's shape: every edge label,
// its depth and whether it holds a value, in traversal order. Two tries with
// equal digests have identical structure. Values are not hashed; see
// DigestFunc.
func (tr *Trie[V]) Digest() (string, error) {
	return tr.DigestFunc(nil)
}

// DigestFunc is Digest with each present value folded in through enc.
// A nil enc hashes presence only.
func (tr *Trie[V]) DigestFunc(enc func(V) []byte) (string, error) {
	if tr.t.Destroyed() {
		return "", fmt.Errorf("digest: %w", ErrDestroyed)
	}
	h := blake3.New(32, nil)
	digestNode[V](h, tr.Root(), 0, enc, nil)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func digestNode[V any](h hash.Hash, n Node[V], depth uint64, enc func(V) []byte, buf []byte) []byte {
	for ; n.Valid(); n = n.Next() {
		key := n.Key()
		buf = binary.AppendUvarint(buf[:0], depth)
		buf = binary.AppendUvarint(buf, uint64(len(key)))
		buf = append(buf, key...)

		v, ok := n.Value()
		if ok {
			buf = append(buf, 1)
			if enc != nil {
				ev := enc(v)
				buf = binary.AppendUvarint(buf, uint64(len(ev)))
				buf = append(buf, ev...)
			}
		} else {
			buf = append(buf, 0)
		}
		h.Write(buf)

		buf = digestNode[V](h, n.FirstChild(), depth+1, enc, buf)
	}
	return buf
}
