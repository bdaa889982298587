// Package radix provides a compressed prefix tree (Patricia/radix trie)
// mapping byte-string keys to values of any type.
//
// It supports exact lookup, longest-prefix matching, ordered traversal of all
// keys or of the keys under a prefix, and deletion that keeps the tree fully
// compressed. Values are stored as given: the trie never copies or releases
// them and hands the previous value back on overwrite or deletion.
//
// A Trie is not safe for concurrent use; wrap it in a sync.RWMutex when
// sharing it between goroutines.
package radix

import (
	"fmt"
	"iter"

	"github.com/CVDpl/go-radix-trie/internal/common"
	"github.com/CVDpl/go-radix-trie/pkg/radix/tree"
)

// Errors returned by Trie operations.
var (
	ErrInvalidKey       = common.ErrInvalidKey
	ErrKeyTooLarge      = common.ErrKeyTooLarge
	ErrCapacityExceeded = common.ErrCapacityExceeded
	ErrDestroyed        = common.ErrDestroyed
)

// Node is a read-only handle on a trie node.
type Node[V any] = tree.View[V]

// Trie maps byte-string keys to values of type V.
type Trie[V any] struct {
	t          *tree.Tree[V]
	logger     common.Logger
	stats      *StatsCollector
	maxKeySize int
}

// New creates an empty trie. A nil opts uses DefaultOptions.
func New[V any](opts *Options) *Trie[V] {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := common.OrNull(opts.Logger)
	maxKeySize := opts.MaxKeySize
	if maxKeySize <= 0 {
		maxKeySize = common.MaxKeySize
	}
	return &Trie[V]{
		t:          tree.New[V](logger, opts.MaxNodes),
		logger:     logger,
		stats:      NewStatsCollector(),
		maxKeySize: maxKeySize,
	}
}

func (tr *Trie[V]) check(op string, key []byte) error {
	if tr.t.Destroyed() {
		tr.stats.RecordRejected()
		return fmt.Errorf("%s: %w", op, ErrDestroyed)
	}
	if err := common.ValidateKey(key, tr.maxKeySize); err != nil {
		tr.stats.RecordRejected()
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Set stores v under key, creating structure as needed, and returns the
// previous value if there was one. The empty key addresses the root.
func (tr *Trie[V]) Set(key []byte, v V) (prev V, had bool, err error) {
	if err = tr.check("set", key); err != nil {
		return prev, false, err
	}
	prev, had, err = tr.t.Set(key, v)
	if err != nil {
		tr.stats.RecordRejected()
		tr.logger.Warn("set rejected", "error", err, "key_len", len(key), "nodes", tr.t.Nodes())
		return prev, false, fmt.Errorf("set: %w", err)
	}
	tr.stats.RecordSet()
	return prev, had, nil
}

// Get returns the value stored under exactly key.
func (tr *Trie[V]) Get(key []byte) (V, bool, error) {
	var zero V
	if err := tr.check("get", key); err != nil {
		return zero, false, err
	}
	v, ok := tr.t.Get(key)
	tr.stats.RecordGet(ok)
	return v, ok, nil
}

// LongestMatch returns the value of the deepest stored key that is a prefix
// of key (key itself included) and the part of key past it. When nothing
// matches, ok is false and rest is the whole key.
func (tr *Trie[V]) LongestMatch(key []byte) (v V, rest []byte, ok bool, err error) {
	if err = tr.check("longest match", key); err != nil {
		return v, nil, false, err
	}
	v, rest, ok = tr.t.LongestMatch(key)
	tr.stats.RecordLongestMatch(ok)
	return v, rest, ok, nil
}

// Delete removes key and returns the value it held. Deleting an absent key
// changes nothing.
func (tr *Trie[V]) Delete(key []byte) (V, bool, error) {
	var zero V
	if err := tr.check("delete", key); err != nil {
		return zero, false, err
	}
	v, ok := tr.t.Delete(key)
	tr.stats.RecordDelete(ok)
	return v, ok, nil
}

// All iterates over every key and value in lexicographic key order.
// Each range over the sequence starts a fresh walk; the trie must not be
// modified during one.
func (tr *Trie[V]) All() iter.Seq2[[]byte, V] {
	return tr.t.All(nil)
}

// AllPrefix iterates over the keys starting with prefix and their values.
func (tr *Trie[V]) AllPrefix(prefix []byte) iter.Seq2[[]byte, V] {
	return tr.t.All(prefix)
}

// Values iterates over every stored value in key order.
func (tr *Trie[V]) Values() iter.Seq[V] {
	return tr.t.Values(nil)
}

// ValuesPrefix iterates over the values whose keys start with prefix.
func (tr *Trie[V]) ValuesPrefix(prefix []byte) iter.Seq[V] {
	return tr.t.Values(prefix)
}

// Walk calls fn for every key under prefix until fn returns false, and
// returns how many keys fn was called with. A nil prefix walks everything.
func (tr *Trie[V]) Walk(prefix []byte, fn func(key []byte, v V) bool) (int, error) {
	if tr.t.Destroyed() {
		return 0, fmt.Errorf("walk: %w", ErrDestroyed)
	}
	n := 0
	for k, v := range tr.t.All(prefix) {
		n++
		if !fn(k, v) {
			break
		}
	}
	return n, nil
}

// Root returns a read-only view on the root node. It is invalid after Destroy.
func (tr *Trie[V]) Root() Node[V] {
	return tr.t.Root()
}

// Len returns the number of stored values.
func (tr *Trie[V]) Len() int {
	return tr.t.Len()
}

// Check verifies the structural invariants and reports the first violation.
func (tr *Trie[V]) Check() error {
	return tr.t.Check()
}

// Stats returns operation counters and structural figures.
func (tr *Trie[V]) Stats() Stats {
	var s Stats
	tr.stats.fill(&s)
	s.Splits = tr.t.Splits()
	s.Merges = tr.t.Merges()
	s.Nodes = tr.t.Nodes()
	s.Values = tr.t.Len()
	s.KeyBytes = tr.t.KeyBytes()
	s.MaxDepth = tr.t.MaxDepth()
	return s
}

// Destroy releases every node and key buffer. Values stay with the caller.
// All later operations fail with ErrDestroyed.
func (tr *Trie[V]) Destroy() {
	if tr.t.Destroyed() {
		return
	}
	nodes, values := tr.t.Nodes(), tr.t.Len()
	tr.t.Destroy()
	tr.logger.Info("trie destroyed", "nodes", nodes, "values", values)
}
