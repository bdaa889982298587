package radix

import (
	"github.com/CVDpl/go-radix-trie/internal/common"
)

// Options configures a Trie.
type Options struct {
	// Logger receives split/merge debug events and warnings. Nil discards them.
	Logger common.Logger

	// MaxNodes bounds the number of nodes, root included. Zero means unbounded.
	// An insertion that would exceed it fails with ErrCapacityExceeded.
	MaxNodes int

	// MaxKeySize is the longest accepted key in bytes (0 = common.MaxKeySize).
	MaxKeySize int
}

// DefaultOptions returns default options.
func DefaultOptions() *Options {
	return &Options{
		Logger:     common.NewNullLogger(),
		MaxNodes:   common.DefaultMaxNodes,
		MaxKeySize: common.MaxKeySize,
	}
}
