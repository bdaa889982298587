package radix

// Version is the semantic version of the radix library.
// It can be overridden at build time using:
//
//	go build -ldflags "-X github.com/CVDpl/go-radix-trie/pkg/radix.Version=0.3.0"
var Version = "0.2.0"
