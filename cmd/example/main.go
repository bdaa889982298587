package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/CVDpl/go-radix-trie/internal/config"
	"github.com/CVDpl/go-radix-trie/pkg/radix"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml/json/toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger(os.Stderr)

	fmt.Printf("Radix Trie Example (v%s)\n", radix.Version)
	fmt.Printf("========================\n")

	// 1. Create
	fmt.Println("1. Creating trie...")
	tr := radix.New[string](cfg.Options(logger))
	fmt.Println("   ✓ Trie created")

	// 2. Insert
	fmt.Println("\n2. Inserting sample data...")
	sample := []struct{ key, value string }{
		{"superlative", "1"},
		{"super", "2"},
		{"supper", "3"},
		{"soup", "4"},
		{"also", "5"},
		{"allison", "6"},
		{"baker", "7"},
		{"break", "8"},
		{"fred", "9"},
		{"frank", "10"},
		{"", "12"},
		{"crook", "13"},
		{"crazy", "14"},
		{"joe", "15"},
	}
	for _, kv := range sample {
		if _, _, err := tr.Set([]byte(kv.key), kv.value); err != nil {
			log.Printf("Warning: Failed to set %q: %v", kv.key, err)
			continue
		}
		fmt.Printf("   ✓ Set %q = %s\n", kv.key, kv.value)
	}

	// 3. Dump
	fmt.Println("\n3. Tree structure:")
	if err := tr.Dump(os.Stdout); err != nil {
		log.Printf("Warning: Failed to dump: %v", err)
	}

	// 4. Lookups
	fmt.Println("\n4. Lookups...")
	for _, k := range []string{"super", "supper", "sup", "frankly"} {
		v, ok, err := tr.Get([]byte(k))
		switch {
		case err != nil:
			log.Printf("Warning: Failed to get %q: %v", k, err)
		case ok:
			fmt.Printf("   ✓ Get %q = %s\n", k, v)
		default:
			fmt.Printf("   - Get %q: not found\n", k)
		}
	}
	for _, k := range []string{"superb", "sup", "frankly"} {
		v, rest, ok, err := tr.LongestMatch([]byte(k))
		if err != nil {
			log.Printf("Warning: Failed longest match %q: %v", k, err)
			continue
		}
		if ok {
			fmt.Printf("   ✓ LongestMatch %q = %s (rest %q)\n", k, v, rest)
		} else {
			fmt.Printf("   - LongestMatch %q: no match (rest %q)\n", k, rest)
		}
	}

	// 5. Prefix traversal
	fmt.Println("\n5. Keys under \"su\"...")
	for k, v := range tr.AllPrefix([]byte("su")) {
		fmt.Printf("   %s = %s\n", k, v)
	}

	// 6. Deletes
	fmt.Println("\n6. Deleting some keys...")
	for _, k := range []string{"super", "crook", "nothing"} {
		v, ok, err := tr.Delete([]byte(k))
		switch {
		case err != nil:
			log.Printf("Warning: Failed to delete %q: %v", k, err)
		case ok:
			fmt.Printf("   ✓ Deleted %q (was %s)\n", k, v)
		default:
			fmt.Printf("   - Delete %q: not found\n", k)
		}
	}
	if err := tr.Check(); err != nil {
		log.Fatalf("Invariant violation: %v", err)
	}
	fmt.Println("\n   Tree after deletes:")
	_ = tr.Dump(os.Stdout)

	// 7. Stats
	fmt.Println("\n7. Statistics...")
	st := tr.Stats()
	fmt.Printf("   Values: %d, nodes: %d, depth: %d, key bytes: %d\n", st.Values, st.Nodes, st.MaxDepth, st.KeyBytes)
	fmt.Printf("   Splits: %d, merges: %d\n", st.Splits, st.Merges)
	fmt.Printf("   Sets: %d, gets: %d, deletes: %d, misses: %d\n", st.Sets, st.Gets, st.Deletes, st.Misses)
	if digest, err := tr.Digest(); err == nil {
		fmt.Printf("   Digest: %s\n", digest)
	}

	// 8. Destroy
	tr.Destroy()
	fmt.Println("\n✅ Example completed successfully!")
}
