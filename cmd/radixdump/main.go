package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/CVDpl/go-radix-trie/internal/config"
	"github.com/CVDpl/go-radix-trie/pkg/radix"
)

// load reads "key<TAB>value" lines; a line without a tab stores an empty value.
func load(tr *radix.Trie[string], r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 2*1024*1024)
	n := 0
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		key, value, _ := bytes.Cut(line, []byte{'\t'})
		if _, _, err := tr.Set(key, string(value)); err != nil {
			return n, fmt.Errorf("line %d: %w", n+1, err)
		}
		n++
	}
	return n, sc.Err()
}

func main() {
	in := flag.String("in", "", "input file of key<TAB>value lines (default: stdin)")
	prefix := flag.String("prefix", "", "only list keys under this prefix")
	list := flag.Bool("list", false, "list keys in order instead of dumping the tree")
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config:", err)
		os.Exit(2)
	}

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		defer f.Close()
		r = f
	}

	tr := radix.New[string](cfg.Options(cfg.Logger(os.Stderr)))
	defer tr.Destroy()

	n, err := load(tr, r)
	if err != nil {
		fmt.Println("load:", err)
		os.Exit(1)
	}

	if *list || *prefix != "" {
		for k, v := range tr.AllPrefix([]byte(*prefix)) {
			fmt.Printf("%s\t%s\n", k, v)
		}
	} else if err := tr.Dump(os.Stdout); err != nil {
		fmt.Println("dump:", err)
		os.Exit(1)
	}

	if err := tr.Check(); err != nil {
		fmt.Println("CHECK:", err)
		os.Exit(1)
	}
	digest, _ := tr.Digest()
	st := tr.Stats()
	fmt.Fprintf(os.Stderr, "lines=%d values=%d nodes=%d depth=%d digest=%s\n", n, st.Values, st.Nodes, st.MaxDepth, digest)
}
