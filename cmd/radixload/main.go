package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/CVDpl/go-radix-trie/internal/config"
	"github.com/CVDpl/go-radix-trie/pkg/radix"
	"github.com/CVDpl/go-radix-trie/pkg/radix/monitoring"
)

// workload drives random sets, gets, longest matches and deletes against a
// trie and a map model, checking that both agree.
type workload struct {
	tr    *radix.Trie[int]
	model map[string]int
	rnd   *rand.Rand

	alphabet string
	keyLen   int
}

func (w *workload) key() []byte {
	k := make([]byte, 1+w.rnd.Intn(w.keyLen))
	for i := range k {
		k[i] = w.alphabet[w.rnd.Intn(len(w.alphabet))]
	}
	return k
}

// step performs one random operation.
func (w *workload) step(i int) error {
	k := w.key()
	switch op := w.rnd.Intn(10); {
	case op < 5:
		prev, had, err := w.tr.Set(k, i)
		if err != nil {
			return err
		}
		mv, mok := w.model[string(k)]
		if had != mok || prev != mv {
			return fmt.Errorf("set %q: got (%d, %v), model (%d, %v)", k, prev, had, mv, mok)
		}
		w.model[string(k)] = i
	case op < 7:
		v, ok, err := w.tr.Get(k)
		if err != nil {
			return err
		}
		mv, mok := w.model[string(k)]
		if ok != mok || v != mv {
			return fmt.Errorf("get %q: got (%d, %v), model (%d, %v)", k, v, ok, mv, mok)
		}
	case op < 8:
		v, rest, ok, err := w.tr.LongestMatch(k)
		if err != nil {
			return err
		}
		if ok {
			prefix := string(k[:len(k)-len(rest)])
			if mv, mok := w.model[prefix]; !mok || mv != v {
				return fmt.Errorf("longest match %q: prefix %q not in model", k, prefix)
			}
		}
	default:
		v, ok, err := w.tr.Delete(k)
		if err != nil {
			return err
		}
		mv, mok := w.model[string(k)]
		if ok != mok || v != mv {
			return fmt.Errorf("delete %q: got (%d, %v), model (%d, %v)", k, v, ok, mv, mok)
		}
		delete(w.model, string(k))
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "optional config file")
	keys := flag.Int("n", 0, "number of operations (overrides load.keys)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(2)
	}
	if *keys > 0 {
		cfg.Load.Keys = *keys
	}
	logger := cfg.Logger(os.Stderr)

	if cfg.Load.PprofAddr != "" {
		srv, err := monitoring.StartPprofServer(cfg.Load.PprofAddr, logger)
		if err == nil {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				_ = monitoring.StopPprofServer(ctx, srv)
				cancel()
			}()
		} else {
			radix.LogError(logger, "failed to start pprof", err, "addr", cfg.Load.PprofAddr)
		}
	}

	w := &workload{
		tr:       radix.New[int](cfg.Options(logger)),
		model:    make(map[string]int),
		rnd:      rand.New(rand.NewSource(cfg.Load.Seed)),
		alphabet: cfg.Load.Alphabet,
		keyLen:   cfg.Load.KeyLen,
	}

	runtime.GC()
	memBefore := readMem()
	fmt.Printf("Radix Load\n")
	fmt.Printf("==========\n")
	fmt.Printf("Operations: %d, key length <= %d, alphabet %q, seed %d\n",
		cfg.Load.Keys, cfg.Load.KeyLen, cfg.Load.Alphabet, cfg.Load.Seed)

	start := time.Now()
	var deadline time.Time
	if cfg.Load.Duration > 0 {
		deadline = start.Add(cfg.Load.Duration)
	}

	ops := 0
	for ; ops < cfg.Load.Keys; ops++ {
		if err := w.step(ops); err != nil {
			radix.LogError(logger, "operation failed", err, "op", ops)
			os.Exit(1)
		}
		if cfg.Load.CheckEvery > 0 && ops > 0 && ops%cfg.Load.CheckEvery == 0 {
			if err := w.tr.Check(); err != nil {
				radix.LogError(logger, "invariant violated", err, "op", ops)
				os.Exit(1)
			}
			logger.Info("progress", "ops", ops, "values", w.tr.Len())
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}
	elapsed := time.Since(start)

	if err := w.tr.Check(); err != nil {
		radix.LogError(logger, "invariant violated", err, "op", ops)
		os.Exit(1)
	}
	if w.tr.Len() != len(w.model) {
		logger.Error("size mismatch", "trie", w.tr.Len(), "model", len(w.model))
		os.Exit(1)
	}

	st := w.tr.Stats()
	memAfter := readMem()
	fmt.Printf("\n%d operations in %v (%.0f ops/s)\n", ops, elapsed, float64(ops)/elapsed.Seconds())
	fmt.Printf("Values: %d, nodes: %d, depth: %d, key bytes: %s\n",
		st.Values, st.Nodes, st.MaxDepth, formatBytes(int64(st.KeyBytes)))
	fmt.Printf("Splits: %d, merges: %d, misses: %d\n", st.Splits, st.Merges, st.Misses)
	fmt.Printf("Heap: before=%s after=%s\n",
		formatBytes(int64(memBefore.HeapAlloc)), formatBytes(int64(memAfter.HeapAlloc)))
	if u, err := readUsage(); err == nil {
		fmt.Printf("CPU: user=%v system=%v, max RSS=%s\n", u.user, u.system, formatBytes(u.maxRSS))
	}

	w.tr.Destroy()
}

// Formatting helpers
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * KB
		GB = MB * KB
	)
	if bytes < KB {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < MB {
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	}
	if bytes < GB {
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	}
	return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
}
