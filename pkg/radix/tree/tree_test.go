package tree

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CVDpl/go-radix-trie/internal/common"
)

func childKeys[V any](tr *Tree[V], id nodeID) []string {
	var keys []string
	for c := tr.nodes[id].child; c != none; c = tr.nodes[c].right {
		keys = append(keys, string(tr.nodes[c].key))
	}
	return keys
}

func childByKey[V any](tr *Tree[V], id nodeID, key string) nodeID {
	for c := tr.nodes[id].child; c != none; c = tr.nodes[c].right {
		if string(tr.nodes[c].key) == key {
			return c
		}
	}
	return none
}

func mustSet(t *testing.T, tr *Tree[string], key, v string) {
	t.Helper()
	_, _, err := tr.Set([]byte(key), v)
	require.NoError(t, err)
	require.NoError(t, tr.Check())
}

func TestSetGetRoundTrip(t *testing.T) {
	tr := New[string](nil, 0)
	words := map[string]string{
		"superlative": "1", "super": "2", "supper": "3", "soup": "4",
		"also": "5", "allison": "6", "baker": "7", "break": "8",
		"fred": "9", "frank": "10", "crook": "13", "crazy": "14", "joe": "15",
	}
	for k, v := range words {
		mustSet(t, tr, k, v)
	}
	for k, v := range words {
		got, ok := tr.Get([]byte(k))
		assert.True(t, ok, "key %q", k)
		assert.Equal(t, v, got, "key %q", k)
	}
	assert.Equal(t, len(words), tr.Len())

	for _, miss := range []string{"s", "sup", "supe", "superla", "z", "fredd", "alli"} {
		_, ok := tr.Get([]byte(miss))
		assert.False(t, ok, "key %q", miss)
	}
}

func TestSetReturnsPrevious(t *testing.T) {
	tr := New[string](nil, 0)

	prev, had, err := tr.Set([]byte("key1"), "val1")
	require.NoError(t, err)
	assert.False(t, had)
	assert.Equal(t, "", prev)

	prev, had, err = tr.Set([]byte("key1"), "val2")
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "val1", prev)
	assert.Equal(t, 1, tr.Len())
}

func TestEmptyKeyUsesRoot(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "", "12")
	mustSet(t, tr, "a", "x")

	got, ok := tr.Get([]byte{})
	require.True(t, ok)
	assert.Equal(t, "12", got)
	assert.Equal(t, 2, tr.Nodes())

	v, ok := tr.Delete([]byte{})
	require.True(t, ok)
	assert.Equal(t, "12", v)
	assert.Equal(t, 2, tr.Nodes(), "root is never removed")
	require.NoError(t, tr.Check())
}

func TestSplit(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "supper", "3")

	assert.Equal(t, []string{"sup"}, childKeys(tr, root))
	branch := childByKey(tr, root, "sup")
	require.NotEqual(t, none, branch)
	assert.False(t, tr.nodes[branch].set)
	assert.Equal(t, []string{"er", "per"}, childKeys(tr, branch))
	assert.Equal(t, uint64(1), tr.Splits())

	v, _ := tr.Get([]byte("super"))
	assert.Equal(t, "2", v)
	v, _ = tr.Get([]byte("supper"))
	assert.Equal(t, "3", v)
}

func TestSplitKeepsSubtree(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "superlative", "1")
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "sup", "0")

	// sup -> er -> lative
	sup := childByKey(tr, root, "sup")
	require.NotEqual(t, none, sup)
	er := childByKey(tr, sup, "er")
	require.NotEqual(t, none, er)
	lative := childByKey(tr, er, "lative")
	require.NotEqual(t, none, lative)
	assert.Equal(t, er, tr.nodes[lative].parent)

	for k, want := range map[string]string{"superlative": "1", "super": "2", "sup": "0"} {
		got, ok := tr.Get([]byte(k))
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestMergeOnDelete(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "supper", "3")
	branch := childByKey(tr, root, "sup")

	v, ok := tr.Delete([]byte("super"))
	require.True(t, ok)
	assert.Equal(t, "2", v)
	require.NoError(t, tr.Check())

	got, ok := tr.Get([]byte("supper"))
	require.True(t, ok)
	assert.Equal(t, "3", got)

	assert.Equal(t, []string{"supper"}, childKeys(tr, root))
	assert.Equal(t, branch, childByKey(tr, root, "supper"), "merged node keeps its identity")
	assert.Equal(t, 2, tr.Nodes())
	assert.Equal(t, uint64(1), tr.Merges())

	_, ok = tr.Get([]byte("super"))
	assert.False(t, ok)
}

func TestDeleteInnerValueMergesWithChild(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "superlative", "1")

	v, ok := tr.Delete([]byte("super"))
	require.True(t, ok)
	assert.Equal(t, "2", v)
	require.NoError(t, tr.Check())
	assert.Equal(t, []string{"superlative"}, childKeys(tr, root))

	got, _ := tr.Get([]byte("superlative"))
	assert.Equal(t, "1", got)
}

func TestDeleteBranchIsNoop(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "supper", "3")
	nodes := tr.Nodes()

	_, ok := tr.Delete([]byte("sup"))
	assert.False(t, ok)
	_, ok = tr.Delete([]byte("nothing"))
	assert.False(t, ok)
	_, ok = tr.Delete([]byte("superb"))
	assert.False(t, ok)

	assert.Equal(t, nodes, tr.Nodes())
	require.NoError(t, tr.Check())
}

func TestLongestMatch(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "superlative", "1")
	mustSet(t, tr, "supper", "3")

	tests := []struct {
		query string
		value string
		rest  string
		ok    bool
	}{
		{"superb", "2", "b", true},
		{"sup", "", "sup", false},
		{"supper", "3", "", true},
		{"superlatives", "1", "s", true},
		{"superla", "2", "la", true},
		{"x", "", "x", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			v, rest, ok := tr.LongestMatch([]byte(tt.query))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.rest, string(rest))
		})
	}

	mustSet(t, tr, "", "root")
	v, rest, ok := tr.LongestMatch([]byte("sup"))
	assert.True(t, ok)
	assert.Equal(t, "root", v)
	assert.Equal(t, "sup", string(rest))
}

func TestAddChildOrder(t *testing.T) {
	tests := []struct {
		name   string
		insert []string
		want   []string
	}{
		{"into empty", []string{"m"}, []string{"m"}},
		{"before head", []string{"m", "c"}, []string{"c", "m"}},
		{"after tail", []string{"c", "m"}, []string{"c", "m"}},
		{"between", []string{"a", "z", "m"}, []string{"a", "m", "z"}},
		{"many", []string{"q", "b", "x", "a", "c", "y"}, []string{"a", "b", "c", "q", "x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New[int](nil, 0)
			for _, k := range tt.insert {
				tr.addChild(root, tr.alloc([]byte(k)))
			}
			if diff := cmp.Diff(tt.want, childKeys(tr, root)); diff != "" {
				t.Errorf("child order mismatch (-want +got):\n%s", diff)
			}
			var back []string
			last := tr.nodes[root].child
			for last != none && tr.nodes[last].right != none {
				last = tr.nodes[last].right
			}
			for c := last; c != none; c = tr.nodes[c].left {
				back = append([]string{string(tr.nodes[c].key)}, back...)
			}
			assert.Equal(t, tt.want, back, "left links")
		})
	}
}

func TestAddChildCollisionPanics(t *testing.T) {
	tr := New[int](nil, 0)
	tr.addChild(root, tr.alloc([]byte("abc")))
	assert.Panics(t, func() {
		tr.addChild(root, tr.alloc([]byte("axe")))
	})
}

func TestSiblingScanStopsPastQuery(t *testing.T) {
	tr := New[string](nil, 0)
	for _, k := range []string{"b", "d", "f"} {
		mustSet(t, tr, k, k)
	}
	m := tr.longestMatch([]byte("c"))
	assert.Equal(t, root, m.full)
	assert.Equal(t, root, m.partial)
	assert.Equal(t, "c", string(m.rest))

	m = tr.longestMatch([]byte("f"))
	assert.True(t, m.exact())
	assert.Equal(t, "f", string(tr.nodes[m.full].key))
}

func TestCapacityLeavesTreeUntouched(t *testing.T) {
	tr := New[string](nil, 2)
	mustSet(t, tr, "super", "2")

	_, _, err := tr.Set([]byte("supper"), "3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrCapacityExceeded))
	assert.Equal(t, []string{"super"}, childKeys(tr, root))
	assert.Equal(t, 2, tr.Nodes())
	require.NoError(t, tr.Check())

	// overwriting needs no new node
	prev, had, err := tr.Set([]byte("super"), "22")
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "2", prev)
}

func TestAllOrderAndPrefix(t *testing.T) {
	tr := New[string](nil, 0)
	keys := []string{"superlative", "super", "supper", "soup", "also", "allison", "baker", "break", "fred", "frank", "crook", "crazy", "joe"}
	for _, k := range keys {
		mustSet(t, tr, k, k)
	}
	mustSet(t, tr, "", "")

	var got []string
	for k, v := range tr.All(nil) {
		assert.Equal(t, string(k), v)
		got = append(got, string(k))
	}
	want := append([]string{""}, keys...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	prefixTests := map[string][]string{
		"su":     {"super", "superlative", "supper"},
		"sup":    {"super", "superlative", "supper"},
		"super":  {"super", "superlative"},
		"superl": {"superlative"},
		"s":      {"soup", "super", "superlative", "supper"},
		"al":     {"allison", "also"},
		"q":      nil,
		"supx":   nil,
		"joey":   nil,
	}
	for prefix, want := range prefixTests {
		var got []string
		for v := range tr.Values([]byte(prefix)) {
			got = append(got, v)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Values(%q) mismatch (-want +got):\n%s", prefix, diff)
		}
	}
}

func TestAllIsRestartableAndStoppable(t *testing.T) {
	tr := New[int](nil, 0)
	for i, k := range []string{"a", "ab", "abc", "b"} {
		_, _, err := tr.Set([]byte(k), i)
		require.NoError(t, err)
	}
	seq := tr.All(nil)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 4, count())
	assert.Equal(t, 4, count())

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestDestroy(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "a", "1")
	tr.Destroy()
	tr.Destroy()

	assert.True(t, tr.Destroyed())
	assert.Equal(t, 0, tr.Nodes())
	_, _, err := tr.Set([]byte("a"), "2")
	assert.ErrorIs(t, err, common.ErrDestroyed)
	_, ok := tr.Get([]byte("a"))
	assert.False(t, ok)
	assert.False(t, tr.Root().Valid())
	for range tr.All(nil) {
		t.Fatal("destroyed tree yielded a value")
	}
}

func TestViewWalk(t *testing.T) {
	tr := New[string](nil, 0)
	mustSet(t, tr, "super", "2")
	mustSet(t, tr, "supper", "3")

	r := tr.Root()
	require.True(t, r.IsRoot())
	sup := r.FirstChild()
	require.True(t, sup.Valid())
	assert.Equal(t, "sup", string(sup.Key()))
	_, ok := sup.Value()
	assert.False(t, ok)
	assert.False(t, sup.Next().Valid())

	er := sup.FirstChild()
	assert.Equal(t, "er", string(er.Key()))
	v, ok := er.Value()
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, "per", string(er.Next().Key()))
	assert.Equal(t, "sup", string(er.Parent().Key()))
	assert.False(t, View[string]{}.Valid())
}

func TestRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("abcd")
	randKey := func() []byte {
		k := make([]byte, 1+rng.Intn(6))
		for i := range k {
			k[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return k
	}

	tr := New[int](nil, 0)
	model := make(map[string]int)
	for step := 0; step < 5000; step++ {
		k := randKey()
		if rng.Intn(3) == 0 {
			v, ok := tr.Delete(k)
			mv, mok := model[string(k)]
			require.Equal(t, mok, ok, "step %d delete %q", step, k)
			require.Equal(t, mv, v, "step %d delete %q", step, k)
			delete(model, string(k))
		} else {
			prev, had, err := tr.Set(k, step)
			require.NoError(t, err)
			mv, mok := model[string(k)]
			require.Equal(t, mok, had, "step %d set %q", step, k)
			require.Equal(t, mv, prev, "step %d set %q", step, k)
			model[string(k)] = step
		}
		require.NoError(t, tr.Check(), "step %d key %q", step, k)
	}

	require.Equal(t, len(model), tr.Len())
	for k, v := range model {
		got, ok := tr.Get([]byte(k))
		require.True(t, ok, k)
		require.Equal(t, v, got, k)
	}

	for k := range model {
		_, ok := tr.Delete([]byte(k))
		require.True(t, ok)
		require.NoError(t, tr.Check())
	}
	assert.Equal(t, 1, tr.Nodes())
	assert.Equal(t, 0, tr.KeyBytes())
}
