package dawg_test

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dawg "github.com/milden6/mindict"
)

func createDawg(t *testing.T, words []string) *dawg.Automaton {
	t.Helper()
	d, err := dawg.Build(words)
	require.NoError(t, err)
	return d
}

func testDawg(t *testing.T, d *dawg.Automaton, words []string) {
	t.Helper()
	assert.Equal(t, len(words), d.NumWords())

	for i, word := range words {
		assert.True(t, d.Accepts(word), "word %q not accepted", word)
		assert.Equal(t, i, d.IndexOf(word), "index of %q", word)
	}

	assert.Equal(t, words, d.Language())
}

func runTest(t *testing.T, words []string) *dawg.Automaton {
	t.Helper()
	d := createDawg(t, words)
	testDawg(t, d, words)

	// Now try the disk version
	filename := filepath.Join(t.TempDir(), "test.dawg")
	_, err := d.Save(filename)
	require.NoError(t, err)

	saved, err := dawg.Load(filename)
	require.NoError(t, err)
	testDawg(t, saved, words)
	assert.Equal(t, d.Transitions(), saved.Transitions())

	return d
}

// signatures recomputes every state's (final, edges) fingerprint from the
// public views only.
func signatures(d *dawg.Automaton) map[string][]dawg.StateID {
	sigs := make(map[string][]dawg.StateID)
	for _, id := range d.ReachableStates() {
		var sb strings.Builder
		sb.WriteString(strconv.FormatBool(d.IsFinal(id)))
		for _, e := range d.Edges(id) {
			fmt.Fprintf(&sb, "|%c>%d", e.Symbol, e.Target)
		}
		sigs[sb.String()] = append(sigs[sb.String()], id)
	}
	return sigs
}

func assertMinimal(t *testing.T, d *dawg.Automaton) {
	t.Helper()
	for sig, ids := range signatures(d) {
		assert.Len(t, ids, 1, "states %v share signature %s", ids, sig)
	}
}

func TestZeroLengthWord(t *testing.T) {
	d := runTest(t, []string{
		"",
	})
	assert.True(t, d.Accepts(""))
	assert.Equal(t, 1, d.NumStates())
}

func TestSingleEntry(t *testing.T) {
	d := runTest(t, []string{
		"a",
	})
	assert.False(t, d.Accepts(""))
	assert.False(t, d.Accepts("aa"))
}

func TestHelloJello(t *testing.T) {
	d := runTest(t, []string{
		"hello",
		"jello",
	})
	// h and j share the whole "ello" tail
	assert.Equal(t, 6, d.NumStates())
	assert.Equal(t, 6, d.NumEdges())
}

func TestEmptyLexicon(t *testing.T) {
	d := createDawg(t, nil)
	assert.Equal(t, 0, d.NumWords())
	assert.Equal(t, 1, d.NumStates())
	assert.False(t, d.Accepts(""))
	assert.Empty(t, d.Language())
	assert.Equal(t, -1, d.IndexOf("a"))
}

func TestSharedSuffix(t *testing.T) {
	d := createDawg(t, []string{"ab", "cb"})

	afterA := d.Edges(d.Start())[0].Target
	afterC := d.Edges(d.Start())[1].Target
	require.Len(t, d.Edges(afterA), 1)
	require.Len(t, d.Edges(afterC), 1)

	final := d.Edges(afterA)[0]
	assert.Equal(t, 'b', final.Symbol)
	assert.Equal(t, final, d.Edges(afterC)[0])
	assert.True(t, d.IsFinal(final.Target))

	// the states after "a" and after "c" have the same signature, so a
	// minimal automaton merges them: start, one middle state, one final
	// state. Three states, not four.
	assert.Equal(t, afterA, afterC)
	assert.Equal(t, 3, d.NumStates())
	assert.Equal(t, 2, d.RegisterSize())
	assertMinimal(t, d)
}

func TestCatsDog(t *testing.T) {
	d := runTest(t, []string{"cat", "cats", "dog"})

	assert.Equal(t, []string{"cat", "cats", "dog"}, d.Language())
	assert.False(t, d.Accepts("ca"))
	assert.True(t, d.Accepts("cats"))
	assert.False(t, d.Accepts("dogs"))
	assert.False(t, d.Accepts("cog"))
	assert.False(t, d.Accepts("Cat"))
	assertMinimal(t, d)
}

func TestOutOfOrder(t *testing.T) {
	b := dawg.New()
	require.NoError(t, b.Add("b"))
	assert.False(t, b.CanAdd("a"))
	assert.True(t, b.CanAdd("c"))

	err := b.Add("a")
	assert.ErrorIs(t, err, dawg.ErrOutOfOrder)

	// the builder stays broken
	assert.ErrorIs(t, b.Add("c"), dawg.ErrOutOfOrder)
	d, err := b.Finish()
	assert.Nil(t, d)
	assert.ErrorIs(t, err, dawg.ErrOutOfOrder)
}

func TestDuplicate(t *testing.T) {
	_, err := dawg.Build([]string{"a", "b", "b"})
	assert.ErrorIs(t, err, dawg.ErrDuplicate)
	assert.ErrorIs(t, err, dawg.ErrOutOfOrder)
}

func TestPrefixAfterWord(t *testing.T) {
	_, err := dawg.Build([]string{"cats", "cat"})
	assert.ErrorIs(t, err, dawg.ErrOutOfOrder)

	_, err = dawg.Build([]string{"a", ""})
	assert.ErrorIs(t, err, dawg.ErrOutOfOrder)
}

func TestInvalidWord(t *testing.T) {
	_, err := dawg.Build([]string{"a", "b\xff"})
	assert.ErrorIs(t, err, dawg.ErrInvalidWord)
}

func TestFinished(t *testing.T) {
	b := dawg.New()
	require.NoError(t, b.Add("a"))
	first, err := b.Finish()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Add("b"), dawg.ErrFinished)
	assert.False(t, b.CanAdd("b"))

	second, err := b.Finish()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, b.NumAdded())
}

func TestPrefixes(t *testing.T) {
	words := []string{
		"",
		"blip",
		"cat",
		"catnip",
		"cats",
	}
	d := createDawg(t, words)

	assert.Equal(t, []dawg.FindResult{
		{Word: "", Index: 0},
		{Word: "cat", Index: 2},
		{Word: "cats", Index: 4},
	}, d.FindAllPrefixesOf("catsup"))

	assert.Equal(t, []dawg.FindResult{{Word: "", Index: 0}}, d.FindAllPrefixesOf("dog"))
}

func TestUnicode(t *testing.T) {
	words := []string{"straße", "ärger", "éclair", "日本", "日本語"}
	slices.Sort(words)
	d := runTest(t, words)
	assert.False(t, d.Accepts("日"))
	assert.Contains(t, d.Alphabet(), '語')
}

func randomLexicon(r *rand.Rand, n int) []string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		length := r.Intn(8)
		var sb strings.Builder
		for j := 0; j < length; j++ {
			sb.WriteByte(byte('a' + r.Intn(4)))
		}
		words = append(words, sb.String())
	}
	slices.Sort(words)
	return slices.Compact(words)
}

func TestRandomLexicons(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		words := randomLexicon(r, 1+r.Intn(300))
		d := createDawg(t, words)
		testDawg(t, d, words)
		assertMinimal(t, d)

		member := make(map[string]bool, len(words))
		for _, w := range words {
			member[w] = true
		}
		for _, w := range words {
			for i := 0; i < len(w); i++ {
				assert.Equal(t, member[w[:i]], d.Accepts(w[:i]))
			}
			assert.Equal(t, member[w+"a"], d.Accepts(w+"a"))
			assert.False(t, d.Accepts(w+"z"))
		}
	}
}

func TestDeterministicRebuild(t *testing.T) {
	words := randomLexicon(rand.New(rand.NewSource(7)), 500)
	first := createDawg(t, words)
	second := createDawg(t, words)

	assert.Equal(t, first.NumStates(), second.NumStates())
	assert.Equal(t, first.Transitions(), second.Transitions())
	assert.Equal(t, first.FinalStates(), second.FinalStates())
}

func TestWordsStopsEarly(t *testing.T) {
	d := createDawg(t, []string{"a", "b", "c", "d"})

	var got []string
	for w := range d.Words() {
		got = append(got, w)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)

	// restartable
	assert.Equal(t, d.Language(), slices.Collect(d.Words()))
}

func TestEnumerate(t *testing.T) {
	d := createDawg(t, []string{"ab", "abc", "b", "ba"})

	var prefixes []string
	var indexes []int
	d.Enumerate(func(index int, word []rune, final bool) dawg.EnumerationResult {
		prefixes = append(prefixes, string(word))
		indexes = append(indexes, index)
		if string(word) == "ab" {
			return dawg.Skip
		}
		return dawg.Continue
	})
	assert.Equal(t, []string{"", "a", "ab", "b", "ba"}, prefixes)
	assert.Equal(t, []int{0, 0, 0, 2, 3}, indexes)

	count := 0
	d.Enumerate(func(int, []rune, bool) dawg.EnumerationResult {
		count++
		if count == 3 {
			return dawg.Stop
		}
		return dawg.Continue
	})
	assert.Equal(t, 3, count)
}

func TestConcurrentQueries(t *testing.T) {
	words := randomLexicon(rand.New(rand.NewSource(3)), 200)
	d := createDawg(t, words)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, w := range words {
				assert.True(t, d.Accepts(w))
				assert.Equal(t, i, d.IndexOf(w))
			}
			assert.Equal(t, words, d.Language())
		}()
	}
	wg.Wait()
}

func readDictWords(t *testing.T) []string {
	dict := "/usr/share/dict/words"
	file, err := os.Open(dict)
	if err != nil {
		t.Skipf("Skipping full dictionary test; can't open %s", dict)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	slices.Sort(words)
	return slices.Compact(words)
}

func TestFullDict(t *testing.T) {
	if testing.Short() {
		t.Skip("full dictionary in -short mode")
	}
	words := readDictWords(t)
	d := runTest(t, words)
	t.Logf("DAWG has %v words, %v states, %v edges",
		d.NumWords(), d.NumStates(), d.NumEdges())
}

func ExampleNew() {
	b := dawg.New()

	b.Add("blip")   // index 0
	b.Add("cat")    // index 1
	b.Add("catnip") // index 2
	b.Add("cats")   // index 3

	d, _ := b.Finish()

	for _, result := range d.FindAllPrefixesOf("catsup") {
		fmt.Printf("Found prefix %s, index %d\n", result.Word, result.Index)
	}

	// Output:
	// Found prefix cat, index 1
	// Found prefix cats, index 3
}

func ExampleAutomaton_Words() {
	d, _ := dawg.Build([]string{"cat", "cats", "dog"})
	for word := range d.Words() {
		fmt.Println(word)
	}
	fmt.Println(d.Accepts("ca"), d.Accepts("cats"), d.Accepts("dogs"))

	// Output:
	// cat
	// cats
	// dog
	// false true false
}
