package dawg

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// FindResult is the result of a lookup in the Automaton. It
// contains both the word found, and its index in sorted order.
type FindResult struct {
	Word  string
	Index int
}

// EnumFn is called by Enumerate for every prefix of the language. The
// word slice is reused between calls; copy it to keep it.
type EnumFn = func(index int, word []rune, final bool) EnumerationResult

// EnumerationResult is returned by the enumeration function to indicate whether
// enumeration should continue below this depth or stop altogether
type EnumerationResult = int

const (
	// Continue enumerating all words with this prefix
	Continue EnumerationResult = iota

	// Skip will skip all words with this prefix
	Skip

	// Stop will immediately stop enumerating words
	Stop
)

// Accepts reports whether word is in the language. A symbol that has no
// transition rejects the word immediately.
func (a *Automaton) Accepts(word string) bool {
	node := a.start
	for _, ch := range word {
		next, ok := a.next(node, ch)
		if !ok {
			return false
		}
		node = next
	}
	return a.states[node].final
}

// IndexOf returns the position of word in the sorted lexicon.
// If the word is not accepted, it returns -1.
func (a *Automaton) IndexOf(word string) int {
	skipped := 0
	node := a.start

	for _, ch := range word {
		if a.states[node].final {
			skipped++
		}

		found := false
		for _, e := range a.states[node].edges {
			if e.Symbol == ch {
				node = e.Target
				found = true
				break
			}
			skipped += a.counts[e.Target]
		}
		if !found {
			return -1
		}
	}

	if a.states[node].final {
		return skipped
	}
	return -1
}

// FindAllPrefixesOf returns all words in the language that are a prefix
// of the input string, shortest first.
func (a *Automaton) FindAllPrefixesOf(input string) []FindResult {
	var results []FindResult
	skipped := 0
	node := a.start

	for pos, ch := range input {
		if a.states[node].final {
			results = append(results, FindResult{Word: input[:pos], Index: skipped})
			skipped++
		}

		found := false
		for _, e := range a.states[node].edges {
			if e.Symbol == ch {
				node = e.Target
				found = true
				break
			}
			skipped += a.counts[e.Target]
		}
		if !found {
			return results
		}
	}

	if a.states[node].final {
		results = append(results, FindResult{Word: input, Index: skipped})
	}

	return results
}

// Enumerate will call the given method, passing it every possible prefix of words in the automaton,
// in lexicographic order. Return Continue to continue enumeration, Skip to skip this branch, or Stop
// to stop enumeration.
//
// Shared states are reached once per path. Only the current path is
// tracked, so every path is explored on its own.
func (a *Automaton) Enumerate(fn EnumFn) {
	type frame struct {
		id   StateID
		edge int
		// index of the next word below this state
		next int
	}

	if fn(0, nil, a.states[a.start].final) != Continue {
		return
	}

	onPath := bitset.New(uint(len(a.states)))
	onPath.Set(uint(a.start))
	stack := []frame{{id: a.start, next: boolInt(a.states[a.start].final)}}
	var runes []rune

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := a.states[top.id].edges

		if top.edge == len(edges) {
			onPath.Clear(uint(top.id))
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				runes = runes[:len(stack)-1]
			}
			continue
		}

		e := edges[top.edge]
		top.edge++
		index := top.next
		top.next += a.counts[e.Target]

		if onPath.Test(uint(e.Target)) {
			continue
		}

		runes = append(runes, e.Symbol)
		final := a.states[e.Target].final
		switch fn(index, runes, final) {
		case Stop:
			return
		case Skip:
			runes = runes[:len(runes)-1]
			continue
		}

		onPath.Set(uint(e.Target))
		stack = append(stack, frame{id: e.Target, next: index + boolInt(final)})
	}
}

// Words returns the language as a lazy sequence in lexicographic order.
// The sequence can be ranged over any number of times and stops as soon
// as the caller breaks out of the loop.
func (a *Automaton) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		a.Enumerate(func(_ int, word []rune, final bool) EnumerationResult {
			if final && !yield(string(word)) {
				return Stop
			}
			return Continue
		})
	}
}

// Language returns every accepted word in lexicographic order.
func (a *Automaton) Language() []string {
	words := make([]string, 0, a.NumWords())
	for word := range a.Words() {
		words = append(words, word)
	}
	return words
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
