package dawg

import (
	"fmt"
	"unicode/utf8"
)

// Builder creates a minimal automaton from words added in strictly
// increasing order. Because the input is sorted, a branch that the next
// word diverges from is never touched again and can be minimized right
// away, so construction is a single pass.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	arena    *arena
	register *register
	start    StateID

	lastWord string
	numAdded int

	// scratch stack reused by replaceOrRegister
	chain []StateID

	err      error
	finished bool
	result   *Automaton
}

// New creates a new, empty Builder.
func New() *Builder {
	a := newArena()
	return &Builder{
		arena:    a,
		register: newRegister(),
		start:    a.newState(),
	}
}

// Build adds every word in order and finishes the automaton. The words
// must already be sorted and free of duplicates; otherwise an error
// wrapping ErrOutOfOrder is returned and no automaton is produced.
func Build(words []string) (*Automaton, error) {
	b := New()
	for _, word := range words {
		if err := b.Add(word); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// CanAdd returns true if the word can be added to the Builder.
// Words must be added in alphabetical order.
func (b *Builder) CanAdd(word string) bool {
	return !b.finished && b.err == nil && utf8.ValidString(word) &&
		(b.numAdded == 0 || word > b.lastWord)
}

// Add adds a word to the structure. Words must sort strictly after the
// previous word. Once Add has failed the builder is unusable and Finish
// returns the same error.
func (b *Builder) Add(word string) error {
	if b.finished {
		return ErrFinished
	}
	if b.err != nil {
		return b.err
	}

	if !utf8.ValidString(word) {
		b.err = fmt.Errorf("%w: %q", ErrInvalidWord, word)
		return b.err
	}
	if b.numAdded > 0 {
		switch {
		case word == b.lastWord:
			b.err = fmt.Errorf("%w: %q", ErrDuplicate, word)
			return b.err
		case word < b.lastWord:
			b.err = fmt.Errorf("%w: %q after %q", ErrOutOfOrder, word, b.lastWord)
			return b.err
		}
	}

	// follow the longest prefix that already has a path
	lastState := b.start
	suffix := ""
	for i, ch := range word {
		next, ok := b.arena.next(lastState, ch)
		if !ok {
			suffix = word[i:]
			break
		}
		lastState = next
	}

	// the branch left by the previous word will never be visited again
	if len(b.arena.get(lastState).edges) > 0 {
		b.replaceOrRegister(lastState)
	}

	node := lastState
	for _, ch := range suffix {
		next := b.arena.newState()
		b.arena.addEdge(node, ch, next)
		node = next
	}
	b.arena.get(node).final = true

	b.lastWord = word
	b.numAdded++
	return nil
}

// replaceOrRegister minimizes the subtree below the most recent edge of
// parent, bottom up. Only the chain of most recent edges can still be
// unregistered; everything to the left of it was finished by earlier
// calls.
func (b *Builder) replaceOrRegister(parent StateID) {
	chain := b.chain[:0]
	for p := parent; ; {
		chain = append(chain, p)
		child := b.arena.lastEdge(p).Target
		if len(b.arena.get(child).edges) == 0 {
			break
		}
		p = child
	}

	for i := len(chain) - 1; i >= 0; i-- {
		edge := b.arena.lastEdge(chain[i])
		child := edge.Target
		sig := signature(b.arena.get(child))
		if canonical, ok := b.register.lookup(sig); ok {
			edge.Target = canonical
			b.arena.discard(child)
		} else {
			b.register.insert(sig, child)
		}
	}

	b.chain = chain[:0]
}

// Finish flushes the last pending branch and returns the finished
// automaton. Calling Finish again returns the same automaton. If any Add
// failed, Finish returns that error and nil.
func (b *Builder) Finish() (*Automaton, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.finished {
		return b.result, nil
	}
	b.finished = true

	if len(b.arena.get(b.start).edges) > 0 {
		b.replaceOrRegister(b.start)
	}

	states, start := b.arena.compact(b.start)
	b.result = newAutomaton(states, start, b.register.len())

	// no longer needed once the automaton is built
	b.arena = nil
	b.register = nil
	b.chain = nil

	return b.result, nil
}

// NumAdded returns the number of words added so far.
func (b *Builder) NumAdded() int {
	return b.numAdded
}
