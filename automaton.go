package dawg

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Automaton is a finished minimal deterministic acyclic automaton. It is
// immutable, so any number of goroutines may query it at once.
//
// States are numbered 0..NumStates()-1 and every state is reachable from
// Start().
type Automaton struct {
	states []state
	start  StateID

	// counts[s] is the number of words accepted starting from s
	counts []int

	registered int
}

func newAutomaton(states []state, start StateID, registered int) *Automaton {
	a := &Automaton{
		states:     states,
		start:      start,
		registered: registered,
	}
	a.counts = a.countWords()
	return a
}

// countWords fills in, for every state, how many accepting paths leave
// it. Children are counted before their parents.
func (a *Automaton) countWords() []int {
	type frame struct {
		id   StateID
		edge int
	}

	counts := make([]int, len(a.states))
	if len(a.states) == 0 {
		return counts
	}

	visited := bitset.New(uint(len(a.states)))
	visited.Set(uint(a.start))
	stack := []frame{{id: a.start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := a.states[top.id].edges
		if top.edge < len(edges) {
			target := edges[top.edge].Target
			top.edge++
			if !visited.Test(uint(target)) {
				visited.Set(uint(target))
				stack = append(stack, frame{id: target})
			}
			continue
		}

		n := 0
		if a.states[top.id].final {
			n++
		}
		for _, e := range edges {
			n += counts[e.Target]
		}
		counts[top.id] = n
		stack = stack[:len(stack)-1]
	}

	return counts
}

// Start returns the initial state.
func (a *Automaton) Start() StateID {
	return a.start
}

// IsFinal reports whether id is an accepting state.
func (a *Automaton) IsFinal(id StateID) bool {
	return a.states[id].final
}

// Edges returns a copy of the outgoing transitions of id in their fixed
// iteration order.
func (a *Automaton) Edges(id StateID) []Edge {
	return slices.Clone(a.states[id].edges)
}

// NumWords returns the number of words in the language.
func (a *Automaton) NumWords() int {
	if len(a.counts) == 0 {
		return 0
	}
	return a.counts[a.start]
}

// NumStates returns the number of states in the automaton.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumEdges returns the number of transitions in the automaton.
func (a *Automaton) NumEdges() int {
	n := 0
	for i := range a.states {
		n += len(a.states[i].edges)
	}
	return n
}

// RegisterSize returns how many canonical states the register held when
// construction finished. For a loaded automaton it is recomputed from the
// states, which gives NumStates()-1 when the automaton is minimal.
func (a *Automaton) RegisterSize() int {
	return a.registered
}

// Alphabet returns the sorted set of symbols used as edge labels.
func (a *Automaton) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for i := range a.states {
		for _, e := range a.states[i].edges {
			seen[e.Symbol] = struct{}{}
		}
	}
	alphabet := make([]rune, 0, len(seen))
	for ch := range seen {
		alphabet = append(alphabet, ch)
	}
	slices.Sort(alphabet)
	return alphabet
}

func (a *Automaton) next(id StateID, ch rune) (StateID, bool) {
	for _, e := range a.states[id].edges {
		if e.Symbol == ch {
			return e.Target, true
		}
	}
	return 0, false
}
