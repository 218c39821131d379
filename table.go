package dawg

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Transition is one (from, symbol, to) triple of the transition relation.
type Transition struct {
	From   StateID
	Symbol rune
	To     StateID
}

func (t Transition) String() string {
	return fmt.Sprintf("(%d, '%c', %d)", t.From, t.Symbol, t.To)
}

// Snapshot is a read-only copy of the automaton's structure, for
// renderers and other consumers that should not depend on the arena.
type Snapshot struct {
	Start       StateID
	States      []StateID
	Final       []StateID
	Transitions []Transition
}

// Transitions returns the transition relation ordered by source state and
// then by edge order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, a.NumEdges())
	for i := range a.states {
		for _, e := range a.states[i].edges {
			out = append(out, Transition{From: StateID(i), Symbol: e.Symbol, To: e.Target})
		}
	}
	return out
}

// AcceptStates returns the set of accepting states as a bitset indexed
// by StateID.
func (a *Automaton) AcceptStates() *bitset.BitSet {
	accept := bitset.New(uint(len(a.states)))
	for i := range a.states {
		if a.states[i].final {
			accept.Set(uint(i))
		}
	}
	return accept
}

// FinalStates returns the accepting states in ascending order.
func (a *Automaton) FinalStates() []StateID {
	accept := a.AcceptStates()
	out := make([]StateID, 0, accept.Count())
	for i, ok := accept.NextSet(0); ok; i, ok = accept.NextSet(i + 1) {
		out = append(out, StateID(i))
	}
	return out
}

// ReachableStates returns every state reachable from the start state in
// ascending order. For a finished automaton that is all of them.
func (a *Automaton) ReachableStates() []StateID {
	seen := bitset.New(uint(len(a.states)))
	seen.Set(uint(a.start))
	stack := []StateID{a.start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range a.states[id].edges {
			if !seen.Test(uint(e.Target)) {
				seen.Set(uint(e.Target))
				stack = append(stack, e.Target)
			}
		}
	}

	out := make([]StateID, 0, seen.Count())
	for i, ok := seen.NextSet(0); ok; i, ok = seen.NextSet(i + 1) {
		out = append(out, StateID(i))
	}
	return out
}

// Snapshot returns the diagram export view of the automaton.
func (a *Automaton) Snapshot() Snapshot {
	return Snapshot{
		Start:       a.start,
		States:      a.ReachableStates(),
		Final:       a.FinalStates(),
		Transitions: a.Transitions(),
	}
}
