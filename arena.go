package dawg

import (
	"github.com/bits-and-blooms/bitset"
)

// StateID identifies a state by its position in the arena.
type StateID int

// Edge is a labelled transition to another state.
type Edge struct {
	Symbol rune
	Target StateID
}

type state struct {
	final bool
	edges []Edge
}

// arena owns every state. Ids are handed out in creation order and are
// never reused; a discarded state keeps its slot until compact.
type arena struct {
	states    []state
	discarded *bitset.BitSet
}

func newArena() *arena {
	return &arena{
		states:    make([]state, 0, 64),
		discarded: bitset.New(64),
	}
}

func (a *arena) newState() StateID {
	a.states = append(a.states, state{})
	return StateID(len(a.states) - 1)
}

func (a *arena) get(id StateID) *state {
	return &a.states[id]
}

// next returns the target of the edge labelled ch, if any.
func (a *arena) next(id StateID, ch rune) (StateID, bool) {
	for _, e := range a.states[id].edges {
		if e.Symbol == ch {
			return e.Target, true
		}
	}
	return 0, false
}

func (a *arena) addEdge(from StateID, ch rune, to StateID) {
	s := &a.states[from]
	s.edges = append(s.edges, Edge{Symbol: ch, Target: to})
}

// lastEdge returns a pointer to the most recently added edge of id.
func (a *arena) lastEdge(id StateID) *Edge {
	edges := a.states[id].edges
	if len(edges) == 0 {
		return nil
	}
	return &edges[len(edges)-1]
}

// discard drops the transitions of a merged-away state and remembers that
// it is no longer part of the automaton.
func (a *arena) discard(id StateID) {
	a.states[id].edges = nil
	a.discarded.Set(uint(id))
}

// compact drops every state not reachable from start and renumbers the
// survivors, keeping their relative creation order. It returns the new
// states and the new id of start.
func (a *arena) compact(start StateID) ([]state, StateID) {
	reachable := bitset.New(uint(len(a.states)))
	stack := []StateID{start}
	reachable.Set(uint(start))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range a.states[id].edges {
			if !reachable.Test(uint(e.Target)) {
				reachable.Set(uint(e.Target))
				stack = append(stack, e.Target)
			}
		}
	}

	remap := make([]StateID, len(a.states))
	out := make([]state, 0, reachable.Count())
	for i, ok := reachable.NextSet(0); ok; i, ok = reachable.NextSet(i + 1) {
		remap[i] = StateID(len(out))
		out = append(out, a.states[i])
	}

	for i := range out {
		edges := make([]Edge, len(out[i].edges))
		for j, e := range out[i].edges {
			edges[j] = Edge{Symbol: e.Symbol, Target: remap[e.Target]}
		}
		out[i].edges = edges
	}

	return out, remap[start]
}
