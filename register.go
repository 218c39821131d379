package dawg

import (
	"strconv"
	"strings"
)

// register holds the canonical states seen so far, keyed by signature.
// A registered state never changes again.
type register struct {
	states map[string]StateID
}

func newRegister() *register {
	return &register{states: make(map[string]StateID)}
}

// signature encodes finality followed by every (symbol, target) pair in
// edge order. Two states with equal signatures accept the same suffixes,
// provided their targets are already canonical.
func signature(s *state) string {
	var buff strings.Builder
	if s.final {
		buff.WriteByte('!')
	} else {
		buff.WriteByte('.')
	}
	for _, edge := range s.edges {
		buff.WriteByte('_')
		buff.WriteString(strconv.Itoa(int(edge.Symbol)))
		buff.WriteByte(':')
		buff.WriteString(strconv.Itoa(int(edge.Target)))
	}
	return buff.String()
}

func (r *register) lookup(sig string) (StateID, bool) {
	id, ok := r.states[sig]
	return id, ok
}

func (r *register) insert(sig string, id StateID) {
	r.states[sig] = id
}

func (r *register) len() int {
	return len(r.states)
}

// registerSize counts the distinct signatures among the states other than
// start, which is what the register holds once construction of a minimal
// automaton has finished.
func registerSize(states []state, start StateID) int {
	r := newRegister()
	for i := range states {
		if StateID(i) == start {
			continue
		}
		r.insert(signature(&states[i]), StateID(i))
	}
	return r.len()
}
