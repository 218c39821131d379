package dawg

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// PersistedState is one state of the persisted form.
type PersistedState struct {
	ID      int  `json:"id" yaml:"id"`
	IsFinal bool `json:"is_final" yaml:"is_final"`
}

// PersistedTransition is one edge of the persisted form. Symbol holds
// exactly one character.
type PersistedTransition struct {
	FromID int    `json:"from_id" yaml:"from_id"`
	Symbol string `json:"symbol" yaml:"symbol"`
	ToID   int    `json:"to_id" yaml:"to_id"`
}

// Persisted is the serializable form of an automaton.
type Persisted struct {
	States      []PersistedState      `json:"states" yaml:"states"`
	Transitions []PersistedTransition `json:"transitions" yaml:"transitions"`
	StartID     int                   `json:"start_id" yaml:"start_id"`
}

// Export returns the persisted form of the automaton.
func (a *Automaton) Export() *Persisted {
	p := &Persisted{
		States:      make([]PersistedState, len(a.states)),
		Transitions: make([]PersistedTransition, 0, a.NumEdges()),
		StartID:     int(a.start),
	}
	for i := range a.states {
		p.States[i] = PersistedState{ID: i, IsFinal: a.states[i].final}
		for _, e := range a.states[i].edges {
			p.Transitions = append(p.Transitions, PersistedTransition{
				FromID: i,
				Symbol: string(e.Symbol),
				ToID:   int(e.Target),
			})
		}
	}
	return p
}

// Import rebuilds an automaton from its persisted form. Ids may be any
// distinct integers; they are relabelled in the order the states are
// listed. States unreachable from the start are dropped. The result must
// be deterministic and acyclic, otherwise an error wrapping ErrMalformed
// is returned.
func Import(p *Persisted) (*Automaton, error) {
	if p == nil || len(p.States) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrMalformed)
	}

	index := make(map[int]StateID, len(p.States))
	states := make([]state, len(p.States))
	for i, ps := range p.States {
		if _, dup := index[ps.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate state id %d", ErrMalformed, ps.ID)
		}
		index[ps.ID] = StateID(i)
		states[i].final = ps.IsFinal
	}

	start, ok := index[p.StartID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown start state %d", ErrMalformed, p.StartID)
	}

	for _, t := range p.Transitions {
		from, ok := index[t.FromID]
		if !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %d", ErrMalformed, t.FromID)
		}
		to, ok := index[t.ToID]
		if !ok {
			return nil, fmt.Errorf("%w: transition to unknown state %d", ErrMalformed, t.ToID)
		}
		ch, size := utf8.DecodeRuneInString(t.Symbol)
		if size == 0 || size != len(t.Symbol) || (ch == utf8.RuneError && size == 1) {
			return nil, fmt.Errorf("%w: symbol %q is not a single character", ErrMalformed, t.Symbol)
		}
		for _, e := range states[from].edges {
			if e.Symbol == ch {
				return nil, fmt.Errorf("%w: state %d has two transitions on %q", ErrMalformed, t.FromID, t.Symbol)
			}
		}
		states[from].edges = append(states[from].edges, Edge{Symbol: ch, Target: to})
	}

	for i := range states {
		slices.SortFunc(states[i].edges, func(x, y Edge) int {
			return cmp.Compare(x.Symbol, y.Symbol)
		})
	}

	if err := checkAcyclic(states, start); err != nil {
		return nil, err
	}

	compacted, start := (&arena{states: states}).compact(start)
	return newAutomaton(compacted, start, registerSize(compacted, start)), nil
}

// checkAcyclic fails if any cycle is reachable from start.
func checkAcyclic(states []state, start StateID) error {
	const (
		white = iota
		grey
		black
	)
	type frame struct {
		id   StateID
		edge int
	}

	color := make([]uint8, len(states))
	color[start] = grey
	stack := []frame{{id: start}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := states[top.id].edges
		if top.edge == len(edges) {
			color[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		target := edges[top.edge].Target
		top.edge++
		switch color[target] {
		case grey:
			return fmt.Errorf("%w: cycle through state %d", ErrMalformed, target)
		case white:
			color[target] = grey
			stack = append(stack, frame{id: target})
		}
	}
	return nil
}

// EncodeJSON writes the persisted form of a as JSON.
func (a *Automaton) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a.Export())
}

// DecodeJSON reads an automaton written by EncodeJSON.
func DecodeJSON(r io.Reader) (*Automaton, error) {
	var p Persisted
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Import(&p)
}

// EncodeYAML writes the persisted form of a as YAML.
func (a *Automaton) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a.Export()); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML reads an automaton written by EncodeYAML.
func DecodeYAML(r io.Reader) (*Automaton, error) {
	var p Persisted
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Import(&p)
}
