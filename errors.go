package dawg

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfOrder is returned by Builder.Add when a word does not sort
	// strictly after the previously added word.
	ErrOutOfOrder = errors.New("dawg: words not in alphabetical order")

	// ErrDuplicate is returned by Builder.Add when a word equals the
	// previously added word. It wraps ErrOutOfOrder.
	ErrDuplicate = fmt.Errorf("%w: duplicate word", ErrOutOfOrder)

	// ErrInvalidWord is returned by Builder.Add for words that are not
	// valid UTF-8.
	ErrInvalidWord = errors.New("dawg: word is not valid UTF-8")

	// ErrFinished is returned when adding to a Builder after Finish.
	ErrFinished = errors.New("dawg: builder already finished")

	// ErrMalformed is returned when a persisted automaton can not be
	// decoded into a valid deterministic acyclic automaton.
	ErrMalformed = errors.New("dawg: malformed saved state")
)
