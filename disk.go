package dawg

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"unicode/utf8"

	"golang.org/x/exp/mmap"
)

/* FILE FORMAT
- 32 bits: total size of file in bytes
- 8 bits: cbits, the number of bits per character
- 8 bits: abits, the number of bits per state number
- 7code: number of words
- 7code: number of states
- 7code: number of edges
- abits: start state
- for each state, in order:
	- 1 bit: is state final?
	- 1 bit: single edge?
	- if !single edge:
		7code: number of edges
	- for each edge:
		cbits: character
		abits: target state

We define 7code to be an unsigned that can be read the following way:

result = 0
for {
	data = next 8 bits
	result = result << 7 | data & 0x7f
	if data & 0x80 == 0 break
}
*/

const headerBits = 32 + 8 + 8

func (a *Automaton) widths() (cbits, abits uint64) {
	var maxChar rune
	for i := range a.states {
		for _, e := range a.states[i].edges {
			if e.Symbol > maxChar {
				maxChar = e.Symbol
			}
		}
	}
	cbits = uint64(max(bits.Len(uint(maxChar)), 1))
	abits = uint64(max(bits.Len(uint(len(a.states)-1)), 1))
	return cbits, abits
}

// encodedBits returns the length of the encoding in bits.
func (a *Automaton) encodedBits(cbits, abits uint64) uint64 {
	pos := uint64(headerBits)
	pos += unsignedLength(uint64(a.NumWords())) * 8
	pos += unsignedLength(uint64(a.NumStates())) * 8
	pos += unsignedLength(uint64(a.NumEdges())) * 8
	pos += abits

	for i := range a.states {
		numEdges := uint64(len(a.states[i].edges))
		pos += 2
		if numEdges != 1 {
			pos += unsignedLength(numEdges) * 8
		}
		pos += numEdges * (cbits + abits)
	}
	return pos
}

// WriteTo writes the compact binary form of the automaton to w. It
// returns the number of bytes written.
func (a *Automaton) WriteTo(w io.Writer) (int64, error) {
	cbits, abits := a.widths()
	size := (a.encodedBits(cbits, abits) + 7) / 8
	if size > 1<<32-1 {
		return 0, fmt.Errorf("dawg: encoding of %d bytes does not fit the format", size)
	}

	bw := newBitWriter(w)
	bw.WriteBits(size, 32)
	bw.WriteBits(cbits, 8)
	bw.WriteBits(abits, 8)

	writeUnsigned(bw, uint64(a.NumWords()))
	writeUnsigned(bw, uint64(a.NumStates()))
	writeUnsigned(bw, uint64(a.NumEdges()))
	bw.WriteBits(uint64(a.start), int(abits))

	for i := range a.states {
		s := &a.states[i]
		if s.final {
			bw.WriteBits(1, 1)
		} else {
			bw.WriteBits(0, 1)
		}

		if len(s.edges) == 1 {
			bw.WriteBits(1, 1)
		} else {
			bw.WriteBits(0, 1)
			writeUnsigned(bw, uint64(len(s.edges)))
		}

		for _, e := range s.edges {
			bw.WriteBits(uint64(e.Symbol), int(cbits))
			bw.WriteBits(uint64(e.Target), int(abits))
		}
	}

	err := bw.Flush()
	return bw.written, err
}

// Save writes the automaton to disk. Returns the number of bytes written
func (a *Automaton) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}

	n, err := a.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Load reads an automaton from a file written by Save. The file is
// memory-mapped while it is decoded.
func Load(filename string) (*Automaton, error) {
	f, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Read decodes an automaton from the compact binary form.
func Read(f io.ReaderAt) (*Automaton, error) {
	r := newBitSeeker(f)

	size := r.ReadBits(32)
	cbits := int64(r.ReadBits(8))
	abits := int64(r.ReadBits(8))
	numWords := readUnsigned(r)
	numStates := readUnsigned(r)
	numEdges := readUnsigned(r)
	start := r.ReadBits(abits)
	if r.err != nil {
		return nil, r.err
	}

	pos := uint64(r.Tell())
	if size*8 < pos {
		return nil, fmt.Errorf("%w: size %d is shorter than the header", ErrMalformed, size)
	}
	if n, err := f.ReadAt(make([]byte, 1), int64(size)-1); n == 0 {
		return nil, fmt.Errorf("%w: size %d is past the end of the data: %v", ErrMalformed, size, err)
	}

	// every state takes at least two bits and every edge cbits+abits
	remaining := size*8 - pos
	switch {
	case cbits == 0 || cbits > 32 || abits == 0 || abits > 63:
		return nil, fmt.Errorf("%w: bad field widths c=%d a=%d", ErrMalformed, cbits, abits)
	case numStates == 0 || numStates > remaining/2:
		return nil, fmt.Errorf("%w: bad state count %d", ErrMalformed, numStates)
	case numEdges > remaining/uint64(cbits+abits):
		return nil, fmt.Errorf("%w: bad edge count %d", ErrMalformed, numEdges)
	case start >= numStates:
		return nil, fmt.Errorf("%w: start state %d out of range", ErrMalformed, start)
	}

	states := make([]state, numStates)
	var seenEdges uint64
	for i := range states {
		states[i].final = r.ReadBits(1) == 1
		n := uint64(1)
		if r.ReadBits(1) != 1 {
			n = readUnsigned(r)
		}
		if r.err != nil {
			return nil, r.err
		}
		seenEdges += n
		if seenEdges > numEdges {
			return nil, fmt.Errorf("%w: more than %d edges", ErrMalformed, numEdges)
		}

		states[i].edges = make([]Edge, 0, n)
		for j := uint64(0); j < n; j++ {
			ch := rune(r.ReadBits(cbits))
			target := r.ReadBits(abits)
			if !utf8.ValidRune(ch) {
				return nil, fmt.Errorf("%w: state %d has edge on invalid symbol %#x", ErrMalformed, i, int64(ch))
			}
			if target >= numStates {
				return nil, fmt.Errorf("%w: state %d has edge to unknown state %d", ErrMalformed, i, target)
			}
			if j > 0 && ch <= states[i].edges[j-1].Symbol {
				return nil, fmt.Errorf("%w: state %d edges not in order", ErrMalformed, i)
			}
			states[i].edges = append(states[i].edges, Edge{Symbol: ch, Target: StateID(target)})
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	if seenEdges != numEdges {
		return nil, fmt.Errorf("%w: read %d edges, header says %d", ErrMalformed, seenEdges, numEdges)
	}

	if err := checkAcyclic(states, StateID(start)); err != nil {
		return nil, err
	}

	compacted, root := (&arena{states: states}).compact(StateID(start))
	a := newAutomaton(compacted, root, registerSize(compacted, root))
	if uint64(a.NumWords()) != numWords {
		return nil, fmt.Errorf("%w: %d words decoded, header says %d", ErrMalformed, a.NumWords(), numWords)
	}
	return a, nil
}

// DumpFile prints out the file structure for debugging.
func DumpFile(f io.ReaderAt, out io.Writer) error {
	r := newBitSeeker(f)
	size := r.ReadBits(32)
	fmt.Fprintf(out, "[%08x] Size=%v bytes\n", r.Tell()-32, size)

	cbits := r.ReadBits(8)
	fmt.Fprintf(out, "[%08x] cbits=%d\n", r.Tell()-8, cbits)

	abits := r.ReadBits(8)
	fmt.Fprintf(out, "[%08x] abits=%d\n", r.Tell()-8, abits)

	at := r.Tell()
	wordCount := readUnsigned(r)
	fmt.Fprintf(out, "[%08x] WordCount=%v\n", at, wordCount)

	at = r.Tell()
	stateCount := readUnsigned(r)
	fmt.Fprintf(out, "[%08x] StateCount=%v\n", at, stateCount)

	at = r.Tell()
	edgeCount := readUnsigned(r)
	fmt.Fprintf(out, "[%08x] EdgeCount=%v\n", at, edgeCount)

	at = r.Tell()
	start := r.ReadBits(int64(abits))
	fmt.Fprintf(out, "[%08x] Start=%d\n", at, start)

	for i := uint64(0); i < stateCount && r.err == nil; i++ {
		at = r.Tell()
		final := r.ReadBits(1)
		edges := uint64(1)
		if r.ReadBits(1) != 1 {
			edges = readUnsigned(r)
		}
		fmt.Fprintf(out, "[%08x] State %d final=%d has %d edges\n", at, i, final, edges)

		for j := uint64(0); j < edges && r.err == nil; j++ {
			at = r.Tell()
			ch := r.ReadBits(int64(cbits))
			target := r.ReadBits(int64(abits))
			fmt.Fprintf(out, "[%08x] '%c' goto %d\n", at, rune(ch), target)
		}
	}

	return r.err
}
