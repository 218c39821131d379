package dawg

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type header struct {
	size                 uint64 // 0 means the real length
	cbits, abits         int
	words, states, edges uint64
	start                uint64
}

// encodeRaw writes a header followed by whatever body writes, with no
// checks, so that corrupt files can be built by hand.
func encodeRaw(t *testing.T, h header, body func(w *bitWriter)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := newBitWriter(&buf)
	w.WriteBits(h.size, 32)
	w.WriteBits(uint64(h.cbits), 8)
	w.WriteBits(uint64(h.abits), 8)
	writeUnsigned(w, h.words)
	writeUnsigned(w, h.states)
	writeUnsigned(w, h.edges)
	w.WriteBits(h.start, h.abits)
	if body != nil {
		body(w)
	}
	require.NoError(t, w.Flush())

	data := buf.Bytes()
	if h.size == 0 {
		binary.BigEndian.PutUint32(data, uint32(len(data)))
	}
	return data
}

// oneEdge is the body of a two state automaton accepting the word ch.
func oneEdge(ch rune) func(w *bitWriter) {
	return func(w *bitWriter) {
		w.WriteBits(0, 1)
		w.WriteBits(1, 1)
		w.WriteBits(uint64(ch), 16)
		w.WriteBits(1, 1)

		w.WriteBits(1, 1)
		w.WriteBits(0, 1)
		writeUnsigned(w, 0)
	}
}

func TestReadHandEncoded(t *testing.T) {
	data := encodeRaw(t, header{cbits: 16, abits: 1, words: 1, states: 2, edges: 1}, oneEdge('a'))

	a, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, a.Language())
	assert.Equal(t, 1, a.RegisterSize())
}

func TestReadInflatedHeader(t *testing.T) {
	tests := []struct {
		name string
		h    header
		body func(w *bitWriter)
	}{
		{
			name: "size past the end of the data",
			h:    header{size: 1<<32 - 1, cbits: 8, abits: 32, states: 1 << 24},
		},
		{
			name: "more states than bits",
			h:    header{cbits: 8, abits: 32, states: 1 << 24},
		},
		{
			name: "more edges than bits",
			h:    header{cbits: 8, abits: 32, states: 1, edges: 1 << 30},
			body: func(w *bitWriter) { w.WriteBits(0, 16) },
		},
		{
			name: "size shorter than the header",
			h:    header{size: 2, cbits: 8, abits: 8, states: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(encodeRaw(t, tt.h, tt.body)))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadInvalidSymbol(t *testing.T) {
	data := encodeRaw(t, header{cbits: 16, abits: 1, words: 1, states: 2, edges: 1}, oneEdge(0xd800))

	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrMalformed)
}
