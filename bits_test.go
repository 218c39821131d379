package dawg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriter(t *testing.T) {
	// write 101010 = 0x2a
	// write 010101 = 0x15
	// result: 10101001 01010000 = 0xa9 0x50
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	require.NoError(t, bw.WriteBits(0x2a, 6))
	require.NoError(t, bw.WriteBits(0x15, 6))
	require.NoError(t, bw.Flush())

	assert.Equal(t, []byte{0xa9, 0x50}, buffer.Bytes())
	assert.Equal(t, int64(2), bw.written)
}

func TestBitReader(t *testing.T) {
	// 10101001 01010000 = 0xa9 0x50
	br := newBitSeeker(bytes.NewReader([]byte{0xa9, 0x50}))

	assert.Equal(t, uint64(0x2a), br.ReadBits(6))
	assert.Equal(t, uint64(0x15), br.ReadBits(6))
	assert.Equal(t, uint64(0x00), br.ReadBits(2))

	assert.NoError(t, br.err)

	br = newBitSeeker(bytes.NewReader([]byte{0xa9, 0x50}))
	assert.Equal(t, uint64(0xa950), br.ReadBits(16))

	// 1 then 0010 1001 0101 0000 = 0x2950
	br = newBitSeeker(bytes.NewReader([]byte{0xa9, 0x50}))
	assert.Equal(t, uint64(1), br.ReadBits(1))
	assert.Equal(t, uint64(0x2950), br.ReadBits(15))
	assert.Equal(t, int64(16), br.Tell())
	assert.NoError(t, br.err)
}

func TestBitReaderPastEnd(t *testing.T) {
	br := newBitSeeker(bytes.NewReader([]byte{0xff}))
	assert.Equal(t, uint64(0xff), br.ReadBits(8))
	assert.Equal(t, uint64(0), br.ReadBits(8))
	assert.True(t, errors.Is(br.err, ErrMalformed))
}

func TestBitReaderWriter(t *testing.T) {
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)

	for i := 0; i < 100000; i++ {
		bits := i % 31
		data := i & ((1 << bits) - 1)
		bw.WriteBits(uint64(data), bits)
	}
	require.NoError(t, bw.Flush())

	br := newBitSeeker(bytes.NewReader(buffer.Bytes()))
	for i := 0; i < 100000; i++ {
		bits := i % 31
		data := i & ((1 << bits) - 1)

		dataRead := br.ReadBits(int64(bits))
		if int(dataRead) != data {
			t.Fatalf("Fail: %d Expected 0x%x, read 0x%x", bits, data, dataRead)
		}
	}
}

func TestUnsigned(t *testing.T) {
	values := []uint64{0, 1, 0x7e, 0x7f, 0x80, 0x3fff, 0x4000, 1 << 35, 1<<64 - 1}

	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	var total uint64
	for _, v := range values {
		writeUnsigned(bw, v)
		total += unsignedLength(v)
	}
	require.NoError(t, bw.Flush())
	assert.Equal(t, int(total), buffer.Len())

	br := newBitSeeker(bytes.NewReader(buffer.Bytes()))
	for _, v := range values {
		assert.Equal(t, v, readUnsigned(br))
	}
	assert.NoError(t, br.err)
}

func TestUnsignedOverflow(t *testing.T) {
	// ten groups whose leading group carries more than one bit
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	br := newBitSeeker(bytes.NewReader(data))
	assert.Equal(t, uint64(0), readUnsigned(br))
	assert.ErrorIs(t, br.err, ErrMalformed)

	// the largest value still fits
	data = []byte{0x81, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	br = newBitSeeker(bytes.NewReader(data))
	assert.Equal(t, uint64(1<<64-1), readUnsigned(br))
	assert.NoError(t, br.err)
}
