package dawg

import (
	"fmt"
	"io"
)

// bitWriter packs values of arbitrary bit width, most significant bit
// first. The first write error sticks and is returned by later calls.
type bitWriter struct {
	io.Writer
	cache   uint8
	used    int
	written int64
	err     error
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{Writer: w}
}

func (w *bitWriter) WriteBits(data uint64, n int) error {
	for n > 0 && w.err == nil {
		chunk := n
		if chunk+w.used > 8 {
			chunk = 8 - w.used
		}

		mask := uint8(uint16(1<<chunk) - 1)
		w.used += chunk
		w.cache = (w.cache << chunk) | byte(data>>(n-chunk))&mask

		if w.used == 8 {
			w.emit(w.cache)
			w.used = 0
			w.cache = 0
		}

		n -= chunk
	}
	return w.err
}

func (w *bitWriter) emit(b byte) {
	nw, err := w.Write([]byte{b})
	w.written += int64(nw)
	if err != nil {
		w.err = err
	}
}

// Flush pads the last partial byte with zeros and writes it.
func (w *bitWriter) Flush() error {
	if w.used > 0 && w.err == nil {
		w.emit(w.cache << (8 - w.used))
		w.used = 0
		w.cache = 0
	}
	return w.err
}

var maskTop = []byte{
	0xff,
	0x7f,
	0x3f,
	0x1f,
	0x0f,
	0x07,
	0x03,
	0x01,
	0x00,
}

// bitSeeker reads bits from a given offset in bits. Reading past the end
// of the data records an error and yields zeros from then on.
type bitSeeker struct {
	io.ReaderAt
	p      int64
	buffer []byte
	err    error
}

func newBitSeeker(r io.ReaderAt) *bitSeeker {
	return &bitSeeker{ReaderAt: r, buffer: make([]byte, 1)}
}

func (r *bitSeeker) nextByte() byte {
	if r.err != nil {
		return 0
	}
	n, err := r.ReadAt(r.buffer, r.p>>3)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		r.err = fmt.Errorf("%w: read at bit %d: %v", ErrMalformed, r.p, err)
		return 0
	}
	return r.buffer[0]
}

func (r *bitSeeker) ReadBits(n int64) uint64 {
	if n == 0 {
		return 0
	}

	if r.p&7+n <= 8 {
		ret := uint64((r.nextByte() & maskTop[r.p&7]) >> (8 - r.p&7 - n))
		r.p += n
		return ret
	}

	// the bits span more than one byte
	result := uint64(r.nextByte() & maskTop[r.p&7])

	l := 8 - r.p&7
	r.p += l
	n -= l

	for n >= 8 {
		result = (result << 8) | uint64(r.nextByte())
		r.p += 8
		n -= 8
	}

	if n > 0 {
		result = (result << n) | uint64(r.nextByte()>>(8-n))
		r.p += n
	}

	return result
}

func (r *bitSeeker) Tell() int64 {
	return r.p
}

// 7code: groups of seven bits, most significant first, high bit set on
// every byte but the last.
func writeUnsigned(w *bitWriter, n uint64) {
	var groups [10]byte
	i := len(groups)
	for {
		i--
		groups[i] = byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			break
		}
	}
	for ; i < len(groups)-1; i++ {
		w.WriteBits(uint64(groups[i]|0x80), 8)
	}
	w.WriteBits(uint64(groups[len(groups)-1]), 8)
}

func readUnsigned(r *bitSeeker) uint64 {
	var result uint64
	for i := 0; i < 10; i++ {
		d := r.ReadBits(8)
		if result>>57 != 0 {
			if r.err == nil {
				r.err = fmt.Errorf("%w: varint overflows 64 bits at bit %d", ErrMalformed, r.p)
			}
			return 0
		}
		result = (result << 7) | d&0x7f
		if d&0x80 == 0 {
			return result
		}
	}
	if r.err == nil {
		r.err = fmt.Errorf("%w: varint too long at bit %d", ErrMalformed, r.p)
	}
	return 0
}

func unsignedLength(n uint64) uint64 {
	length := uint64(1)
	for n >>= 7; n > 0; n >>= 7 {
		length++
	}
	return length
}
