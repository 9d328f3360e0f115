// Package bitstream reads and writes byte buffers one bit at a time,
// most significant bit first within each byte.
package bitstream

// Reader yields the bits of a byte slice in MSB-first order.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader over data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total number of bits in the stream.
func (r *Reader) Len() int {
	return len(r.data) * 8
}

// ReadBit returns the next bit (0 or 1) and false once the stream is exhausted.
func (r *Reader) ReadBit() (byte, bool) {
	if r.pos >= r.Len() {
		return 0, false
	}

	bit := (r.data[r.pos/8] >> (7 - uint(r.pos%8))) & 1 //nolint:gosec // pos%8 is in [0,7]
	r.pos++

	return bit, true
}

// Writer assembles bits into bytes in MSB-first order.
type Writer struct {
	data []byte
	pos  int
}

// NewWriter returns a Writer with room for n bytes.
func NewWriter(n int) *Writer {
	return &Writer{data: make([]byte, n)}
}

// WriteBit appends the low bit of b. Bits past the end of the buffer are
// dropped.
func (w *Writer) WriteBit(b byte) {
	if w.pos >= len(w.data)*8 {
		return
	}

	if b&1 == 1 {
		w.data[w.pos/8] |= 1 << (7 - uint(w.pos%8)) //nolint:gosec // pos%8 is in [0,7]
	}

	w.pos++
}

// Bytes returns the assembled buffer.
func (w *Writer) Bytes() []byte {
	return w.data
}

// LSB returns the least significant bit of v.
func LSB(v byte) byte {
	return v & 1
}

// SetLSB replaces the least significant bit of v with the low bit of bit,
// leaving the seven higher bits untouched.
func SetLSB(v, bit byte) byte {
	return (v &^ 1) | (bit & 1)
}
