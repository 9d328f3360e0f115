package stego

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/idelchi/stegecrypt/internal/errdefs"
	"github.com/idelchi/stegecrypt/pkg/bitstream"
)

// Extract recovers a payload hidden by Embed.
// The payload is not checked for meaning; a container payload is verified
// later by the container codec and the encryption engine.
func Extract(stego image.Image, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	img, ok := stego.(*image.NRGBA)
	if !ok {
		img = ToNRGBA(stego)
	}

	capacity := Capacity(img)
	if capacity < LengthPrefixBits {
		return nil, fmt.Errorf("%w: image has %d slots, too few for a length header",
			errdefs.ErrFormat, capacity)
	}

	header := readBits(img, 0, LengthPrefixBits/8)
	n := binary.BigEndian.Uint32(header)

	needed := uint64(LengthPrefixBits) + uint64(n)*8
	if needed > uint64(capacity) { //nolint:gosec // capacity is non-negative
		return nil, fmt.Errorf("%w: embedded length %d needs %d bits but the image has %d; not a stego image or recompressed",
			errdefs.ErrFormat, n, needed, capacity)
	}

	total := int(needed) //nolint:gosec // bounded by capacity
	w := bitstream.NewWriter(int(n))

	o.tick(LengthPrefixBits, total)

	for slot := LengthPrefixBits; slot < total; slot++ {
		w.WriteBit(bitstream.LSB(img.Pix[slotOffset(img, slot)]))

		o.tick(slot+1, total)
	}

	return w.Bytes(), nil
}

// readBits collects n bytes from the LSBs starting at slot start.
func readBits(img *image.NRGBA, start, n int) []byte {
	w := bitstream.NewWriter(n)

	for slot := start; slot < start+n*8; slot++ {
		w.WriteBit(bitstream.LSB(img.Pix[slotOffset(img, slot)]))
	}

	return w.Bytes()
}
