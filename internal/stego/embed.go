package stego

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/idelchi/stegecrypt/internal/errdefs"
	"github.com/idelchi/stegecrypt/pkg/bitstream"
)

// Embed hides payload in a copy of carrier and returns the copy.
// The capacity check runs before any pixel is written; on failure the
// carrier is left exactly as it was.
func Embed(carrier image.Image, payload []byte, opts ...Option) (*image.NRGBA, error) {
	o := newOptions(opts)

	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds the 32-bit length header",
			errdefs.ErrCapacity, len(payload))
	}

	capacity := Capacity(carrier)
	needed := RequiredBits(len(payload))

	if needed > uint64(capacity) { //nolint:gosec // capacity is non-negative
		return nil, fmt.Errorf("%w: image too small: needs %d bits but only has %d available",
			errdefs.ErrCapacity, needed, capacity)
	}

	stream := make([]byte, LengthPrefixBits/8+len(payload))
	binary.BigEndian.PutUint32(stream, uint32(len(payload))) //nolint:gosec // bounded above
	copy(stream[LengthPrefixBits/8:], payload)

	out := ToNRGBA(carrier)
	bits := bitstream.NewReader(stream)
	total := bits.Len()

	for slot := 0; ; slot++ {
		bit, ok := bits.ReadBit()
		if !ok {
			break
		}

		off := slotOffset(out, slot)
		out.Pix[off] = bitstream.SetLSB(out.Pix[off], bit)

		o.tick(slot+1, total)
	}

	return out, nil
}
