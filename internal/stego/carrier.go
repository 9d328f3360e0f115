package stego

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	// Lossless carrier formats accepted on input.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/idelchi/stegecrypt/internal/errdefs"
)

const (
	// ChannelsPerPixel is the number of slots each pixel contributes.
	ChannelsPerPixel = 3
	// LengthPrefixBits is the size of the embedded payload length header.
	LengthPrefixBits = 32
)

// losslessFormats are the image.Decode format names accepted as carriers.
var losslessFormats = map[string]bool{ //nolint:gochecknoglobals
	"png":  true,
	"bmp":  true,
	"tiff": true,
}

// Capacity returns the number of LSB slots in img.
func Capacity(img image.Image) int {
	b := img.Bounds()

	return b.Dx() * b.Dy() * ChannelsPerPixel
}

// MaxPayload returns the largest payload, in bytes, img can carry.
func MaxPayload(img image.Image) int {
	return max(0, (Capacity(img)-LengthPrefixBits)/8)
}

// RequiredBits returns the number of slots needed to embed n payload bytes.
func RequiredBits(n int) uint64 {
	return LengthPrefixBits + uint64(n)*8 //nolint:gosec // n is a slice length
}

// ToNRGBA returns a copy of img as 8-bit non-premultiplied RGBA anchored at
// the origin. Colour values of translucent pixels are preserved exactly when
// the source is already NRGBA.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4

		for y := range b.Dy() {
			srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], src.Pix[srcOff:srcOff+rowLen])
		}

		return out
	}

	for y := range b.Dy() {
		for x := range b.Dx() {
			c, _ := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.SetNRGBA(x, y, c)
		}
	}

	return out
}

// DecodeImage reads a carrier image and rejects lossy or unknown formats.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding carrier image: %w", errdefs.ErrFormat, err)
	}

	if !losslessFormats[format] {
		return nil, fmt.Errorf("%w: carrier format %q is not lossless", errdefs.ErrFormat, format)
	}

	return img, nil
}

// EncodePNG writes img losslessly. Stego output is always PNG; any lossy
// re-encoding would destroy the embedded bits.
func EncodePNG(w io.Writer, img image.Image) error {
	encoder := png.Encoder{CompressionLevel: png.DefaultCompression}

	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	return nil
}

// slotOffset returns the index into img.Pix of channel slot i.
func slotOffset(img *image.NRGBA, i int) int {
	pixel, channel := i/ChannelsPerPixel, i%ChannelsPerPixel
	width := img.Rect.Dx()

	return img.PixOffset(img.Rect.Min.X+pixel%width, img.Rect.Min.Y+pixel/width) + channel
}
