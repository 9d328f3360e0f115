// Package container implements the .stegecrypt binary container.
//
// Layout, all offsets in bytes:
//
//	magic (4) | version (1) | salt (16) | nonce (12) | ciphertext length (4, big-endian) | ciphertext | tag (16)
//
// The ciphertext length is explicit, so the decoder never scans for a
// terminator and the total size is fully determined by the header.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/idelchi/stegecrypt/internal/errdefs"
)

// Magic identifies a stegecrypt container.
const Magic = "STGC"

// Supported format versions. The version selects the AEAD suite.
const (
	VersionAESGCM           byte = 0x01
	VersionChaCha20Poly1305 byte = 0x02
)

// Field sizes.
const (
	MagicSize   = len(Magic)
	VersionSize = 1
	SaltSize    = 16
	NonceSize   = 12
	LengthSize  = 4
	TagSize     = 16

	// HeaderSize covers every field in front of the ciphertext.
	HeaderSize = MagicSize + VersionSize + SaltSize + NonceSize + LengthSize
	// MinSize is the size of a container with an empty ciphertext.
	MinSize = HeaderSize + TagSize
)

const (
	offVersion = MagicSize
	offSalt    = offVersion + VersionSize
	offNonce   = offSalt + SaltSize
	offLength  = offNonce + NonceSize
)

// Container is the decoded form of a .stegecrypt buffer.
type Container struct {
	Version    byte
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Header is the fixed-width prefix of a container.
type Header struct {
	Version          byte
	Salt             []byte
	Nonce            []byte
	CiphertextLength uint32
}

// Size returns the encoded size of c.
func (c Container) Size() int {
	return HeaderSize + len(c.Ciphertext) + TagSize
}

// SupportedVersion reports whether v can be decoded.
func SupportedVersion(v byte) bool {
	switch v {
	case VersionAESGCM, VersionChaCha20Poly1305:
		return true
	default:
		return false
	}
}

// Encode serializes c. Salt, nonce and tag must have their fixed sizes and
// the ciphertext must fit into a 32-bit length; Encode panics otherwise,
// since those values only come from the encryption engine.
func Encode(c Container) []byte {
	if len(c.Salt) != SaltSize || len(c.Nonce) != NonceSize || len(c.Tag) != TagSize {
		panic(fmt.Sprintf("container: malformed fields (salt %d, nonce %d, tag %d)",
			len(c.Salt), len(c.Nonce), len(c.Tag)))
	}

	if uint64(len(c.Ciphertext)) > math.MaxUint32 {
		panic("container: ciphertext exceeds 4 GiB")
	}

	out := make([]byte, c.Size())

	copy(out, Magic)
	out[offVersion] = c.Version
	copy(out[offSalt:], c.Salt)
	copy(out[offNonce:], c.Nonce)
	binary.BigEndian.PutUint32(out[offLength:], uint32(len(c.Ciphertext))) //nolint:gosec // bounded above
	copy(out[HeaderSize:], c.Ciphertext)
	copy(out[HeaderSize+len(c.Ciphertext):], c.Tag)

	return out
}

// Peek validates and returns the fixed header of data without requiring the
// body to be consistent with it.
func Peek(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: container truncated: %d bytes, header needs %d",
			errdefs.ErrFormat, len(data), HeaderSize)
	}

	if !bytes.Equal(data[:MagicSize], []byte(Magic)) {
		return Header{}, fmt.Errorf("%w: invalid container magic %q", errdefs.ErrFormat, data[:MagicSize])
	}

	version := data[offVersion]
	if !SupportedVersion(version) {
		return Header{}, fmt.Errorf("%w: unsupported container version %d", errdefs.ErrFormat, version)
	}

	return Header{
		Version:          version,
		Salt:             clone(data[offSalt:offNonce]),
		Nonce:            clone(data[offNonce:offLength]),
		CiphertextLength: binary.BigEndian.Uint32(data[offLength:HeaderSize]),
	}, nil
}

// Decode parses and validates a container buffer.
// Checks run in order: minimum size, magic, version, declared length.
// The returned slices are copies; data is never retained.
func Decode(data []byte) (Container, error) {
	if len(data) < MinSize {
		return Container{}, fmt.Errorf("%w: container truncated: %d bytes, minimum is %d",
			errdefs.ErrFormat, len(data), MinSize)
	}

	header, err := Peek(data)
	if err != nil {
		return Container{}, err
	}

	want := uint64(MinSize) + uint64(header.CiphertextLength)
	if uint64(len(data)) != want {
		return Container{}, fmt.Errorf("%w: container length mismatch: declared ciphertext of %d bytes needs %d total, got %d",
			errdefs.ErrFormat, header.CiphertextLength, want, len(data))
	}

	end := HeaderSize + int(header.CiphertextLength)

	return Container{
		Version:    header.Version,
		Salt:       header.Salt,
		Nonce:      header.Nonce,
		Ciphertext: clone(data[HeaderSize:end]),
		Tag:        clone(data[end:]),
	}, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
