// Package stegecrypt is the public entry point to the stegecrypt core.
//
// It exposes four independent, stateless operations:
//
//   - Encrypt seals plaintext under a key file into container bytes.
//   - Decrypt verifies and opens container bytes.
//   - Embed hides any payload in the least significant bits of a carrier image.
//   - Extract recovers a payload hidden by Embed.
//
// EncryptAndEmbed and ExtractAndDecrypt compose them into the full pipeline.
// Every failure wraps one of ErrKeyDerivation, ErrFormat, ErrIntegrity or
// ErrCapacity.
package stegecrypt

import (
	"fmt"
	"image"
	"io"

	"github.com/idelchi/stegecrypt/internal/container"
	"github.com/idelchi/stegecrypt/internal/encryption"
	"github.com/idelchi/stegecrypt/internal/errdefs"
	"github.com/idelchi/stegecrypt/internal/keyderive"
	"github.com/idelchi/stegecrypt/internal/stego"
)

// Error kinds returned by the core.
var (
	ErrKeyDerivation = errdefs.ErrKeyDerivation
	ErrFormat        = errdefs.ErrFormat
	ErrIntegrity     = errdefs.ErrIntegrity
	ErrCapacity      = errdefs.ErrCapacity
)

// Suite selects the AEAD construction used by Encrypt.
type Suite = encryption.Suite

// Supported suites.
const (
	SuiteAESGCM           = encryption.SuiteAESGCM
	SuiteChaCha20Poly1305 = encryption.SuiteChaCha20Poly1305
)

// Key is the 32-byte key derived from a key file.
type Key = keyderive.Key

// ParseSuite resolves a suite name such as "aes-gcm" or "chacha20-poly1305".
// The empty string selects AES-256-GCM.
func ParseSuite(name string) (Suite, error) {
	return encryption.ParseSuite(name)
}

// Header describes a container without decrypting it.
type Header = container.Header

// ProgressFunc receives progress of a long-running step.
// The stage is one of "encrypt", "decrypt", "embed" or "extract".
type ProgressFunc func(stage string, done, total int)

// Option configures an operation.
type Option func(*options)

type options struct {
	suite    Suite
	progress ProgressFunc
}

// WithSuite selects the suite used for encryption. Decryption always follows
// the container's version byte.
func WithSuite(s Suite) Option {
	return func(o *options) {
		o.suite = s
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func newOptions(opts []Option) options {
	o := options{suite: SuiteAESGCM}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) engineOpts(stage string) []encryption.Option {
	if o.progress == nil {
		return nil
	}

	return []encryption.Option{encryption.WithProgress(func(done, total int) {
		o.progress(stage, done, total)
	})}
}

func (o options) stegoOpts(stage string) []stego.Option {
	if o.progress == nil {
		return nil
	}

	return []stego.Option{stego.WithProgress(func(done, total int) {
		o.progress(stage, done, total)
	})}
}

// DeriveKey derives the encryption key from key file content.
func DeriveKey(keyFile []byte) (Key, error) {
	return keyderive.Derive(keyFile)
}

// LoadKey reads a key file and derives the encryption key from it.
func LoadKey(path string) (Key, error) {
	return keyderive.FromFile(path)
}

// Encrypt derives a key from keyFile and returns plaintext sealed in a container.
func Encrypt(plaintext, keyFile []byte, opts ...Option) ([]byte, error) {
	key, err := keyderive.Derive(keyFile)
	if err != nil {
		return nil, err
	}

	return EncryptWithKey(plaintext, key, opts...)
}

// EncryptWithKey is Encrypt with an already derived key.
func EncryptWithKey(plaintext []byte, key Key, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	engine, err := encryption.NewEngine(key, o.suite, o.engineOpts("encrypt")...)
	if err != nil {
		return nil, err
	}

	sealed, err := engine.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return container.Encode(container.Container{
		Version:    byte(sealed.Suite),
		Salt:       sealed.Salt,
		Nonce:      sealed.Nonce,
		Ciphertext: sealed.Ciphertext,
		Tag:        sealed.Tag,
	}), nil
}

// Decrypt opens a container produced by Encrypt.
// The container is validated before the key is derived, so a malformed buffer
// reports ErrFormat regardless of the key file.
func Decrypt(data, keyFile []byte, opts ...Option) ([]byte, error) {
	return DecryptWithKeyFunc(data, func() (Key, error) {
		return keyderive.Derive(keyFile)
	}, opts...)
}

// DecryptWithKey is Decrypt with an already derived key.
func DecryptWithKey(data []byte, key Key, opts ...Option) ([]byte, error) {
	return DecryptWithKeyFunc(data, func() (Key, error) {
		return key, nil
	}, opts...)
}

// DecryptWithKeyFunc decodes data and only then calls keyFn for the key,
// so a buffer that is not a container fails with ErrFormat before any key
// material is loaded.
func DecryptWithKeyFunc(data []byte, keyFn func() (Key, error), opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	c, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	suite, err := encryption.SuiteFromVersion(c.Version)
	if err != nil {
		return nil, err
	}

	key, err := keyFn()
	if err != nil {
		return nil, err
	}

	engine, err := encryption.NewEngine(key, suite, o.engineOpts("decrypt")...)
	if err != nil {
		return nil, err
	}

	return engine.Decrypt(encryption.Sealed{
		Suite:      suite,
		Salt:       c.Salt,
		Nonce:      c.Nonce,
		Ciphertext: c.Ciphertext,
		Tag:        c.Tag,
	})
}

// ContainerSize returns the size of the container Encrypt produces for a
// plaintext of n bytes.
func ContainerSize(n int) int {
	return container.MinSize + n
}

// Inspect returns the header of a container without a key.
func Inspect(data []byte) (Header, error) {
	return container.Peek(data)
}

// Embed hides payload in a copy of carrier.
func Embed(carrier image.Image, payload []byte, opts ...Option) (*image.NRGBA, error) {
	return stego.Embed(carrier, payload, newOptions(opts).stegoOpts("embed")...)
}

// Extract recovers the payload hidden in img.
func Extract(img image.Image, opts ...Option) ([]byte, error) {
	return stego.Extract(img, newOptions(opts).stegoOpts("extract")...)
}

// DecodeImage reads a lossless carrier image (PNG, BMP or TIFF).
func DecodeImage(r io.Reader) (image.Image, error) {
	return stego.DecodeImage(r)
}

// EncodePNG writes img as PNG, the only output format that preserves the
// embedded bits.
func EncodePNG(w io.Writer, img image.Image) error {
	return stego.EncodePNG(w, img)
}

// Capacity returns the number of bits img can hold, length header included.
func Capacity(img image.Image) int {
	return stego.Capacity(img)
}

// MaxPayload returns the largest payload in bytes that fits into img.
func MaxPayload(img image.Image) int {
	return stego.MaxPayload(img)
}

// EncryptAndEmbed encrypts plaintext and hides the container in carrier.
func EncryptAndEmbed(plaintext, keyFile []byte, carrier image.Image, opts ...Option) (*image.NRGBA, error) {
	data, err := Encrypt(plaintext, keyFile, opts...)
	if err != nil {
		return nil, err
	}

	return Embed(carrier, data, opts...)
}

// ExtractAndDecrypt recovers a container from img and decrypts it.
func ExtractAndDecrypt(img image.Image, keyFile []byte, opts ...Option) ([]byte, error) {
	data, err := Extract(img, opts...)
	if err != nil {
		return nil, err
	}

	return Decrypt(data, keyFile, opts...)
}
