package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/tink"
)

// sealer is the per-suite AEAD with the nonce and tag split out of the
// ciphertext, matching the container layout.
type sealer interface {
	seal(plaintext, associatedData []byte) (nonce, ciphertext, tag []byte, err error)
	open(nonce, ciphertext, tag, associatedData []byte) ([]byte, error)
}

func newSealer(suite Suite, key []byte) (sealer, error) {
	switch suite {
	case SuiteAESGCM:
		handle, err := newAESGCMKeyHandle(key)
		if err != nil {
			return nil, err
		}

		primitive, err := aead.New(handle)
		if err != nil {
			return nil, fmt.Errorf("creating AEAD: %w", err)
		}

		return &tinkSealer{aead: primitive}, nil
	case SuiteChaCha20Poly1305:
		primitive, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("creating ChaCha20-Poly1305: %w", err)
		}

		return &stdSealer{aead: primitive}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, suite)
	}
}

// tinkSealer wraps a tink AEAD whose RAW output is nonce || ciphertext || tag.
// Tink draws the nonce itself from a CSPRNG on every call.
type tinkSealer struct {
	aead tink.AEAD
}

func (s *tinkSealer) seal(plaintext, associatedData []byte) ([]byte, []byte, []byte, error) {
	out, err := s.aead.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encrypting: %w", err)
	}

	if len(out) < NonceSize+TagSize {
		return nil, nil, nil, fmt.Errorf("encrypting: unexpected output length %d", len(out))
	}

	nonce, ciphertext, tag := split(out)

	return nonce, ciphertext, tag, nil
}

func (s *tinkSealer) open(nonce, ciphertext, tag, associatedData []byte) ([]byte, error) {
	return s.aead.Decrypt(join(nonce, ciphertext, tag), associatedData) //nolint:wrapcheck // mapped by the engine
}

// stdSealer wraps a crypto/cipher AEAD and generates nonces itself.
type stdSealer struct {
	aead cipher.AEAD
}

func (s *stdSealer) seal(plaintext, associatedData []byte) ([]byte, []byte, []byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := s.aead.Seal(nil, nonce, plaintext, associatedData)
	cut := len(sealed) - s.aead.Overhead()

	return nonce, sealed[:cut], sealed[cut:], nil
}

func (s *stdSealer) open(nonce, ciphertext, tag, associatedData []byte) ([]byte, error) {
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	return s.aead.Open(nil, nonce, sealed, associatedData) //nolint:wrapcheck // mapped by the engine
}

func split(out []byte) (nonce, ciphertext, tag []byte) {
	nonce = out[:NonceSize]
	ciphertext = out[NonceSize : len(out)-TagSize]
	tag = out[len(out)-TagSize:]

	return nonce, ciphertext, tag
}

func join(nonce, ciphertext, tag []byte) []byte {
	out := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	out = append(out, tag...)

	return out
}
