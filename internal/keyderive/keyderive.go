// Package keyderive turns the content of an arbitrary key file into a
// fixed-length symmetric key.
//
// The key file is treated as an opaque byte sequence: text files and images
// are hashed the same way and never parsed for structure.
package keyderive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/stegecrypt/internal/errdefs"
)

const (
	// Size is the length of a derived key in bytes.
	Size = 32

	// Iterations is the PBKDF2 work factor.
	Iterations = 100_000
)

// derivationSalt is a domain separator, not a per-container salt.
// Container salts are carried for future use and never enter this function.
var derivationSalt = []byte("stegecrypt_salt") //nolint:gochecknoglobals

// Key is the derived key material.
// It lives for the duration of one operation and is never persisted.
type Key [Size]byte

// Bytes returns the key as a slice backed by a copy of the array.
func (k Key) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, k[:])

	return out
}

// String returns a fingerprint safe for diagnostics, not the key itself.
func (k Key) String() string {
	sum := sha256.Sum256(k[:])

	return "key:" + hex.EncodeToString(sum[:4])
}

// Derive computes the key for the given key file content.
// Identical content always yields the identical key.
func Derive(content []byte) (Key, error) {
	var key Key

	if len(content) == 0 {
		return key, fmt.Errorf("%w: key file is empty", errdefs.ErrKeyDerivation)
	}

	digest := sha256.Sum256(content)

	copy(key[:], pbkdf2.Key(digest[:], derivationSalt, Iterations, Size, sha256.New))

	return key, nil
}

// FromFile reads the key file at path and derives its key.
func FromFile(path string) (Key, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Key{}, fmt.Errorf("%w: reading key file %q: %w", errdefs.ErrKeyDerivation, path, err)
	}

	key, err := Derive(content)
	if err != nil {
		return Key{}, fmt.Errorf("key file %q: %w", path, err)
	}

	return key, nil
}
