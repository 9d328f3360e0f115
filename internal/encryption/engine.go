package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/stegecrypt/internal/errdefs"
	"github.com/idelchi/stegecrypt/internal/keyderive"
)

const (
	// NonceSize is the AEAD nonce length for every suite.
	NonceSize = 12
	// TagSize is the authentication tag length for every suite.
	TagSize = 16
	// SaltSize is the length of the per-encryption salt.
	SaltSize = 16
)

// Sealed is the output of one encryption.
type Sealed struct {
	Suite      Suite
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// ProgressFunc receives the number of processed bytes out of total.
type ProgressFunc func(done, total int)

// Option configures an Engine.
type Option func(*Engine)

// WithProgress registers a callback invoked when a pass completes.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// Engine encrypts and decrypts buffers under one key and suite.
// It holds no per-message state and may be reused across calls.
type Engine struct {
	suite    Suite
	sealer   sealer
	progress ProgressFunc
}

// NewEngine creates an engine for the given key and suite.
func NewEngine(key keyderive.Key, suite Suite, opts ...Option) (*Engine, error) {
	s, err := newSealer(suite, key.Bytes())
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		suite:  suite,
		sealer: s,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Suite returns the engine's cipher suite.
func (e *Engine) Suite() Suite {
	return e.suite
}

// Encrypt seals plaintext with a fresh nonce and a fresh salt.
// The salt is authenticated as associated data.
func (e *Engine) Encrypt(plaintext []byte) (Sealed, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Sealed{}, fmt.Errorf("generating salt: %w", err)
	}

	nonce, ciphertext, tag, err := e.sealer.seal(plaintext, salt)
	if err != nil {
		return Sealed{}, err
	}

	e.report(len(plaintext))

	return Sealed{
		Suite:      e.suite,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
		Tag:        tag,
	}, nil
}

// Decrypt verifies the tag and returns the plaintext.
// No plaintext is returned unless authentication succeeds.
func (e *Engine) Decrypt(s Sealed) ([]byte, error) {
	if s.Suite != e.suite {
		return nil, fmt.Errorf("%w: %w: sealed with %s, engine uses %s",
			errdefs.ErrFormat, ErrSuiteMismatch, s.Suite, e.suite)
	}

	switch {
	case len(s.Nonce) != NonceSize:
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", errdefs.ErrFormat, NonceSize, len(s.Nonce))
	case len(s.Tag) != TagSize:
		return nil, fmt.Errorf("%w: tag must be %d bytes, got %d", errdefs.ErrFormat, TagSize, len(s.Tag))
	case len(s.Salt) != SaltSize:
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", errdefs.ErrFormat, SaltSize, len(s.Salt))
	}

	plaintext, err := e.sealer.open(s.Nonce, s.Ciphertext, s.Tag, s.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong key or corrupted data", errdefs.ErrIntegrity)
	}

	e.report(len(plaintext))

	return plaintext, nil
}

func (e *Engine) report(n int) {
	if e.progress != nil {
		e.progress(n, n)
	}
}
