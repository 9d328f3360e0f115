package encryption

import (
	"fmt"
	"strings"

	"github.com/idelchi/stegecrypt/internal/errdefs"
)

// Suite identifies the AEAD construction. The numeric values double as the
// container version byte.
type Suite byte

const (
	// SuiteAESGCM is AES-256-GCM, served by tink.
	SuiteAESGCM Suite = 0x01
	// SuiteChaCha20Poly1305 is ChaCha20-Poly1305 with a 96-bit nonce.
	SuiteChaCha20Poly1305 Suite = 0x02
)

// String returns the suite's command-line name.
func (s Suite) String() string {
	switch s {
	case SuiteAESGCM:
		return "aes-gcm"
	case SuiteChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("suite(%d)", byte(s))
	}
}

// ParseSuite resolves a command-line suite name.
// The empty string selects AES-256-GCM.
func ParseSuite(name string) (Suite, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "aes-gcm", "aes-256-gcm", "aesgcm":
		return SuiteAESGCM, nil
	case "chacha20-poly1305", "chacha20poly1305", "chacha":
		return SuiteChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}
}

// SuiteFromVersion maps a container version onto its suite.
func SuiteFromVersion(version byte) (Suite, error) {
	switch s := Suite(version); s {
	case SuiteAESGCM, SuiteChaCha20Poly1305:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: %w: version %d", errdefs.ErrFormat, ErrUnknownSuite, version)
	}
}
