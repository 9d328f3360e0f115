package encryption

import "errors"

var (
	// ErrUnknownSuite is returned for a suite identifier the engine cannot serve.
	ErrUnknownSuite = errors.New("unknown cipher suite")
	// ErrSuiteMismatch is returned when sealed data belongs to a different suite than the engine.
	ErrSuiteMismatch = errors.New("cipher suite mismatch")
)
