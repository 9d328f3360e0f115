// Package errdefs defines the error kinds surfaced by the stegecrypt core.
//
// Every core failure wraps exactly one of the sentinels below, so callers can
// branch with errors.Is without parsing messages.
package errdefs

import "errors"

var (
	// ErrKeyDerivation is returned when a key file is empty or cannot be read.
	ErrKeyDerivation = errors.New("key derivation failed")
	// ErrFormat is returned for malformed containers and stego images.
	ErrFormat = errors.New("invalid format")
	// ErrIntegrity is returned when authentication fails on decrypt.
	// It means the key is wrong or the data was tampered with.
	ErrIntegrity = errors.New("integrity check failed")
	// ErrCapacity is returned when a payload does not fit into a carrier.
	ErrCapacity = errors.New("insufficient carrier capacity")
)

// Exit codes reported by the command-line tool.
const (
	ExitOK = iota
	ExitFailure
	ExitKeyDerivation
	ExitFormat
	ExitIntegrity
	ExitCapacity
)

// ExitCode maps an error onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrKeyDerivation):
		return ExitKeyDerivation
	case errors.Is(err, ErrFormat):
		return ExitFormat
	case errors.Is(err, ErrIntegrity):
		return ExitIntegrity
	case errors.Is(err, ErrCapacity):
		return ExitCapacity
	default:
		return ExitFailure
	}
}
