package mahjong

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error this package returns wraps exactly
// one of these via fmt.Errorf("%w: ...", ...), so callers distinguish
// kinds with errors.Is rather than string matching or type switches.
var (
	// ErrMalformedInput covers shorthand parse failures, counts above 4,
	// and hand sizes outside the set an operation requires.
	ErrMalformedInput = errors.New("mahjong: malformed input")

	// ErrInvariantViolation covers programmer errors the core refuses to
	// proceed past: visible-tile accounting exceeding 4 copies of an id,
	// or a hand plus visible universe that double-counts a physical tile.
	ErrInvariantViolation = errors.New("mahjong: invariant violation")
)

// errMalformedf wraps ErrMalformedInput with a formatted message.
func errMalformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
