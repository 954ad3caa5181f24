package subnet

import (
	"errors"
	"fmt"
)

// Sentinel errors for input validation. Callers should use errors.Is() to
// branch on the failure kind; every failure is permanent and non-retryable.
var (
	// ErrMissingMask indicates no mask was supplied and the address had no
	// CIDR suffix.
	ErrMissingMask = errors.New("missing subnet mask")

	// ErrMalformedAddress indicates the address text is not four valid
	// 0-255 octets.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrMalformedMask indicates the mask text is neither a valid dotted
	// mask nor a /N form.
	ErrMalformedMask = errors.New("malformed mask")

	// ErrNonContiguousMask indicates a dotted mask whose bits are not a
	// prefix-then-zeros pattern.
	ErrNonContiguousMask = errors.New("non-contiguous mask")

	// ErrPrefixOutOfRange indicates a CIDR value outside [0,32] or a
	// non-numeric prefix.
	ErrPrefixOutOfRange = errors.New("prefix out of range")

	// ErrUnsupportedFamily indicates a non-IPv4 address family.
	ErrUnsupportedFamily = errors.New("unsupported address family")
)

// ParseError provides detailed input validation error information.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(input, reason string, kind error) error {
	return &ParseError{Input: input, Reason: reason, Err: kind}
}
