// Package ipv4 provides a compact 32-bit IPv4 address value with
// dotted-decimal conversion and netmask arithmetic.
package ipv4

import (
	"fmt"
	"math/bits"
)

// Addr is an IPv4 address held as a 32-bit unsigned integer, most
// significant octet first. The zero value is 0.0.0.0.
type Addr uint32

// ParseDotted parses a dotted-decimal IPv4 address. The input must be
// exactly four dot-separated decimal octets, each in [0,255], with no
// extra characters.
func ParseDotted(s string) (Addr, error) {
	var v uint32
	octet := 0
	digits := 0
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			octet = octet*10 + int(c-'0')
			digits++
			if digits > 3 || octet > 255 {
				return 0, fmt.Errorf("invalid octet in %q", s)
			}
		case c == '.':
			if digits == 0 {
				return 0, fmt.Errorf("empty octet in %q", s)
			}
			v = v<<8 | uint32(octet)
			octet, digits = 0, 0
			dots++
			if dots > 3 {
				return 0, fmt.Errorf("too many octets in %q", s)
			}
		default:
			return 0, fmt.Errorf("invalid character %q in %q", c, s)
		}
	}
	if dots != 3 || digits == 0 {
		return 0, fmt.Errorf("expected four octets in %q", s)
	}
	v = v<<8 | uint32(octet)
	return Addr(v), nil
}

// MustParseDotted is like ParseDotted but panics on error.
// Intended for package-level tables and tests.
func MustParseDotted(s string) Addr {
	a, err := ParseDotted(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the address in dotted-decimal form.
func (a Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// Wildcard returns the bitwise complement of the address. For a netmask
// this is the wildcard mask.
func (a Addr) Wildcard() Addr {
	return ^a
}

// Netmask returns the mask with the top prefix bits set. Shift amounts of
// 0 and 32 are handled explicitly; prefix is clamped to [0,32].
func Netmask(prefix int) Addr {
	if prefix <= 0 {
		return 0
	}
	if prefix >= 32 {
		return ^Addr(0)
	}
	return ^Addr(0) << (32 - prefix)
}

// PrefixFromMask returns the prefix length encoded by a dotted netmask.
// ok is false when the bit pattern is not a contiguous run of ones
// followed by zeros (e.g. 255.0.255.0).
func PrefixFromMask(mask Addr) (prefix int, ok bool) {
	ones := bits.LeadingZeros32(uint32(^mask))
	if mask != Netmask(ones) {
		return 0, false
	}
	return ones, true
}
