// Package subnet normalizes user-typed IPv4 address and mask strings and
// derives the full subnet record (network, broadcast, wildcard, host range
// and counts) from them.
package subnet

import (
	"strings"

	"subnetter/internal/ipv4"
)

// Parse normalizes the accepted input shapes into an address and prefix
// length. Forms are tried in this precedence order:
//
//  1. "a.b.c.d/N" in primary with no separate mask
//  2. plain address in primary plus "/N" mask
//  3. plain address in primary plus dotted mask "w.x.y.z"
//
// A mask is mandatory: a bare address with no CIDR suffix and no mask
// fails with ErrMissingMask. All failures unwrap to one of the sentinel
// errors in this package.
func Parse(primary, mask string) (ipv4.Addr, int, error) {
	primary = strings.TrimSpace(primary)
	mask = strings.TrimSpace(mask)

	if strings.Contains(primary, "/") && mask == "" {
		host, suffix, _ := strings.Cut(primary, "/")
		addr, err := parseAddr(host)
		if err != nil {
			return 0, 0, err
		}
		prefix, err := parsePrefix(primary, suffix)
		if err != nil {
			return 0, 0, err
		}
		return addr, prefix, nil
	}

	if mask == "" {
		return 0, 0, parseErr(primary, "provide a dotted mask or use address/CIDR form", ErrMissingMask)
	}

	addr, err := parseAddr(primary)
	if err != nil {
		return 0, 0, err
	}

	if rest, ok := strings.CutPrefix(mask, "/"); ok {
		prefix, err := parsePrefix(mask, rest)
		if err != nil {
			return 0, 0, err
		}
		return addr, prefix, nil
	}

	m, err := ipv4.ParseDotted(mask)
	if err != nil {
		if looksNonIPv4(mask) {
			return 0, 0, parseErr(mask, "only IPv4 masks are supported", ErrUnsupportedFamily)
		}
		return 0, 0, parseErr(mask, "not a dotted mask or /N form", ErrMalformedMask)
	}
	prefix, ok := ipv4.PrefixFromMask(m)
	if !ok {
		return 0, 0, parseErr(mask, "mask bits must be contiguous", ErrNonContiguousMask)
	}
	return addr, prefix, nil
}

// parseAddr parses a plain dotted address, distinguishing non-IPv4
// literals from plain garbage.
func parseAddr(s string) (ipv4.Addr, error) {
	if looksNonIPv4(s) {
		return 0, parseErr(s, "only IPv4 is supported", ErrUnsupportedFamily)
	}
	addr, err := ipv4.ParseDotted(s)
	if err != nil {
		return 0, parseErr(s, "expected four octets in 0-255", ErrMalformedAddress)
	}
	return addr, nil
}

// parsePrefix parses the text after a slash as a prefix length in [0,32].
// input is the original string used for error reporting.
func parsePrefix(input, s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, parseErr(input, "prefix must be an integer between /0 and /32", ErrPrefixOutOfRange)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseErr(input, "prefix must be an integer between /0 and /32", ErrPrefixOutOfRange)
		}
		n = n*10 + int(c-'0')
	}
	if n > 32 {
		return 0, parseErr(input, "prefix must be an integer between /0 and /32", ErrPrefixOutOfRange)
	}
	return n, nil
}

// looksNonIPv4 reports whether the input resembles another address family:
// IPv6 literals contain colons, possibly wrapped in brackets.
func looksNonIPv4(s string) bool {
	return strings.ContainsAny(s, ":[]")
}
