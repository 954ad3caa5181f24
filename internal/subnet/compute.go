package subnet

import (
	"strconv"

	"subnetter/internal/ipv4"
)

// Result is the immutable record produced by one computation. Address
// fields are rendered in dotted-decimal form; counts stay numeric.
type Result struct {
	IP          string   `json:"ip"`
	CIDR        int      `json:"cidr"`
	Network     string   `json:"network"`
	Broadcast   string   `json:"broadcast"`
	Netmask     string   `json:"netmask"`
	Wildcard    string   `json:"wildcard"`
	FirstHost   string   `json:"first_host"`
	LastHost    string   `json:"last_host"`
	TotalHosts  uint64   `json:"total_hosts"`
	UsableHosts uint64   `json:"usable_hosts"`
	HostBits    int      `json:"host_bits"`
	Notes       []string `json:"notes,omitempty"`
}

// Compute derives the full subnet record from a validated address and
// prefix length. It is total over prefix in [0,32] and never fails.
//
// The /32 and /31 cases must be checked before the general case: the
// network+1/broadcast-1 formula produces overlapping or inverted ranges
// at both boundaries. /31 follows RFC 3021 (both endpoints usable).
func Compute(addr ipv4.Addr, prefix int) Result {
	hostBits := 32 - prefix
	mask := ipv4.Netmask(prefix)
	network := addr & mask
	broadcast := network | mask.Wildcard()
	total := uint64(1) << uint(hostBits)

	var usable uint64
	first, last := network, broadcast
	switch {
	case prefix == 32:
		usable = 1
		first, last = addr, addr
	case prefix == 31:
		usable = 2
	default:
		usable = total - 2
		// total >= 4 always holds for prefix <= 30; kept as a guard only.
		if total >= 4 {
			first, last = network+1, broadcast-1
		}
	}

	return Result{
		IP:          addr.String(),
		CIDR:        prefix,
		Network:     network.String(),
		Broadcast:   broadcast.String(),
		Netmask:     mask.String(),
		Wildcard:    mask.Wildcard().String(),
		FirstHost:   first.String(),
		LastHost:    last.String(),
		TotalHosts:  total,
		UsableHosts: usable,
		HostBits:    hostBits,
		Notes:       notesFor(addr, prefix),
	}
}

// Fields returns the result as ordered name/value pairs, in record field
// order. This feeds the two-column field,value CSV export.
func (r Result) Fields() [][2]string {
	return [][2]string{
		{"ip", r.IP},
		{"cidr", strconv.Itoa(r.CIDR)},
		{"network", r.Network},
		{"broadcast", r.Broadcast},
		{"netmask", r.Netmask},
		{"wildcard", r.Wildcard},
		{"first_host", r.FirstHost},
		{"last_host", r.LastHost},
		{"total_hosts", strconv.FormatUint(r.TotalHosts, 10)},
		{"usable_hosts", strconv.FormatUint(r.UsableHosts, 10)},
		{"host_bits", strconv.Itoa(r.HostBits)},
	}
}

// Special-purpose IPv4 ranges surfaced as informational notes, based on
// the IANA special-purpose registries.
var specialRanges = []struct {
	base   ipv4.Addr
	prefix int
	note   string
}{
	{ipv4.MustParseDotted("10.0.0.0"), 8, "private range (RFC 1918)"},
	{ipv4.MustParseDotted("172.16.0.0"), 12, "private range (RFC 1918)"},
	{ipv4.MustParseDotted("192.168.0.0"), 16, "private range (RFC 1918)"},
	{ipv4.MustParseDotted("100.64.0.0"), 10, "shared address space (RFC 6598)"},
	{ipv4.MustParseDotted("127.0.0.0"), 8, "loopback (RFC 1122)"},
	{ipv4.MustParseDotted("169.254.0.0"), 16, "link-local (RFC 3927)"},
	{ipv4.MustParseDotted("224.0.0.0"), 4, "multicast (RFC 5771)"},
	{ipv4.MustParseDotted("240.0.0.0"), 4, "reserved for future use (RFC 1112)"},
}

// notesFor returns informational notes for the result. Notes never affect
// the computed fields.
func notesFor(addr ipv4.Addr, prefix int) []string {
	var notes []string
	if prefix == 31 {
		notes = append(notes, "/31 point-to-point: both addresses are usable (RFC 3021)")
	}
	for _, s := range specialRanges {
		if addr&ipv4.Netmask(s.prefix) == s.base {
			notes = append(notes, s.note)
			break
		}
	}
	return notes
}
