// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Family of a target address.
type Family int

// The address families a target can belong to.
const (
	InvalidFamily Family = iota // neither an IPv4 nor an IPv6 address.
	IPv4
	IPv6
)

// String returns the clear-text representation of a Family value.
func (f Family) String() string {
	switch f {
	case InvalidFamily:
		return "invalid"
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return fmt.Sprintf("Family(%d)", f)
}

// Target is an address to be swept, together with its parsed form and its
// position in the enumeration order. Targets are values and never change
// after enumeration.
type Target struct {
	Address string     `json:"address"` // address as given by the user
	Index   int        `json:"index"`   // zero-based enumeration position
	ip      netip.Addr // zero if Address doesn't parse or is zoned
}

// ParseTarget returns a new Target for the specified address string. Address
// strings that cannot be parsed still result in a Target, but of
// [InvalidFamily]. Zoned IPv6 addresses, such as "fe80::1%eth0", are invalid
// too.
func ParseTarget(addr string, index int) Target {
	t := Target{Address: addr, Index: index}
	if ip, err := netip.ParseAddr(addr); err == nil && ip.Zone() == "" {
		t.ip = ip
	}
	return t
}

// TargetFromUint32 returns a new Target for the IPv4 address with the
// specified (host-order) numeric value.
func TargetFromUint32(n uint32, index int) Target {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	ip := netip.AddrFrom4(b)
	return Target{Address: ip.String(), Index: index, ip: ip}
}

// IP returns the parsed address; it is the zero netip.Addr for targets of
// [InvalidFamily].
func (t Target) IP() netip.Addr { return t.ip }

// Family returns the address family of the target. IPv4-mapped IPv6 addresses
// are IPv6.
func (t Target) Family() Family {
	switch {
	case !t.ip.IsValid():
		return InvalidFamily
	case t.ip.Is4():
		return IPv4
	default:
		return IPv6
	}
}

// Key returns the numeric value of an IPv4 target in network byte order, or 0
// for any other family.
func (t Target) Key() uint32 {
	if !t.ip.Is4() {
		return 0
	}
	b := t.ip.As4()
	return binary.BigEndian.Uint32(b[:])
}
