// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package targets

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/siemens/ipchk/types"
)

// RangeEnumerator lazily enumerates an inclusive range of IPv4 addresses in
// ascending order.
type RangeEnumerator struct {
	start, end uint32
	cur        uint32
	done       bool // set after emitting end, so we never wrap past 255.255.255.255.
}

var _ Enumerator = (*RangeEnumerator)(nil)

// NewRange returns an Enumerator for the inclusive IPv4 address range from
// start to end. If start is above end, both are swapped.
func NewRange(start, end netip.Addr) (*RangeEnumerator, error) {
	if !start.Is4() {
		return nil, fmt.Errorf("range: start must be IPv4: %s", start)
	}
	if !end.Is4() {
		return nil, fmt.Errorf("range: end must be IPv4: %s", end)
	}
	lo, hi := ipv4Uint32(start), ipv4Uint32(end)
	if lo > hi {
		lo, hi = hi, lo
	}
	return &RangeEnumerator{start: lo, end: hi, cur: lo}, nil
}

// ParseRange returns an Enumerator for the inclusive IPv4 address range given
// in textual form.
func ParseRange(start, end string) (*RangeEnumerator, error) {
	s, err := netip.ParseAddr(start)
	if err != nil || !s.Is4() {
		return nil, fmt.Errorf("range: start must be IPv4: %s", start)
	}
	e, err := netip.ParseAddr(end)
	if err != nil || !e.Is4() {
		return nil, fmt.Errorf("range: end must be IPv4: %s", end)
	}
	return NewRange(s, e)
}

// Next returns the next address in the range.
func (r *RangeEnumerator) Next() (types.Target, bool) {
	if r.done {
		return types.Target{}, false
	}
	t := types.TargetFromUint32(r.cur, int(r.cur-r.start))
	if r.cur == r.end {
		r.done = true
	} else {
		r.cur++
	}
	return t, true
}

// Len returns the number of addresses in the range, which is at least 1 and
// at most 2^32.
func (r *RangeEnumerator) Len() uint64 {
	return uint64(r.end) - uint64(r.start) + 1
}

func ipv4Uint32(ip netip.Addr) uint32 {
	b := ip.As4()
	return binary.BigEndian.Uint32(b[:])
}
