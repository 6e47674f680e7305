// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Status is the result of sweeping a single target.
type Status int

// The sweep results of a target.
const (
	Down              Status = iota // no reply observed, for whatever reason.
	Up                              // at least one reply observed.
	Invalid                         // not an IP address at all; never probed.
	UnsupportedFamily               // IPv6 address; never probed.
)

// String returns the clear-text representation of a Status value, as used in
// sweep reports.
func (s Status) String() string {
	switch s {
	case Down:
		return "down"
	case Up:
		return "up"
	case Invalid:
		return "invalid"
	case UnsupportedFamily:
		return "IPv6 currently unsupported"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// IsProbed returns true if the status results from an actual reachability
// probe, as opposed to a target classified without probing.
func (s Status) IsProbed() bool {
	switch s {
	case Up, Down:
		return true
	default:
		return false
	}
}
