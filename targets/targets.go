// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package targets

import (
	"github.com/siemens/ipchk/types"
)

// Enumerator produces the ordered sequence of targets to sweep.
type Enumerator interface {
	// Next returns the next target and true, or false if the sequence has
	// been exhausted.
	Next() (types.Target, bool)
	// Len returns the total number of targets in the sequence, regardless of
	// how many have already been taken.
	Len() uint64
}

// ListEnumerator enumerates a list of address strings verbatim.
type ListEnumerator struct {
	addrs []string
	next  int
}

var _ Enumerator = (*ListEnumerator)(nil)

// List returns an Enumerator for the specified address strings, in the order
// given. Duplicates are kept.
func List(addrs []string) *ListEnumerator {
	return &ListEnumerator{addrs: addrs}
}

// Next returns the next target from the list.
func (l *ListEnumerator) Next() (types.Target, bool) {
	if l.next >= len(l.addrs) {
		return types.Target{}, false
	}
	t := types.ParseTarget(l.addrs[l.next], l.next)
	l.next++
	return t, true
}

// Len returns the number of addresses in the list.
func (l *ListEnumerator) Len() uint64 { return uint64(len(l.addrs)) }

// maxPrealloc limits the capacity preallocated for a single wave.
const maxPrealloc = 4096

// Take returns up to n further targets from the specified Enumerator. It
// returns an empty slice only after the enumerator has been exhausted.
func Take(e Enumerator, n int) []types.Target {
	if n < 1 {
		return []types.Target{}
	}
	// Waves larger than the preallocation grow as needed.
	size := uint64(n)
	if l := e.Len(); l < size {
		size = l
	}
	if size > maxPrealloc {
		size = maxPrealloc
	}
	wave := make([]types.Target, 0, size)
	for len(wave) < n {
		t, ok := e.Next()
		if !ok {
			break
		}
		wave = append(wave, t)
	}
	return wave
}
