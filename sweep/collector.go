// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"sort"
	"sync"

	"github.com/siemens/ipchk/types"
)

// Collector gathers the outcomes of concurrently running probes. A typical use
// case is to consume outcomes from a channel fed by many probes, until the
// channel gets closed after the last probe has finished.
type Collector struct {
	mu       sync.Mutex
	outcomes []types.Outcome
}

// NewCollector returns a new and properly initialized Collector.
func NewCollector() *Collector {
	return &Collector{
		outcomes: []types.Outcome{},
	}
}

// Update the collection with another outcome. Outcomes are kept in the order
// of their arrival.
func (c *Collector) Update(o types.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

// Outcomes returns (a copy of) all outcomes collected so far, in arrival
// order.
func (c *Collector) Outcomes() []types.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Outcome(nil), c.outcomes...)
}

// Len returns the number of outcomes collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outcomes)
}

// Track outcomes received from the specified channel until the channel is
// closed or the context done. Track only returns after processing all
// outcomes or when the context is done.
func (c *Collector) Track(ctx context.Context, news <-chan types.Outcome) error {
	for {
		select {
		case o, ok := <-news:
			if !ok {
				return nil
			}
			c.Update(o)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Sort sorts outcomes in place, in ascending order of their sort keys. Invalid
// and IPv6 targets share the key 0 and thus come first; outcomes with the same
// key are kept in the order their targets were enumerated, independent of the
// order in which their probes completed.
func Sort(outcomes []types.Outcome) {
	sort.SliceStable(outcomes, func(a, b int) bool {
		ka, kb := outcomes[a].Key(), outcomes[b].Key()
		return ka < kb || (ka == kb && outcomes[a].Target.Index < outcomes[b].Target.Index)
	})
}
