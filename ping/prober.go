// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"net/netip"
	"time"

	"github.com/siemens/ipchk/types"

	"github.com/thediveo/lxkns/log"
)

// Prober tests the reachability of a single IPv4 address. A Prober sends up
// to the specified number of attempts, waiting for each attempt at most for
// the specified timeout, and succeeds on the first reply.
//
// Probers must be safe for concurrent use.
type Prober interface {
	// Reachable returns true if the address replied. Any error returned is
	// for diagnosis only: an error always implies false, but the reverse
	// isn't true.
	Reachable(ctx context.Context, addr netip.Addr, timeout time.Duration, attempts int) (bool, error)
}

// ProberFunc adapts an ordinary function into a [Prober].
type ProberFunc func(ctx context.Context, addr netip.Addr, timeout time.Duration, attempts int) (bool, error)

// Reachable calls f(ctx, addr, timeout, attempts).
func (f ProberFunc) Reachable(ctx context.Context, addr netip.Addr, timeout time.Duration, attempts int) (bool, error) {
	return f(ctx, addr, timeout, attempts)
}

// Classify returns the verdict for the specified target. Only IPv4 targets
// are handed to the Prober: invalid addresses and IPv6 addresses are
// classified without probing.
//
// Probe failures are not distinguished from genuinely unreachable targets:
// both result in [types.Down], with the probe failure attached as diagnostic
// error to the outcome.
func Classify(ctx context.Context, p Prober, t types.Target, timeout time.Duration, attempts int) types.Outcome {
	switch t.Family() {
	case types.InvalidFamily:
		return types.NewOutcome(t, types.Invalid, nil)
	case types.IPv6:
		return types.NewOutcome(t, types.UnsupportedFamily, nil)
	}
	if attempts < 1 {
		attempts = 1
	}
	up, err := p.Reachable(ctx, t.IP(), timeout, attempts)
	if err != nil {
		log.Debugf("probing %s failed: %s", t.Address, err.Error())
		return types.NewOutcome(t, types.Down, err)
	}
	if !up {
		return types.NewOutcome(t, types.Down, nil)
	}
	return types.NewOutcome(t, types.Up, nil)
}
