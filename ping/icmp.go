// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"math"
	"net/netip"
	"time"

	"github.com/go-ping/ping"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ICMP probes reachability by sending native ICMP echo requests (or UDP-based
// “pings” when unprivileged).
type ICMP struct {
	unprivileged bool               // if true, uses UDP-based pings instead of privileged ICMPs.
	netns        relations.Relation // network namespace to ping from, or nil.
}

var _ Prober = (*ICMP)(nil)

// ICMPOption can be passed to NewICMP when creating new ICMP probers.
type ICMPOption func(*ICMP)

// NewICMP returns a new native ICMP [Prober].
//
// To ping from a network namespace different to that of the OS-level thread
// of the caller specify the InNetworkNamespace option and pass it a
// filesystem path that must reference a network namespace (such as
// "/proc/666/ns/net").
func NewICMP(options ...ICMPOption) *ICMP {
	p := &ICMP{}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// InNetworkNamespace optionally runs ICMP probes inside the network namespace
// referenced by the specified filesystem path.
func InNetworkNamespace(netnsref string) ICMPOption {
	return func(p *ICMP) {
		if netnsref == "" {
			p.netns = nil
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// AsUnprivileged tells the prober to carry out unprivileged pings using UDP
// instead of ICMP packets.
func AsUnprivileged() ICMPOption {
	return func(p *ICMP) {
		p.unprivileged = true
	}
}

// errNoReply signals that none of the echo requests got answered.
var errNoReply = errors.New("no replies")

// Reachable sends up to attempts echo requests, one every timeout, and returns
// true as soon as the first echo reply arrives.
func (p *ICMP) Reachable(ctx context.Context, addr netip.Addr, timeout time.Duration, attempts int) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	probe := func() interface{} {
		// A quick and non-blocking check to see if the context has been
		// cancelled before we start our work...
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pinger, err := ping.NewPinger(addr.String())
		if err != nil {
			return err
		}
		pinger.SetPrivileged(!p.unprivileged)
		pinger.Count = attempts
		pinger.Interval = timeout
		// The last echo request gets its full timeout, too; saturate instead
		// of overflowing for huge timeouts.
		pinger.Timeout = time.Duration(math.MaxInt64)
		if timeout <= pinger.Timeout/time.Duration(attempts) {
			pinger.Timeout = timeout * time.Duration(attempts)
		}
		pinger.OnRecv = func(*ping.Packet) { pinger.Stop() }
		// Monitor the context while pinging; done works "the other way round"
		// in that it terminates the monitoring.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				pinger.Stop()
			case <-done:
			}
		}()
		if err = pinger.Run(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if pinger.Statistics().PacketsRecv == 0 {
			return errNoReply
		}
		return nil
	}
	// Run the probe in the requested network namespace, if necessary. lxkns'
	// ops.Execute differentiates between a namespace switching error and the
	// result of the function called in the switched namespaces; we use the
	// latter to return probe errors.
	var res interface{}
	if p.netns != nil {
		var err error
		res, err = ops.Execute(probe, p.netns)
		if err != nil {
			return false, err
		}
	} else {
		res = probe()
	}
	if res == nil {
		return true, nil
	}
	if errors.Is(res.(error), errNoReply) {
		return false, nil
	}
	return false, res.(error)
}
