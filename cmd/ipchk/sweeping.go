// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"time"

	"github.com/siemens/ipchk/dnsworker"
	"github.com/siemens/ipchk/mobynet"
	"github.com/siemens/ipchk/ping"
	"github.com/siemens/ipchk/sweep"
	"github.com/siemens/ipchk/targets"

	"github.com/docker/docker/client"
	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/log"
)

// defaultProber returns the prober to use unless the CLI flags ask for native
// ICMP; for CLI unit tests...
var defaultProber = ping.Default

// ptrWorkers is the number of DNS connections for looking up PTR names.
const ptrWorkers = 8

// SweepAndReport sweeps the specified targets and then renders the outcomes in
// address order to w. Progress, if enabled, is rendered to the separate
// progress writer. If the sweep gets interrupted, the outcomes so far are still
// rendered.
func SweepAndReport(ctx context.Context, w io.Writer, progressw io.Writer, tgts targets.Enumerator) error {
	netnsref := *netnsPath
	if *containerName != "" {
		var err error
		netnsref, err = containerNetns(ctx, *containerName)
		if err != nil {
			return err
		}
	}

	timeout := time.Duration(*timeoutMs) * time.Millisecond
	if timeout < time.Millisecond {
		timeout = time.Millisecond
	}
	opts := []sweep.Option{
		sweep.WithTimeout(timeout),
		sweep.WithAttempts(atLeastOne(*count)),
		sweep.WithConcurrency(atLeastOne(*concurrency)),
	}

	if *ptr {
		server, err := resolverAddr()
		if err != nil {
			return err
		}
		log.Debugf("looking up PTR names using DNS server %s", server)
		dnsclnt := dns.Client{Timeout: timeout}
		pool, err := dnsworker.New(ctx, ptrWorkers, &dnsclnt, server,
			dnsworker.InNetworkNamespace(netnsref))
		if err != nil {
			return fmt.Errorf("cannot connect to DNS server %s: %w", server, err)
		}
		defer pool.StopWait()
		opts = append(opts, sweep.WithNames(pool))
	}

	var prog *progressor
	if *progress {
		prog = newProgress(progressw, *spinnerInterval)
		prog.Update(0, tgts.Len())
		opts = append(opts, sweep.WithProgress(prog.Update))
	}

	outcomes, err := sweep.New(newProber(netnsref), opts...).Sweep(ctx, tgts)
	if prog != nil {
		prog.Stop()
	}
	newRenderer(w, !*noColor).Render(outcomes)
	if err != nil {
		return fmt.Errorf("sweep interrupted: %w", err)
	}
	return nil
}

// newProber returns the prober as selected by the CLI flags.
func newProber(netnsref string) ping.Prober {
	if !*useICMP && !*unprivileged && netnsref == "" {
		return defaultProber()
	}
	var opts []ping.ICMPOption
	if *unprivileged {
		opts = append(opts, ping.AsUnprivileged())
	}
	if netnsref != "" {
		log.Debugf("probing from network namespace %s", netnsref)
		opts = append(opts, ping.InNetworkNamespace(netnsref))
	}
	return ping.NewICMP(opts...)
}

// containerNetns returns the path of the network namespace of the named
// Docker container.
func containerNetns(ctx context.Context, name string) (string, error) {
	cln, err := client.NewClientWithOpts(
		client.WithHost("unix:///var/run/docker.sock"),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return "", fmt.Errorf("cannot connect to the Docker daemon: %w", err)
	}
	defer cln.Close()
	return mobynet.ContainerNetns(ctx, cln, name)
}

// resolverAddr returns the DNS server address to use for PTR lookups: either
// as explicitly specified, or the first nameserver of the system's resolver
// configuration.
func resolverAddr() (string, error) {
	if *dnsServer != "" {
		if _, _, err := net.SplitHostPort(*dnsServer); err != nil {
			return net.JoinHostPort(*dnsServer, "53"), nil
		}
		return *dnsServer, nil
	}
	config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", fmt.Errorf("cannot determine DNS server: %w", err)
	}
	if len(config.Servers) == 0 {
		return "", errors.New("cannot determine DNS server: no nameserver in /etc/resolv.conf")
	}
	return net.JoinHostPort(config.Servers[0], config.Port), nil
}

// atLeastOne returns n clamped to 1..math.MaxInt.
func atLeastOne(n uint) int {
	if n < 1 {
		return 1
	}
	if uint64(n) > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
