// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siemens/ipchk/targets"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

var (
	rangeMode       *bool
	timeoutMs       *uint
	count           *uint
	concurrency     *uint
	useICMP         *bool
	unprivileged    *bool
	netnsPath       *string
	containerName   *string
	ptr             *bool
	dnsServer       *string
	progress        *bool
	spinnerInterval *time.Duration
	noColor         *bool
	debug           *bool
)

// maxTimeoutMs is the largest per-probe timeout in milliseconds that still
// fits into a time.Duration.
const maxTimeoutMs = uint64(math.MaxInt64 / int64(time.Millisecond))

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "ipchk [flags] address... | -r start end",
		Short: "ipchk checks which hosts are up, reporting them in address order",
		Long: `ipchk checks the reachability of a list of addresses or of an inclusive
range of IPv4 addresses, pinging many hosts concurrently, and then reports
the results in ascending address order.`,
		Example: `  ipchk 192.168.1.1 192.168.1.2 1.1.1.1
  ipchk -r 172.16.0.1 172.16.1.254 -t 750 -n 3 -c 256`,
		Version: "1.0",
		Args: func(_ *cobra.Command, args []string) error {
			if *rangeMode {
				if len(args) != 2 {
					return &usageError{errors.New("--range requires exactly two IPv4 addresses: start end")}
				}
				if _, err := targets.ParseRange(args[0], args[1]); err != nil {
					return &usageError{err}
				}
				return nil
			}
			if len(args) == 0 {
				return &usageError{errors.New("missing address(es) to check")}
			}
			return nil
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *netnsPath != "" && *containerName != "" {
				return &usageError{errors.New("--netns and --container are mutually exclusive")}
			}
			if uint64(*timeoutMs) > maxTimeoutMs {
				return &usageError{fmt.Errorf("--timeout must not exceed %dms", maxTimeoutMs)}
			}
			if *spinnerInterval < 10*time.Millisecond {
				return &usageError{fmt.Errorf("--spinner must be at least 10ms")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			// From here on, errors aren't caused by wrong usage anymore.
			cmd.SilenceUsage = true
			var tgts targets.Enumerator
			if *rangeMode {
				r, err := targets.ParseRange(args[0], args[1])
				if err != nil {
					return &usageError{err}
				}
				tgts = r
			} else {
				tgts = targets.List(args)
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return SweepAndReport(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), tgts)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	// Sets up the flags.
	flags := rootCmd.PersistentFlags()
	rangeMode = flags.BoolP(
		"range", "r", false, "check the inclusive IPv4 range between the two addresses given")
	timeoutMs = flags.UintP(
		"timeout", "t", 2000, "per-probe timeout in milliseconds")
	count = flags.UintP(
		"count", "n", 4, "probes per host; succeeds on first reply")
	concurrency = flags.UintP(
		"concurrency", "c", 128, "maximum number of hosts checked simultaneously")
	useICMP = flags.Bool(
		"icmp", false, "send native ICMP echo requests instead of running ping")
	unprivileged = flags.Bool(
		"unprivileged", false, "send unprivileged UDP pings (implies --icmp)")
	netnsPath = flags.String(
		"netns", "", "check from inside the network namespace at this path (implies --icmp)")
	containerName = flags.String(
		"container", "", "check from inside the network namespace of this Docker container (implies --icmp)")
	ptr = flags.Bool(
		"ptr", false, "show the DNS PTR names of hosts that are up")
	dnsServer = flags.String(
		"dns", "", "DNS server host:port for --ptr lookups (default: first nameserver from /etc/resolv.conf)")
	progress = flags.Bool(
		"progress", false, "show progress on stderr while checking")
	spinnerInterval = flags.Duration(
		"spinner", 100*time.Millisecond, "progress spinner interval")
	noColor = flags.Bool(
		"no-color", false, "never colorize the results")
	debug = flags.Bool(
		"debug", false, "enable debugging output")
	return
}
