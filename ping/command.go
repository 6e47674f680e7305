// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"net/netip"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// Command probes reachability by running the system's ping utility, without
// name resolution. An address is reachable if ping exits with status 0.
type Command struct {
	// Binary is the name or path of the ping utility; defaults to "ping".
	Binary string
	// GOOS selects the flavor of the per-reply wait flag; defaults to
	// runtime.GOOS.
	GOOS string
}

var _ Prober = (*Command)(nil)

// Args returns the ping command line arguments for the specified address,
// per-reply timeout and number of attempts.
func (c *Command) Args(addr netip.Addr, timeout time.Duration, attempts int) []string {
	goos := c.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	args := []string{"-n", "-c", strconv.Itoa(attempts)}
	switch goos {
	case "darwin":
		// macOS waits for replies in milliseconds...
		ms := timeout.Milliseconds()
		if ms < 1 {
			ms = 1
		} else if ms > 60000 {
			ms = 60000
		}
		args = append(args, "-W", strconv.FormatInt(ms, 10))
	default:
		// ...while most others wait in full seconds.
		secs := int64(timeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		args = append(args, "-W", strconv.FormatInt(secs, 10))
	}
	return append(args, addr.String())
}

// Reachable runs the ping utility and reports whether it exited successfully.
// A non-zero exit status isn't an error, but failing to run ping is.
func (c *Command) Reachable(ctx context.Context, addr netip.Addr, timeout time.Duration, attempts int) (bool, error) {
	bin := c.Binary
	if bin == "" {
		bin = "ping"
	}
	cmd := exec.CommandContext(ctx, bin, c.Args(addr, timeout, attempts)...)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return false, nil
	}
	return false, err
}
