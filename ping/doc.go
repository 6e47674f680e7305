/*
Package ping implements the reachability probes of ipchk.

A [Prober] answers a single question: did an IPv4 address reply to any of a
limited number of echo requests, each with its own timeout? [Classify] puts a
Prober to work on a [types.Target], but only after weeding out invalid
addresses and IPv6 addresses, which are never probed.

	outcome := ping.Classify(ctx, ping.Default(), target, 2*time.Second, 4)

There are two Probers:

  - [Command] runs the system's ping utility and judges by its exit status.
  - [ICMP] sends native ICMP echo requests, optionally from inside a
    different network namespace.

[Default] selects the platform's Prober at build time.

# Acknowledgements

Native ICMP echo requests are sent using [go-ping/ping].

[go-ping/ping]: https://github.com/go-ping/ping
*/
package ping
