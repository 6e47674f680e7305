/*
Package types defines ipchk's information model. Which is rather simple and
revolves around [Target] addresses to be swept and their [Outcome] verdicts
with a [Status] of up, down, invalid, or unsupported.

Targets and outcomes are plain values: they travel through channels between
concurrently running probes and the single result collector, so they are never
modified after creation. Any “update”, such as [Outcome.WithNames], returns a
new value instead.

# Sort Keys

Outcomes are reported in ascending order of their [Outcome.Key], which is the
numeric value of an IPv4 address in network byte order. Targets that have never
been probed (invalid addresses and IPv6 addresses) all share the key 0.
*/
package types
