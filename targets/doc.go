/*
Package targets enumerates the [types.Target] addresses of a sweep, either from
a caller-supplied list of address strings or lazily from an inclusive IPv4
address range.

	e := targets.List([]string{"10.0.0.1", "127.0.0.1"})
	r, err := targets.ParseRange("10.0.1.254", "10.0.0.1") // swapped into ascending order

Enumerators are single-pass: once exhausted, they stay exhausted.
*/
package targets
