// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

// Default returns the platform's default [Prober]: Windows has no ping
// utility with usable exit codes, so we use native ICMP echo requests.
func Default() Prober {
	return NewICMP()
}
