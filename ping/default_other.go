// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

//go:build !windows

package ping

// Default returns the platform's default [Prober], which runs the system's
// ping utility.
func Default() Prober {
	return &Command{}
}
