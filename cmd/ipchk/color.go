// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

// The styles of the different parts of a report line.
func (r *renderer) upAddressStyle(s string) string {
	return r.out.String(s).Bold().String()
}

func (r *renderer) upStyle(s string) string {
	return r.out.String(s).Foreground(termenv.ANSIGreen).Bold().String()
}

func (r *renderer) downStyle(s string) string {
	return r.out.String(s).Foreground(termenv.ANSIRed).Bold().String()
}

func (r *renderer) unsupportedStyle(s string) string {
	return r.out.String(s).Foreground(termenv.ANSIYellow).String()
}
