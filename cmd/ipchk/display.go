// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/siemens/ipchk/types"

	"github.com/muesli/termenv"
)

// renderer renders sweep outcomes, one line per outcome.
type renderer struct {
	out *termenv.Output
}

// newRenderer returns a renderer rendering to the specified io.Writer. Even
// when asked to colorize, colors are used only if the writer is a terminal
// supporting them.
func newRenderer(w io.Writer, colorize bool) *renderer {
	var opts []termenv.OutputOption
	if !colorize {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &renderer{out: termenv.NewOutput(w, opts...)}
}

// Render the given outcomes in the order given.
func (r *renderer) Render(outcomes []types.Outcome) {
	for _, o := range outcomes {
		fmt.Fprintln(r.out, r.line(o))
	}
}

// line returns the report line for a single outcome, such as "10.0.0.1 is
// down".
func (r *renderer) line(o types.Outcome) string {
	addr := o.Target.Address
	switch o.Status {
	case types.Up:
		if len(o.Names) > 0 {
			names := make([]string, 0, len(o.Names))
			for _, name := range o.Names {
				names = append(names, strings.TrimSuffix(name, "."))
			}
			addr += " (" + strings.Join(names, ", ") + ")"
		}
		return r.upAddressStyle(addr) + " is " + r.upStyle(o.Status.String())
	case types.UnsupportedFamily:
		return addr + " is " + r.unsupportedStyle(o.Status.String())
	default:
		return addr + " is " + r.downStyle(o.Status.String())
	}
}
