// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"
)

func main() {
	// This is cobra boilerplate documentation, except for the missing call to
	// fmt.Println(err) which in the original boilerplate is just plain wrong:
	// it renders the error message twice, see also:
	// https://github.com/spf13/cobra/issues/304
	if err := newRootCmd().Execute(); err != nil {
		osExit(exitCode(err))
	}
}

// For CLI unit tests...
var osExit = os.Exit

// exitCode returns 2 for usage errors, and 1 for all other errors.
func exitCode(err error) int {
	var uerr *usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

// usageError signals malformed or missing CLI arguments, as opposed to errors
// while sweeping.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
