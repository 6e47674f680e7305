// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// Outcome is the (final) sweep verdict for a single [Target].
type Outcome struct {
	Target Target   `json:"target"`
	Status Status   `json:"status"`
	Names  []string `json:"names,omitempty"` // optional PTR names of reachable targets
	err    error    // optional diagnostics why a probe failed
}

// NewOutcome returns a new Outcome for the specified target, with the given
// status and optional diagnostic error.
func NewOutcome(t Target, s Status, err error) Outcome {
	return Outcome{Target: t, Status: s, err: err}
}

// Err returns an optional error that occurred while probing the target. Such
// errors never change the status, they are for diagnosis only.
func (o Outcome) Err() error { return o.err }

// Key returns the sort key of this outcome: the numeric IPv4 address value for
// probed outcomes, and 0 for all other outcomes.
func (o Outcome) Key() uint32 {
	if !o.Status.IsProbed() {
		return 0
	}
	return o.Target.Key()
}

// WithNames returns a new Outcome with its (PTR) names set to the specified
// names.
func (o Outcome) WithNames(names []string) Outcome {
	o.Names = append([]string(nil), names...)
	return o
}
