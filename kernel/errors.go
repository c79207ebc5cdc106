package kernel

import "errors"

// Error taxonomy (spec §7). These are sentinel kinds, not wrapper types —
// callers compare with errors.Is the way the teacher repo compares against
// ErrNotSatisfied in synapse_runtime.go.
var (
	// ErrInvalidInput marks malformed patterns, arity mismatches, or
	// out-of-range truth values. Recoverable: the call is rejected without
	// any state change.
	ErrInvalidInput = errors.New("kernel: invalid input")

	// ErrInvariantViolation marks a premise id that does not exist in the
	// hypergraph and is not being created in the same call.
	ErrInvariantViolation = errors.New("kernel: invariant violation")

	// ErrCapacity marks a silent trim/eviction: event queue overflow,
	// belief-list trim, LRU eviction. EventQueue.Push returns it on
	// overflow; the kernel's own callers do not pass it on, they emit a
	// "log" bus event at level info instead.
	ErrCapacity = errors.New("kernel: capacity exceeded")

	// ErrTimeout marks an ask() deadline reached with no matching edge.
	ErrTimeout = errors.New("kernel: ask timed out")

	// ErrNotSatisfied marks a rule condition that did not fire. No kernel
	// function returns it: the dispatch loop reads Rule.Condition's bool.
	ErrNotSatisfied = errors.New("kernel: rule condition not satisfied")

	// ErrUnknownEdge marks a lookup for an id the hypergraph does not hold.
	ErrUnknownEdge = errors.New("kernel: unknown edge id")

	// ErrCancelled marks an ask() future cancelled by its caller.
	ErrCancelled = errors.New("kernel: ask cancelled")
)
