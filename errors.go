// SPDX-License-Identifier: MIT
// Package mcoptions: errors.go — sentinel errors for the option-pricing engine.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are NEVER wrapped with formatted strings at definition site;
//     call sites attach context with fmt.Errorf("...: %w", err).
//   - No pricing function panics on bad input; validation failures are
//     reported through the returned error and mirrored onto Context.LastError.
package mcoptions

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates a contract parameter failed validation: a
// non-positive spot or strike, negative volatility or time to maturity, an
// out-of-range probability/correlation, or a malformed exercise schedule.
var ErrInvalidArgument = errors.New("mcoptions: invalid argument")

// ErrOutOfMemory indicates a caller-supplied Allocator could not satisfy a
// scratch-buffer request. The default Allocator never returns this; it
// exists for pooling/arena allocators that can genuinely run dry. No
// pricing call in this package requests buffers from the Allocator, so none
// of them returns it.
var ErrOutOfMemory = errors.New("mcoptions: allocation failed")

// ErrThreading indicates a parallel pricing call failed to complete on one
// or more worker goroutines.
var ErrThreading = errors.New("mcoptions: thread execution failed")

// ErrSingularSystem indicates the LSM regression's normal-equation matrix
// was numerically singular at a backward-induction step; the step is
// skipped (prior cashflow carried forward unchanged), this is not itself
// a reported pricing error.
var ErrSingularSystem = errors.New("mcoptions: singular regression system")

// wrapThreadingError attaches ErrThreading to an error surfaced by the
// parallel executor, preserving the original error for inspection via
// errors.Is/errors.As while giving callers a stable sentinel to check against.
func wrapThreadingError(err error) error {
	return fmt.Errorf("%w: %w", ErrThreading, err)
}
