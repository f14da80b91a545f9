// Package errs holds the core's error taxonomy (spec §7). IllegalMove is the
// only error play_move can return to a legal-but-rejected move; invariant
// violations are programming bugs and abort via Invariant instead of returning
// an error.
package errs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Reason classifies why a move was rejected.
type Reason int

const (
	Occupied Reason = iota
	Ko
	Suicide
	Eye
)

func (r Reason) String() string {
	switch r {
	case Occupied:
		return "occupied"
	case Ko:
		return "ko"
	case Suicide:
		return "suicide"
	case Eye:
		return "eye"
	default:
		return "unknown"
	}
}

// IllegalMove is returned by play_move for any game-legal but rejected move.
// It is not a programming bug: playouts expect to hit it routinely and
// silently try another candidate.
type IllegalMove struct {
	Reason Reason
}

func (e *IllegalMove) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Reason)
}

// NewIllegalMove wraps a Reason as an error, annotated with a stack via
// pkg/errors so a GTP front-end can log where in the move pipeline it was
// raised.
func NewIllegalMove(reason Reason) error {
	return errors.WithStack(&IllegalMove{Reason: reason})
}

// AsIllegalMove unwraps err to an *IllegalMove, if it is one.
func AsIllegalMove(err error) (*IllegalMove, bool) {
	var im *IllegalMove
	if errors.As(err, &im) {
		return im, true
	}
	return nil, false
}

// Invariant aborts the process with a diagnostic. It must never be reachable
// by any legal sequence of core operations; reaching it means a block,
// liberty set, or encoding invariant was violated by a bug.
func Invariant(format string, args ...interface{}) {
	panic(fmt.Sprintf("weiqi: internal invariant violated: "+format, args...))
}

// CheckResult aggregates invariant-check failures found by a validator (see
// board.CheckInvariants) without aborting — used by tests and debug tooling
// that want to see every violation in one pass instead of stopping at the
// first one.
type CheckResult struct {
	errs *multierror.Error
}

// Add records a failed invariant.
func (c *CheckResult) Add(format string, args ...interface{}) {
	c.errs = multierror.Append(c.errs, fmt.Errorf(format, args...))
}

// Err returns nil if no invariant failed, else the aggregated error.
func (c *CheckResult) Err() error {
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}
