package planner

import "errors"

var (
	// ErrNotFound means an operation referenced an id absent from the
	// relevant collection.
	ErrNotFound = errors.New("not found")

	// ErrNoActiveRoute means a waypoint operation ran with no route
	// selected. Having no active route is a valid state, not an error, so
	// this only surfaces from operations that need one.
	ErrNoActiveRoute = errors.New("no route selected")

	// ErrInsufficientWaypoints is returned by ShuffleMiddle below three
	// waypoints.
	ErrInsufficientWaypoints = errors.New("at least 3 waypoints are required to optimize")
)

// ValidationError reports rejected user input: a blank name, a non-positive
// amount, a budget that is not a finite non-negative number.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validation(reason string) error { return &ValidationError{Reason: reason} }
