// Package apierrors implements the error taxonomy from spec §7: InputError,
// InfeasibilityCode, ConfigurationError (model.ConfigurationError), and
// Cancelled. Infeasibility is data, not an error — it never leaves the
// pipeline as a Go `error`, only as an int code attached to a job.
package apierrors

import "fmt"

// InfeasibilityCode enumerates the hard-constraint rejection reasons a
// ConstraintModule may report. Values are small positive integers per
// spec §7; zero is reserved for "no rejection".
type InfeasibilityCode int

const (
	ReasonNone InfeasibilityCode = iota
	ReasonUnreachable
	ReasonTimeWindow
	ReasonCapacity
	ReasonSkills
	ReasonShiftTime
	ReasonTravelDistance
	ReasonLocking
	ReasonVehicleBinding
	ReasonDepotAffinity
	ReasonConditionalInactive
	ReasonMultiOrdering
)

// String renders a human-facing label for telemetry and solution writers.
func (c InfeasibilityCode) String() string {
	switch c {
	case ReasonNone:
		return "NONE"
	case ReasonUnreachable:
		return "REACHABLE"
	case ReasonTimeWindow:
		return "TIME_WINDOW"
	case ReasonCapacity:
		return "CAPACITY"
	case ReasonSkills:
		return "SKILLS"
	case ReasonShiftTime:
		return "SHIFT_TIME"
	case ReasonTravelDistance:
		return "TRAVEL_DISTANCE"
	case ReasonLocking:
		return "LOCKING"
	case ReasonVehicleBinding:
		return "VEHICLE_BINDING"
	case ReasonDepotAffinity:
		return "DEPOT_AFFINITY"
	case ReasonConditionalInactive:
		return "CONDITIONAL_INACTIVE"
	case ReasonMultiOrdering:
		return "MULTI_ORDERING"
	default:
		return fmt.Sprintf("CODE_%d", int(c))
	}
}

// InputError reports a malformed input format, unknown location reference,
// or inconsistent demand dimensionality discovered while parsing — it is
// reported to the caller and never surfaces inside the solver.
type InputError struct {
	Source string // e.g. "solomon", "lilim", "tsplib", "pragmatic"
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error (%s): %s", e.Source, e.Reason)
}

// Cancelled signals that a Quota was reached: not an error in the Go sense,
// but a sentinel the evolution loop checks for to stop at the next
// safepoint and emit the current population rather than a partially
// mutated solution.
var Cancelled = fmt.Errorf("solve cancelled: quota reached")
