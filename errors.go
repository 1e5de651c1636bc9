package lotsizing

import "fmt"

// DimensionError reports an instance whose shape does not match its declared sizes.
type DimensionError struct {
	Field string
	Got   int
	Want  int
}

func (e *DimensionError) Error() string {
	if e.Want <= 0 {
		return fmt.Sprintf("dimension error: %s must be positive, got %d", e.Field, e.Got)
	}
	return fmt.Sprintf("dimension error: %s has %d entries, expected %d", e.Field, e.Got, e.Want)
}

// DemandError reports a demand entry outside {0,1}.
type DemandError struct {
	Type   int
	Period int
	Value  int
}

func (e *DemandError) Error() string {
	return fmt.Sprintf("demand of type %d in period %d must be 0 or 1, got %d", e.Type, e.Period, e.Value)
}

type InvalidCostError struct {
	Reason string
}

func (e *InvalidCostError) Error() string {
	return "invalid cost: " + e.Reason
}

// InfeasibleModelError is returned when the solver proves that no schedule meets the demand.
type InfeasibleModelError struct {
	Formulation string
}

func (e *InfeasibleModelError) Error() string {
	return fmt.Sprintf("model (%s) is infeasible", e.Formulation)
}

// SolverError carries the reason reported by a solver that failed without a verdict.
type SolverError struct {
	Reason string
}

func (e *SolverError) Error() string {
	return "solver error: " + e.Reason
}
