package brahe

import "fmt"

// DomainError reports input for which the requested computation is
// mathematically undefined, such as a degenerate orbit or a zero-magnitude
// vector that would need to be normalized.
type DomainError struct {
	Op  string // operation that rejected the input
	Msg string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// ConvergenceError reports that an iterative solver exhausted its iteration
// budget before reaching the requested tolerance.
type ConvergenceError struct {
	Op         string
	Iterations int
	Tolerance  float64
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("%s: no convergence to %g after %d iterations", e.Op, e.Tolerance, e.Iterations)
}

// TimeValueError reports malformed calendar input or an instant outside the
// range covered by the leap-second table.
type TimeValueError struct {
	Value string
	Msg   string
}

func (e TimeValueError) Error() string {
	if e.Value == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Value, e.Msg)
}
