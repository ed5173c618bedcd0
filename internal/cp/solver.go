package cp

import "time"

// Solution is one satisfying assignment of a Model. Optimal is set when the
// backend proved no better objective exists before its budget ran out.
type Solution struct {
	Values    []bool
	Objective int
	Optimal   bool
}

// Solver solves a Model within a wall-clock budget. A nil solution with a nil
// error means the model is provably infeasible. Budget exhaustion with at
// least one feasible solution yields that solution with Optimal unset;
// cancellation granularity is whatever the backend exposes.
type Solver interface {
	Solve(model *Model, budget time.Duration) (*Solution, error)
}
