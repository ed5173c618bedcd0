package cp

import (
	"time"

	gophersat "github.com/crillab/gophersat/solver"
)

// gophersatSolver encodes the model as pseudo-boolean constraints for the
// in-process gophersat solver and tightens the objective iteratively: after
// each satisfying assignment it demands a strictly larger objective until the
// problem turns unsatisfiable (proof of optimality) or the budget runs out.
type gophersatSolver struct{}

func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(model *Model, budget time.Duration) (*Solution, error) {
	deadline := time.Now().Add(budget)
	base := encode(model)

	values := solveOnce(model, base, nil)
	if values == nil {
		return nil, nil
	}

	best := values
	objective := model.Objective(best)
	ceiling := model.MaxObjective()

	lits, weights := objectiveTerms(model)
	for objective < ceiling {
		// One solver run per tightening step; the budget is re-checked in
		// between, which is the finest granularity gophersat exposes.
		if !time.Now().Before(deadline) {
			model.SettleIndicators(best)
			return &Solution{Values: best, Objective: objective, Optimal: false}, nil
		}
		tighter := gophersat.GtEq(lits, weights, objective+1)
		values = solveOnce(model, base, []gophersat.PBConstr{tighter})
		if values == nil {
			break
		}
		best = values
		objective = model.Objective(best)
	}

	model.SettleIndicators(best)
	return &Solution{Values: best, Objective: objective, Optimal: true}, nil
}

// solveOnce runs one satisfiability check over the base constraints plus any
// extra ones, returning a complete value vector or nil when unsatisfiable.
func solveOnce(model *Model, base, extra []gophersat.PBConstr) []bool {
	constrs := make([]gophersat.PBConstr, 0, len(base)+len(extra))
	constrs = append(constrs, base...)
	constrs = append(constrs, extra...)
	if len(constrs) == 0 {
		// An unconstrained model is trivially satisfiable.
		return make([]bool, model.NumVars())
	}

	problem := gophersat.ParsePBConstrs(constrs)
	backend := gophersat.New(problem)
	if backend.Solve() != gophersat.Sat {
		return nil
	}

	// The problem only knows variables that appear in some constraint; pad
	// the tail so callers can index by Var.
	values := make([]bool, model.NumVars())
	copy(values, backend.Model())
	return values
}

// encode translates the typed model into pseudo-boolean form. Variable v maps
// onto the 1-based literal v+1.
func encode(model *Model) []gophersat.PBConstr {
	constrs := make([]gophersat.PBConstr, 0,
		2*len(model.Groups())+len(model.Conflicts())+2*len(model.Indicators()))

	for _, group := range model.Groups() {
		lits := make([]int, len(group))
		for i, v := range group {
			lits[i] = lit(v)
		}
		constrs = append(constrs, gophersat.AtLeast(lits, 1), gophersat.AtMost(lits, 1))
	}

	for _, conflict := range model.Conflicts() {
		constrs = append(constrs, gophersat.PropClause(-lit(conflict[0]), -lit(conflict[1])))
	}

	// Indicator clauses are one-sided: they only cap when the indicator may
	// hold. The objective is always re-evaluated semantically, so a backend
	// leaving an indicator false never under-reports a solution.
	for _, indicator := range model.Indicators() {
		for _, blocker := range indicator.Blockers {
			constrs = append(constrs, gophersat.PropClause(-lit(indicator.V), -lit(blocker)))
		}
		if len(indicator.AnyOf) > 0 {
			clause := make([]int, 0, len(indicator.AnyOf)+1)
			clause = append(clause, -lit(indicator.V))
			for _, v := range indicator.AnyOf {
				clause = append(clause, lit(v))
			}
			constrs = append(constrs, gophersat.PropClause(clause...))
		}
	}

	return constrs
}

func objectiveTerms(model *Model) (lits []int, weights []int) {
	for _, indicator := range model.Indicators() {
		lits = append(lits, lit(indicator.V))
		weights = append(weights, indicator.Weight)
	}
	return lits, weights
}

func lit(v Var) int {
	return int(v) + 1
}
