package cp

import "time"

// dfsSolver is an in-process branch-and-bound backend. It branches over the
// exactly-one groups in order, prunes branches that trip a mutual exclusion
// or that cannot beat the incumbent objective, and proves optimality whenever
// it drains the search space before the deadline. The solver value itself
// holds no state; every Solve call runs on its own search, so one solver may
// serve concurrent invocations.
type dfsSolver struct{}

func NewDFSSolver() Solver {
	return &dfsSolver{}
}

const deadlineCheckMask = 0x3ff

// dfsSearch is the mutable state of a single Solve call.
type dfsSearch struct {
	model    *Model
	adjacent map[Var][]Var
	deadline time.Time
	nodes    uint64
	timedOut bool

	values  []bool
	best    []bool
	bestObj int
	found   bool
}

func (solver *dfsSolver) Solve(model *Model, budget time.Duration) (*Solution, error) {
	search := &dfsSearch{
		model:    model,
		adjacent: make(map[Var][]Var),
		deadline: time.Now().Add(budget),
		values:   make([]bool, model.NumVars()),
	}
	for _, conflict := range model.Conflicts() {
		search.adjacent[conflict[0]] = append(search.adjacent[conflict[0]], conflict[1])
		search.adjacent[conflict[1]] = append(search.adjacent[conflict[1]], conflict[0])
	}

	search.descend(0)

	if !search.found {
		return nil, nil
	}
	model.SettleIndicators(search.best)
	return &Solution{
		Values:    search.best,
		Objective: search.bestObj,
		Optimal:   !search.timedOut,
	}, nil
}

func (search *dfsSearch) descend(group int) {
	search.nodes++
	if search.nodes&deadlineCheckMask == 0 && time.Now().After(search.deadline) {
		search.timedOut = true
		return
	}
	if search.found && search.bound() <= search.bestObj {
		return
	}

	groups := search.model.Groups()
	if group == len(groups) {
		objective := search.model.Objective(search.values)
		if !search.found || objective > search.bestObj {
			search.found = true
			search.bestObj = objective
			search.best = append([]bool(nil), search.values...)
		}
		return
	}

	for _, candidate := range groups[group] {
		if search.blocked(candidate) {
			continue
		}
		search.values[candidate] = true
		search.descend(group + 1)
		search.values[candidate] = false
		if search.timedOut {
			return
		}
	}
}

// blocked reports whether selecting candidate would violate a mutual
// exclusion against an already-selected variable.
func (search *dfsSearch) blocked(candidate Var) bool {
	for _, other := range search.adjacent[candidate] {
		if search.values[other] {
			return true
		}
	}
	return false
}

// bound is an optimistic objective estimate for the current partial
// selection: indicators whose blockers already fired can no longer count.
func (search *dfsSearch) bound() int {
	total := 0
	for _, indicator := range search.model.Indicators() {
		dead := false
		for _, blocker := range indicator.Blockers {
			if search.values[blocker] {
				dead = true
				break
			}
		}
		if !dead {
			total += indicator.Weight
		}
	}
	return total
}
