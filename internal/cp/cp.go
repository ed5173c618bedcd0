// Package cp holds a small boolean constraint model (decision variables,
// exactly-one groups, pairwise mutual exclusions and a weighted-indicator
// objective) together with pluggable solving backends. The scheduling engine
// only builds models and reads solutions; the solving algorithm behind the
// Solver interface is replaceable.
package cp

import "github.com/samber/lo"

// Var identifies a boolean decision variable within one Model. Values are
// dense and start at zero.
type Var int

// Indicator is an objective term. Its variable may only be true when no
// blocker is true and, if AnyOf is non-empty, at least one AnyOf variable is
// true. Backends maximize the weighted sum of true indicators.
type Indicator struct {
	V        Var
	Blockers []Var
	AnyOf    []Var
	Weight   int
}

// Model is a constraint model under construction. It is not safe for
// concurrent mutation; build it, then hand it to a Solver.
type Model struct {
	names      []string
	groups     [][]Var
	conflicts  [][2]Var
	indicators []Indicator
}

func NewModel() *Model {
	return &Model{}
}

// NewBool introduces a fresh decision variable.
func (model *Model) NewBool(name string) Var {
	model.names = append(model.names, name)
	return Var(len(model.names) - 1)
}

func (model *Model) NumVars() int {
	return len(model.names)
}

func (model *Model) Name(v Var) string {
	return model.names[v]
}

// AddExactlyOne constrains exactly one of vars to be true.
func (model *Model) AddExactlyOne(vars []Var) {
	model.groups = append(model.groups, vars)
}

// AddConflict forbids a and b from being true simultaneously.
func (model *Model) AddConflict(a, b Var) {
	model.conflicts = append(model.conflicts, [2]Var{a, b})
}

// AddIndicator registers an objective term; see Indicator.
func (model *Model) AddIndicator(v Var, blockers, anyOf []Var, weight int) {
	model.indicators = append(model.indicators, Indicator{
		V:       v,
		Blockers: blockers,
		AnyOf:    anyOf,
		Weight:   weight,
	})
}

// MaxObjective is the unreachable-or-better upper bound on the objective: the
// sum of every indicator weight.
func (model *Model) MaxObjective() int {
	return lo.SumBy(model.indicators, func(indicator Indicator) int { return indicator.Weight })
}

// Groups exposes the exactly-one groups for backends.
func (model *Model) Groups() [][]Var {
	return model.groups
}

// Conflicts exposes the mutual exclusions for backends.
func (model *Model) Conflicts() [][2]Var {
	return model.conflicts
}

// Indicators exposes the objective terms for backends.
func (model *Model) Indicators() []Indicator {
	return model.indicators
}

// Objective scores a complete assignment of the decision variables by
// evaluating every indicator semantically, independent of the value a backend
// chose for the indicator variable itself.
func (model *Model) Objective(values []bool) int {
	objective := 0
	for _, indicator := range model.indicators {
		if model.indicatorHolds(indicator, values) {
			objective += indicator.Weight
		}
	}
	return objective
}

// SettleIndicators rewrites indicator variables to their semantic values so
// that solutions coming from different backends agree.
func (model *Model) SettleIndicators(values []bool) {
	for _, indicator := range model.indicators {
		values[indicator.V] = model.indicatorHolds(indicator, values)
	}
}

func (model *Model) indicatorHolds(indicator Indicator, values []bool) bool {
	for _, blocker := range indicator.Blockers {
		if values[blocker] {
			return false
		}
	}
	if len(indicator.AnyOf) == 0 {
		return true
	}
	return lo.SomeBy(indicator.AnyOf, func(v Var) bool { return values[v] })
}
