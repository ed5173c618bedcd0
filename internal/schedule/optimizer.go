package schedule

import (
	"fmt"

	"classscheduler/internal/cp"
)

// Optimizer is the exact strategy. It formulates section selection as a
// boolean constraint model: one selection variable per candidate section,
// exactly-one per course, mutual exclusion for overlapping sections and one
// indicator per active day for "day off" and "online only". Solving is
// delegated to a pluggable cp.Solver backend.
type Optimizer struct {
	solver cp.Solver
}

func NewOptimizer(solver cp.Solver) *Optimizer {
	return &Optimizer{solver: solver}
}

// owner ties a decision variable back to the section it selects.
type owner struct {
	course  int
	section int
}

func (optimizer *Optimizer) Schedule(courses []Course, opts Options) (*Result, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	// Nothing to schedule is not a schedule.
	if len(courses) == 0 {
		return &Result{Status: StatusInfeasible}, nil
	}
	courses = dedupeCourses(courses)

	days := ActiveDays(opts.IncludeWeekend)
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	weights := opts.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}

	model := cp.NewModel()
	vars := make([]cp.Var, 0)
	owners := make([]owner, 0)

	for i, course := range courses {
		group := make([]cp.Var, len(course.Sections))
		for j := range course.Sections {
			v := model.NewBool(fmt.Sprintf("%s/%d", course.ID, j))
			group[j] = v
			vars = append(vars, v)
			owners = append(owners, owner{course: i, section: j})
		}
		model.AddExactlyOne(group)
	}

	optimizer.addDisjointness(model, courses, vars, owners, days)
	optimizer.addDayIndicators(model, courses, vars, owners, days, weights)

	solution, err := optimizer.solver.Solve(model, budget)
	if err != nil {
		return nil, err
	}
	if solution == nil {
		return &Result{Status: StatusInfeasible}, nil
	}

	assignment := make(Assignment, len(courses))
	for k, v := range vars {
		if solution.Values[v] {
			chosen := owners[k]
			assignment[courses[chosen.course].ID] = courses[chosen.course].Sections[chosen.section]
		}
	}

	status := StatusSolved
	if !solution.Optimal {
		status = StatusTimedOut
	}
	// The evaluator, not the solver objective, is the source of truth for the
	// reported score.
	return &Result{
		Assignment: assignment,
		Score:      Evaluate(assignment, days),
		Status:     status,
	}, nil
}

// addDisjointness forbids every cross-course pair of sections whose intervals
// overlap on a shared active day. Same-course pairs are already mutually
// exclusive through the exactly-one group.
func (optimizer *Optimizer) addDisjointness(model *cp.Model, courses []Course, vars []cp.Var, owners []owner, days []Weekday) {
	// Excluded-day intervals never cause a conflict; mirror the checker's
	// drop-silently policy by only comparing active-day intervals.
	activeDay := make(map[Weekday]bool, len(days))
	for _, day := range days {
		activeDay[day] = true
	}

	overlap := func(a, b Section) bool {
		for _, first := range a.Intervals() {
			if !activeDay[first.Day] {
				continue
			}
			for _, second := range b.Intervals() {
				if first.Overlaps(second) {
					return true
				}
			}
		}
		return false
	}

	for i := 0; i < len(vars)-1; i++ {
		for j := i + 1; j < len(vars); j++ {
			if owners[i].course == owners[j].course {
				continue
			}
			a := courses[owners[i].course].Sections[owners[i].section]
			b := courses[owners[j].course].Sections[owners[j].section]
			if overlap(a, b) {
				model.AddConflict(vars[i], vars[j])
			}
		}
	}
}

// addDayIndicators introduces one "day off" indicator per active day (no
// selected section meets that day) and, where at least one online candidate
// exists, one "online only" indicator (no selected in-person meeting, at
// least one selected online meeting).
func (optimizer *Optimizer) addDayIndicators(model *cp.Model, courses []Course, vars []cp.Var, owners []owner, days []Weekday, weights Weights) {
	meets := make(map[Weekday][]cp.Var, len(days))
	inPerson := make(map[Weekday][]cp.Var, len(days))
	online := make(map[Weekday][]cp.Var, len(days))
	activeDay := make(map[Weekday]bool, len(days))
	for _, day := range days {
		activeDay[day] = true
	}

	for k, v := range vars {
		section := courses[owners[k].course].Sections[owners[k].section]
		seen := make(map[Weekday]bool, 2)
		for _, interval := range section.Intervals() {
			if !activeDay[interval.Day] {
				continue
			}
			if !seen[interval.Day] {
				meets[interval.Day] = append(meets[interval.Day], v)
				seen[interval.Day] = true
			}
			if interval.Modality == InPerson {
				inPerson[interval.Day] = append(inPerson[interval.Day], v)
			} else {
				online[interval.Day] = append(online[interval.Day], v)
			}
		}
	}

	for _, day := range days {
		dayOff := model.NewBool(fmt.Sprintf("day_off_%v", day))
		model.AddIndicator(dayOff, meets[day], nil, weights.DayOff)

		// Without an online candidate the day can never be online-only.
		if len(online[day]) > 0 {
			onlineOnly := model.NewBool(fmt.Sprintf("online_only_%v", day))
			model.AddIndicator(onlineOnly, dedupeVars(inPerson[day]), dedupeVars(online[day]), weights.OnlineOnly)
		}
	}
}

// dedupeVars collapses repeats introduced by sections meeting twice on the
// same day.
func dedupeVars(vars []cp.Var) []cp.Var {
	seen := make(map[cp.Var]bool, len(vars))
	deduped := make([]cp.Var, 0, len(vars))
	for _, v := range vars {
		if seen[v] {
			continue
		}
		seen[v] = true
		deduped = append(deduped, v)
	}
	return deduped
}
