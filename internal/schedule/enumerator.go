package schedule

import (
	"math/rand"
	"slices"
	"time"
)

// Enumerator is the best-effort strategy: it walks the cartesian product of
// course-section choices under a wall-clock budget, keeping the best-scoring
// conflict-free combination seen. With C courses of up to S sections each the
// space is S^C, so completeness is deliberately traded for responsiveness.
type Enumerator struct{}

func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

func (enumerator *Enumerator) Schedule(courses []Course, opts Options) (*Result, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	// Nothing to schedule is not a schedule.
	if len(courses) == 0 {
		return &Result{Status: StatusInfeasible}, nil
	}

	days := ActiveDays(opts.IncludeWeekend)
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	deadline := time.Now().Add(budget)

	candidates := make([][]Section, len(courses))
	for i, course := range courses {
		candidates[i] = course.Sections
	}
	if opts.Randomize {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		for i := range candidates {
			shuffled := slices.Clone(candidates[i])
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			candidates[i] = shuffled
		}
	}

	var (
		best      Assignment
		bestScore Score
		timedOut  bool
	)

	indices := make([]int, len(courses))
	for {
		// The budget is checked once per combination, so the worst-case
		// overrun is one conflict-check pass across all courses.
		if time.Now().After(deadline) {
			timedOut = true
			break
		}

		occupancy := NewDayOccupancy(days)
		assignment := make(Assignment, len(courses))
		feasible := true
		for i, course := range courses {
			if _, placed := assignment[course.ID]; placed {
				// Duplicate course entry: the first chosen section stands.
				continue
			}
			if !occupancy.Place(candidates[i][indices[i]]) {
				feasible = false
				break
			}
			assignment[course.ID] = candidates[i][indices[i]]
		}

		if feasible {
			score := Evaluate(assignment, days)
			// Strictly-better replaces; ties keep the earliest find.
			if best == nil || score.Compare(bestScore) > 0 {
				best, bestScore = assignment, score
			}
		}

		if !advance(indices, candidates) {
			break
		}
	}

	if best == nil {
		return &Result{Status: StatusInfeasible}, nil
	}
	status := StatusExhausted
	if timedOut {
		status = StatusTimedOut
	}
	return &Result{Assignment: best, Score: bestScore, Status: status}, nil
}

// advance steps the odometer over the candidate lists; it returns false once
// every combination has been visited.
func advance(indices []int, candidates [][]Section) bool {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < len(candidates[i]) {
			return true
		}
		indices[i] = 0
	}
	return false
}
