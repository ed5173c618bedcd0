package schedule

import "time"

// Status is the terminal state of one search or solve invocation.
type Status int

const (
	// StatusSolved means the strategy proved its answer optimal.
	StatusSolved Status = iota
	// StatusExhausted means the whole search space was visited; the best
	// assignment seen is the answer.
	StatusExhausted
	// StatusTimedOut means the budget ran out first; the result carries the
	// best assignment found so far.
	StatusTimedOut
	// StatusInfeasible means no conflict-free combination exists (or none was
	// found before the budget ran out). The assignment is nil.
	StatusInfeasible
)

func (status Status) String() string {
	switch status {
	case StatusSolved:
		return "solved"
	case StatusExhausted:
		return "exhausted"
	case StatusTimedOut:
		return "timed-out"
	case StatusInfeasible:
		return "infeasible"
	}
	return "unknown"
}

// Result is the outcome of a scheduling run. Assignment is nil exactly when
// Status is StatusInfeasible.
type Result struct {
	Assignment Assignment
	Score      Score
	Status     Status
}

func (result *Result) Feasible() bool {
	return result.Status != StatusInfeasible
}

// Options configure a single scheduling run.
type Options struct {
	// IncludeWeekend widens the active day set with Saturday and Sunday.
	IncludeWeekend bool
	// Budget bounds wall-clock time. Zero means DefaultBudget.
	Budget time.Duration
	// Randomize shuffles each course's candidate list before enumeration to
	// bias repeated calls toward different feasible alternatives.
	Randomize bool
	// Seed drives the shuffle; zero picks a time-based seed. Ignored unless
	// Randomize is set.
	Seed int64
	// Weights is the exact strategy's objective policy; the zero value means
	// DefaultWeights.
	Weights Weights
}

const DefaultBudget = 30 * time.Second

// Scheduler is the contract shared by the bounded enumeration strategy and
// the exact constrained optimization strategy. Implementations are
// interchangeable; callers may run either, or run the exact one first and
// fall back to enumeration when it fails.
type Scheduler interface {
	Schedule(courses []Course, opts Options) (*Result, error)
}

// validateCourses rejects inputs that can never be scheduled. It must run
// before any search work starts.
func validateCourses(courses []Course) error {
	for _, course := range courses {
		if len(course.Sections) == 0 {
			return &EmptyCourseError{Course: course.ID}
		}
	}
	return nil
}

// dedupeCourses drops repeated course identifiers, keeping the first
// occurrence of each.
func dedupeCourses(courses []Course) []Course {
	seen := make(map[string]bool, len(courses))
	deduped := make([]Course, 0, len(courses))
	for _, course := range courses {
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true
		deduped = append(deduped, course)
	}
	return deduped
}
