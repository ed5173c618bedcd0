package schedule

// Section is one schedulable offering of a course. A section always carries
// exactly two weekly meetings.
type Section struct {
	Day1       TimeInterval
	Day2       TimeInterval
	Instructor string
}

func (section Section) Intervals() [2]TimeInterval {
	return [2]TimeInterval{section.Day1, section.Day2}
}

// Course groups the candidate sections of which exactly one must be chosen.
type Course struct {
	ID       string
	Sections []Section
}

// Assignment maps a course identifier to its single chosen section.
type Assignment map[string]Section

// Score ranks assignments: first by free weekdays, then by weekdays whose
// meetings are all online.
type Score struct {
	DaysOff        int
	OnlineOnlyDays int
}

// Compare orders scores lexicographically. It returns a positive value when
// score beats other, zero on ties and a negative value otherwise.
func (score Score) Compare(other Score) int {
	if score.DaysOff != other.DaysOff {
		return score.DaysOff - other.DaysOff
	}
	return score.OnlineOnlyDays - other.OnlineOnlyDays
}
