package schedule

import "github.com/samber/lo"

// Weights is the objective policy of the exact strategy. The relative weight
// of free days versus online-only days differs between deployments, so it is
// a parameter rather than a constant; the ranking of the enumeration strategy
// stays lexicographic regardless.
type Weights struct {
	DayOff     int
	OnlineOnly int
}

func DefaultWeights() Weights {
	return Weights{DayOff: 1, OnlineOnly: 1}
}

type dayTally struct {
	online   int
	inPerson int
}

// Evaluate computes the preference score of a complete, conflict-free
// assignment over the given active days. It is a pure function of the chosen
// sections and is the single source of truth for ranking: both search
// strategies report the score it produces.
func Evaluate(assignment Assignment, days []Weekday) Score {
	tallies := make(map[Weekday]*dayTally, len(days))
	for _, day := range days {
		tallies[day] = &dayTally{}
	}

	for _, section := range assignment {
		for _, interval := range section.Intervals() {
			tally, ok := tallies[interval.Day]
			if !ok {
				continue
			}
			if interval.Modality == Online {
				tally.online++
			} else {
				tally.inPerson++
			}
		}
	}

	return Score{
		DaysOff: lo.CountBy(days, func(day Weekday) bool {
			tally := tallies[day]
			return tally.online == 0 && tally.inPerson == 0
		}),
		OnlineOnlyDays: lo.CountBy(days, func(day Weekday) bool {
			tally := tallies[day]
			return tally.inPerson == 0 && tally.online > 0
		}),
	}
}
