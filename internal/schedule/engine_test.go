package schedule

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/onsi/gomega"

	"classscheduler/internal/cp"
)

// randomCourses builds a reproducible instance on hour boundaries between
// 08:00 and 20:00 with a mix of modalities.
func randomCourses(seed int64, courseCount, sectionCount int) []Course {
	rng := rand.New(rand.NewSource(seed))
	weekdays := []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

	randomInterval := func() TimeInterval {
		start := (8 + rng.Intn(11)) * 60
		modality := InPerson
		if rng.Intn(100) < 40 {
			modality = Online
		}
		return TimeInterval{
			Day:      weekdays[rng.Intn(len(weekdays))],
			Start:    start,
			End:      start + 60,
			Modality: modality,
		}
	}

	courses := make([]Course, courseCount)
	for i := range courses {
		sections := make([]Section, sectionCount)
		for j := range sections {
			sections[j] = Section{Day1: randomInterval(), Day2: randomInterval()}
		}
		courses[i] = Course{ID: fmt.Sprintf("course%d", i), Sections: sections}
	}
	return courses
}

// assertConflictFree re-checks a reported assignment against a fresh
// occupancy, independent of the strategy that produced it.
func assertConflictFree(g *gomega.WithT, assignment Assignment, days []Weekday) {
	occupancy := NewDayOccupancy(days)
	for _, section := range assignment {
		g.Expect(occupancy.Place(section)).To(gomega.BeTrue())
	}
}

func TestStrategiesCrossCheck(t *testing.T) {
	g := gomega.NewWithT(t)
	days := ActiveDays(false)
	opts := Options{Budget: 30 * time.Second}

	enumerator := NewEnumerator()
	backends := map[string]Scheduler{
		"dfs":       NewOptimizer(cp.NewDFSSolver()),
		"gophersat": NewOptimizer(cp.NewGophersatSolver()),
	}

	for seed := int64(1); seed <= 5; seed++ {
		courses := randomCourses(seed, 4, 3)

		reference, err := enumerator.Schedule(courses, opts)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(reference.Status).To(gomega.BeElementOf(StatusSolved, StatusExhausted, StatusInfeasible))

		for name, optimizer := range backends {
			result, err := optimizer.Schedule(courses, opts)
			g.Expect(err).NotTo(gomega.HaveOccurred())

			// Both strategies must agree on feasibility; when feasible, the
			// exact optimum with unit weights can never free fewer days in
			// total than the enumerated best.
			g.Expect(result.Feasible()).To(gomega.Equal(reference.Feasible()),
				"strategy %v disagrees on feasibility for seed %v", name, seed)
			if !result.Feasible() {
				continue
			}

			assertConflictFree(g, result.Assignment, days)
			g.Expect(result.Assignment).To(gomega.HaveLen(len(courses)))

			exactTotal := result.Score.DaysOff + result.Score.OnlineOnlyDays
			referenceTotal := reference.Score.DaysOff + reference.Score.OnlineOnlyDays
			g.Expect(exactTotal).To(gomega.BeNumerically(">=", referenceTotal),
				"strategy %v found a worse total than enumeration for seed %v", name, seed)
		}
	}
}

func TestWeightedObjectiveSteersOptimizer(t *testing.T) {
	g := gomega.NewWithT(t)

	// One free weekday versus one online-only day. Unit weights tie the two
	// choices; a heavier online-only weight must flip the selection.
	dayOffSection := Section{
		Day1: mustInterval(t, Monday, 9, 10, InPerson),
		Day2: mustInterval(t, Monday, 11, 12, InPerson),
	}
	onlineSection := Section{
		Day1: mustInterval(t, Monday, 9, 10, Online),
		Day2: mustInterval(t, Tuesday, 9, 10, Online),
	}
	courses := []Course{{ID: "calculus", Sections: []Section{dayOffSection, onlineSection}}}

	optimizer := NewOptimizer(cp.NewDFSSolver())
	result, err := optimizer.Schedule(courses, Options{
		Weights: Weights{DayOff: 1, OnlineOnly: 10},
	})
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(result.Assignment["calculus"]).To(gomega.Equal(onlineSection))
	g.Expect(result.Score).To(gomega.Equal(Score{DaysOff: 3, OnlineOnlyDays: 2}))

	result, err = optimizer.Schedule(courses, Options{
		Weights: Weights{DayOff: 10, OnlineOnly: 1},
	})
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(result.Assignment["calculus"]).To(gomega.Equal(dayOffSection))
	g.Expect(result.Score).To(gomega.Equal(Score{DaysOff: 4, OnlineOnlyDays: 0}))
}
