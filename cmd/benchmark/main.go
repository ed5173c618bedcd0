package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"

	"classscheduler/internal/cp"
	"classscheduler/internal/schedule"
)

const outputFile = "benchmark.csv"

type StrategyType int

const (
	bounded StrategyType = iota
	exactDFS
	exactGophersat
)

var strategyTypes = map[StrategyType]string{
	bounded:        "bounded",
	exactDFS:       "exact-dfs",
	exactGophersat: "exact-gophersat",
}

type TestMetadata struct {
	Name     string
	Courses  int
	Sections int
	Seed     int64
}

type BenchmarkResult struct {
	Strategy StrategyType
	Test     TestMetadata
	Duration time.Duration
	Score    schedule.Score
	Status   schedule.Status
}

func main() {
	tests := getTests()
	strategies := getStrategies()
	results := make([]BenchmarkResult, 0, len(tests)*len(strategies))

	for _, test := range tests {
		courses := generateCourses(test)
		for _, strategyType := range []StrategyType{bounded, exactDFS, exactGophersat} {
			strategy := strategies[strategyType]
			fmt.Printf("Benchmarking test %q with strategy %q\n", test.Name, strategyTypes[strategyType])

			started := time.Now()
			result, err := strategy.Schedule(courses, schedule.Options{Budget: 30 * time.Second})
			if err != nil {
				log.Fatalf("benchmark run failed: %v", err)
			}

			results = append(results, BenchmarkResult{
				Strategy: strategyType,
				Test:     test,
				Duration: time.Since(started),
				Score:    result.Score,
				Status:   result.Status,
			})
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	sizes := lo.Zip2([]int{3, 5, 7, 9}, []int{4, 5, 6, 8})
	tests := make([]TestMetadata, 0, len(sizes))
	for i, size := range sizes {
		tests = append(tests, TestMetadata{
			Name:     fmt.Sprintf("random-%dx%d", size.A, size.B),
			Courses:  size.A,
			Sections: size.B,
			Seed:     int64(i + 1),
		})
	}
	return tests
}

func getStrategies() map[StrategyType]schedule.Scheduler {
	return map[StrategyType]schedule.Scheduler{
		bounded:        schedule.NewEnumerator(),
		exactDFS:       schedule.NewOptimizer(cp.NewDFSSolver()),
		exactGophersat: schedule.NewOptimizer(cp.NewGophersatSolver()),
	}
}

// generateCourses builds a reproducible random instance: every section meets
// twice a week for one or two hours at hour boundaries.
func generateCourses(test TestMetadata) []schedule.Course {
	rng := rand.New(rand.NewSource(test.Seed))
	days := schedule.ActiveDays(false)

	courses := make([]schedule.Course, 0, test.Courses)
	for c := 0; c < test.Courses; c++ {
		course := schedule.Course{ID: fmt.Sprintf("course-%d", c)}
		for s := 0; s < test.Sections; s++ {
			course.Sections = append(course.Sections, schedule.Section{
				Day1:       randomInterval(rng, days),
				Day2:       randomInterval(rng, days),
				Instructor: fmt.Sprintf("instructor-%d", rng.Intn(10)),
			})
		}
		courses = append(courses, course)
	}
	return courses
}

func randomInterval(rng *rand.Rand, days []schedule.Weekday) schedule.TimeInterval {
	start := (8 + rng.Intn(10)) * 60
	duration := (1 + rng.Intn(2)) * 60
	modality := schedule.InPerson
	if rng.Float32() < 0.4 {
		modality = schedule.Online
	}
	interval, err := schedule.NewTimeInterval(days[rng.Intn(len(days))], start, start+duration, modality)
	if err != nil {
		log.Fatalf("cannot build random interval: %v", err)
	}
	return interval
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("cannot create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"test", "courses", "sections", "strategy", "duration_ms", "days_off", "online_only_days", "status"}
	if err := writer.Write(header); err != nil {
		log.Fatalf("cannot write csv header: %v", err)
	}

	for _, result := range results {
		row := []string{
			result.Test.Name,
			fmt.Sprint(result.Test.Courses),
			fmt.Sprint(result.Test.Sections),
			strategyTypes[result.Strategy],
			fmt.Sprint(result.Duration.Milliseconds()),
			fmt.Sprint(result.Score.DaysOff),
			fmt.Sprint(result.Score.OnlineOnlyDays),
			result.Status.String(),
		}
		if err := writer.Write(row); err != nil {
			log.Fatalf("cannot write csv row: %v", err)
		}
	}
}
