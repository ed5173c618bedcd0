package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"classscheduler/internal/cp"
	"classscheduler/internal/schedule"
)

var (
	validStrategies = []string{"bounded", "exact"}
	validSolvers    = []string{"gophersat", "dfs"}
	solvers         = map[string]func() cp.Solver{
		"gophersat": cp.NewGophersatSolver,
		"dfs":       cp.NewDFSSolver,
	}
)

func main() {
	// Define arguments
	strategyPtr := flag.String("strategy", "bounded", `Strategy to build the schedule. Allowed values are:
- "bounded" (time-limited enumeration of every section combination; best-effort) and
- "exact" (constraint optimization; provably optimal when it finishes within the budget), where "bounded" is the default`)
	solverPtr := flag.String("solver", "gophersat", "Constraint solver backend used by the exact strategy. Allowed values are: \"gophersat\" and \"dfs\", where \"gophersat\" is the default")
	budgetPtr := flag.Duration("budget", 30*time.Second, "Wall-clock budget for the search")
	weekendPtr := flag.Bool("weekend", false, "Include Saturday and Sunday in the active day set")
	randomizePtr := flag.Bool("randomize", false, "Shuffle candidate sections before enumeration to bias toward alternative schedules")
	seedPtr := flag.Int64("seed", 0, "Shuffle seed; 0 picks a time-based one")
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	solverStr := strings.ToLower(*solverPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validStrategies, strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract input
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("cannot read input file: %v", err)
	}
	request, err := schedule.RequestFromJSON(data)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	courses, err := request.BuildCourses()
	if err != nil {
		log.Fatalf("invalid course data: %v", err)
	}

	// Initialize engine
	var scheduler schedule.Scheduler
	if strategy == "exact" {
		scheduler = schedule.NewOptimizer(solvers[solverStr]())
	} else {
		scheduler = schedule.NewEnumerator()
	}

	opts := schedule.Options{
		IncludeWeekend: *weekendPtr || request.IncludeWeekend(),
		Budget:         *budgetPtr,
		Randomize:      *randomizePtr,
		Seed:           *seedPtr,
	}

	result, err := scheduler.Schedule(courses, opts)
	if err != nil {
		log.Fatalf("an error occurred during scheduling: %v", err)
	} else if !result.Feasible() {
		fmt.Println("No valid schedule found within the time limit.")
		os.Exit(20)
	}

	// Build output from the assignment
	output, err := json.MarshalIndent(map[string]any{
		"status":    result.Status.String(),
		"schedules": request.Entries(result.Assignment),
		"score": map[string]int{
			"days_off":         result.Score.DaysOff,
			"online_only_days": result.Score.OnlineOnlyDays,
		},
	}, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	if outFile == "" {
		fmt.Println(string(output))
	} else {
		if err := os.WriteFile(outFile, output, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}
