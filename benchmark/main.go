// Package main provides a performance benchmarking tool for the bikecast CLI.
// It measures `bikecast predict` across request scenarios, first with history
// disabled and then with SQLite history, treating the first history run as cold
// and averaging the rest as warm. Results are written to CSV.
//
// Prerequisites:
// - bikecast binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory that holds the temporary SQLite history file
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario      string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Scenarios     []string
	ScenarioArgs  map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       30 * time.Second,
		NoHistoryRuns: 5,
		HistoryRuns:   6,
		Scenarios:     []string{"summer-clear", "winter-storm", "spring-rain"},
		ScenarioArgs: map[string]string{
			"summer-clear": "--year 1 --month Jul --weekday Mon --temperature 28 --humidity 55 --windspeed 8 --weather Clear --season Summer",
			"winter-storm": "--year 0 --month Jan --weekday Sun --temperature -5 --humidity 90 --windspeed 20 --weather Thunderstrom --season Winter --holiday 1 --workingday 0",
			"spring-rain":  "--year 1 --month Apr --weekday Fri --temperature 15 --humidity 75 --windspeed 12 --weather Light_rainfall --season Spring",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	historyDB := filepath.Join(config.WorkDir, "bikecast_benchmark.db")
	_ = os.Remove(historyDB)
	defer func() { _ = os.Remove(historyDB) }()

	results := runBenchmarks(config, historyDB)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the bikecast binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("bikecast"); err != nil {
		return fmt.Errorf("bikecast binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// runBenchmarks executes all scenarios
func runBenchmarks(config BenchmarkConfig, historyDB string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Scenarios), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, sc := range config.Scenarios {
		results = append(results, runBenchmarkSuite(config, sc, config.ScenarioArgs[sc], historyDB))
	}
	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a scenario
func runBenchmarkSuite(config BenchmarkConfig, scenario, extraArgs, historyDB string) BenchmarkResult {
	fmt.Printf("Running %s\n", scenario)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, extraArgs, backend, historyDB, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: SQLite history runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scenario:      scenario,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes predict multiple times with the given history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, extraArgs, backend, historyDB string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{"predict", "--output", "json", "--history-backend", backend}, strings.Fields(extraArgs)...)
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", historyDB)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("bikecast", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output holds a prediction
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), `"prediction"`)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("bikecast_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"scenario", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-14s: No-history: %s, Cold: %s, Warm: %s\n", result.Scenario, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}
}
