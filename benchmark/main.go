// Package main provides a latency benchmarking tool for the fundboard CLI.
// It runs each dashboard command several times against a live backend,
// treating the first successful run as cold and averaging the rest as warm,
// and writes the timings to CSV for comparison between backends.
//
// Prerequisites:
// - fundboard binary installed and available in PATH
// - A dashboard backend reachable at the given base URL
//
// Usage: go run benchmark/main.go [api-base]
//
//	api-base: Base URL of the dashboard backend, e.g. http://localhost:5050
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Command  string
	ColdTime string
	WarmTime string
	Failures int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	APIBase  string
	Timeout  time.Duration
	Runs     int
	Commands [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [api-base]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		APIBase: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    5,
		Commands: [][]string{
			{"histogram"},
			{"contributors"},
			{"countries", "--math"},
			{"sdg"},
			{"ndc"},
			{"dashboard"},
		},
	}

	if _, err := exec.LookPath("fundboard"); err != nil {
		fmt.Printf("Prerequisites check failed: fundboard binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every configured command and collects its timings
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d commands, %d runs each, %v timeout, backend %s\n",
		len(config.Commands), config.Runs, config.Timeout, config.APIBase)

	var results []BenchmarkResult
	for _, command := range config.Commands {
		name := strings.Join(command, " ")
		fmt.Printf("Benchmarking %s\n", name)

		times, failures := runBenchmark(config, command)
		result := BenchmarkResult{Command: name, ColdTime: "FAILED", WarmTime: "FAILED", Failures: failures}
		if len(times) > 0 {
			result.ColdTime = fmt.Sprintf("%.3fs", times[0])
		}
		if len(times) > 1 {
			var sum float64
			for _, t := range times[1:] {
				sum += t
			}
			result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
		}
		fmt.Printf("  Cold time: %s, Warm average: %s, Failures: %d\n", result.ColdTime, result.WarmTime, failures)
		results = append(results, result)
	}
	return results
}

// runBenchmark runs one command repeatedly and returns the durations of the successful runs
func runBenchmark(config BenchmarkConfig, command []string) (times []float64, failures int) {
	args := append(append([]string{}, command...), "--api-base", config.APIBase, "--output", "json")

	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("fundboard", args...)
		done := make(chan error, 1)
		go func() {
			_, err := cmd.Output()
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				failures++
				continue
			}
			times = append(times, time.Since(start).Seconds())
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			failures++
		}
	}
	return times, failures
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/fundboard_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"cmd", "cold_time", "warm_avg", "failures"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		row := []string{result.Command, result.ColdTime, result.WarmTime, fmt.Sprint(result.Failures)}
		if err := writer.Write(row); err != nil {
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
		fmt.Printf("  %-18s: Cold: %s, Warm: %s\n", result.Command, result.ColdTime, result.WarmTime)
	}
}
