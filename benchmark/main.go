// Package main provides a performance benchmarking tool for the Benchboard CLI.
// It seeds a fresh SQLite store with generated records at several sizes, then times the
// board and summary commands, treating the first successful run as cold and averaging
// the rest as warm, and writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - benchboard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated seed files and databases
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of one command at one store size.
type BenchmarkResult struct {
	Records  int
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Sizes    []int
	Commands [][]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    5,
		Sizes:   []int{100, 1000, 10000},
		Commands: [][]string{
			{"board", "models"},
			{"board", "models", "--sort", "model"},
			{"board", "models", "--sort", "bbh", "--remote-order"},
			{"board", "logickor", "--sort", "coding"},
			{"board", "rag", "--search", "upstage"},
			{"summary"},
		},
	}

	if _, err := exec.LookPath("benchboard"); err != nil {
		fmt.Printf("Prerequisites check failed: benchboard binary not found in PATH\n")
		os.Exit(1)
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks seeds one database per size and times every command against it.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs\n", config.Sizes, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d.db", size))
		seedPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d.yaml", size))
		_ = os.Remove(dbPath)

		fmt.Printf("Seeding %d records per leaderboard\n", size)
		if err := writeSeedFile(seedPath, size); err != nil {
			return nil, err
		}
		env := append(os.Environ(), "BENCHBOARD_STORE_BACKEND=sqlite", "BENCHBOARD_STORE_DB_CONNECT="+dbPath)
		seedCmd := exec.Command("benchboard", "store", "seed", seedPath)
		seedCmd.Env = env
		if output, err := seedCmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("seeding %d records failed: %v\nOutput: %s", size, err, string(output))
		}

		for _, args := range config.Commands {
			results = append(results, runBenchmarkSuite(config, size, args, env))
		}
	}

	return results, nil
}

// runBenchmarkSuite times one command and summarizes its cold and warm runs.
func runBenchmarkSuite(config BenchmarkConfig, size int, args, env []string) BenchmarkResult {
	command := strings.Join(args, " ")
	fmt.Printf("  %s\n", command)

	times := runBenchmark(config, args, env)
	result := BenchmarkResult{Records: size, Command: command, ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if warm := times[min(1, len(times)):]; len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("    Cold: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark executes a benchboard command several times and returns the successful run times
func runBenchmark(config BenchmarkConfig, args, env []string) []float64 {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("benchboard", args...)
		cmd.Env = env

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
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
	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Loaded ") && strings.Contains(outputStr, "Store backend:")
}

// writeSeedFile generates size random entries for every leaderboard.
func writeSeedFile(path string, size int) error {
	rng := rand.New(rand.NewPCG(42, uint64(size)))
	score := func(maxValue float64) string {
		return strconv.FormatFloat(float64(int(rng.Float64()*maxValue*100))/100, 'f', -1, 64)
	}

	seed := map[string][]map[string]string{}
	types := []string{"chat", "base", "instruct"}
	parsers := []string{"upstage", "pdfplumber", "unstructured"}
	for i := range size {
		model := map[string]string{"model": fmt.Sprintf("model-%05d", i), "type": types[i%len(types)]}
		for _, key := range []string{"ifeval", "bbh", "math", "gpqa", "musr", "mmlu"} {
			model[key] = score(100)
		}
		model["co2"] = score(5)
		seed["models"] = append(seed["models"], model)

		logickor := map[string]string{"name": fmt.Sprintf("kor-%05d", i)}
		for _, key := range []string{"math", "grammar", "comprehension", "writing", "reasoning", "coding"} {
			logickor[key+"_singleton"] = score(10)
			logickor[key+"_multiturn"] = score(10)
		}
		seed["logickor"] = append(seed["logickor"], logickor)

		rag := map[string]string{
			"service":   fmt.Sprintf("rag-%05d", i),
			"generator": "gpt-4o",
			"parser":    parsers[i%len(parsers)],
		}
		for _, key := range []string{"finance", "public", "medical", "law", "commerce"} {
			rag[key] = score(60)
		}
		seed["rag"] = append(seed["rag"], rag)
	}

	data, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("failed to encode seed file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/benchboard_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"records", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Records), result.Command, result.ColdTime, result.WarmTime}); err != nil {
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
		fmt.Printf("  %6d records  %-45s Cold: %s, Warm: %s\n", result.Records, result.Command, result.ColdTime, result.WarmTime)
	}
}
