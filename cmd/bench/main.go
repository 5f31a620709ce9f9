// Package main benchmarks grid against all-pairs collision detection across
// ball counts and writes the results to bench.csv.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/ballpit/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// parseCounts parses a comma-separated list of positive ball counts.
func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid ball count %q", part)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no ball counts given")
	}
	return counts, nil
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	countsFlag := flag.String("bodies", "100,250,500,1000", "Comma-separated ball counts")
	steps := flag.Int("steps", 600, "Physics steps per scenario")
	seed := flag.Int64("seed", 42, "RNG seed for initial placement")
	outputDir := flag.String("output", ".", "Output directory for bench.csv")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	counts, err := parseCounts(*countsFlag)
	if err != nil {
		slog.Error("bad -bodies", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	startTime := time.Now()
	results := make([]Result, 0, 2*len(counts))
	for _, n := range counts {
		allPairs := Scenario{Mode: config.CollisionAllPairs, Bodies: n, Steps: *steps, Seed: *seed}.Run(cfg)
		grid := Scenario{Mode: config.CollisionGrid, Bodies: n, Steps: *steps, Seed: *seed}.Run(cfg)
		if grid.StepMeanUS > 0 {
			grid.Speedup = allPairs.StepMeanUS / grid.StepMeanUS
		}
		allPairs.Speedup = 1

		slog.Info("scenario",
			"bodies", n,
			"all_pairs_us", allPairs.StepMeanUS,
			"grid_us", grid.StepMeanUS,
			"speedup", grid.Speedup,
			"elapsed", formatDuration(time.Since(startTime)),
		)
		results = append(results, allPairs, grid)
	}

	outPath := filepath.Join(*outputDir, "bench.csv")
	f, err := os.Create(outPath)
	if err != nil {
		slog.Error("failed to create bench.csv", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(results, f); err != nil {
		slog.Error("failed to write bench.csv", "error", err)
		os.Exit(1)
	}
	slog.Info("benchmark complete", "path", outPath, "scenarios", len(results))
}
