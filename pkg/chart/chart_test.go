package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msgperf/trace-overhead/pkg/config"
	"github.com/msgperf/trace-overhead/pkg/latency"
	result "github.com/msgperf/trace-overhead/pkg/results"
	"github.com/msgperf/trace-overhead/pkg/runfile"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Frequencies = []int{100, 500}
	cfg.MessageSizes = []int{1, 32}
	return cfg
}

func testRuns(cfg config.Config) ([]result.Run, []result.Comparison) {
	var runs []result.Run
	var comparisons []result.Comparison
	for _, cell := range cfg.Runs() {
		base := result.Run{Mode: runfile.ModeBase, MessageSize: cell.MessageSize, Frequency: cell.Frequency,
			Summary: latency.Summary{Mean: 2, Stddev: 0.5, Min: 1, Max: 3}}
		trace := result.Run{Mode: runfile.ModeTrace, MessageSize: cell.MessageSize, Frequency: cell.Frequency,
			Summary: latency.Summary{Mean: 2.5, Stddev: 0.5, Min: 1, Max: 4}}
		runs = append(runs, base, trace)
		comparisons = append(comparisons, result.Compare(base, trace))
	}
	return runs, comparisons
}

func checkArtifact(t *testing.T, dir, name string) {
	t.Helper()
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("%s was not created", name)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", name)
	}
}

// TestLatencies Both chart formats land in the experiment directory
func TestLatencies(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	runs, _ := testRuns(cfg)
	if err := Latencies(dir, cfg, runs); err != nil {
		t.Fatalf("Rendering latency chart failed: %v", err)
	}
	checkArtifact(t, dir, "results_latencies.png")
	checkArtifact(t, dir, "results_latencies.svg")
}

// TestLatenciesMissingRun Testing for failure. A hole in the grid aborts
func TestLatenciesMissingRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	runs, _ := testRuns(cfg)
	if err := Latencies(dir, cfg, runs[:len(runs)-1]); err == nil {
		t.Fatal("Rendering with a missing run should have failed but succeeded")
	}
}

// TestOverhead Both overhead panels render
func TestOverhead(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	_, comparisons := testRuns(cfg)
	if err := Overhead(dir, cfg, comparisons); err != nil {
		t.Fatalf("Rendering overhead chart failed: %v", err)
	}
	checkArtifact(t, dir, "results_overhead.png")
	checkArtifact(t, dir, "results_overhead.svg")
}
