package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msgperf/trace-overhead/pkg/archive"
	"github.com/msgperf/trace-overhead/pkg/chart"
	"github.com/msgperf/trace-overhead/pkg/config"
	"github.com/msgperf/trace-overhead/pkg/latency"
	log "github.com/msgperf/trace-overhead/pkg/logging"
	result "github.com/msgperf/trace-overhead/pkg/results"
	"github.com/msgperf/trace-overhead/pkg/runfile"
)

var (
	cfgfile string
	debug   bool
	json    bool
	id      string
)

var rootCmd = &cobra.Command{
	Use:   "trace-overhead <experiment-dir>",
	Short: "A tool to compare baseline and traced messaging benchmark runs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {

		uid := ""
		if len(id) > 0 {
			uid = id
		} else {
			u := uuid.New()
			uid = u.String()
		}

		if json {
			log.SetError()
		}

		if debug {
			log.SetDebug()
		}

		cfg := config.Default()
		if len(cfgfile) > 0 {
			c, err := config.ParseConf(cfgfile)
			if err != nil {
				log.Error(err)
				os.Exit(1)
			}
			cfg = c
		}

		dir := args[0]
		info, err := os.Stat(dir)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if !info.IsDir() {
			log.Errorf("%s is not a directory", dir)
			os.Exit(1)
		}
		config.Show(cfg, dir)

		report := result.Report{
			Metadata: result.Metadata{
				UUID:      uid,
				Timestamp: time.Now().UTC(),
				Runtime:   cfg.Runtime,
				Warmup:    cfg.Warmup,
				RawData:   cfg.RawData,
			},
		}
		var runs []result.Run

		// Aggregate both modes for every grid cell
		for _, cell := range cfg.Runs() {
			base, err := aggregateRun(dir, cfg, runfile.ModeBase, cell)
			if err != nil {
				log.Error(err)
				os.Exit(1)
			}
			trace, err := aggregateRun(dir, cfg, runfile.ModeTrace, cell)
			if err != nil {
				log.Error(err)
				os.Exit(1)
			}
			runs = append(runs, base, trace)
			report.Comparisons = append(report.Comparisons, result.Compare(base, trace))
		}

		if err := chart.Latencies(dir, cfg, runs); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if err := chart.Overhead(dir, cfg, report.Comparisons); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if !json {
			result.ShowComparison(report)
		} else {
			if err := archive.WriteJSONResult(dir, report); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		}
		if err := archive.WriteCSVResult(dir, report); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

// aggregateRun resolves and reduces one run of the grid. In raw mode
// it also prints the observed publish frequency so a badly throttled
// run is visible.
func aggregateRun(dir string, cfg config.Config, mode string, cell config.Run) (result.Run, error) {
	run := result.Run{Mode: mode, MessageSize: cell.MessageSize, Frequency: cell.Frequency}
	fn, err := runfile.Find(dir, mode, cell.MessageSize, cell.Frequency)
	if err != nil {
		return run, err
	}
	log.Debugf("Aggregating %s", fn)
	if cfg.RawData {
		series, err := latency.LoadRaw(fn)
		if err != nil {
			return run, err
		}
		summary, err := latency.Aggregate(series)
		if err != nil {
			return run, fmt.Errorf("in file %q: %v", fn, err)
		}
		run.Series = series
		run.Summary = summary
		if cfg.CheckFrequencies {
			approx := latency.ObservedFrequency(len(series), cfg.Runtime, cfg.Warmup)
			log.Infof("%-5s: %3dk, %4d Hz: ~ %7.2f Hz", mode, cell.MessageSize, cell.Frequency, approx)
			if !latency.CheckFrequency(approx, cell.Frequency, cfg.FreqTolerance) {
				log.Warnf("😥 %s run %dk %dhz missed its target frequency (~%.2f Hz)",
					mode, cell.MessageSize, cell.Frequency, approx)
			}
		}
	} else {
		windows, err := latency.LoadSummarized(fn)
		if err != nil {
			return run, err
		}
		mean, err := latency.WeightedMean(windows)
		if err != nil {
			return run, fmt.Errorf("in file %q: %v", fn, err)
		}
		run.Summary = latency.Summary{Mean: mean}
	}
	return run, nil
}

func main() {
	rootCmd.Flags().StringVar(&cfgfile, "config", "", "Experiment grid configuration file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug log")
	rootCmd.Flags().BoolVar(&json, "json", false, "Instead of the human-readable table, write JSON results to the experiment directory")
	rootCmd.Flags().StringVar(&id, "uuid", "", "User provided UUID")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

}
