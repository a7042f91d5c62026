package config

import (
	"fmt"
	"os"

	log "github.com/msgperf/trace-overhead/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Config describes one experiment grid and how to reduce it
type Config struct {
	Frequencies  []int `yaml:"frequencies,omitempty"`
	MessageSizes []int `yaml:"messagesizes,omitempty"`
	// Runtime is the per-run duration in seconds, including warmup
	Runtime int `yaml:"runtime,omitempty"`
	// Warmup seconds at the start of each run carry no latency samples
	Warmup int `yaml:"warmup,omitempty"`
	// RawData selects the raw per-sample logfiles over the
	// pre-aggregated per-window summaries
	RawData          bool    `yaml:"rawdata"`
	PlotTitles       bool    `yaml:"plottitles,omitempty"`
	CheckFrequencies bool    `yaml:"checkfrequencies"`
	FreqTolerance    float64 `yaml:"freqtolerance,omitempty"`
}

// Run is one cell of the experiment grid
type Run struct {
	MessageSize int
	Frequency   int
}

// Default returns the grid the benchmark harness runs out of the box.
func Default() Config {
	return Config{
		Frequencies:      []int{100, 500, 1000, 2000},
		MessageSizes:     []int{1, 32, 64, 256},
		Runtime:          3610,
		Warmup:           10,
		RawData:          true,
		PlotTitles:       false,
		CheckFrequencies: true,
		FreqTolerance:    0.05,
	}
}

func validConfig(cfg Config) (bool, error) {
	if len(cfg.Frequencies) < 1 {
		return false, fmt.Errorf("frequencies must not be empty")
	}
	if len(cfg.MessageSizes) < 1 {
		return false, fmt.Errorf("messagesizes must not be empty")
	}
	for _, f := range cfg.Frequencies {
		if f < 1 {
			return false, fmt.Errorf("frequency must be > 0")
		}
	}
	for _, m := range cfg.MessageSizes {
		if m < 1 {
			return false, fmt.Errorf("messagesize must be > 0")
		}
	}
	if cfg.Runtime < 1 {
		return false, fmt.Errorf("runtime must be > 0")
	}
	if cfg.Warmup < 0 || cfg.Warmup >= cfg.Runtime {
		return false, fmt.Errorf("warmup must fit within runtime")
	}
	if cfg.FreqTolerance <= 0 || cfg.FreqTolerance >= 1 {
		return false, fmt.Errorf("freqtolerance must be a fraction between 0 and 1")
	}
	return true, nil
}

// ParseConf will read in the experiment configuration file which
// describes the grid, overriding the defaults
// Returns Config struct
func ParseConf(fn string) (Config, error) {
	log.Infof("📒 Reading %s file. ", fn)
	cfg := Default()
	buf, err := os.ReadFile(fn)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("in file %q: %v", fn, err)
	}
	ok, err := validConfig(cfg)
	if !ok {
		return cfg, err
	}
	return cfg, nil
}

// Runs returns the (message size, frequency) combinations in grid order.
func (c Config) Runs() []Run {
	var runs []Run
	for _, msg := range c.MessageSizes {
		for _, freq := range c.Frequencies {
			runs = append(runs, Run{MessageSize: msg, Frequency: freq})
		}
	}
	return runs
}

// Show Display the experiment parameters
func Show(c Config, dir string) {
	log.Infof("🗒️  Experiment directory: %s", dir)
	log.Infof("    frequencies  = %v", c.Frequencies)
	log.Infof("    messagesizes = %v", c.MessageSizes)
	log.Infof("    runtime      = %ds", c.Runtime)
	log.Infof("    warmup       = %ds", c.Warmup)
}
