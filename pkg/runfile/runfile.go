package runfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Modes of a run, without and with the tracing instrumentation enabled.
const (
	ModeBase  = "base"
	ModeTrace = "trace"
)

// Suffixes of report artifacts this tool writes into the experiment
// directory. The locator skips these so a re-run resolves the same
// data files as the first run.
var artifactSuffixes = []string{".png", ".svg", ".pdf", ".csv", ".json"}

func validMode(mode string) error {
	if mode != ModeBase && mode != ModeTrace {
		return fmt.Errorf("unknown run mode %q", mode)
	}
	return nil
}

// Name returns the data file name for a specific run.
// The "_s" suffix selects the subscriber side, which is the one that
// carries the latency samples.
func Name(mode string, msgKB int, freqHz int) (string, error) {
	if err := validMode(mode); err != nil {
		return "", err
	}
	return fmt.Sprintf("1-%s_Array%dk_%dhz_s", mode, msgKB, freqHz), nil
}

func isArtifact(name string) bool {
	for _, sfx := range artifactSuffixes {
		if strings.HasSuffix(name, sfx) {
			return true
		}
	}
	return false
}

// Find resolves the unique data file for a run inside the experiment
// directory. Zero or more than one candidate is an error, there is no
// fallback.
func Find(dir string, mode string, msgKB int, freqHz int) (string, error) {
	prefix, err := Name(mode, msgKB, freqHz)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || isArtifact(name) {
			continue
		}
		matches = append(matches, filepath.Join(dir, name))
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("for %s: len(matches) == %d: %v", filepath.Join(dir, prefix), len(matches), matches)
	}
	return matches[0], nil
}
