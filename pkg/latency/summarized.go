package latency

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Window is one pre-aggregated measurement window from a summarized
// logfile.
type Window struct {
	Received int
	MeanMS   float64
}

const (
	receivedColumn = "received"
	latencyColumn  = "latency_mean (ms)"
)

// LoadSummarized reads the per-window table out of a benchmark logfile.
// The logfile starts with free-form header lines, the table begins at
// the row naming the received and latency_mean columns.
func LoadSummarized(fn string) ([]Window, error) {
	fp, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	scanner := bufio.NewScanner(fp)
	var header []string
	var rows []string
	for scanner.Scan() {
		line := scanner.Text()
		if header == nil {
			if strings.Contains(line, latencyColumn) {
				header = splitRow(line)
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("in file %q: no %q column header found", fn, latencyColumn)
	}
	recIdx, latIdx := -1, -1
	for i, col := range header {
		switch col {
		case receivedColumn:
			recIdx = i
		case latencyColumn:
			latIdx = i
		}
	}
	if recIdx < 0 || latIdx < 0 {
		return nil, fmt.Errorf("in file %q: no %q column header found", fn, receivedColumn)
	}

	var windows []Window
	for _, row := range rows {
		fields := splitRow(row)
		if len(fields) <= recIdx || len(fields) <= latIdx {
			return nil, fmt.Errorf("in file %q: short table row %q", fn, row)
		}
		received, err := strconv.Atoi(fields[recIdx])
		if err != nil {
			return nil, fmt.Errorf("in file %q: %v", fn, err)
		}
		mean, err := strconv.ParseFloat(fields[latIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("in file %q: %v", fn, err)
		}
		windows = append(windows, Window{Received: received, MeanMS: mean})
	}
	return windows, nil
}

// splitRow splits one comma-separated table line, tolerating the
// column padding the benchmark emits.
func splitRow(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil {
		return nil
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// WeightedMean combines per-window means into one run mean, weighted
// by the number of messages received in each window. Variance is not
// recoverable from the summarized data.
func WeightedMean(windows []Window) (float64, error) {
	sum := 0.0
	total := 0
	for _, w := range windows {
		sum += float64(w.Received) * w.MeanMS
		total += w.Received
	}
	if total == 0 {
		return 0, fmt.Errorf("no messages received across %d windows", len(windows))
	}
	return sum / float64(total), nil
}
