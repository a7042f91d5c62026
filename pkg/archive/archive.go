package archive

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	result "github.com/msgperf/trace-overhead/pkg/results"
)

const (
	csvName  = "results.csv"
	jsonName = "results.json"
)

// Common csv header fields.
func commonCsvHeaderFields() []string {
	return []string{
		"Message Size",
		"Frequency",
		"Base Mean",
		"Base Stddev",
		"Base Min",
		"Base Max",
		"Trace Mean",
		"Trace Stddev",
		"Trace Min",
		"Trace Max",
	}
}

// Common csv data fields.
func commonCsvDataFields(row result.Comparison) []string {
	return []string{
		strconv.Itoa(row.MessageSize),
		strconv.Itoa(row.Frequency),
		strconv.FormatFloat(row.Base.Mean, 'f', -1, 64),
		strconv.FormatFloat(row.Base.Stddev, 'f', -1, 64),
		strconv.FormatFloat(row.Base.Min, 'f', -1, 64),
		strconv.FormatFloat(row.Base.Max, 'f', -1, 64),
		strconv.FormatFloat(row.Trace.Mean, 'f', -1, 64),
		strconv.FormatFloat(row.Trace.Stddev, 'f', -1, 64),
		strconv.FormatFloat(row.Trace.Min, 'f', -1, 64),
		strconv.FormatFloat(row.Trace.Max, 'f', -1, 64),
	}
}

// WriteCSVResult will write the comparison table to the experiment directory
func WriteCSVResult(dir string, r result.Report) error {
	fp, err := os.Create(filepath.Join(dir, csvName))
	if err != nil {
		return fmt.Errorf("failed to open archive file")
	}
	defer fp.Close()
	archive := csv.NewWriter(fp)
	defer archive.Flush()

	data := append(commonCsvHeaderFields(),
		"Overhead (ms)",
		"Overhead (%)",
	)
	if err := archive.Write(data); err != nil {
		return fmt.Errorf("failed to write result archive to file")
	}
	for _, row := range r.Comparisons {
		data := append(commonCsvDataFields(row),
			fmt.Sprintf("%f", row.OverheadMS),
			fmt.Sprintf("%f", row.OverheadPct),
		)
		if err := archive.Write(data); err != nil {
			return fmt.Errorf("failed to write archive to file")
		}
	}
	return nil
}

// WriteJSONResult writes the full report as JSON to the experiment directory
func WriteJSONResult(dir string, r result.Report) error {
	p, err := json.MarshalIndent(r, " ", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, jsonName), p, 0644)
}
