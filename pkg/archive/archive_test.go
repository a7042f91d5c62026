package archive

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msgperf/trace-overhead/pkg/latency"
	result "github.com/msgperf/trace-overhead/pkg/results"
)

func sampleReport() result.Report {
	base := result.Run{Mode: "base", MessageSize: 1, Frequency: 100,
		Summary: latency.Summary{Mean: 2, Stddev: 1, Min: 1, Max: 3}}
	trace := result.Run{Mode: "trace", MessageSize: 1, Frequency: 100,
		Summary: latency.Summary{Mean: 2.5, Stddev: 1, Min: 1, Max: 4}}
	return result.Report{
		Comparisons: []result.Comparison{result.Compare(base, trace)},
		Metadata: result.Metadata{
			UUID:      "test",
			Timestamp: time.Now().UTC(),
			Runtime:   3610,
			Warmup:    10,
			RawData:   true,
		},
	}
}

// TestWriteCSVResult The comparison table lands in the experiment directory
func TestWriteCSVResult(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCSVResult(dir, sampleReport()); err != nil {
		t.Fatal("Writing CSV result failed")
	}
	fp, err := os.Open(filepath.Join(dir, "results.csv"))
	if err != nil {
		t.Fatal("CSV result file was not created")
	}
	defer fp.Close()
	rows, err := csv.NewReader(fp).ReadAll()
	if err != nil {
		t.Fatal("CSV result file is not parseable")
	}
	// Header plus one comparison row
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != len(rows[1]) {
		t.Fatalf("header has %d fields, row has %d", len(rows[0]), len(rows[1]))
	}
}

// TestWriteJSONResult The JSON report round-trips
func TestWriteJSONResult(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSONResult(dir, sampleReport()); err != nil {
		t.Fatal("Writing JSON result failed")
	}
	buf, err := os.ReadFile(filepath.Join(dir, "results.json"))
	if err != nil {
		t.Fatal("JSON result file was not created")
	}
	var r result.Report
	if err := json.Unmarshal(buf, &r); err != nil {
		t.Fatal("JSON result file is not parseable")
	}
	if len(r.Comparisons) != 1 || r.UUID != "test" {
		t.Fatalf("unexpected report %+v", r)
	}
}
