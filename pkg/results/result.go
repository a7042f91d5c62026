package result

import (
	"fmt"
	"os"
	"strconv"
	"time"

	math "github.com/aclements/go-moremath/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/msgperf/trace-overhead/pkg/latency"
	"github.com/msgperf/trace-overhead/pkg/logging"
	"github.com/msgperf/trace-overhead/pkg/runfile"
)

// Specify Language specific case wrapper as global variable
var caser = cases.Title(language.English)

// Run describes one aggregated benchmark run
type Run struct {
	Mode        string
	MessageSize int
	Frequency   int
	Summary     latency.Summary
	// Series holds the raw latency values in ms, empty in
	// summarized mode
	Series []float64
}

// Comparison holds the base and traced runs of one grid cell and the
// overhead between them
type Comparison struct {
	MessageSize int             `json:"messageSize"`
	Frequency   int             `json:"frequency"`
	Base        latency.Summary `json:"base"`
	Trace       latency.Summary `json:"trace"`
	OverheadMS  float64         `json:"overheadMs"`
	OverheadPct float64         `json:"overheadPercent"`
	// Confidence is the 95% CI of the baseline series, empty in
	// summarized mode
	Confidence []float64 `json:"confidence,omitempty"`
}

// Metadata for the report
type Metadata struct {
	UUID      string    `json:"uuid"`
	Timestamp time.Time `json:"timestamp"`
	Runtime   int       `json:"runtime"`
	Warmup    int       `json:"warmup"`
	RawData   bool      `json:"rawData"`
}

// Report is the full comparison across the experiment grid
type Report struct {
	Comparisons []Comparison `json:"comparisons"`
	Metadata    `json:"metadata"`
}

// Compare builds the comparison record for one grid cell.
// Overhead percentage is relative to the baseline mean.
func Compare(base Run, trace Run) Comparison {
	diff := trace.Summary.Mean - base.Summary.Mean
	c := Comparison{
		MessageSize: base.MessageSize,
		Frequency:   base.Frequency,
		Base:        base.Summary,
		Trace:       trace.Summary,
		OverheadMS:  diff,
		OverheadPct: 100.0 * diff / base.Summary.Mean,
	}
	if len(base.Series) > 1 {
		_, lo, hi := ConfidenceInterval(base.Series, 0.95)
		c.Confidence = []float64{lo, hi}
	}
	return c
}

// ConfidenceInterval accepts a latency series and the desired interval
func ConfidenceInterval(vals []float64, ci float64) (float64, float64, float64) {
	return math.MeanCI(vals, ci)
}

// Method to init common table structure.
func initTable(header []string) *tablewriter.Table {
	// Create a new table writer with the appropriate header and alignment options
	table := tablewriter.NewWriter(os.Stdout)
	// Add a header to the table
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	return table
}

func fmtMS(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// ShowComparison presents the overhead results to the user via stdout,
// rows grouped by message size then frequency
func ShowComparison(r Report) {
	logging.Debug("Rendering tracing overhead results")
	table := initTable([]string{"Result Type", "Message Size (KB)", "Frequency (Hz)",
		caser.String(runfile.ModeBase) + " Mean (ms)", caser.String(runfile.ModeBase) + " Stddev (ms)",
		caser.String(runfile.ModeTrace) + " Mean (ms)", caser.String(runfile.ModeTrace) + " Stddev (ms)",
		"Overhead (ms)", "Overhead (%)", "Base 95% Confidence Interval (ms)"})
	for _, c := range r.Comparisons {
		ci := ""
		if len(c.Confidence) == 2 {
			ci = fmt.Sprintf("%f-%f", c.Confidence[0], c.Confidence[1])
		}
		table.Append([]string{
			"📊 Tracing Overhead", strconv.Itoa(c.MessageSize), strconv.Itoa(c.Frequency),
			fmtMS(c.Base.Mean), fmtMS(c.Base.Stddev),
			fmtMS(c.Trace.Mean), fmtMS(c.Trace.Stddev),
			fmtMS(c.OverheadMS), fmt.Sprintf("%.2f", c.OverheadPct), ci,
		})
	}
	table.Render()
}
