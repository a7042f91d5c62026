package latency

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	stats "github.com/montanaflynn/stats"
)

// Summary holds the reduced statistics for one run, in milliseconds.
type Summary struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// rawLogfile mirrors the raw-data logfile written by the benchmark,
// latencies are per-received-sample values in seconds.
type rawLogfile struct {
	RawLatencies []float64 `json:"raw_latencies"`
}

// LoadRaw reads a raw-data logfile and returns the latency series
// converted from seconds to milliseconds.
func LoadRaw(fn string) ([]float64, error) {
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var lf rawLogfile
	if err := json.Unmarshal(buf, &lf); err != nil {
		return nil, fmt.Errorf("in file %q: %v", fn, err)
	}
	series := make([]float64, len(lf.RawLatencies))
	for i, s := range lf.RawLatencies {
		series[i] = 1000 * s
	}
	return series, nil
}

// Aggregate reduces a latency series to its summary statistics.
func Aggregate(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, fmt.Errorf("empty latency series")
	}
	mean, err := stats.Mean(series)
	if err != nil {
		return Summary{}, err
	}
	// Sample standard deviation, a run is a sample of the latency
	// population
	sd := 0.0
	if len(series) > 1 {
		sd, err = stats.StandardDeviationSample(series)
		if err != nil {
			return Summary{}, err
		}
	}
	min, err := stats.Min(series)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(series)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Mean: mean, Stddev: sd, Min: min, Max: max}, nil
}

// ObservedFrequency derives the publish frequency a run actually hit
// from the number of received samples. The first warmup seconds carry
// no samples, so they are excluded from the window.
func ObservedFrequency(samples int, runtime int, warmup int) float64 {
	return float64(samples) / float64(runtime-warmup)
}

// CheckFrequency reports whether the observed frequency is within
// tolerance (a fraction) of the target.
func CheckFrequency(observed float64, target int, tolerance float64) bool {
	return math.Abs(observed-float64(target)) <= tolerance*float64(target)
}
