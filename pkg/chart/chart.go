package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/msgperf/trace-overhead/pkg/config"
	log "github.com/msgperf/trace-overhead/pkg/logging"
	result "github.com/msgperf/trace-overhead/pkg/results"
	"github.com/msgperf/trace-overhead/pkg/runfile"
)

const (
	latenciesName = "results_latencies"
	overheadName  = "results_overhead"

	panelWidth  = 5 * vg.Inch
	panelHeight = 4 * vg.Inch
	dpi         = 300
)

// errPoints is a line series with per-point error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// freqTicks returns the frequency axis ticks, 0 to the max configured
// frequency in steps of 500 Hz.
func freqTicks(cfg config.Config) []plot.Tick {
	max := 0
	for _, f := range cfg.Frequencies {
		if f > max {
			max = f
		}
	}
	var ticks []plot.Tick
	for t := 0; t <= max; t += 500 {
		ticks = append(ticks, plot.Tick{Value: float64(t), Label: fmt.Sprintf("%d", t)})
	}
	return ticks
}

// newPanel builds a plot with the common frequency axis and grid.
func newPanel(cfg config.Config, xlabel string) *plot.Plot {
	p := plot.New()
	ticks := freqTicks(cfg)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = ticks[0].Value
	// Small margin past the last tick so the rightmost points are
	// not clipped
	p.X.Max = ticks[len(ticks)-1].Value + 75
	p.X.Label.Text = xlabel
	p.Add(plotter.NewGrid())
	return p
}

// addSeries adds one message-size curve, with error bars when stddevs
// are provided.
func addSeries(p *plot.Plot, idx int, msgKB int, xs, ys, errs []float64) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	clr := plotutil.Color(idx)
	l.Color = clr
	s.Color = clr
	s.Shape = plotutil.Shape(idx)
	p.Add(l, s)
	p.Legend.Add(fmt.Sprintf("%d KB", msgKB), l, s)

	if errs != nil {
		yerrs := make(plotter.YErrors, len(errs))
		for i, e := range errs {
			yerrs[i].Low = e
			yerrs[i].High = e
		}
		bars, err := plotter.NewYErrorBars(errPoints{XYs: pts, YErrors: yerrs})
		if err != nil {
			return err
		}
		bars.LineStyle.Color = clr
		p.Add(bars)
	}
	return nil
}

// writePanels renders the two panels side by side, once per output
// format.
func writePanels(dir string, name string, left *plot.Plot, right *plot.Plot) error {
	width := 2 * panelWidth
	height := panelHeight
	plots := [][]*plot.Plot{{left, right}}
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 2}

	do := func(sfx string, can vg.CanvasWriterTo) error {
		file := filepath.Join(dir, name) + "." + sfx
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		canvases := plot.Align(plots, tiles, draw.New(can))
		left.Draw(canvases[0][0])
		right.Draw(canvases[0][1])
		if _, err := can.WriteTo(f); err != nil {
			return err
		}
		log.Debugf("Wrote %s", file)
		return nil
	}

	png := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	if err := do("png", png); err != nil {
		return err
	}
	return do("svg", vgsvg.New(width, height))
}

// Latencies renders the baseline (left) and traced (right) mean
// latency per publishing frequency, one curve per message size, with
// stddev error bars when the raw series are available.
func Latencies(dir string, cfg config.Config, runs []result.Run) error {
	base := newPanel(cfg, "publishing frequency (Hz)")
	trace := newPanel(cfg, "publishing frequency (Hz)")
	base.Y.Label.Text = "mean latency (ms)"
	if cfg.PlotTitles {
		base.Title.Text = "Message latencies without tracing"
		trace.Title.Text = "Message latencies with tracing"
	}

	byMode := map[string]*plot.Plot{runfile.ModeBase: base, runfile.ModeTrace: trace}
	for _, mode := range []string{runfile.ModeBase, runfile.ModeTrace} {
		p := byMode[mode]
		for i, msg := range cfg.MessageSizes {
			var xs, ys, errs []float64
			for _, freq := range cfg.Frequencies {
				r, ok := findRun(runs, mode, msg, freq)
				if !ok {
					return fmt.Errorf("missing %s run for %dk %dhz", mode, msg, freq)
				}
				xs = append(xs, float64(freq))
				ys = append(ys, r.Summary.Mean)
				if cfg.RawData {
					errs = append(errs, r.Summary.Stddev)
				}
			}
			if err := addSeries(p, i, msg, xs, ys, errs); err != nil {
				return err
			}
		}
	}
	alignY(base, trace)
	trace.Legend.Top = true

	return writePanels(dir, latenciesName, base, trace)
}

// Overhead renders the absolute (left) and relative (right) latency
// overhead of tracing per publishing frequency, one curve per message
// size. The overhead series carry no error bars, the variance of the
// difference of two run means is too small to be meaningful.
func Overhead(dir string, cfg config.Config, comparisons []result.Comparison) error {
	abs := newPanel(cfg, "publishing frequency (Hz)")
	per := newPanel(cfg, "publishing frequency (Hz)")
	abs.Y.Label.Text = "mean latency overhead (ms)"
	per.Y.Label.Text = "mean latency overhead (%)"
	if cfg.PlotTitles {
		abs.Title.Text = "Latency overhead of tracing"
		per.Title.Text = "Latency overhead of tracing"
	}

	for i, msg := range cfg.MessageSizes {
		var xs, msYs, pctYs []float64
		for _, freq := range cfg.Frequencies {
			c, ok := findComparison(comparisons, msg, freq)
			if !ok {
				return fmt.Errorf("missing comparison for %dk %dhz", msg, freq)
			}
			xs = append(xs, float64(freq))
			msYs = append(msYs, c.OverheadMS)
			pctYs = append(pctYs, c.OverheadPct)
		}
		if err := addSeries(abs, i, msg, xs, msYs, nil); err != nil {
			return err
		}
		if err := addSeries(per, i, msg, xs, pctYs, nil); err != nil {
			return err
		}
	}
	per.Legend.Top = true

	return writePanels(dir, overheadName, abs, per)
}

// alignY gives both panels the same y range, like a shared axis.
func alignY(a *plot.Plot, b *plot.Plot) {
	if b.Y.Min < a.Y.Min {
		a.Y.Min = b.Y.Min
	}
	if b.Y.Max > a.Y.Max {
		a.Y.Max = b.Y.Max
	}
	b.Y.Min = a.Y.Min
	b.Y.Max = a.Y.Max
}

func findRun(runs []result.Run, mode string, msgKB int, freqHz int) (result.Run, bool) {
	for _, r := range runs {
		if r.Mode == mode && r.MessageSize == msgKB && r.Frequency == freqHz {
			return r, true
		}
	}
	return result.Run{}, false
}

func findComparison(cs []result.Comparison, msgKB int, freqHz int) (result.Comparison, bool) {
	for _, c := range cs {
		if c.MessageSize == msgKB && c.Frequency == freqHz {
			return c, true
		}
	}
	return result.Comparison{}, false
}
