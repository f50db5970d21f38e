package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/makma3d/containers/internal/logging"
	"github.com/makma3d/containers/internal/testbench"
)

// samples maps workload -> implementation -> element count -> ns/op values.
type samples map[string]map[string]map[int][]float64

// groupSessions collects the ns/op of every result across sessions. Results
// without a positive ns/op are skipped.
func groupSessions(sessions []testbench.FullReport) samples {
	out := samples{}
	for _, session := range sessions {
		for _, b := range session.Benchmarks {
			if b.NsPerOp <= 0 {
				continue
			}
			impls, ok := out[b.Workload]
			if !ok {
				impls = map[string]map[int][]float64{}
				out[b.Workload] = impls
			}
			sizes, ok := impls[b.Implementation]
			if !ok {
				sizes = map[int][]float64{}
				impls[b.Implementation] = sizes
			}
			sizes[b.Elements] = append(sizes[b.Elements], b.NsPerOp)
		}
	}
	return out
}

// sizeStats is the summary of one element count, placed at category x.
type sizeStats struct {
	x        float64
	elements int
	testbench.Summary
}

// statsPoints implements XYer and YErrorer for sizeStats, so we can plot lines + error bars.
type statsPoints []sizeStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].Median }
func (s statsPoints) YError(i int) (low, high float64) {
	return s[i].Median - s[i].Low, s[i].High - s[i].Median
}

// buildStats summarizes every element count, ordered by element count.
func buildStats(sizes map[int][]float64) []sizeStats {
	out := make([]sizeStats, 0, len(sizes))
	for n, vals := range sizes {
		if len(vals) == 0 {
			continue
		}
		out = append(out, sizeStats{elements: n, Summary: testbench.Summarize(vals)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].elements < out[b].elements })
	return out
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => labels for element counts.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// denseLogTicks labels about one tick per 30px of a 9 inch tall chart,
// spaced evenly on a log scale.
func denseLogTicks(min, max float64) []plot.Tick {
	const nTicks = 648.0 / 30.0
	if min <= 0 {
		min = 1e-9
	}
	start := math.Log10(min)
	step := (math.Log10(max) - start) / nTicks
	var ticks []plot.Tick
	for i := 0.0; i <= nTicks; i++ {
		y := math.Pow(10, start+i*step)
		ticks = append(ticks, plot.Tick{Value: y, Label: formatNs(y)})
	}
	return ticks
}

func darkPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Elements"
	p.Y.Label.Text = "Time per Op (ns) [log scale]"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.TickerFunc(denseLogTicks)

	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white
	p.Add(plotter.NewGrid())
	return p
}

// buildPlot draws one workload.
func buildPlot(workload string, impls map[string]map[int][]float64) (*plot.Plot, error) {
	p := darkPlot(fmt.Sprintf("%s (5%%-avg-min / Median / 5%%-avg-max) vs. Elements", workload))

	sizeSet := map[int]struct{}{}
	for _, sizes := range impls {
		for n := range sizes {
			sizeSet[n] = struct{}{}
		}
	}
	var sizes []int
	for n := range sizeSet {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	category := make(map[int]float64, len(sizes))
	var ct categoryTicks
	for i, n := range sizes {
		category[n] = float64(i)
		ct.positions = append(ct.positions, float64(i))
		ct.labels = append(ct.labels, strconv.Itoa(n))
	}
	p.X.Tick.Marker = ct

	var names []string
	for name := range impls {
		names = append(names, name)
	}
	sort.Strings(names)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Slight offset so each implementation is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(len(names))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, name := range names {
		stats := buildStats(impls[name])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = category[stats[j].elements] + startOffset + float64(i)*offsetStep
		}
		sp := statsPoints(stats)

		line, err := plotter.NewLine(sp)
		if err != nil {
			return nil, errors.Wrapf(err, "line for %s", name)
		}
		line.Color = colors[i%len(colors)]

		points, err := plotter.NewScatter(sp)
		if err != nil {
			return nil, errors.Wrapf(err, "scatter for %s", name)
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = colors[i%len(colors)]
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			return nil, errors.Wrapf(err, "error bars for %s", name)
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(line, points, yErrBars)
		p.Legend.Add(name, line, points)
	}
	return p, nil
}

// renderAll saves one PNG per workload and returns the file names written.
// A workload that fails to render is logged and skipped; the first such
// error is returned.
func renderAll(all samples, prefix string) ([]string, error) {
	var workloads []string
	for w := range all {
		workloads = append(workloads, w)
	}
	sort.Strings(workloads)

	var files []string
	var firstErr error
	for _, w := range workloads {
		filename := fmt.Sprintf("%s_%s.png", prefix, fileSafe(w))
		p, err := buildPlot(w, all[w])
		if err == nil {
			err = p.Save(12*vg.Inch, 9*vg.Inch, filename)
		}
		if err != nil {
			logging.Warn("skipping %s: %v", w, err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "rendering %s", w)
			}
			continue
		}
		files = append(files, filename)
	}
	return files, firstErr
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

// formatNs nicely formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
