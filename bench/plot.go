package bench

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/btree-query-bench/twothree/index/twothree"
)

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// Plot renders a grouped bar chart of per-operation latency with one group
// per phase and one bar per structure/config pair.
func Plot(results []BenchResult, path string) error {
	if len(results) == 0 {
		return errors.New("bench: no results to plot")
	}

	var phases []string
	phaseIdx := make(map[string]int)
	for _, r := range results {
		if _, ok := phaseIdx[r.Operation]; !ok {
			phaseIdx[r.Operation] = len(phases)
			phases = append(phases, r.Operation)
		}
	}

	var series []string
	values := make(map[string]plotter.Values)
	for _, r := range results {
		key := r.Name + "/" + r.Config
		v, ok := values[key]
		if !ok {
			series = append(series, key)
			v = make(plotter.Values, len(phases))
			values[key] = v
		}
		v[phaseIdx[r.Operation]] = float64(r.LatencyNs)
	}

	p := plot.New()
	p.Title.Text = "Latency per Operation"
	p.Y.Label.Text = "ns / op"

	w := vg.Points(max(4, 80/float64(len(series))))
	for i, key := range series {
		bars, err := plotter.NewBarChart(values[key], w)
		if err != nil {
			return fmt.Errorf("bench: bars for %s: %w", key, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * w
		p.Add(bars)
		p.Legend.Add(key, bars)
	}
	p.Legend.Top = true
	p.NominalX(phases...)
	p.Add(plotter.NewGrid())

	return p.Save(chartWidth, chartHeight, path)
}

// HeightSample is the height of a 2-3 tree holding N keys together with the
// bounds every such tree must respect.
type HeightSample struct {
	N      int
	Height int
	Lower  int // ⌈log₃ N⌉
	Upper  int // ⌈log₂ N⌉
}

// HeightCurve grows a tree to maxN keys and samples its height every step
// insertions. Keys go in ascending order when rng is nil, otherwise in a
// random permutation drawn from rng.
func HeightCurve(maxN, step int, rng *rand.Rand) []HeightSample {
	if maxN <= 0 {
		return nil
	}
	if step <= 0 {
		step = 1
	}
	order := make([]int, maxN)
	if rng != nil {
		order = rng.Perm(maxN)
	} else {
		for i := range order {
			order[i] = i
		}
	}

	t := twothree.New[int64]()
	var samples []HeightSample
	for i, k := range order {
		t.Insert(int64(k))
		n := i + 1
		if n%step == 0 || n == maxN {
			samples = append(samples, HeightSample{
				N:      n,
				Height: t.Height(),
				Lower:  ceilLog3(n),
				Upper:  bits.Len(uint(n - 1)),
			})
		}
	}
	return samples
}

func ceilLog3(n int) int {
	h, p := 0, 1
	for p < n {
		p *= 3
		h++
	}
	return h
}

// PlotHeightCurve draws the measured height against both bounds.
func PlotHeightCurve(samples []HeightSample, path string) error {
	if len(samples) == 0 {
		return errors.New("bench: no height samples to plot")
	}
	height := make(plotter.XYs, len(samples))
	upper := make(plotter.XYs, len(samples))
	lower := make(plotter.XYs, len(samples))
	for i, s := range samples {
		x := float64(s.N)
		height[i] = plotter.XY{X: x, Y: float64(s.Height)}
		upper[i] = plotter.XY{X: x, Y: float64(s.Upper)}
		lower[i] = plotter.XY{X: x, Y: float64(s.Lower)}
	}

	p := plot.New()
	p.Title.Text = "2-3 Tree Height"
	p.X.Label.Text = "keys"
	p.Y.Label.Text = "height"
	if err := plotutil.AddLines(p,
		"height", height,
		"⌈log₂ n⌉", upper,
		"⌈log₃ n⌉", lower,
	); err != nil {
		return err
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	return p.Save(chartWidth, chartHeight, path)
}
