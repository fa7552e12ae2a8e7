package bench

import (
	"errors"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotHTML writes the same latency comparison as Plot as an interactive
// echarts page.
func PlotHTML(results []BenchResult, path string) error {
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
	data := make(map[string][]opts.BarData)
	for _, r := range results {
		key := r.Name + "/" + r.Config
		bars, ok := data[key]
		if !ok {
			series = append(series, key)
			bars = make([]opts.BarData, len(phases))
			data[key] = bars
		}
		bars[phaseIdx[r.Operation]] = opts.BarData{
			Name:  r.Operation,
			Value: r.LatencyNs,
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Latency per Operation",
			Subtitle: "ns / op",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	bar.SetXAxis(phases)
	for _, key := range series {
		bar.AddSeries(key, data[key])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.AddCharts(bar)
	if err := page.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
