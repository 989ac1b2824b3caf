// Package plot renders optimization results as standalone HTML charts:
// the gain/weight trade-off front with the recommended design
// highlighted, and the convergence of best gain over generations.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
)

// ParetoFront writes a scatter plot of the trade-off front to path.
// The recommended design is drawn as a separate highlighted series.
func ParetoFront(front []antenna.ParetoPoint, recommended antenna.Geometry, path string) error {
	if len(front) == 0 {
		return fmt.Errorf("cannot plot an empty Pareto front")
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Antenna Gain vs Weight Trade-off",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Weight (kg)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Gain (dBi)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	frontData := make([]opts.ScatterData, 0, len(front))
	var kneeData []opts.ScatterData
	for _, pt := range front {
		data := opts.ScatterData{
			Value:      []float64{pt.WeightKg, pt.Metrics.GainDBi},
			Symbol:     "circle",
			SymbolSize: 10,
		}
		if pt.Geometry == recommended {
			data.Symbol = "diamond"
			data.SymbolSize = 18
			kneeData = append(kneeData, data)
			continue
		}
		frontData = append(frontData, data)
	}

	scatter.AddSeries("Pareto Front", frontData).
		AddSeries("Recommended Design", kneeData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return render(scatter, path)
}

// Convergence writes a line chart of best feasible gain per generation.
func Convergence(history []float64, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("cannot plot an empty convergence history")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Optimization Convergence",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Best Gain (dBi)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(history))
	data := make([]opts.LineData, len(history))
	for i, gain := range history {
		generations[i] = i + 1
		data[i] = opts.LineData{Value: gain}
	}

	line.SetXAxis(generations).
		AddSeries("Best Feasible Gain", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return render(line, path)
}

type renderer interface {
	Render(w io.Writer) error
}

func render(chart renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return chart.Render(f)
}
