// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChartsScript is the ECharts runtime the fragments expect on the page.
const EChartsScript = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

func init() {
	Register(ECharts{})
}

// ECharts builds the chart option with go-echarts and embeds it in a
// self-initialising fragment.
type ECharts struct{}

// Name implements Engine.
func (ECharts) Name() string { return "echarts" }

// Scripts implements Engine.
func (ECharts) Scripts() []string { return []string{EChartsScript} }

const echartsFragment = `<div class="rpw-chart" id="{{.ID}}" style="width:{{.Width}}px;height:{{.Height}}px;"></div>
<script type="text/javascript">
(function () {
  var el = document.getElementById({{.ID}});
  var chart = echarts.init(el);
  chart.setOption({{.Option}});
  window.addEventListener("resize", function () { chart.resize(); });
})();
</script>
`

var (
	echartsTmpl     *template.Template
	echartsTmplOnce sync.Once
)

func getEChartsTemplate() *template.Template {
	echartsTmplOnce.Do(func() {
		echartsTmpl = template.Must(template.New("echarts").Parse(echartsFragment))
	})
	return echartsTmpl
}

type echartsData struct {
	ID     string
	Width  int
	Height int
	Option template.JS
}

// Render implements Engine.
func (ECharts) Render(w io.Writer, spec Spec) error {
	option, err := Option(spec)
	if err != nil {
		return err
	}
	return getEChartsTemplate().Execute(w, echartsData{
		ID:     spec.ID,
		Width:  spec.Width,
		Height: spec.Height,
		Option: template.JS(option),
	})
}

// Option returns the ECharts option JSON for spec.
func Option(spec Spec) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: spec.ID,
			Width:   fmt.Sprintf("%dpx", spec.Width),
			Height:  fmt.Sprintf("%dpx", spec.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: spec.Plot.YMin}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)

	for _, s := range spec.Plot.Series {
		sk, err := resolveType(spec.Type, s.Type)
		if err != nil {
			return "", fmt.Errorf("series %q: %w", s.Name, err)
		}
		data := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.LineData{Value: []interface{}{p.Date.UnixMilli(), p.Value}})
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(sk.smooth),
				ShowSymbol: opts.Bool(sk.kind == TypeScatter),
			}),
		}
		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			)
		}
		line.AddSeries(s.Name, data, seriesOpts...)
		line.MultiSeries[len(line.MultiSeries)-1].Type = sk.kind
	}

	line.Validate()
	// encoding/json escapes <, > and & so the option is safe inside <script>.
	b, err := json.Marshal(line.JSON())
	if err != nil {
		return "", fmt.Errorf("encoding chart option: %w", err)
	}
	return string(b), nil
}
