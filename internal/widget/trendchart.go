// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davetashner/csvwidgets/internal/chart"
	"github.com/davetashner/csvwidgets/internal/csvdata"
	"github.com/davetashner/csvwidgets/internal/datefmt"
	"github.com/davetashner/csvwidgets/internal/htmlfrag"
	"github.com/davetashner/csvwidgets/internal/param"
	"github.com/davetashner/csvwidgets/internal/trend"
)

// TypeTrendChart is the type name of the CSV trend chart widget.
const TypeTrendChart = "csv-trend-chart"

// Trend chart parameter ids.
const (
	ParamTitle       = "title"
	ParamSeries      = "series"
	ParamName        = "name"
	ParamColor       = "color"
	ParamDataKey     = "dataKey"
	ParamAggregation = "aggregation"
	ParamType        = "type"
	ParamDates       = "dates"
	ParamFrom        = "from"
	ParamTo          = "to"
	ParamScale       = "scale"
	ParamYear        = "year"
	ParamTextAbove   = "textAbove"
	ParamTextBelow   = "textBelow"
	ParamDateFormat  = "dateFormat"
)

func init() {
	Register(&trendChartWidget{})
}

// trendChartWidget plots dated CSV columns over a date window, with
// optional templated text above and below the chart.
type trendChartWidget struct{}

// Compile-time interface check.
var _ Widget = (*trendChartWidget)(nil)

func (t *trendChartWidget) Type() string  { return TypeTrendChart }
func (t *trendChartWidget) Label() string { return "CSV-based Trend Chart" }

func (t *trendChartWidget) Details() string {
	return "Trend chart visualizing data from CSV file stored in repository."
}

func (t *trendChartWidget) Tags() []string { return []string{"CSV", "charts"} }
func (t *trendChartWidget) Icon() []byte   { return icon("trend.svg") }

func (t *trendChartWidget) Parameters() *param.Definition {
	aggregations := trend.AggregationNames()
	scales := trend.ScaleNames()
	return param.Composite("", t.Label(),
		param.String(ParamTitle, "Title").WithDefault("Chart Title"),
		csvdata.SourceParameter(),
		csvdata.AdditionalSourcesParameter(),
		param.Multi(ParamSeries, "Data Visualization",
			param.String(ParamName, "Name"),
			param.String(ParamColor, "Color"),
			param.String(ParamDataKey, "Data Key"),
			param.Enum(ParamAggregation, "Aggregation "+bracketList(aggregations), aggregations...).
				WithDefault(trend.Sum.String()),
			param.Enum(ParamType, "Type [bar, column, line, spline, scatter or leave empty for widget-wide setting]",
				chart.Types()...),
		),
		param.Composite(ParamDates, "Dates",
			param.Date(ParamFrom, "From"),
			param.Date(ParamTo, "To"),
			param.Enum(ParamScale, "Scale "+bracketList(scales), scales...).WithDefault(trend.Month.String()),
			param.Int(ParamYear, "Year (used instead of From and To)"),
		),
		param.Enum(ParamType, "Type [bar, column, line, spline, scatter]", chart.Types()...).WithDefault(chart.TypeLine),
		param.String(ParamTextAbove, "Text Above"),
		param.String(ParamTextBelow, "Text Below"),
		param.String(ParamDateFormat, "Date Format").WithDefault(datefmt.Default),
	)
}

func bracketList(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

// trendSettings is the bound configuration of one trend chart render.
type trendSettings struct {
	title      string
	chartType  string
	scale      trend.Scale
	window     trend.Window
	dateFormat *datefmt.Formatter
	textAbove  param.Optional[string]
	textBelow  param.Optional[string]
}

func (t *trendChartWidget) Render(ctx context.Context, rc *RenderContext, params param.Value, out *Output) error {
	cal, err := rc.calendar()
	if err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	engine, err := rc.engine()
	if err != nil {
		return err
	}
	settings, err := bindTrendSettings(params, cal.Location())
	if err != nil {
		return err
	}

	sources, err := csvdata.LoadAll(ctx, rc.Loader, params)
	if err != nil {
		return err
	}
	ds, err := trend.NewDataset(sources, settings.window)
	if err != nil {
		return err
	}

	tc := trend.TextContext{
		Statistics:  ds.Statistics(),
		WorkingDays: cal.WorkingDays(settings.window.From, settings.window.To),
		FormatTime: func(ts time.Time) string {
			return settings.dateFormat.Format(ts.In(cal.Location()))
		},
	}
	for _, src := range sources {
		tc.Sources = append(tc.Sources, trend.SourceTime{Name: src.Name, Time: src.Timestamp})
	}

	specs, err := seriesSpecs(params.Get(ParamSeries))
	if err != nil {
		return err
	}
	plot := trend.BuildPlot(ds, specs, settings.scale, cal.WeekStart())

	width := rc.columnWidth()
	spec := chart.Spec{
		ID:     "rpw-chart-" + rc.RenderID.String(),
		Title:  settings.title,
		Type:   settings.chartType,
		Width:  width,
		Height: width / 3,
		Plot:   plot,
	}
	if err := chart.Validate(spec); err != nil {
		return err
	}

	if text, ok := settings.textAbove.Get(); ok {
		if err := htmlfrag.Text(out, trend.ProcessText(text, tc)); err != nil {
			return err
		}
	}
	if err := engine.Render(out, spec); err != nil {
		return err
	}
	if text, ok := settings.textBelow.Get(); ok {
		if err := htmlfrag.Text(out, trend.ProcessText(text, tc)); err != nil {
			return err
		}
	}
	out.Scripts = engine.Scripts()
	return nil
}

// bindTrendSettings reads the chart-wide parameters. The year shortcut
// takes precedence over From and To.
func bindTrendSettings(params param.Value, loc *time.Location) (*trendSettings, error) {
	s := &trendSettings{
		title:     params.Get(ParamTitle).Str().OrElse(""),
		textAbove: params.Get(ParamTextAbove).Str(),
		textBelow: params.Get(ParamTextBelow).Str(),
	}
	dates := params.Get(ParamDates)

	scaleOpt, err := dates.Get(ParamScale).Enum()
	if err != nil {
		return nil, err
	}
	scaleName, err := scaleOpt.Required()
	if err != nil {
		return nil, err
	}
	if s.scale, err = trend.ParseScale(scaleName); err != nil {
		return nil, err
	}

	typeOpt, err := params.Get(ParamType).Enum()
	if err != nil {
		return nil, err
	}
	if s.chartType, err = typeOpt.Required(); err != nil {
		return nil, err
	}

	pattern, err := params.Get(ParamDateFormat).Str().Required()
	if err != nil {
		return nil, err
	}
	if s.dateFormat, err = datefmt.Compile(pattern); err != nil {
		return nil, err
	}

	if s.window, err = bindWindow(dates, loc); err != nil {
		return nil, err
	}
	return s, nil
}

func bindWindow(dates param.Value, loc *time.Location) (trend.Window, error) {
	year, err := dates.Get(ParamYear).Int()
	if err != nil {
		return trend.Window{}, err
	}
	if y, ok := year.Get(); ok {
		return trend.YearWindow(y, loc)
	}

	fromOpt, err := dates.Get(ParamFrom).Date(loc)
	if err != nil {
		return trend.Window{}, err
	}
	from, err := fromOpt.Required()
	if err != nil {
		return trend.Window{}, err
	}
	toOpt, err := dates.Get(ParamTo).Date(loc)
	if err != nil {
		return trend.Window{}, err
	}
	to, err := toOpt.Required()
	if err != nil {
		return trend.Window{}, err
	}
	return trend.Window{From: from, To: to}, nil
}

// seriesSpecs reads the configured series. Entries with none of name,
// color and data key are skipped.
func seriesSpecs(series param.Value) ([]trend.SeriesSpec, error) {
	var specs []trend.SeriesSpec
	for _, item := range series.Items() {
		name := item.Get(ParamName).Str()
		color := item.Get(ParamColor).Str()
		key := item.Get(ParamDataKey).Str()
		if !name.Present() && !color.Present() && !key.Present() {
			continue
		}
		dataKey, err := key.Required()
		if err != nil {
			return nil, err
		}
		aggOpt, err := item.Get(ParamAggregation).Enum()
		if err != nil {
			return nil, err
		}
		aggName, err := aggOpt.Required()
		if err != nil {
			return nil, err
		}
		agg, err := trend.ParseAggregation(aggName)
		if err != nil {
			return nil, err
		}
		seriesType, err := item.Get(ParamType).Enum()
		if err != nil {
			return nil, err
		}
		specs = append(specs, trend.SeriesSpec{
			Name:        name.OrElse(""),
			Color:       color.OrElse(""),
			Type:        seriesType.OrElse(""),
			Key:         dataKey,
			Aggregation: agg,
		})
	}
	return specs, nil
}
