package charts

import (
	"context"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"plotcast/internal/registry"
)

// BarRenderer renders bar_chart requests as PNG artifacts. Multi-series
// input renders as grouped bars, or as stacked bars when stack is set.
// Horizontal orientation is accepted but rendered vertically; the underlying
// library draws vertical bars only.
type BarRenderer struct {
	outputDir    string
	defaultTheme string
}

// NewBarRenderer creates a bar chart renderer writing defaults under
// outputDir.
func NewBarRenderer(outputDir, defaultTheme string) *BarRenderer {
	return &BarRenderer{outputDir: outputDir, defaultTheme: defaultTheme}
}

// ChartType returns the chart type this renderer is bound to.
func (r *BarRenderer) ChartType() string {
	return registry.TypeBarChart
}

// Render draws the bars and persists the chart.
func (r *BarRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
	savePath, err := resolveSavePath(stringParam(params, "save_path", ""), r.outputDir, r.ChartType(), "png")
	if err != nil {
		return "", err
	}
	if err := requireExtension(savePath, "png"); err != nil {
		return "", err
	}

	rows := rowsParam(params)
	xField := stringParam(params, "x_field", "")
	yFields := stringListParam(params, "y_fields")
	stack := boolParam(params, "stack", false)

	var render func(f *os.File) error
	if stack && len(yFields) > 1 {
		graph, err := r.stackedChart(params, rows, xField, yFields)
		if err != nil {
			return "", err
		}
		render = func(f *os.File) error {
			if err := graph.Render(chart.PNG, f); err != nil {
				return fmt.Errorf("failed to render stacked bar chart: %w", err)
			}
			return nil
		}
	} else {
		graph, err := r.barChart(params, rows, xField, yFields)
		if err != nil {
			return "", err
		}
		render = func(f *os.File) error {
			if err := graph.Render(chart.PNG, f); err != nil {
				return fmt.Errorf("failed to render bar chart: %w", err)
			}
			return nil
		}
	}

	if err := writeArtifact(savePath, render); err != nil {
		return "", err
	}
	return savePath, nil
}

// barChart builds a regular (single-series or grouped) bar chart.
func (r *BarRenderer) barChart(params map[string]interface{}, rows []map[string]interface{}, xField string, yFields []string) (*chart.BarChart, error) {
	th := themeParam(params, r.defaultTheme)
	colors := stringListParam(params, "colors")
	edgeColor := parseColor(stringParam(params, "edge_color", "black"))
	edgeWidth := floatParam(params, "edge_width", 0.5)
	labels := columnStrings(rows, xField)

	var bars []chart.Value
	for seriesIdx, yField := range yFields {
		values, err := columnFloats(rows, yField)
		if err != nil {
			return nil, err
		}
		color := seriesColor(colors, seriesIdx)
		for rowIdx, value := range values {
			label := labels[rowIdx]
			if len(yFields) > 1 {
				label = fmt.Sprintf("%s %s", labels[rowIdx], yField)
			}
			bars = append(bars, chart.Value{
				Value: value,
				Label: label,
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: edgeColor,
					StrokeWidth: edgeWidth,
				},
			})
		}
	}

	width, height := figurePixels(params, 10, 6)
	barWidth := scaledBarWidth(params, width, len(bars))
	return &chart.BarChart{
		Title:      stringParam(params, "title", "Chart"),
		TitleStyle: chart.Style{FontSize: 16, FontColor: th.Text},
		Background: chart.Style{
			FillColor: th.Background,
			Padding:   chart.Box{Top: 50, Left: 70, Right: 30, Bottom: 60},
		},
		Canvas:   chart.Style{FillColor: th.Canvas},
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		XAxis:    chart.Style{FontSize: 10, FontColor: th.Axis},
		YAxis: chart.YAxis{
			Name:      stringParam(params, "y_label", ""),
			NameStyle: chart.Style{FontSize: 12, FontColor: th.Text},
			Style:     chart.Style{FontSize: 10, FontColor: th.Axis},
		},
		Bars: bars,
	}, nil
}

// stackedChart builds a stacked bar chart with one stack per data row.
func (r *BarRenderer) stackedChart(params map[string]interface{}, rows []map[string]interface{}, xField string, yFields []string) (*chart.StackedBarChart, error) {
	th := themeParam(params, r.defaultTheme)
	colors := stringListParam(params, "colors")
	labels := columnStrings(rows, xField)

	stacks := make([]chart.StackedBar, 0, len(rows))
	for rowIdx := range rows {
		values := make([]chart.Value, 0, len(yFields))
		for seriesIdx, yField := range yFields {
			f, ok := toFloat(rows[rowIdx][yField])
			if !ok {
				return nil, fmt.Errorf("row %d field %q is not numeric: %v", rowIdx, yField, rows[rowIdx][yField])
			}
			values = append(values, chart.Value{
				Value: f,
				Label: yField,
				Style: chart.Style{FillColor: seriesColor(colors, seriesIdx)},
			})
		}
		stacks = append(stacks, chart.StackedBar{
			Name:   labels[rowIdx],
			Values: values,
		})
	}

	width, height := figurePixels(params, 10, 6)
	return &chart.StackedBarChart{
		Title:      stringParam(params, "title", "Chart"),
		TitleStyle: chart.Style{FontSize: 16, FontColor: th.Text},
		Background: chart.Style{
			FillColor: th.Background,
			Padding:   chart.Box{Top: 50, Left: 70, Right: 30, Bottom: 60},
		},
		Canvas: chart.Style{FillColor: th.Canvas},
		Width:  width,
		Height: height,
		XAxis:  chart.Style{FontSize: 10, FontColor: th.Axis},
		YAxis:  chart.Style{FontSize: 10, FontColor: th.Axis},
		Bars:   stacks,
	}, nil
}

// scaledBarWidth converts the relative bar_width in (0,1] into pixels of
// the plot width divided across the bars.
func scaledBarWidth(params map[string]interface{}, plotWidth, barCount int) int {
	relative := floatParam(params, "bar_width", 0.8)
	if barCount == 0 {
		return 1
	}
	w := int(relative * float64(plotWidth) / float64(barCount))
	if w < 1 {
		w = 1
	}
	return w
}
