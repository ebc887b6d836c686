package charts

import (
	"context"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"plotcast/internal/registry"
)

// LineRenderer renders line_chart requests as PNG artifacts.
type LineRenderer struct {
	outputDir    string
	defaultTheme string
}

// NewLineRenderer creates a line chart renderer writing defaults under
// outputDir.
func NewLineRenderer(outputDir, defaultTheme string) *LineRenderer {
	return &LineRenderer{outputDir: outputDir, defaultTheme: defaultTheme}
}

// ChartType returns the chart type this renderer is bound to.
func (r *LineRenderer) ChartType() string {
	return registry.TypeLineChart
}

// Render draws one line per y field and persists the chart.
func (r *LineRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
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
	th := themeParam(params, r.defaultTheme)
	colors := stringListParam(params, "colors")
	lineStyles := stringListParam(params, "line_styles")
	lineWidths := floatListParam(params, "line_widths")
	markers := stringListParam(params, "markers")

	xValues, xTicks, err := continuousX(rows, xField)
	if err != nil {
		return "", err
	}

	series := make([]chart.Series, 0, len(yFields))
	for i, yField := range yFields {
		yValues, err := columnFloats(rows, yField)
		if err != nil {
			return "", err
		}
		color := seriesColor(colors, i)
		style := chart.Style{
			StrokeColor:     color,
			StrokeWidth:     pick(lineWidths, i, 1.5),
			StrokeDashArray: dashArray(pickString(lineStyles, i, "-")),
			DotColor:        color,
			DotWidth:        3,
		}
		if len(markers) > 0 {
			style.DotWidth = 5
		}
		series = append(series, chart.ContinuousSeries{
			Name:    yField,
			Style:   style,
			XValues: xValues,
			YValues: yValues,
		})
	}

	width, height := figurePixels(params, 10, 6)
	graph := chart.Chart{
		Title:      stringParam(params, "title", "Chart"),
		TitleStyle: chart.Style{FontSize: 16, FontColor: th.Text},
		Background: chart.Style{
			FillColor: th.Background,
			Padding:   chart.Box{Top: 50, Left: 60, Right: 30, Bottom: 50},
		},
		Canvas: chart.Style{FillColor: th.Canvas},
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:      stringParam(params, "x_label", xField),
			NameStyle: chart.Style{FontSize: 12, FontColor: th.Text},
			Style:     chart.Style{FontSize: 10, FontColor: th.Axis},
			Ticks:     xTicks,
		},
		YAxis: chart.YAxis{
			Name:      stringParam(params, "y_label", ""),
			NameStyle: chart.Style{FontSize: 12, FontColor: th.Text},
			Style:     chart.Style{FontSize: 10, FontColor: th.Axis},
		},
		Series: series,
	}
	applyGrid(&graph, th, boolParam(params, "grid", true))
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := writeArtifact(savePath, func(f *os.File) error {
		if err := graph.Render(chart.PNG, f); err != nil {
			return fmt.Errorf("failed to render line chart: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return savePath, nil
}

// continuousX maps the x column onto the continuous axis: numeric values
// are used directly, anything else becomes index positions with category
// tick labels.
func continuousX(rows []map[string]interface{}, xField string) ([]float64, []chart.Tick, error) {
	if columnIsNumeric(rows, xField) {
		values, err := columnFloats(rows, xField)
		return values, nil, err
	}
	labels := columnStrings(rows, xField)
	values := make([]float64, len(labels))
	ticks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		values[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	return values, ticks, nil
}

// applyGrid toggles the major grid on both axes.
func applyGrid(graph *chart.Chart, th Theme, enabled bool) {
	if !enabled {
		return
	}
	gridStyle := chart.Style{
		StrokeColor:     th.Grid,
		StrokeWidth:     1,
		StrokeDashArray: []float64{2, 3},
	}
	graph.XAxis.GridMajorStyle = gridStyle
	graph.YAxis.GridMajorStyle = gridStyle
}

// dashArray maps a line style name onto a stroke dash pattern. Solid styles
// return nil.
func dashArray(style string) []float64 {
	switch style {
	case "--", "dashed":
		return []float64{5, 5}
	case "-.", "dashdot":
		return []float64{5, 3, 1, 3}
	case ":", "dotted":
		return []float64{1, 3}
	default:
		return nil
	}
}

func pick(values []float64, i int, fallback float64) float64 {
	if i < len(values) {
		return values[i]
	}
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

func pickString(values []string, i int, fallback string) string {
	if i < len(values) {
		return values[i]
	}
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
