package charts

import (
	"context"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"plotcast/internal/registry"
)

// ScatterRenderer renders scatter_plot requests as PNG artifacts. A
// color_field groups points into one series per distinct value, which also
// produces a legend, with group colors sampled from the color_map ramp; a
// size_field scales the dot width from the column average. marker_style is
// accepted for compatibility; the drawing library renders round dots only.
type ScatterRenderer struct {
	outputDir    string
	defaultTheme string
}

// NewScatterRenderer creates a scatter plot renderer writing defaults under
// outputDir.
func NewScatterRenderer(outputDir, defaultTheme string) *ScatterRenderer {
	return &ScatterRenderer{outputDir: outputDir, defaultTheme: defaultTheme}
}

// ChartType returns the chart type this renderer is bound to.
func (r *ScatterRenderer) ChartType() string {
	return registry.TypeScatterPlot
}

// Render draws the points and persists the chart.
func (r *ScatterRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
	savePath, err := resolveSavePath(stringParam(params, "save_path", ""), r.outputDir, r.ChartType(), "png")
	if err != nil {
		return "", err
	}
	if err := requireExtension(savePath, "png"); err != nil {
		return "", err
	}

	rows := rowsParam(params)
	xField := stringParam(params, "x_field", "")
	yField := stringParam(params, "y_field", "")
	colorField := stringParam(params, "color_field", "")
	th := themeParam(params, r.defaultTheme)
	alpha := floatParam(params, "alpha", 0.7)
	dotWidth := r.dotWidth(params, rows)

	groups := groupRows(rows, colorField)
	colors := groupColors(groups, colorField, stringParam(params, "color_map", "viridis"))
	series := make([]chart.Series, 0, len(groups))
	for i, group := range groups {
		xValues, err := columnFloats(group.rows, xField)
		if err != nil {
			return "", err
		}
		yValues, err := columnFloats(group.rows, yField)
		if err != nil {
			return "", err
		}
		series = append(series, chart.ContinuousSeries{
			Name: group.name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    withAlpha(colors[i], alpha),
				DotWidth:    dotWidth,
			},
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
		},
		YAxis: chart.YAxis{
			Name:      stringParam(params, "y_label", yField),
			NameStyle: chart.Style{FontSize: 12, FontColor: th.Text},
			Style:     chart.Style{FontSize: 10, FontColor: th.Axis},
		},
		Series: series,
	}
	applyGrid(&graph, th, boolParam(params, "grid", true))
	if colorField != "" && len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := writeArtifact(savePath, func(f *os.File) error {
		if err := graph.Render(chart.PNG, f); err != nil {
			return fmt.Errorf("failed to render scatter plot: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return savePath, nil
}

// dotWidth derives the point size, scaled by the size_field column average
// when one is supplied.
func (r *ScatterRenderer) dotWidth(params map[string]interface{}, rows []map[string]interface{}) float64 {
	base := 5.0
	sizeField := stringParam(params, "size_field", "")
	if sizeField == "" {
		return base
	}
	values, err := columnFloats(rows, sizeField)
	if err != nil || len(values) == 0 {
		return base
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return base
	}
	w := base * mean
	if w > 20 {
		w = 20
	}
	if w < 2 {
		w = 2
	}
	return w
}

// groupColors picks one color per group. Grouped points sample the color_map
// ramp evenly from low to high; ungrouped points keep the categorical
// palette, matching how plotting libraries ignore a colormap without color
// data.
func groupColors(groups []rowGroup, colorField, colorMap string) []drawing.Color {
	out := make([]drawing.Color, len(groups))
	if colorField == "" {
		for i := range out {
			out[i] = defaultPalette[i%len(defaultPalette)]
		}
		return out
	}
	ramp := colorRamp(colorMap)
	for i := range out {
		pos := 0
		if len(groups) > 1 {
			pos = i * (len(ramp) - 1) / (len(groups) - 1)
		}
		out[i] = parseColor(ramp[pos])
	}
	return out
}

type rowGroup struct {
	name string
	rows []map[string]interface{}
}

// groupRows splits the rows by the grouping field value, preserving first
// appearance order. An empty field yields a single unnamed group.
func groupRows(rows []map[string]interface{}, field string) []rowGroup {
	if field == "" {
		return []rowGroup{{name: "points", rows: rows}}
	}
	index := make(map[string]int)
	var groups []rowGroup
	for _, row := range rows {
		key := fmt.Sprintf("%v", row[field])
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, rowGroup{name: key})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}
