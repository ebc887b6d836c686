package charts

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"plotcast/internal/registry"
)

// HeatmapRenderer renders heatmap requests as self-contained HTML artifacts
// with an embedded interactive chart. Rows are pivoted into an x/y grid and
// aggregated per cell. linewidths is accepted for compatibility; the
// embedded chart library styles cell borders by color only.
type HeatmapRenderer struct {
	outputDir string
}

// NewHeatmapRenderer creates a heatmap renderer writing defaults under
// outputDir.
func NewHeatmapRenderer(outputDir string) *HeatmapRenderer {
	return &HeatmapRenderer{outputDir: outputDir}
}

// ChartType returns the chart type this renderer is bound to.
func (r *HeatmapRenderer) ChartType() string {
	return registry.TypeHeatmap
}

// Render pivots the data, draws the grid and persists the chart.
func (r *HeatmapRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
	savePath, err := resolveSavePath(stringParam(params, "save_path", ""), r.outputDir, r.ChartType(), "html")
	if err != nil {
		return "", err
	}
	if err := requireExtension(savePath, "html"); err != nil {
		return "", err
	}

	rows := rowsParam(params)
	xField := stringParam(params, "x_field", "")
	yField := stringParam(params, "y_field", "")
	valueField := stringParam(params, "value_field", "")
	aggregation := stringParam(params, "aggregation", "mean")

	pivot, err := pivotRows(rows, xField, yField, valueField, aggregation)
	if err != nil {
		return "", err
	}

	width, height := figurePixels(params, 10, 8)
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", width),
			Height: fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: stringParam(params, "title", "Chart"),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			Name: stringParam(params, "x_label", xField),
			Data: pivot.xCats,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Name: stringParam(params, "y_label", yField),
			Data: pivot.yCats,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(pivot.min),
			Max:        float32(pivot.max),
			InRange: &opts.VisualMapInRange{
				Color: colorRamp(stringParam(params, "color_map", "viridis")),
			},
		}),
	)

	fmtSpec := stringParam(params, "fmt", ".2f")
	cells := make([]opts.HeatMapData, 0, len(pivot.cells))
	for _, cell := range pivot.cells {
		cells = append(cells, opts.HeatMapData{
			Value: [3]interface{}{cell.x, cell.y, displayValue(fmtSpec, cell.value)},
		})
	}
	hm.AddSeries(valueField, cells,
		charts.WithLabelOpts(opts.Label{
			Show:      boolParam(params, "annotate", true),
			Formatter: "{c}",
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			BorderColor: stringParam(params, "linecolor", "white"),
		}),
	)

	if err := writeArtifact(savePath, func(f *os.File) error {
		if err := hm.Render(f); err != nil {
			return fmt.Errorf("failed to render heatmap: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return savePath, nil
}

type heatmapCell struct {
	x     int
	y     int
	value float64
}

type heatmapPivot struct {
	xCats []string
	yCats []string
	cells []heatmapCell
	min   float64
	max   float64
}

// pivotRows builds the x/y category axes and the aggregated cell values.
func pivotRows(rows []map[string]interface{}, xField, yField, valueField, aggregation string) (*heatmapPivot, error) {
	type cellKey struct{ x, y string }

	xCats := uniqueSorted(columnStrings(rows, xField))
	yCats := uniqueSorted(columnStrings(rows, yField))
	sums := make(map[cellKey]float64)
	mins := make(map[cellKey]float64)
	maxs := make(map[cellKey]float64)
	counts := make(map[cellKey]int)

	for i, row := range rows {
		value, ok := toFloat(row[valueField])
		if !ok {
			return nil, fmt.Errorf("row %d field %q is not numeric: %v", i, valueField, row[valueField])
		}
		key := cellKey{x: fmt.Sprintf("%v", row[xField]), y: fmt.Sprintf("%v", row[yField])}
		if counts[key] == 0 || value < mins[key] {
			mins[key] = value
		}
		if counts[key] == 0 || value > maxs[key] {
			maxs[key] = value
		}
		sums[key] += value
		counts[key]++
	}

	xIndex := indexOf(xCats)
	yIndex := indexOf(yCats)
	pivot := &heatmapPivot{xCats: xCats, yCats: yCats}
	first := true
	for key, count := range counts {
		var value float64
		switch aggregation {
		case "sum":
			value = sums[key]
		case "max":
			value = maxs[key]
		case "min":
			value = mins[key]
		case "count":
			value = float64(count)
		default: // mean
			value = sums[key] / float64(count)
		}
		pivot.cells = append(pivot.cells, heatmapCell{
			x:     xIndex[key.x],
			y:     yIndex[key.y],
			value: value,
		})
		if first || value < pivot.min {
			pivot.min = value
		}
		if first || value > pivot.max {
			pivot.max = value
		}
		first = false
	}
	sort.Slice(pivot.cells, func(i, j int) bool {
		if pivot.cells[i].y != pivot.cells[j].y {
			return pivot.cells[i].y < pivot.cells[j].y
		}
		return pivot.cells[i].x < pivot.cells[j].x
	})
	return pivot, nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func indexOf(values []string) map[string]int {
	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return index
}

// colorRamp maps a colormap name onto a low-to-high color gradient.
var colorRamps = map[string][]string{
	"viridis": {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	"plasma":  {"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
	"inferno": {"#000004", "#57106e", "#bc3754", "#f98e09", "#fcffa4"},
	"magma":   {"#000004", "#51127c", "#b73779", "#fc8961", "#fcfdbf"},
	"cividis": {"#00224e", "#35456c", "#7d7c78", "#bcaf6f", "#fee838"},
}

func colorRamp(name string) []string {
	if ramp, ok := colorRamps[name]; ok {
		return ramp
	}
	return colorRamps["viridis"]
}

// displayValue rounds an aggregate for its cell label per a matplotlib-style
// format spec like ".2f". Unparseable specs leave the value as is.
func displayValue(spec string, v float64) float64 {
	var prec int
	if _, err := fmt.Sscanf(spec, ".%df", &prec); err != nil || prec < 0 {
		return v
	}
	shift := math.Pow(10, float64(prec))
	return math.Round(v*shift) / shift
}
