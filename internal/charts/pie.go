package charts

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"plotcast/internal/registry"
)

// PieRenderer renders pie_chart requests as PNG artifacts. Wedge
// percentages follow the autopct format; explode, shadow and labeldistance
// are accepted for compatibility and do not alter the drawing.
type PieRenderer struct {
	outputDir    string
	defaultTheme string
}

// NewPieRenderer creates a pie chart renderer writing defaults under
// outputDir.
func NewPieRenderer(outputDir, defaultTheme string) *PieRenderer {
	return &PieRenderer{outputDir: outputDir, defaultTheme: defaultTheme}
}

// ChartType returns the chart type this renderer is bound to.
func (r *PieRenderer) ChartType() string {
	return registry.TypePieChart
}

// Render draws the wedges and persists the chart.
func (r *PieRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
	savePath, err := resolveSavePath(stringParam(params, "save_path", ""), r.outputDir, r.ChartType(), "png")
	if err != nil {
		return "", err
	}
	if err := requireExtension(savePath, "png"); err != nil {
		return "", err
	}

	rows := rowsParam(params)
	nameField := stringParam(params, "name_field", "")
	valueField := stringParam(params, "value_field", "")
	th := themeParam(params, r.defaultTheme)
	colors := stringListParam(params, "colors")
	autopct := stringParam(params, "autopct", "%1.1f%%")

	values, err := columnFloats(rows, valueField)
	if err != nil {
		return "", err
	}
	names := columnStrings(rows, nameField)

	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return "", fmt.Errorf("pie chart values sum to zero")
	}

	wedges := make([]chart.Value, len(values))
	for i, v := range values {
		label := names[i]
		if pct := wedgeLabel(autopct, v/total*100); pct != "" {
			label = fmt.Sprintf("%s %s", names[i], pct)
		}
		wedges[i] = chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{
				FillColor:   seriesColor(colors, i),
				StrokeColor: th.Background,
				StrokeWidth: 1,
				FontColor:   th.Text,
			},
		}
	}

	width, height := figurePixels(params, 8, 8)
	graph := chart.PieChart{
		Title:      stringParam(params, "title", "Chart"),
		TitleStyle: chart.Style{FontSize: 16, FontColor: th.Text},
		Background: chart.Style{
			FillColor: th.Background,
			Padding:   chart.Box{Top: 40, Left: 30, Right: 30, Bottom: 30},
		},
		Canvas: chart.Style{FillColor: th.Canvas},
		Width:  width,
		Height: height,
		Values: wedges,
	}

	if err := writeArtifact(savePath, func(f *os.File) error {
		if err := graph.Render(chart.PNG, f); err != nil {
			return fmt.Errorf("failed to render pie chart: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return savePath, nil
}

// wedgeLabel formats a wedge percentage using the caller's autopct verb.
// An empty autopct suppresses the percentage.
func wedgeLabel(autopct string, pct float64) string {
	if autopct == "" {
		return ""
	}
	label := fmt.Sprintf(autopct, pct)
	if strings.Contains(label, "%!") {
		// Malformed format verb; fall back to a plain percentage.
		return fmt.Sprintf("%.1f%%", pct)
	}
	return label
}
