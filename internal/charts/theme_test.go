package charts

import (
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestResolveTheme(t *testing.T) {
	if th := resolveTheme("dark"); th.Name != "dark" {
		t.Errorf("expected dark theme, got %s", th.Name)
	}
	if th := resolveTheme("seaborn-whitegrid"); th.Name != "default" {
		t.Errorf("unknown theme should fall back to default, got %s", th.Name)
	}
}

func TestThemeParam(t *testing.T) {
	if th := themeParam(map[string]interface{}{}, "dark"); th.Name != "dark" {
		t.Errorf("omitted theme should pick up the service default, got %s", th.Name)
	}
	if th := themeParam(map[string]interface{}{"theme": "light"}, "dark"); th.Name != "light" {
		t.Errorf("explicit theme should win over the service default, got %s", th.Name)
	}
	if th := themeParam(map[string]interface{}{}, ""); th.Name != "default" {
		t.Errorf("no service default should yield the built-in default, got %s", th.Name)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  drawing.Color
	}{
		{"red", drawing.ColorRed},
		{"RED", drawing.ColorRed},
		{"#ff8000", drawing.Color{R: 255, G: 128, B: 0, A: 255}},
		{"ff8000", drawing.Color{R: 255, G: 128, B: 0, A: 255}},
		{"not-a-color", defaultPalette[0]},
	}

	for _, tt := range tests {
		if got := parseColor(tt.input); got != tt.want {
			t.Errorf("parseColor(%s): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestSeriesColor(t *testing.T) {
	colors := []string{"red", "blue"}
	if got := seriesColor(colors, 0); got != drawing.ColorRed {
		t.Errorf("expected caller color for series 0, got %v", got)
	}
	if got := seriesColor(colors, 2); got != defaultPalette[2] {
		t.Errorf("expected palette color beyond caller list, got %v", got)
	}
	if got := seriesColor(nil, 11); got != defaultPalette[1] {
		t.Errorf("expected palette to wrap, got %v", got)
	}
}

func TestGroupColors(t *testing.T) {
	ungrouped := groupColors(make([]rowGroup, 3), "", "viridis")
	for i, c := range ungrouped {
		if c != defaultPalette[i] {
			t.Errorf("ungrouped series %d should use the palette, got %v", i, c)
		}
	}

	ramp := colorRamps["plasma"]
	grouped := groupColors(make([]rowGroup, 2), "species", "plasma")
	if grouped[0] != parseColor(ramp[0]) {
		t.Errorf("first group should sit at the ramp start, got %v", grouped[0])
	}
	if grouped[1] != parseColor(ramp[len(ramp)-1]) {
		t.Errorf("last group should sit at the ramp end, got %v", grouped[1])
	}

	single := groupColors(make([]rowGroup, 1), "species", "plasma")
	if single[0] != parseColor(ramp[0]) {
		t.Errorf("a single group should sit at the ramp start, got %v", single[0])
	}
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(drawing.ColorBlack, 0.5)
	if c.A != 127 {
		t.Errorf("expected alpha 127, got %d", c.A)
	}
	if c := withAlpha(drawing.ColorBlack, 2); c.A != 255 {
		t.Errorf("alpha above 1 should clamp to 255, got %d", c.A)
	}
	if c := withAlpha(drawing.ColorBlack, -1); c.A != 0 {
		t.Errorf("alpha below 0 should clamp to 0, got %d", c.A)
	}
}

func TestDashArray(t *testing.T) {
	if dashArray("-") != nil {
		t.Error("solid style should have no dash pattern")
	}
	if got := dashArray("dashed"); len(got) != 2 {
		t.Errorf("expected dash pattern for dashed, got %v", got)
	}
	if got := dashArray(":"); len(got) != 2 {
		t.Errorf("expected dash pattern for dotted, got %v", got)
	}
}
