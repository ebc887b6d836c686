package charts

import (
	"reflect"
	"testing"
)

func pivotFixture() []map[string]interface{} {
	return []map[string]interface{}{
		{"day": "Mon", "hour": "09", "load": 10.0},
		{"day": "Mon", "hour": "09", "load": 20.0},
		{"day": "Mon", "hour": "10", "load": 5.0},
		{"day": "Tue", "hour": "09", "load": 8.0},
	}
}

func cellValue(t *testing.T, pivot *heatmapPivot, x, y int) float64 {
	t.Helper()
	for _, cell := range pivot.cells {
		if cell.x == x && cell.y == y {
			return cell.value
		}
	}
	t.Fatalf("no cell at (%d, %d)", x, y)
	return 0
}

func TestPivotRowsAggregations(t *testing.T) {
	// Mon/09 holds two samples (10, 20); the aggregate for that cell is the
	// discriminating value per mode.
	tests := []struct {
		aggregation string
		want        float64
	}{
		{"mean", 15},
		{"sum", 30},
		{"max", 20},
		{"min", 10},
		{"count", 2},
	}

	for _, tt := range tests {
		t.Run(tt.aggregation, func(t *testing.T) {
			pivot, err := pivotRows(pivotFixture(), "day", "hour", "load", tt.aggregation)
			if err != nil {
				t.Fatalf("pivot: %v", err)
			}
			// Mon is x index 0, 09 is y index 0.
			if got := cellValue(t, pivot, 0, 0); got != tt.want {
				t.Errorf("expected %s aggregate %v, got %v", tt.aggregation, tt.want, got)
			}
		})
	}
}

func TestPivotRowsAxesAndRange(t *testing.T) {
	pivot, err := pivotRows(pivotFixture(), "day", "hour", "load", "mean")
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}

	if !reflect.DeepEqual(pivot.xCats, []string{"Mon", "Tue"}) {
		t.Errorf("unexpected x categories %v", pivot.xCats)
	}
	if !reflect.DeepEqual(pivot.yCats, []string{"09", "10"}) {
		t.Errorf("unexpected y categories %v", pivot.yCats)
	}
	if len(pivot.cells) != 3 {
		t.Errorf("expected 3 populated cells, got %d", len(pivot.cells))
	}
	// Means are 15 (Mon/09), 5 (Mon/10), 8 (Tue/09).
	if pivot.min != 5 || pivot.max != 15 {
		t.Errorf("expected value range [5, 15], got [%v, %v]", pivot.min, pivot.max)
	}
}

func TestPivotRowsRejectsNonNumericValue(t *testing.T) {
	rows := []map[string]interface{}{
		{"day": "Mon", "hour": "09", "load": "heavy"},
	}
	if _, err := pivotRows(rows, "day", "hour", "load", "mean"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		spec string
		in   float64
		want float64
	}{
		{".2f", 13.33333, 13.33},
		{".0f", 13.6, 14},
		{".1f", 0.25, 0.3},
		{"d", 13.333, 13.333},
		{"", 13.333, 13.333},
	}

	for _, tt := range tests {
		if got := displayValue(tt.spec, tt.in); got != tt.want {
			t.Errorf("displayValue(%q, %v): expected %v, got %v", tt.spec, tt.in, tt.want, got)
		}
	}
}

func TestColorRamp(t *testing.T) {
	if got := colorRamp("plasma"); got[0] != "#0d0887" {
		t.Errorf("unexpected plasma ramp start %s", got[0])
	}
	if !reflect.DeepEqual(colorRamp("not-a-colormap"), colorRamps["viridis"]) {
		t.Error("unknown colormap should fall back to viridis")
	}
}
