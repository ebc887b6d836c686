package registry

import "fmt"

// Canonical chart type names
const (
	TypeLineChart    = "line_chart"
	TypeBarChart     = "bar_chart"
	TypePieChart     = "pie_chart"
	TypeScatterPlot  = "scatter_plot"
	TypeHeatmap      = "heatmap"
	TypeDiagramChart = "diagram_chart"
)

// commonSchema returns the schema fields shared by all row-oriented chart
// types.
func commonSchema() map[string]FieldSpec {
	return map[string]FieldSpec{
		"save_path": {Type: TypeString},
		"data":      {Type: TypeRows},
		"title":     {Type: TypeString},
		"figsize":   {Type: TypeList, Elem: TypeNumber, ElemMin: floatPtr(1), PairLen: 2},
		"dpi":       {Type: TypeInteger, Min: floatPtr(1)},
		"theme":     {Type: TypeString},
	}
}

// commonDefaults returns the default values shared by all row-oriented chart
// types. figsize is per-type and supplied by the caller.
func commonDefaults(figsize [2]float64) map[string]interface{} {
	return map[string]interface{}{
		"save_path": "",
		"title":     "Chart",
		"figsize":   []interface{}{figsize[0], figsize[1]},
		"dpi":       100,
		"theme":     "default",
	}
}

func merge(base map[string]FieldSpec, extra map[string]FieldSpec) map[string]FieldSpec {
	for name, spec := range extra {
		base[name] = spec
	}
	return base
}

func mergeDefaults(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for name, value := range extra {
		base[name] = value
	}
	return base
}

// LineChartDescriptor describes the line_chart type.
func LineChartDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypeLineChart,
		Required: []string{"data", "x_field", "y_fields"},
		Defaults: mergeDefaults(commonDefaults([2]float64{10, 6}), map[string]interface{}{
			"grid": true,
		}),
		Schema: merge(commonSchema(), map[string]FieldSpec{
			"x_field":     {Type: TypeString, MinLength: 1},
			"y_fields":    {Type: TypeList, Elem: TypeString, ElemMinLength: 1},
			"x_label":     {Type: TypeString},
			"y_label":     {Type: TypeString},
			"colors":      {Type: TypeList, Elem: TypeString},
			"line_styles": {Type: TypeList, Elem: TypeString},
			"line_widths": {Type: TypeList, Elem: TypeNumber, ElemMin: floatPtr(0)},
			"markers":     {Type: TypeList, Elem: TypeString},
			"grid":        {Type: TypeBoolean},
		}),
		Accepts: []string{
			"data", "x_field", "y_fields", "title", "x_label", "y_label",
			"colors", "line_styles", "line_widths", "markers", "theme",
			"save_path", "figsize", "dpi", "grid",
		},
		DataFields:  []string{"x_field", "y_fields"},
		LabelPairs:  map[string]string{"x_label": "x_field", "y_label": "y_fields"},
		RowOriented: true,
		Renderer:    r,
	}
}

// BarChartDescriptor describes the bar_chart type.
func BarChartDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypeBarChart,
		Required: []string{"data", "x_field", "y_fields"},
		Defaults: mergeDefaults(commonDefaults([2]float64{10, 6}), map[string]interface{}{
			"bar_width":  0.8,
			"stack":      false,
			"horizontal": false,
			"edge_color": "black",
			"edge_width": 0.5,
			"grid":       true,
		}),
		Schema: merge(commonSchema(), map[string]FieldSpec{
			"x_field":    {Type: TypeString, MinLength: 1},
			"y_fields":   {Type: TypeList, Elem: TypeString, ElemMinLength: 1},
			"x_label":    {Type: TypeString},
			"y_label":    {Type: TypeString},
			"colors":     {Type: TypeList, Elem: TypeString},
			"bar_width":  {Type: TypeNumber, Min: floatPtr(0), Max: floatPtr(1)},
			"stack":      {Type: TypeBoolean},
			"horizontal": {Type: TypeBoolean},
			"edge_color": {Type: TypeString},
			"edge_width": {Type: TypeNumber, Min: floatPtr(0)},
			"grid":       {Type: TypeBoolean},
		}),
		Accepts: []string{
			"data", "x_field", "y_fields", "title", "x_label", "y_label",
			"colors", "bar_width", "stack", "horizontal", "edge_color",
			"edge_width", "theme", "save_path", "figsize", "dpi", "grid",
		},
		DataFields:  []string{"x_field", "y_fields"},
		LabelPairs:  map[string]string{"x_label": "x_field", "y_label": "y_fields"},
		RowOriented: true,
		Renderer:    r,
	}
}

// PieChartDescriptor describes the pie_chart type. The legend fields are
// schema-level documentation only and deliberately absent from Accepts.
func PieChartDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypePieChart,
		Required: []string{"data", "name_field", "value_field"},
		Defaults: mergeDefaults(commonDefaults([2]float64{8, 8}), map[string]interface{}{
			"autopct":       "%1.1f%%",
			"start_angle":   90,
			"shadow":        false,
			"labeldistance": 1.1,
		}),
		Schema: merge(commonSchema(), map[string]FieldSpec{
			"name_field":    {Type: TypeString, MinLength: 1},
			"value_field":   {Type: TypeString, MinLength: 1},
			"colors":        {Type: TypeList, Elem: TypeString},
			"explode":       {Type: TypeList, Elem: TypeNumber, ElemMin: floatPtr(0)},
			"autopct":       {Type: TypeString},
			"start_angle":   {Type: TypeNumber},
			"shadow":        {Type: TypeBoolean},
			"labeldistance": {Type: TypeNumber, Min: floatPtr(0)},
			"legend":        {Type: TypeBoolean},
			"legend_loc":    {Type: TypeString},
		}),
		Accepts: []string{
			"data", "name_field", "value_field", "title", "colors", "explode",
			"autopct", "start_angle", "shadow", "labeldistance", "theme",
			"save_path", "figsize", "dpi",
		},
		DataFields:  []string{"name_field", "value_field"},
		RowOriented: true,
		Renderer:    r,
	}
}

// ScatterPlotDescriptor describes the scatter_plot type.
func ScatterPlotDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypeScatterPlot,
		Required: []string{"data", "x_field", "y_field"},
		Defaults: mergeDefaults(commonDefaults([2]float64{10, 6}), map[string]interface{}{
			"color_map":    "viridis",
			"marker_style": "o",
			"alpha":        0.7,
			"grid":         true,
		}),
		Schema: merge(commonSchema(), map[string]FieldSpec{
			"x_field":      {Type: TypeString, MinLength: 1},
			"y_field":      {Type: TypeString, MinLength: 1},
			"x_label":      {Type: TypeString},
			"y_label":      {Type: TypeString},
			"color_field":  {Type: TypeString},
			"size_field":   {Type: TypeString},
			"color_map":    {Type: TypeString},
			"marker_style": {Type: TypeString},
			"alpha":        {Type: TypeNumber, Min: floatPtr(0), Max: floatPtr(1)},
			"grid":         {Type: TypeBoolean},
		}),
		Accepts: []string{
			"data", "x_field", "y_field", "title", "x_label", "y_label",
			"color_field", "size_field", "color_map", "marker_style", "alpha",
			"theme", "save_path", "figsize", "dpi", "grid",
		},
		DataFields:  []string{"x_field", "y_field"},
		LabelPairs:  map[string]string{"x_label": "x_field", "y_label": "y_field"},
		RowOriented: true,
		Renderer:    r,
	}
}

// HeatmapDescriptor describes the heatmap type. cbar_kws is schema-level
// documentation only and deliberately absent from Accepts.
func HeatmapDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypeHeatmap,
		Required: []string{"data", "x_field", "y_field", "value_field"},
		Defaults: mergeDefaults(commonDefaults([2]float64{10, 8}), map[string]interface{}{
			"color_map":   "viridis",
			"annotate":    true,
			"fmt":         ".2f",
			"linewidths":  0.5,
			"linecolor":   "white",
			"aggregation": "mean",
		}),
		Schema: merge(commonSchema(), map[string]FieldSpec{
			"x_field":     {Type: TypeString, MinLength: 1},
			"y_field":     {Type: TypeString, MinLength: 1},
			"value_field": {Type: TypeString, MinLength: 1},
			"x_label":     {Type: TypeString},
			"y_label":     {Type: TypeString},
			"color_map":   {Type: TypeString},
			"annotate":    {Type: TypeBoolean},
			"fmt":         {Type: TypeString},
			"linewidths":  {Type: TypeNumber, Min: floatPtr(0)},
			"linecolor":   {Type: TypeString},
			"aggregation": {Type: TypeString, Enum: []string{"mean", "sum", "max", "min", "count"}},
			"cbar_kws":    {Type: TypeString},
		}),
		Accepts: []string{
			"data", "x_field", "y_field", "value_field", "title", "x_label",
			"y_label", "color_map", "annotate", "fmt", "linewidths",
			"linecolor", "aggregation", "theme", "save_path", "figsize", "dpi",
		},
		DataFields:  []string{"x_field", "y_field", "value_field"},
		LabelPairs:  map[string]string{"x_label": "x_field", "y_label": "y_field"},
		RowOriented: true,
		Renderer:    r,
	}
}

// DiagramChartDescriptor describes the diagram_chart type. It takes diagram
// source text instead of row data, and its save_path extension set (png,
// svg, mmd) is distinct from the other chart types.
func DiagramChartDescriptor(r Renderer) *Descriptor {
	return &Descriptor{
		Name:     TypeDiagramChart,
		Required: []string{"diagram_code", "save_path"},
		Defaults: map[string]interface{}{
			"theme":  "default",
			"width":  800,
			"height": 600,
		},
		Schema: map[string]FieldSpec{
			"diagram_code": {Type: TypeString, MinLength: 1},
			"save_path":    {Type: TypeString, MinLength: 1},
			"theme":        {Type: TypeString, Enum: []string{"default", "dark", "forest", "neutral"}},
			"width":        {Type: TypeInteger, Min: floatPtr(1)},
			"height":       {Type: TypeInteger, Min: floatPtr(1)},
		},
		Accepts: []string{
			"diagram_code", "save_path", "theme", "width", "height",
		},
		RowOriented: false,
		Renderer:    r,
	}
}

// Default builds the registry of all six supported chart types with the
// given renderer bindings, keyed by chart type name.
func Default(renderers map[string]Renderer) (*Registry, error) {
	reg := New()
	descriptors := []*Descriptor{
		LineChartDescriptor(renderers[TypeLineChart]),
		BarChartDescriptor(renderers[TypeBarChart]),
		PieChartDescriptor(renderers[TypePieChart]),
		ScatterPlotDescriptor(renderers[TypeScatterPlot]),
		HeatmapDescriptor(renderers[TypeHeatmap]),
		DiagramChartDescriptor(renderers[TypeDiagramChart]),
	}
	for _, desc := range descriptors {
		if desc.Renderer == nil {
			return nil, fmt.Errorf("no renderer bound for chart type %s", desc.Name)
		}
		if err := reg.Register(desc); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
