package charts

import (
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme is the explicit style configuration threaded through each render
// call. There is no process-global style state: a theme is resolved per
// request and applied only to the chart object built for that request.
type Theme struct {
	Name       string
	Background drawing.Color
	Canvas     drawing.Color
	Text       drawing.Color
	Axis       drawing.Color
	Grid       drawing.Color
}

var themes = map[string]Theme{
	"default": {
		Name:       "default",
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorWhite,
		Text:       drawing.ColorBlack,
		Axis:       drawing.Color{R: 52, G: 58, B: 64, A: 255},
		Grid:       drawing.Color{R: 204, G: 204, B: 204, A: 255},
	},
	"dark": {
		Name:       "dark",
		Background: drawing.Color{R: 30, G: 30, B: 30, A: 255},
		Canvas:     drawing.Color{R: 51, G: 51, B: 51, A: 255},
		Text:       drawing.ColorWhite,
		Axis:       drawing.Color{R: 170, G: 170, B: 170, A: 255},
		Grid:       drawing.Color{R: 85, G: 85, B: 85, A: 255},
	},
	"light": {
		Name:       "light",
		Background: drawing.Color{R: 248, G: 249, B: 250, A: 255},
		Canvas:     drawing.Color{R: 248, G: 249, B: 250, A: 255},
		Text:       drawing.ColorBlack,
		Axis:       drawing.Color{R: 102, G: 102, B: 102, A: 255},
		Grid:       drawing.Color{R: 233, G: 236, B: 239, A: 255},
	},
}

// resolveTheme returns the named theme, falling back to default for unknown
// names so a caller-supplied matplotlib style name degrades gracefully.
func resolveTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// themeParam resolves the request theme. A request that left the built-in
// default in place picks up the service-level default theme instead.
func themeParam(params map[string]interface{}, serviceDefault string) Theme {
	name := stringParam(params, "theme", "default")
	if name == "default" && serviceDefault != "" {
		name = serviceDefault
	}
	return resolveTheme(name)
}

// defaultPalette mirrors the common categorical plotting palette.
var defaultPalette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

var namedColors = map[string]drawing.Color{
	"black":  drawing.ColorBlack,
	"white":  drawing.ColorWhite,
	"red":    drawing.ColorRed,
	"green":  drawing.ColorGreen,
	"blue":   drawing.ColorBlue,
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"purple": {R: 128, G: 0, B: 128, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"grey":   {R: 128, G: 128, B: 128, A: 255},
	"cyan":   {R: 0, G: 255, B: 255, A: 255},
}

// parseColor resolves a color name or #RRGGBB hex string; unknown inputs
// fall back to the first palette entry.
func parseColor(s string) drawing.Color {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return drawing.Color{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			}
		}
	}
	return defaultPalette[0]
}

// seriesColor picks the color for series i: caller-supplied colors first,
// the default palette beyond them.
func seriesColor(colors []string, i int) drawing.Color {
	if i < len(colors) {
		return parseColor(colors[i])
	}
	return defaultPalette[i%len(defaultPalette)]
}

// withAlpha returns the color with the given opacity in [0,1].
func withAlpha(c drawing.Color, alpha float64) drawing.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha * 255)
	return c
}
