// Package charts implements the rendering routines for the supported chart
// types. Each renderer takes an already validated and filtered parameter map
// and persists one artifact, returning its absolute path. Renderers share no
// mutable state; every render call builds an isolated drawing object, so
// style choices never leak between requests.
package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"plotcast/internal/config"
	"plotcast/internal/registry"
)

// Set groups the renderers for all supported chart types, keyed by chart
// type name, ready for registry binding.
func Set(cfg *config.Config) map[string]registry.Renderer {
	return map[string]registry.Renderer{
		registry.TypeLineChart:    NewLineRenderer(cfg.OutputDir, cfg.DefaultTheme),
		registry.TypeBarChart:     NewBarRenderer(cfg.OutputDir, cfg.DefaultTheme),
		registry.TypePieChart:     NewPieRenderer(cfg.OutputDir, cfg.DefaultTheme),
		registry.TypeScatterPlot:  NewScatterRenderer(cfg.OutputDir, cfg.DefaultTheme),
		registry.TypeHeatmap:      NewHeatmapRenderer(cfg.OutputDir),
		registry.TypeDiagramChart: NewDiagramRenderer(cfg.OutputDir, cfg.MermaidCommand, cfg.MermaidInkURL),
	}
}

// resolveSavePath turns the caller's save_path into an absolute path,
// falling back to outputDir/<chartType>_output.<ext> when empty, and
// creates the parent directory.
func resolveSavePath(savePath, outputDir, chartType, ext string) (string, error) {
	if savePath == "" {
		savePath = filepath.Join(outputDir, fmt.Sprintf("%s_output.%s", chartType, ext))
	}
	abs, err := filepath.Abs(savePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve save path %s: %w", savePath, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory for %s: %w", abs, err)
	}
	return abs, nil
}

// writeArtifact runs render against a temporary file in the target
// directory and moves the result into place only on success, so a failed
// render never leaves a partial artifact at the save path.
func writeArtifact(savePath string, render func(f *os.File) error) error {
	tmpPath := fmt.Sprintf("%s.tmp-%s", savePath, uuid.NewString()[:8])
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize artifact file: %w", err)
	}
	if err := os.Rename(tmpPath, savePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}

// requireExtension checks the save path carries one of the extensions this
// renderer can produce.
func requireExtension(savePath string, allowed ...string) error {
	ext := normalizedExt(savePath)
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported output extension %q for %s: supported extensions are %v", ext, filepath.Base(savePath), allowed)
}

func normalizedExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	return ext[1:]
}
