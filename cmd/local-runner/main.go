package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"plotcast/internal/charts"
	"plotcast/internal/config"
	"plotcast/internal/dispatch"
	"plotcast/internal/registry"
)

// LocalRunner renders one sample of every chart type without the HTTP server
type LocalRunner struct {
	dispatcher *dispatch.Dispatcher
	outputDir  string
}

func NewLocalRunner(cfg *config.Config) (*LocalRunner, error) {
	reg, err := registry.Default(charts.Set(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build chart registry: %w", err)
	}
	return &LocalRunner{
		dispatcher: dispatch.New(reg, cfg.DebugMode),
		outputDir:  cfg.OutputDir,
	}, nil
}

// sampleRequests builds one representative request per chart type
func (lr *LocalRunner) sampleRequests() map[string]map[string]interface{} {
	sales := []interface{}{
		map[string]interface{}{"month": "Jan", "revenue": 120.0, "cost": 90.0, "region": "north"},
		map[string]interface{}{"month": "Feb", "revenue": 135.0, "cost": 95.0, "region": "north"},
		map[string]interface{}{"month": "Mar", "revenue": 150.0, "cost": 110.0, "region": "south"},
		map[string]interface{}{"month": "Apr", "revenue": 160.0, "cost": 105.0, "region": "south"},
	}

	return map[string]map[string]interface{}{
		"line_chart": {
			"data":      sales,
			"x_field":   "month",
			"y_fields":  "revenue,cost",
			"title":     "Revenue vs Cost",
			"save_path": filepath.Join(lr.outputDir, "sample_line.png"),
		},
		"bar_chart": {
			"data":      sales,
			"x_field":   "month",
			"y_fields":  "revenue",
			"title":     "Monthly Revenue",
			"save_path": filepath.Join(lr.outputDir, "sample_bar.png"),
		},
		"pie_chart": {
			"data": []interface{}{
				map[string]interface{}{"segment": "Hardware", "share": 45.0},
				map[string]interface{}{"segment": "Software", "share": 35.0},
				map[string]interface{}{"segment": "Services", "share": 20.0},
			},
			"name_field":  "segment",
			"value_field": "share",
			"title":       "Revenue Breakdown",
			"save_path":   filepath.Join(lr.outputDir, "sample_pie.png"),
		},
		"scatter_plot": {
			"data":        sales,
			"x_field":     "cost",
			"y_field":     "revenue",
			"color_field": "region",
			"title":       "Cost vs Revenue",
			"save_path":   filepath.Join(lr.outputDir, "sample_scatter.png"),
		},
		"heatmap": {
			"data":        sales,
			"x_field":     "month",
			"y_field":     "region",
			"value_field": "revenue",
			"title":       "Revenue by Region",
			"save_path":   filepath.Join(lr.outputDir, "sample_heatmap.html"),
		},
		"diagram_chart": {
			"diagram_code": "graph TD\n  A[Request] --> B{Valid?}\n  B -->|yes| C[Render]\n  B -->|no| D[Reject]",
			"save_path":    filepath.Join(lr.outputDir, "sample_diagram.mmd"),
		},
	}
}

func (lr *LocalRunner) Run() error {
	ctx := context.Background()
	startTime := time.Now()

	log.Println("Starting local chart generation run...")

	failures := 0
	for plotType, params := range lr.sampleRequests() {
		resp := lr.dispatcher.CreatePlottingTask(ctx, plotType, params)
		if resp.Succeeded() {
			log.Printf("  %-13s -> %s", plotType, resp.SavePath)
			continue
		}
		failures++
		info, _ := json.MarshalIndent(resp.ErrorInfo, "  ", "  ")
		log.Printf("  %-13s FAILED: %s\n  %s", plotType, resp.Message, info)
	}

	log.Printf("Run completed in %v, output dir: %s", time.Since(startTime), lr.outputDir)
	if failures > 0 {
		return fmt.Errorf("%d chart type(s) failed", failures)
	}
	return nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	runner, err := NewLocalRunner(cfg)
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}
	if err := runner.Run(); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
