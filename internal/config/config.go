package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the plotting service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8975"`

	// Artifact output
	OutputDir      string `env:"OUTPUT_DIR,default=./output"`
	DeploymentMode string `env:"DEPLOYMENT_MODE,default=local"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Rendering defaults
	DefaultTheme string `env:"DEFAULT_THEME,default=default"`

	// Diagram rendering: local executable first, HTTP fallback second
	MermaidCommand string `env:"MERMAID_COMMAND,default=mmdc"`
	MermaidInkURL  string `env:"MERMAID_INK_URL,default=https://mermaid.ink"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	DebugMode   bool   `env:"DEBUG_MODE,default=false"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
