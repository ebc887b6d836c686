package server

import (
	"context"
	"fmt"
	"net/http"

	"plotcast/internal/charts"
	"plotcast/internal/config"
	"plotcast/internal/dispatch"
	"plotcast/internal/gallery"
	"plotcast/internal/logger"
	"plotcast/internal/registry"
	"plotcast/internal/storage"
)

// Server wires the plotting pipeline and artifact storage behind HTTP
type Server struct {
	Config     *config.Config
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher
	Storage    storage.Client
	Gallery    *gallery.Builder

	log *logger.Logger
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log := logger.Global().WithComponent("server")

	reg, err := registry.Default(charts.Set(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build chart registry: %w", err)
	}

	mode := storage.DeploymentMode(cfg.DeploymentMode)
	store, err := storage.NewClient(ctx, mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if mode == storage.DeploymentGCS {
		log.Infof("GCS deployment mode, artifacts mirrored to bucket: %s", cfg.GCSBucket)
	} else {
		log.Infof("Local deployment mode, artifacts saved to: %s", cfg.OutputDir)
	}

	return &Server{
		Config:     cfg,
		Registry:   reg,
		Dispatcher: dispatch.New(reg, cfg.DebugMode),
		Storage:    store,
		Gallery:    gallery.NewBuilder(),
		log:        log,
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Handle specific API routes first
	mux.HandleFunc("/tools/create_plotting_task", s.HandleCreatePlottingTask)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/charts", s.HandleListCharts)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
