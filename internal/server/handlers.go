package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"plotcast/internal/dispatch"
	"plotcast/internal/ploterr"
	"plotcast/internal/storage"
)

// plottingTaskRequest is the HTTP body of a create_plotting_task call
type plottingTaskRequest struct {
	PlotType string      `json:"plot_type"`
	Params   interface{} `json:"params"`
}

// HandleCreatePlottingTask runs one plotting task and returns the response
// envelope. Tool callers read the envelope status, not the HTTP code, so
// validation and generation failures still answer 200; only an undecodable
// request body answers 400.
func (s *Server) HandleCreatePlottingTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req plottingTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		perr := ploterr.Malformed("request body is not valid JSON").WithCause(err)
		s.log.Warnf("rejected request: %v", perr)
		s.writeJSON(w, http.StatusBadRequest, &dispatch.Response{
			Status:    dispatch.StatusError,
			Message:   perr.Message,
			ErrorInfo: perr.Info(),
		})
		return
	}

	resp := s.Dispatcher.CreatePlottingTask(r.Context(), req.PlotType, req.Params)

	if resp.Succeeded() {
		if err := s.mirrorArtifact(r, resp.SavePath); err != nil {
			s.log.Warnf("failed to mirror artifact %s: %v", resp.SavePath, err)
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// mirrorArtifact copies a rendered artifact into the GCS bucket so the file
// proxy can serve it in cloud deployments. Local mode needs no copy because
// renderers already write under the storage root.
func (s *Server) mirrorArtifact(r *http.Request, savePath string) error {
	if storage.DeploymentMode(s.Config.DeploymentMode) != storage.DeploymentGCS {
		return nil
	}
	data, err := os.ReadFile(savePath)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}
	return s.Storage.Store(r.Context(), filepath.Base(savePath), data)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"chart_types": s.Registry.Types(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

// HandleListCharts lists recently generated chart artifacts
func (s *Server) HandleListCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Get limit from query parameter (default 10, clamped to 1..100)
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
		if limit < 1 {
			limit = 1
		}
		if limit > 100 {
			limit = 100
		}
	}

	artifacts, err := s.Storage.List(r.Context(), limit)
	if err != nil {
		s.log.Errorf("failed to list artifacts: %v", err)
		http.Error(w, "Failed to list charts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"charts":    artifacts,
		"count":     len(artifacts),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves artifacts from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/files/")
	if name == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// Security check: prevent directory traversal
	if _, err := storage.SanitizeName(name); err != nil {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.Get(r.Context(), name)
	if err != nil {
		s.log.Debugf("artifact not found: %s: %v", name, err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.ContentType(name))
	w.Write(data)
}

// HandleRoot serves the gallery index of recent artifacts
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	artifacts, err := s.Storage.List(r.Context(), 50)
	if err != nil {
		s.log.Errorf("failed to list artifacts for gallery: %v", err)
		http.Error(w, "Service unavailable", http.StatusInternalServerError)
		return
	}

	page, err := s.Gallery.BuildIndex(artifacts)
	if err != nil {
		s.log.Errorf("failed to build gallery: %v", err)
		http.Error(w, "Service unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, page)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Errorf("failed to encode response: %v", err)
	}
}
