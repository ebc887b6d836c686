package storage

import (
	"context"
	"time"
)

// Client defines the interface for chart artifact storage operations
type Client interface {
	// Close closes the storage client
	Close() error

	// Store persists an artifact under the given relative name
	Store(ctx context.Context, name string, data []byte) error

	// Get retrieves an artifact by its relative name
	Get(ctx context.Context, name string) ([]byte, error)

	// Exists checks whether an artifact exists under the given name
	Exists(ctx context.Context, name string) (bool, error)

	// List returns stored artifacts, newest first, up to limit (0 = all)
	List(ctx context.Context, limit int) ([]ArtifactInfo, error)
}

// ArtifactInfo describes one stored chart artifact
type ArtifactInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Updated time.Time `json:"updated"`
}
