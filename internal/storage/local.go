package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalClient stores chart artifacts on the local file system
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a local storage client rooted at baseDir
func NewLocalClient(baseDir string) (*LocalClient, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalClient) Close() error {
	return nil
}

// BaseDir returns the root directory artifacts are stored under
func (l *LocalClient) BaseDir() string {
	return l.baseDir
}

// Store writes an artifact under baseDir
func (l *LocalClient) Store(ctx context.Context, name string, data []byte) error {
	clean, err := SanitizeName(name)
	if err != nil {
		return err
	}
	path := filepath.Join(l.baseDir, clean)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// Get retrieves an artifact from local storage
func (l *LocalClient) Get(ctx context.Context, name string) ([]byte, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(l.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return data, nil
}

// Exists checks whether an artifact is present
func (l *LocalClient) Exists(ctx context.Context, name string) (bool, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(l.baseDir, clean))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List lists stored artifacts, newest first
func (l *LocalClient) List(ctx context.Context, limit int) ([]ArtifactInfo, error) {
	var artifacts []ArtifactInfo

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}
		if info.IsDir() || !IsArtifact(info.Name()) {
			return nil
		}
		relPath, err := filepath.Rel(l.baseDir, path)
		if err != nil {
			return nil
		}
		artifacts = append(artifacts, ArtifactInfo{
			Name:    filepath.ToSlash(relPath),
			Size:    info.Size(),
			Updated: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk artifact directory: %w", err)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Updated.After(artifacts[j].Updated)
	})

	if limit > 0 && limit < len(artifacts) {
		artifacts = artifacts[:limit]
	}

	return artifacts, nil
}
