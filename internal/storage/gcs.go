package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"plotcast/internal/logger"
)

// GCSClient stores chart artifacts in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Global().WithComponent("gcs"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Store uploads an artifact to the bucket
func (g *GCSClient) Store(ctx context.Context, name string, data []byte) error {
	clean, err := SanitizeName(name)
	if err != nil {
		return err
	}

	g.log.Debugf("storing artifact to gs://%s/%s", g.bucket, clean)

	obj := g.client.Bucket(g.bucket).Object(clean)
	writer := obj.NewWriter(ctx)
	writer.ContentType = ContentType(clean)
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write artifact to GCS: %w", err)
	}

	// Close writer to finalize upload
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS artifact upload: %w", err)
	}

	return nil
}

// Get retrieves an artifact from the bucket
func (g *GCSClient) Get(ctx context.Context, name string) ([]byte, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(clean).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for artifact %s: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}

	return data, nil
}

// Exists checks whether an artifact object is present
func (g *GCSClient) Exists(ctx context.Context, name string) (bool, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return false, err
	}
	_, err = g.client.Bucket(g.bucket).Object(clean).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat artifact %s: %w", name, err)
	}
	return true, nil
}

// List lists stored artifacts, newest first
func (g *GCSClient) List(ctx context.Context, limit int) ([]ArtifactInfo, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var artifacts []ArtifactInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if !IsArtifact(attrs.Name) {
			continue
		}
		artifacts = append(artifacts, ArtifactInfo{
			Name:    attrs.Name,
			Size:    attrs.Size,
			Updated: attrs.Updated,
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Updated.After(artifacts[j].Updated)
	})

	if limit > 0 && limit < len(artifacts) {
		artifacts = artifacts[:limit]
	}

	return artifacts, nil
}
