package storage

import (
	"fmt"
	"path"
	"strings"
)

// artifactExtensions lists file extensions recognized as chart artifacts
var artifactExtensions = map[string]bool{
	".png":  true,
	".svg":  true,
	".html": true,
	".mmd":  true,
}

// IsArtifact reports whether a file name carries a chart artifact extension
func IsArtifact(name string) bool {
	return artifactExtensions[strings.ToLower(path.Ext(name))]
}

// SanitizeName normalizes a storage name and rejects absolute or traversing
// paths so callers cannot escape the storage root
func SanitizeName(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == "." || clean == "" {
		return "", fmt.Errorf("empty artifact name")
	}
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid artifact name: %s", name)
	}
	return clean, nil
}

// ContentType determines the MIME content type based on file extension
func ContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".html":
		return "text/html"
	case ".mmd", ".txt":
		return "text/plain"
	case ".json":
		return "application/json"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
