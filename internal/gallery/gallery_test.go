package gallery

import (
	"strings"
	"testing"
	"time"

	"plotcast/internal/storage"
)

func TestBuildIndexEmpty(t *testing.T) {
	b := NewBuilder()
	page, err := b.BuildIndex(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(page, "No charts generated yet") {
		t.Error("empty gallery should carry the empty-state message")
	}
	if !strings.Contains(page, "/tools/create_plotting_task") {
		t.Error("empty-state message should name the plotting endpoint")
	}
	if !strings.Contains(page, "0 artifact(s)") {
		t.Error("page should show the artifact count")
	}
}

func TestBuildIndexListsArtifacts(t *testing.T) {
	b := NewBuilder()
	artifacts := []storage.ArtifactInfo{
		{Name: "sales.png", Size: 2048, Updated: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)},
		{Name: "reports/q1.html", Size: 3 << 20, Updated: time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC)},
	}

	page, err := b.BuildIndex(artifacts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{
		`href="/files/sales.png"`,
		`href="/files/reports/q1.html"`,
		"2.0 KB",
		"3.0 MB",
		"2026-03-14 09:30:00",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if !strings.Contains(page, "2 artifact(s)") {
		t.Error("page should show the artifact count")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.size); got != tt.want {
			t.Errorf("formatSize(%d): expected %s, got %s", tt.size, tt.want, got)
		}
	}
}
