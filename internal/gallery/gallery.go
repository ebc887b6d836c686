// Package gallery renders the HTML index page of generated chart artifacts.
package gallery

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"plotcast/internal/config"
	"plotcast/internal/storage"
)

// Builder turns the artifact listing into a complete HTML page. The listing
// body is composed as markdown and converted with goldmark.
type Builder struct {
	goldmark goldmark.Markdown
}

// NewBuilder creates a gallery builder
func NewBuilder() *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Allow raw HTML in markdown
		),
	)

	return &Builder{goldmark: md}
}

// BuildIndex renders the gallery page for the given artifacts, newest first.
func (b *Builder) BuildIndex(artifacts []storage.ArtifactInfo) (string, error) {
	content, err := b.renderListing(artifacts)
	if err != nil {
		return "", err
	}

	data := pageData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
		Count:       len(artifacts),
		Content:     template.HTML(content),
	}

	tmpl, err := template.New("gallery").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse gallery template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute gallery template: %w", err)
	}
	return buf.String(), nil
}

// renderListing builds the markdown table of artifacts and converts it to HTML.
func (b *Builder) renderListing(artifacts []storage.ArtifactInfo) (string, error) {
	var md strings.Builder
	if len(artifacts) == 0 {
		md.WriteString("No charts generated yet. POST a request to `/tools/create_plotting_task` to create one.\n")
	} else {
		md.WriteString("| Chart | Size | Updated |\n")
		md.WriteString("|-------|------|--------|\n")
		for _, a := range artifacts {
			fmt.Fprintf(&md, "| [%s](/files/%s) | %s | %s |\n",
				a.Name, a.Name, formatSize(a.Size),
				a.Updated.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	var buf bytes.Buffer
	if err := b.goldmark.Convert([]byte(md.String()), &buf); err != nil {
		return "", fmt.Errorf("failed to convert gallery markdown: %w", err)
	}
	return buf.String(), nil
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

type pageData struct {
	GeneratedAt string
	Version     string
	Count       int
	Content     template.HTML
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Chart Gallery</title>
    <style>
        body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2em auto; max-width: 60em; color: #222; }
        h1 { border-bottom: 2px solid #4575b4; padding-bottom: 0.3em; }
        table { border-collapse: collapse; width: 100%; }
        th, td { text-align: left; padding: 0.4em 0.8em; border-bottom: 1px solid #ddd; }
        tr:hover { background: #f5f8fb; }
        footer { margin-top: 2em; color: #888; font-size: 0.85em; }
    </style>
</head>
<body>
    <h1>Chart Gallery</h1>
    <p>{{.Count}} artifact(s)</p>
    {{.Content}}
    <footer>Generated at {{.GeneratedAt}} &middot; plotcast v{{.Version}}</footer>
</body>
</html>
`
