package charts

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"plotcast/internal/logger"
	"plotcast/internal/registry"
)

// DiagramRenderer renders mermaid diagram source into png, svg or raw mmd
// artifacts. It prefers a local mermaid CLI when one is installed and falls
// back to the mermaid.ink rendering service otherwise.
type DiagramRenderer struct {
	outputDir string
	command   string
	cliFound  bool
	client    *resty.Client
	log       *logger.Logger
}

// NewDiagramRenderer creates a diagram renderer. command is the mermaid CLI
// binary name and inkURL the base URL of the fallback rendering service.
func NewDiagramRenderer(outputDir, command, inkURL string) *DiagramRenderer {
	_, err := exec.LookPath(command)
	return &DiagramRenderer{
		outputDir: outputDir,
		command:   command,
		cliFound:  err == nil,
		client:    resty.New().SetBaseURL(inkURL),
		log:       logger.Global().WithComponent("diagram"),
	}
}

// ChartType returns the chart type this renderer is bound to.
func (r *DiagramRenderer) ChartType() string {
	return registry.TypeDiagramChart
}

// Render produces the diagram artifact at the requested save path.
func (r *DiagramRenderer) Render(ctx context.Context, params map[string]interface{}) (string, error) {
	savePath, err := resolveSavePath(stringParam(params, "save_path", ""), r.outputDir, r.ChartType(), "png")
	if err != nil {
		return "", err
	}
	code := stringParam(params, "diagram_code", "")
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("diagram_code is empty")
	}

	ext := normalizedExt(savePath)
	switch ext {
	case "mmd":
		// The artifact is the diagram source itself, no rendering step.
		if err := writeArtifact(savePath, func(f *os.File) error {
			_, err := f.WriteString(code)
			return err
		}); err != nil {
			return "", err
		}
		return savePath, nil
	case "png", "svg":
		if r.cliFound {
			if err := r.renderCLI(ctx, code, savePath, params); err == nil {
				return savePath, nil
			} else {
				r.log.Warnf("mermaid CLI failed, falling back to remote renderer: %v", err)
			}
		}
		if err := r.renderRemote(ctx, code, savePath, ext, params); err != nil {
			return "", err
		}
		return savePath, nil
	default:
		return "", fmt.Errorf("unsupported diagram extension %q, expected png, svg or mmd", ext)
	}
}

// renderCLI shells out to the mermaid CLI with a temporary source file. The
// CLI writes to a temporary output beside the save path, so a failed run never
// disturbs an artifact already at that path. The output keeps the requested
// extension because the CLI infers the image format from it.
func (r *DiagramRenderer) renderCLI(ctx context.Context, code, savePath string, params map[string]interface{}) error {
	srcPath := filepath.Join(os.TempDir(), fmt.Sprintf("diagram-%s.mmd", uuid.NewString()[:8]))
	if err := os.WriteFile(srcPath, []byte(code), 0o644); err != nil {
		return fmt.Errorf("failed to write diagram source: %w", err)
	}
	defer os.Remove(srcPath)

	outPath := filepath.Join(filepath.Dir(savePath),
		fmt.Sprintf(".tmp-%s.%s", uuid.NewString()[:8], normalizedExt(savePath)))
	args := []string{
		"-i", srcPath,
		"-o", outPath,
		"-t", stringParam(params, "theme", "default"),
		"-w", strconv.Itoa(intParam(params, "width", 800)),
		"-H", strconv.Itoa(intParam(params, "height", 600)),
		"-b", stringParam(params, "background_color", "white"),
	}
	cmd := exec.CommandContext(ctx, r.command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s failed: %w: %s", r.command, err, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("%s produced no output file: %w", r.command, err)
	}
	if err := os.Rename(outPath, savePath); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to move diagram output into place: %w", err)
	}
	return nil
}

// renderRemote fetches the rendered diagram from the mermaid.ink service.
func (r *DiagramRenderer) renderRemote(ctx context.Context, code, savePath, ext string, params map[string]interface{}) error {
	// mermaid.ink takes the diagram source URL-safe base64 encoded in the path.
	encoded := base64.URLEncoding.EncodeToString([]byte(r.themedCode(code, params)))

	var path string
	if ext == "svg" {
		path = "/svg/" + encoded
	} else {
		path = "/img/" + encoded + "?type=png"
	}

	resp, err := r.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("remote diagram render failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("remote diagram render returned HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return writeArtifact(savePath, func(f *os.File) error {
		_, err := f.Write(resp.Body())
		return err
	})
}

// themedCode prefixes the source with an init directive when a non-default
// theme is requested, since the remote service takes no theme flag.
func (r *DiagramRenderer) themedCode(code string, params map[string]interface{}) string {
	theme := stringParam(params, "theme", "default")
	if theme == "default" {
		return code
	}
	return fmt.Sprintf("%%%%{init: {'theme': '%s'}}%%%%\n%s", theme, code)
}
