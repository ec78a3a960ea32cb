package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
)

type PageSize struct {
	Width  float64
	Height float64
}

var A4 = PageSize{Width: PageWidthA4, Height: PageHeightA4}

// Rasterizer turns a rendered report into one tall PNG surface.
type Rasterizer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// DocumentWriter produces the final document from the surface and its page placements.
type DocumentWriter interface {
	Write(ctx context.Context, png []byte, size PageSize, imgHeight float64, placements []models.PagePlacement) ([]byte, error)
}

type Exporter struct {
	rasterizer Rasterizer
	writer     DocumentWriter
	dir        string
	pageSize   PageSize
}

func NewExporter(rasterizer Rasterizer, writer DocumentWriter, dir string) *Exporter {
	return &Exporter{
		rasterizer: rasterizer,
		writer:     writer,
		dir:        dir,
		pageSize:   A4,
	}
}

// Export rasterizes html, paginates it and writes the dated document into the export
// directory. It returns the path of the written file.
func (e *Exporter) Export(ctx context.Context, html string, now time.Time) (string, error) {
	png, err := e.rasterizer.Capture(ctx, html)
	if err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return "", fmt.Errorf("decode report surface: %w", err)
	}

	placements, err := Paginate(float64(cfg.Width), float64(cfg.Height), e.pageSize.Width, e.pageSize.Height)
	if err != nil {
		return "", err
	}
	imgHeight := ScaledHeight(float64(cfg.Width), float64(cfg.Height), e.pageSize.Width)

	slog.Info("[Exporter] Paginated report surface",
		slog.Int("width_px", cfg.Width),
		slog.Int("height_px", cfg.Height),
		slog.Int("pages", len(placements)))

	doc, err := e.writer.Write(ctx, png, e.pageSize, imgHeight, placements)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, FileName(now))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	slog.Info("[Exporter] Report exported", slog.String("path", path))
	return path, nil
}
