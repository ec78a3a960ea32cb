package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

func TestPaginatePageCounts(t *testing.T) {
	cases := []struct {
		name      string
		imgHeight float64
		pages     int
	}{
		{"taller than four pages", 1000, 4},
		{"exactly one page", 297, 1},
		{"shorter than a page", 120, 1},
		{"exactly two pages", 594, 2},
		{"just over two pages", 594.5, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			placements, err := Paginate(210, tc.imgHeight, 210, 297)
			require.NoError(t, err)
			require.Len(t, placements, tc.pages)
			assert.Equal(t, int(math.Ceil(tc.imgHeight/297)), len(placements))
		})
	}
}

func TestPaginateOffsets(t *testing.T) {
	placements, err := Paginate(210, 1000, 210, 297)
	require.NoError(t, err)

	want := []models.PagePlacement{
		{PageIndex: 0, VerticalOffset: 0},
		{PageIndex: 1, VerticalOffset: -297},
		{PageIndex: 2, VerticalOffset: -594},
		{PageIndex: 3, VerticalOffset: -891},
	}
	assert.Equal(t, want, placements)
}

func TestPaginateScalesWidthToPage(t *testing.T) {
	// 2000x5656 px at 210mm wide is 593.88mm tall.
	placements, err := Paginate(2000, 5656, 210, 297)
	require.NoError(t, err)
	assert.Len(t, placements, 2)

	// 420x1188 px scales to exactly two pages.
	placements, err = Paginate(420, 1188, 210, 297)
	require.NoError(t, err)
	assert.Len(t, placements, 2)
}

// The visible bands of all pages, stacked in order, must cover the scaled image
// with no gap, no overlap, and less than one page of trailing margin.
func TestPaginateBandsReconstructImage(t *testing.T) {
	for _, h := range []float64{1, 296.9, 297, 298, 1000, 2970, 12345.6} {
		placements, err := Paginate(800, h, 210, 297)
		require.NoError(t, err)

		scaled := ScaledHeight(800, h, 210)
		covered := 0.0
		for i, p := range placements {
			assert.Equal(t, i, p.PageIndex)
			bandTop := -p.VerticalOffset
			assert.InDelta(t, covered, bandTop, 1e-6, "gap or overlap before page %d", i)
			covered = bandTop + 297
		}
		assert.GreaterOrEqual(t, covered+1e-6, scaled)
		assert.Less(t, covered-scaled, 297.0)
	}
}

func TestPaginateRejectsNonPositiveSizes(t *testing.T) {
	for _, dims := range [][4]float64{{0, 10, 210, 297}, {10, 0, 210, 297}, {10, 10, 0, 297}, {10, 10, 210, 0}, {10, 10, 210, -1}} {
		_, err := Paginate(dims[0], dims[1], dims[2], dims[3])
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "SentiScope_Report_2026-03-07.pdf", FileName(now))
}

type fakeRasterizer struct {
	png []byte
	err error
}

func (f fakeRasterizer) Capture(context.Context, string) ([]byte, error) {
	return f.png, f.err
}

type recordingWriter struct {
	size       PageSize
	imgHeight  float64
	placements []models.PagePlacement
}

func (w *recordingWriter) Write(_ context.Context, _ []byte, size PageSize, imgHeight float64, placements []models.PagePlacement) ([]byte, error) {
	w.size = size
	w.imgHeight = imgHeight
	w.placements = placements
	return []byte("%PDF-1.7 fake"), nil
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestExporterWritesDatedDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	writer := &recordingWriter{}
	exporter := NewExporter(fakeRasterizer{png: encodePNG(t, 100, 300)}, writer, dir)

	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	path, err := exporter.Export(context.Background(), "<html></html>", now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "SentiScope_Report_2026-10-16.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	// 100x300 px at 210mm wide is 630mm tall: three A4 pages.
	assert.Equal(t, A4, writer.size)
	assert.InDelta(t, 630.0, writer.imgHeight, 1e-9)
	assert.Len(t, writer.placements, 3)
}

func TestExporterPropagatesCaptureError(t *testing.T) {
	boom := errors.New("chromium missing")
	exporter := NewExporter(fakeRasterizer{err: boom}, &recordingWriter{}, t.TempDir())

	_, err := exporter.Export(context.Background(), "<html></html>", time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestPagedHTMLShiftsEachPage(t *testing.T) {
	doc := pagedHTML([]byte{1, 2, 3}, A4, 630, []models.PagePlacement{
		{PageIndex: 0, VerticalOffset: 0},
		{PageIndex: 1, VerticalOffset: -297},
	})

	assert.Equal(t, 2, strings.Count(doc, "class='page'"))
	assert.Contains(t, doc, "top:0.0000mm")
	assert.Contains(t, doc, "top:-297.0000mm")
	assert.Contains(t, doc, "@page{size:210.00mm 297.00mm;margin:0}")
}
