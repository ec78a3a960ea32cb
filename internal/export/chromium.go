package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	renderTimeout  = 45 * time.Second
	viewportWidth  = 1000
	viewportHeight = 800
	deviceScale    = 2.0
	mmPerInch      = 25.4
	settleDelay    = 300 * time.Millisecond
)

// ChromiumRenderer rasterizes report HTML and writes paged PDFs through a headless Chromium.
type ChromiumRenderer struct {
	chromePath string
}

func NewChromiumRenderer(chromePath string) *ChromiumRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromiumRenderer{chromePath: chromePath}
}

// Capture renders the page at twice the CSS resolution and returns one full-height PNG.
func (r *ChromiumRenderer) Capture(ctx context.Context, html string) ([]byte, error) {
	var png []byte
	err := r.run(ctx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate(dataURL(html)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("capture report: %w", err)
	}

	slog.Info("[ChromiumRenderer] Captured report surface", slog.Int("bytes", len(png)))
	return png, nil
}

// Write lays the same image onto one fixed-size page per placement, shifted by the
// placement offset, and prints the result without margins.
func (r *ChromiumRenderer) Write(ctx context.Context, png []byte, size PageSize, imgHeight float64, placements []models.PagePlacement) ([]byte, error) {
	doc := pagedHTML(png, size, imgHeight, placements)

	var pdf []byte
	err := r.run(ctx,
		chromedp.Navigate(dataURL(doc)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(size.Width / mmPerInch).
				WithPaperHeight(size.Height / mmPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print report pdf: %w", err)
	}
	return pdf, nil
}

func (r *ChromiumRenderer) run(ctx context.Context, actions ...chromedp.Action) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	return chromedp.Run(taskCtx, actions...)
}

func pagedHTML(png []byte, size PageSize, imgHeight float64, placements []models.PagePlacement) string {
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'><style>")
	fmt.Fprintf(&b, "@page{size:%.2fmm %.2fmm;margin:0}", size.Width, size.Height)
	b.WriteString("html,body{margin:0;padding:0;background:#fff}")
	fmt.Fprintf(&b, ".page{position:relative;width:%.2fmm;height:%.2fmm;overflow:hidden;break-after:page}", size.Width, size.Height)
	b.WriteString(".page:last-child{break-after:auto}")
	fmt.Fprintf(&b, ".page img{position:absolute;left:0;width:%.2fmm;height:%.4fmm}", size.Width, imgHeight)
	b.WriteString("</style></head><body>")
	for _, p := range placements {
		fmt.Fprintf(&b, "<div class='page' data-page='%d'><img src='%s' style='top:%.4fmm'></div>",
			p.PageIndex, src, p.VerticalOffset)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func dataURL(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
