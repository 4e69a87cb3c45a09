package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/studyforge/studyforge-backend/internal/logger"
)

// A4 in inches, 20mm margins.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.79
)

// Renderer prints HTML to paginated PDF through headless chrome. Each
// render spawns a browser process, so calls are bounded by a timeout and
// cancel cleanly with the request context.
type Renderer struct {
	timeout time.Duration
	log     *logger.Logger
}

func NewRenderer(timeout time.Duration, baseLog *logger.Logger) *Renderer {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Renderer{
		timeout: timeout,
		log:     baseLog.With("service", "PDFRenderer"),
	}
}

func (r *Renderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf render timed out after %s: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("pdf render: %w", err)
	}

	r.log.Debug("Rendered PDF", "bytes", len(buf), "latency_ms", time.Since(start).Milliseconds())
	return buf, nil
}
