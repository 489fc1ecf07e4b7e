package infrastructure

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches, with the margins applied uniformly on all sides.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.75

	renderTimeout = 60 * time.Second
)

// ChromedpLayout prints HTML to PDF with headless Chrome. Chrome owns
// pagination, word wrap, and font metrics; callers hand it a finished HTML
// document and get back the full PDF byte stream.
type ChromedpLayout struct {
	execPath string
}

// NewChromedpLayout builds a layout engine. execPath optionally points at a
// Chrome/Chromium binary; when empty, chromedp searches PATH.
func NewChromedpLayout(execPath string) *ChromedpLayout {
	return &ChromedpLayout{execPath: execPath}
}

// RenderHTMLToPDF prints the document at A4 with 0.75in margins. A fresh
// browser context is created per call, so concurrent renders share no state.
func (r *ChromedpLayout) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelRun()

	// A data: URL avoids temp files and keeps the render hermetic.
	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome pdf print: %w", err)
	}
	return pdf, nil
}
