// Package image converts composed screen markup into a PNG bitmap, sized for
// the target display, by screenshotting it in a headless browser.
package image

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/device"
)

// Renderer knows how to take a screenshot from screen markup and write it as PNG.
type Renderer struct {
	options
}

// New builds an image [Renderer].
func New(opts ...Option) *Renderer {
	return &Renderer{
		options: optionsWithDefaults(opts),
	}
}

// Render reads a markup fragment from source and writes its PNG screenshot to dest.
func (r *Renderer) Render(dest io.Writer, source io.Reader) error {
	markup, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("reading markup: %w", err)
	}

	screenshot, err := r.screenshot(wrapDocument(markup))
	if err != nil {
		return fmt.Errorf("taking screenshot: %w", err)
	}

	_, err = dest.Write(screenshot)
	if err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}

	return nil
}

// wrapDocument embeds the fragment in a minimal page so the browser renders
// it against a white background with no default margins.
func wrapDocument(markup []byte) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body style="margin:0;background:#fff;">` +
		string(markup) + `</body></html>`
}

func (r *Renderer) screenshot(page string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	const qualityPNG = 100 // 100 to force PNG

	var screenshot []byte
	err := chromedp.Run(ctx,
		chromedp.Emulate(device.Info{
			Height:    r.Height,
			Width:     r.Width,
			Landscape: true,
		}),
		chromedp.Navigate("data:text/html,"+url.PathEscape(page)),
		chromedp.Sleep(r.SleepDuration), // give the engine time to settle the layout
		chromedp.FullScreenshot(&screenshot, qualityPNG),
	)
	if err != nil {
		return nil, err
	}

	return screenshot, nil
}
