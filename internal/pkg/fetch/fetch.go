// Package fetch retrieves the raw analytics payload from the host's shared
// insight page. All retry lives here: the rendering pipeline downstream
// performs no I/O.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/epdtools/insightviz/internal/pkg/extract"
)

// Fetcher retrieves and decodes a shared insight page.
type Fetcher struct {
	options

	l *slog.Logger
}

// New builds a [Fetcher].
func New(opts ...Option) *Fetcher {
	return &Fetcher{
		options: optionsWithDefaults(opts),
		l:       slog.Default().With(slog.String("module", "fetch")),
	}
}

// Fetch downloads the page at url and extracts its embedded payload,
// retrying transient failures with exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, url string) (map[string]any, error) {
	var payload map[string]any

	operation := func() error {
		var err error
		payload, err = f.fetchOnce(ctx, url)

		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = f.MaxElapsedTime

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("fetching %q: %w", url, err)
	}

	return payload, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		f.l.Warn("page request failed", slog.String("url", url), slog.String("error", err.Error()))

		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status: %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// client errors will not heal on retry
			return nil, backoff.Permanent(err)
		}

		return nil, err
	}

	payload, err := extract.FromHTML(resp.Body)
	if err != nil {
		// a page without a data block stays a page without a data block
		return nil, backoff.Permanent(err)
	}

	return payload, nil
}
