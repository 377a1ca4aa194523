package fetch

import (
	"net/http"
	"time"
)

// Option to tune the fetcher.
type Option func(*options)

type options struct {
	Client         *http.Client
	MaxElapsedTime time.Duration
}

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxElapsed = 45 * time.Second
)

func optionsWithDefaults(opts []Option) options {
	o := options{
		Client:         &http.Client{Timeout: defaultTimeout},
		MaxElapsedTime: defaultMaxElapsed,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithClient sets the HTTP client used for page requests.
//
// Defaults to a client with a 15s timeout.
func WithClient(client *http.Client) Option {
	return func(o *options) {
		if client == nil {
			return
		}

		o.Client = client
	}
}

// WithMaxElapsedTime caps the total time spent retrying a fetch.
//
// Defaults to 45s.
func WithMaxElapsedTime(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			return
		}

		o.MaxElapsedTime = d
	}
}
