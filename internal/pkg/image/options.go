package image //nolint:revive // it's okay for an internal package to use this name

import "time"

// Option to tune image rendering.
type Option func(*options)

type options struct {
	Height        int64
	Width         int64
	SleepDuration time.Duration
}

// Screenshot defaults match the native resolution of the target display.
const (
	defaultHeight int64 = 480
	defaultWidth  int64 = 800
	defaultWait         = time.Second
)

func optionsWithDefaults(opts []Option) options {
	o := options{
		Height:        defaultHeight,
		Width:         defaultWidth,
		SleepDuration: defaultWait,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithHeight sets the height of the screenshot.
//
// Defaults to 480.
func WithHeight(height int64) Option {
	return func(o *options) {
		if height <= 0 {
			return
		}

		o.Height = height
	}
}

// WithWidth sets the width of the screenshot.
//
// Defaults to 800.
func WithWidth(width int64) Option {
	return func(o *options) {
		if width <= 0 {
			return
		}

		o.Width = width
	}
}

// WithSleep sets the time to wait for the headless engine to settle the page.
//
// Defaults to 1s.
func WithSleep(sleep time.Duration) Option {
	return func(o *options) {
		if sleep == 0 {
			return
		}

		o.SleepDuration = sleep
	}
}
