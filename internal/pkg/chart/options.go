package chart

// Option to tune screen composition.
type Option func(*options)

type options struct {
	CanvasWidth      int
	CanvasHeight     int
	RefreshSeconds   int
	MaxAxisLabels    int
	MaxLegendEntries int
	MaxListEntries   int
	MaxLabelRunes    int
}

const (
	defaultCanvasWidth    = 800
	defaultCanvasHeight   = 480
	defaultRefreshSeconds = 900
	defaultAxisLabels     = 6
	defaultLegendEntries  = 6
	defaultListEntries    = 6
	defaultLabelRunes     = 60
)

func optionsWithDefaults(opts []Option) options {
	o := options{
		CanvasWidth:      defaultCanvasWidth,
		CanvasHeight:     defaultCanvasHeight,
		RefreshSeconds:   defaultRefreshSeconds,
		MaxAxisLabels:    defaultAxisLabels,
		MaxLegendEntries: defaultLegendEntries,
		MaxListEntries:   defaultListEntries,
		MaxLabelRunes:    defaultLabelRunes,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithCanvasSize sets the logical canvas dimensions.
//
// Defaults to 800x480, the native resolution of the target display.
func WithCanvasSize(width, height int) Option {
	return func(o *options) {
		if width <= 0 || height <= 0 {
			return
		}

		o.CanvasWidth = width
		o.CanvasHeight = height
	}
}

// WithRefreshSeconds sets the refresh interval reported alongside the markup.
//
// Defaults to 900 (15 minutes).
func WithRefreshSeconds(seconds int) Option {
	return func(o *options) {
		if seconds <= 0 {
			return
		}

		o.RefreshSeconds = seconds
	}
}

// WithMaxAxisLabels sets the target number of x-axis labels on cartesian charts.
//
// Defaults to 6.
func WithMaxAxisLabels(n int) Option {
	return func(o *options) {
		if n < 2 {
			return
		}

		o.MaxAxisLabels = n
	}
}

// WithMaxLegendEntries sets the number of entries shown in the pie legend.
//
// Defaults to 6.
func WithMaxLegendEntries(n int) Option {
	return func(o *options) {
		if n <= 0 {
			return
		}

		o.MaxLegendEntries = n
	}
}

// WithMaxListEntries sets the number of rows shown in the ranked list.
//
// Defaults to 6.
func WithMaxListEntries(n int) Option {
	return func(o *options) {
		if n <= 0 {
			return
		}

		o.MaxListEntries = n
	}
}

// WithMaxLabelRunes sets the length at which list labels are truncated with an ellipsis.
//
// Defaults to 60.
func WithMaxLabelRunes(n int) Option {
	return func(o *options) {
		if n <= 1 {
			return
		}

		o.MaxLabelRunes = n
	}
}
