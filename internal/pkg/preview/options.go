package preview

// Theme constants from go-echarts.
const (
	ThemeRoma = "roma"
)

// Option configures a preview [Page].
type Option func(*options)

type options struct {
	Theme string
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		Theme: ThemeRoma,
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithTheme sets the color theme.
func WithTheme(theme string) Option {
	return func(o *options) {
		o.Theme = theme
	}
}
