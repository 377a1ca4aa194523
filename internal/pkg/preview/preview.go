// Package preview renders a canonical insight as an interactive ECharts page.
//
// This is a developer aid for inspecting normalized data in a browser. The
// device path never uses it: device markup stays free of scripting.
package preview

import (
	"io"
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	echartsopts "github.com/go-echarts/go-echarts/v2/opts"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

// Page holds the interactive charts built from canonical records.
//
// A [Page] knows how to [Page.Render] as HTML.
type Page struct {
	options

	Title  string
	charts []components.Charter
	l      *slog.Logger
}

// NewPage creates a preview page with the given title.
func NewPage(title string, opts ...Option) *Page {
	return &Page{
		options: optionsWithDefaults(opts),
		Title:   title,
		l:       slog.Default().With(slog.String("module", "preview")),
	}
}

// AddInsight maps a canonical record onto the matching interactive chart and
// adds it to the page.
func (p *Page) AddInsight(in model.Insight) {
	p.charts = append(p.charts, p.buildChart(in))
	p.l.Info("added preview chart",
		slog.String("type", in.Type.String()),
		slog.Int("points", len(in.Series)),
	)
}

// Render writes the page HTML to the given writer.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.SetPageTitle(p.Title)
	page.AddCharts(p.charts...)

	return page.Render(w)
}

func (p *Page) buildChart(in model.Insight) components.Charter {
	switch model.ClassifyDisplay(in.Display) {
	case model.DisplayPie:
		return p.buildPie(in)
	case model.DisplayBar:
		return p.buildBar(in)
	default:
	}

	switch in.Type {
	case model.TypeFunnel, model.TypePaths:
		return p.buildBar(in)
	default:
		return p.buildLine(in)
	}
}

func (p *Page) buildLine(in model.Insight) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalOptions(in)...)
	line.SetXAxis(labels(in.Series))
	line.AddSeries(in.Title, lineData(in.Series))

	return line
}

func (p *Page) buildBar(in model.Insight) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalOptions(in)...)
	bar.SetXAxis(labels(in.Series))
	bar.AddSeries(in.Title, barData(in.Series))

	if in.Type == model.TypeFunnel || in.Type == model.TypePaths {
		// ranked data reads better sideways
		return bar.XYReversal()
	}

	return bar
}

func (p *Page) buildPie(in model.Insight) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalOptions(in)...)
	pie.AddSeries(in.Title, pieData(in.Series))

	return pie
}

func (p *Page) globalOptions(in model.Insight) []charts.GlobalOpts {
	subtitle := in.Type.Title()
	if in.SecondaryLabel != "" {
		subtitle += " - " + in.SecondaryLabel
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(echartsopts.Initialization{Theme: p.Theme}),
		charts.WithTitleOpts(echartsopts.Title{
			Title:    in.Title,
			Subtitle: subtitle,
			SubtitleStyle: &echartsopts.TextStyle{
				FontStyle: "italic",
			},
		}),
		charts.WithTooltipOpts(echartsopts.Tooltip{
			Show:    echartsopts.Bool(true),
			Trigger: "axis",
		}),
	}
}

func labels(series []model.Point) []string {
	out := make([]string, 0, len(series))
	for _, p := range series {
		out = append(out, p.Label)
	}

	return out
}

func lineData(series []model.Point) []echartsopts.LineData {
	out := make([]echartsopts.LineData, 0, len(series))
	for _, p := range series {
		out = append(out, echartsopts.LineData{Name: p.Label, Value: p.Value})
	}

	return out
}

func barData(series []model.Point) []echartsopts.BarData {
	out := make([]echartsopts.BarData, 0, len(series))
	for _, p := range series {
		out = append(out, echartsopts.BarData{Name: p.Label, Value: p.Value})
	}

	return out
}

func pieData(series []model.Point) []echartsopts.PieData {
	out := make([]echartsopts.PieData, 0, len(series))
	for _, p := range series {
		out = append(out, echartsopts.PieData{Name: p.Label, Value: p.Value})
	}

	return out
}
