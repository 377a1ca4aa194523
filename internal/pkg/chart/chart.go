// Package chart renders canonical insight records as self-contained markup
// for a fixed-size monochrome display.
//
// The whole pipeline is synchronous, free of I/O and shared state, and
// deterministic: identical input yields byte-identical output.
package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

const fontStack = "-apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif"

// Screen composes canonical insight records into full-canvas display markup.
type Screen struct {
	options
}

// New builds a [Screen] composer.
func New(opts ...Option) *Screen {
	return &Screen{
		options: optionsWithDefaults(opts),
	}
}

// Screens renders the insight and replicates the markup across the four
// named layout slots, carrying the configured refresh interval.
func (s *Screen) Screens(in model.Insight) model.ScreenSet {
	return model.NewScreenSet(s.Compose(in), s.RefreshSeconds)
}

// Compose lays out the meta line, title, chart region and footer bar into the
// fixed canvas, selecting a renderer from the insight type, display variant
// and series length.
func (s *Screen) Compose(in model.Insight) string {
	body := fmt.Sprintf(`<div style="flex:1;display:flex;flex-direction:column;min-height:0;padding:16px 20px 8px 20px;">
<div style="font-size:14px;letter-spacing:1px;opacity:0.6;">%s</div>
<div style="font-size:26px;font-weight:600;margin:2px 0 8px 0;white-space:nowrap;overflow:hidden;text-overflow:ellipsis;">%s</div>
<div style="flex:1;display:flex;min-height:0;">%s</div>
</div>`,
		s.metaLine(in),
		escape(in.Title),
		s.renderChart(in),
	)

	return s.frame(body, "Analytics")
}

// Error renders the full-canvas "could not load data" layout.
func (s *Screen) Error(message string) string {
	body := fmt.Sprintf(`<div style="flex:1;display:flex;flex-direction:column;align-items:center;justify-content:center;">
<div style="font-size:64px;">&#9888;</div>
<div style="font-size:22px;margin-top:12px;">%s</div>
</div>`, escape(message))

	return s.frame(body, "Error")
}

// Setup renders the full-canvas no-configuration layout.
func (s *Screen) Setup() string {
	body := `<div style="flex:1;display:flex;flex-direction:column;align-items:center;justify-content:center;">
<div style="font-size:64px;">&#9881;</div>
<div style="font-size:22px;margin-top:12px;">Connect your analytics project to get started</div>
<div style="font-size:16px;margin-top:6px;opacity:0.6;">Open the plugin settings and paste an insight or dashboard link</div>
</div>`

	return s.frame(body, "Setup required")
}

// frame wraps a body into the fixed canvas with the bordered footer bar.
func (s *Screen) frame(body, footerCaption string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<div style="width:%dpx;height:%dpx;display:flex;flex-direction:column;background:#fff;color:#000;font-family:%s;overflow:hidden;">`,
		s.CanvasWidth, s.CanvasHeight, fontStack)
	b.WriteString(body)
	fmt.Fprintf(&b, `<div style="height:40px;flex:none;border-top:1px solid #000;display:flex;align-items:center;justify-content:space-between;padding:0 20px;">
<div style="font-size:16px;font-weight:700;">&#9670; insightviz</div>
<div style="font-size:14px;opacity:0.6;">%s</div>
</div></div>`, escape(footerCaption))

	return b.String()
}

// renderChart selects the chart renderer for the record.
//
// Precedence: big-number variant, pie, bar family, funnel type, paths type,
// then the generic line/area chart. Every renderer has a minimum-data gate
// and anything that fails its gate falls back to the empty state.
func (s *Screen) renderChart(in model.Insight) string {
	class := model.ClassifyDisplay(in.Display)

	switch {
	case class == model.DisplayBigNumber:
		return s.bigNumber(in.PrimaryValue, in.SecondaryLabel)
	case class == model.DisplayPie && in.HasSeries(2):
		return s.pieChart(in.Series)
	case class == model.DisplayBar && in.HasSeries(2):
		return s.barChart(in.Series)
	case in.Type == model.TypeFunnel && in.HasSeries(2):
		return s.funnelChart(in.Series)
	case in.Type == model.TypePaths && in.HasSeries(1):
		return s.rankedList(in.Series, in.PrimaryValue+" "+in.SecondaryLabel)
	case in.HasSeries(2):
		return s.lineChart(in.Series)
	default:
		return s.emptyState()
	}
}

// metaLine builds the upper-cased type name, suffixed with the date range
// spanned by the series labels. Big-number and pie variants carry no
// chronological labels, so the range is omitted for them.
func (s *Screen) metaLine(in model.Insight) string {
	meta := strings.ToUpper(in.Type.String())

	switch model.ClassifyDisplay(in.Display) {
	case model.DisplayBigNumber, model.DisplayPie:
		return meta
	default:
	}

	if len(in.Series) < 2 {
		return meta
	}

	first := in.Series[0].Label
	last := in.Series[len(in.Series)-1].Label
	if first == "" || last == "" {
		return meta
	}

	return meta + " &#183; " + escape(first) + " &#8211; " + escape(last)
}

// escape replaces the five reserved markup characters in interpolated text.
func escape(text string) string {
	return html.EscapeString(text)
}
