package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

const (
	pieCenterX = 140.0
	pieCenterY = 120.0
	pieOuterR  = 100.0
	pieInnerR  = 52.0

	legendX      = 310.0
	legendRightX = 744.0
)

// slicePalette is the cyclical 6-step opacity ramp shared by slice fills and
// legend swatches.
var slicePalette = []float64{0.9, 0.72, 0.55, 0.4, 0.28, 0.16}

// pieChart renders a donut with slices placed clockwise from the top, plus a
// legend for the first entries. Requires at least 2 slices with a positive total.
func (s *Screen) pieChart(series []model.Point) string {
	if len(series) < 2 {
		return s.emptyState()
	}

	total := model.Total(series)
	if total <= 0 {
		return s.emptyState()
	}

	var b strings.Builder
	b.WriteString(svgOpen(viewHeight))

	angle := -math.Pi / 2 // start at the top
	for i, p := range series {
		sweep := p.Value / total * 2 * math.Pi
		b.WriteString(donutSlice(angle, sweep, slicePalette[i%len(slicePalette)]))
		angle += sweep
	}

	legendCount := min(len(series), s.MaxLegendEntries)
	for i := range legendCount {
		p := series[i]
		y := 40.0 + float64(i)*30
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="14" height="14" fill="#000" fill-opacity="%.2f"/>`,
			legendX, y-11, slicePalette[i%len(slicePalette)])
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="15" fill="#000">%s</text>`,
			legendX+22, y, escape(s.truncateLabel(p.Label)))
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="15" fill="#000">%.0f%%</text>`,
			legendRightX, y, p.Value/total*100)
	}

	b.WriteString("</svg>")

	return b.String()
}

// donutSlice builds one ring segment path: outer arc forward, inner arc back.
// The large-arc flag is set when the sweep exceeds half a turn.
func donutSlice(start, sweep, opacity float64) string {
	end := start + sweep
	largeArc := 0
	if sweep > math.Pi {
		largeArc = 1
	}

	x1, y1 := pieCenterX+pieOuterR*math.Cos(start), pieCenterY+pieOuterR*math.Sin(start)
	x2, y2 := pieCenterX+pieOuterR*math.Cos(end), pieCenterY+pieOuterR*math.Sin(end)
	x3, y3 := pieCenterX+pieInnerR*math.Cos(end), pieCenterY+pieInnerR*math.Sin(end)
	x4, y4 := pieCenterX+pieInnerR*math.Cos(start), pieCenterY+pieInnerR*math.Sin(start)

	return fmt.Sprintf(
		`<path d="M%.2f,%.2f A%.1f,%.1f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.1f,%.1f 0 %d 0 %.2f,%.2f Z" fill="#000" fill-opacity="%.2f" stroke="#fff" stroke-width="1"/>`,
		x1, y1, pieOuterR, pieOuterR, largeArc, x2, y2,
		x3, y3, pieInnerR, pieInnerR, largeArc, x4, y4,
		opacity)
}
