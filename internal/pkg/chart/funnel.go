package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

const (
	funnelRowHeight = 26.0
	funnelRowGap    = 8.0
	funnelLabelX    = 170.0
	funnelBarX      = 180.0
	funnelBarMaxW   = 420.0
)

// funnelChart renders one horizontal bar per step, its width proportional to
// the first step. Requires at least 2 steps.
func (s *Screen) funnelChart(series []model.Point) string {
	if len(series) < 2 {
		return s.emptyState()
	}

	rows := len(series)
	height := math.Min(viewHeight, float64(rows)*(funnelRowHeight+funnelRowGap)+10)
	first := series[0].Value

	var b strings.Builder
	b.WriteString(svgOpen(height))

	for i, p := range series {
		y := 5 + float64(i)*(funnelRowHeight+funnelRowGap)
		textY := y + funnelRowHeight/2 + 5

		var ratio float64
		if first > 0 {
			ratio = p.Value / first
		}

		opacity := 0.55
		if i == 0 {
			opacity = 0.9
		}

		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="14" fill="#000">%s</text>`,
			funnelLabelX, textY, escape(s.truncateLabel(p.Label)))
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#000" fill-opacity="%.2f"/>`,
			funnelBarX, y, math.Max(ratio*funnelBarMaxW, 1), funnelRowHeight, opacity)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="14" fill="#000">%s (%.0f%%)</text>`,
			funnelBarX+math.Max(ratio*funnelBarMaxW, 1)+8, textY, Compact(p.Value), ratio*100)
	}

	b.WriteString("</svg>")

	return b.String()
}
