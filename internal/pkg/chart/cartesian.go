package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

// Logical viewport shared by the coordinate charts. Fragments scale to fill
// their container, so these never change with the canvas size.
const (
	viewWidth  = 760.0
	viewHeight = 240.0

	padLeft   = 46.0
	padRight  = 10.0
	padTop    = 10.0
	padBottom = 26.0

	innerWidth  = viewWidth - padLeft - padRight
	innerHeight = viewHeight - padTop - padBottom
	baselineY   = padTop + innerHeight
)

func svgOpen(height float64) string {
	return fmt.Sprintf(`<svg viewBox="0 0 %g %g" width="100%%" height="100%%" preserveAspectRatio="xMidYMid meet" xmlns="http://www.w3.org/2000/svg">`,
		viewWidth, height)
}

// lineChart renders the line/area chart: a closed fill under the points, a
// stroked polyline, and a terminal marker dot. Requires at least 2 points.
func (s *Screen) lineChart(series []model.Point) string {
	if len(series) < 2 {
		return s.emptyState()
	}

	ax := niceAxis(model.MaxValue(series))
	n := len(series)
	xOf := func(i int) float64 { return padLeft + innerWidth*float64(i)/float64(n-1) }
	yOf := func(v float64) float64 { return padTop + innerHeight*(1-v/ax.AxisMax) }

	var b strings.Builder
	b.WriteString(svgOpen(viewHeight))
	writeGrid(&b, ax, yOf)

	// closed fill from the baseline up through each point and back down
	var fill strings.Builder
	fmt.Fprintf(&fill, "M%.1f,%.1f", xOf(0), baselineY)
	for i, p := range series {
		fmt.Fprintf(&fill, " L%.1f,%.1f", xOf(i), yOf(p.Value))
	}
	fmt.Fprintf(&fill, " L%.1f,%.1f Z", xOf(n-1), baselineY)
	fmt.Fprintf(&b, `<path d="%s" fill="#000" fill-opacity="0.15"/>`, fill.String())

	points := make([]string, 0, n)
	for i, p := range series {
		points = append(points, fmt.Sprintf("%.1f,%.1f", xOf(i), yOf(p.Value)))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#000" stroke-width="3"/>`, strings.Join(points, " "))

	last := series[n-1]
	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="5" fill="#000"/>`, xOf(n-1), yOf(last.Value))

	s.writeXLabels(&b, series, xOf)
	b.WriteString("</svg>")

	return b.String()
}

// barChart renders one bar per point. Bars take 72% of their slot, the rest
// is distributed as a uniform gap. Requires at least 2 points.
func (s *Screen) barChart(series []model.Point) string {
	if len(series) < 2 {
		return s.emptyState()
	}

	ax := niceAxis(model.MaxValue(series))
	n := len(series)
	slot := innerWidth / float64(n)
	barWidth := math.Max(slot*0.72, 2)
	yOf := func(v float64) float64 { return padTop + innerHeight*(1-v/ax.AxisMax) }
	centerOf := func(i int) float64 { return padLeft + slot*(float64(i)+0.5) }

	var b strings.Builder
	b.WriteString(svgOpen(viewHeight))
	writeGrid(&b, ax, yOf)

	for i, p := range series {
		y := yOf(p.Value)
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#000" fill-opacity="0.8"/>`,
			centerOf(i)-barWidth/2, y, barWidth, baselineY-y)
	}

	s.writeXLabels(&b, series, centerOf)
	b.WriteString("</svg>")

	return b.String()
}

// writeGrid draws horizontal grid lines and right-aligned tick labels at each
// y-axis tick.
func writeGrid(b *strings.Builder, ax axis, yOf func(float64) float64) {
	for _, tick := range ax.Ticks {
		y := yOf(tick)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000" stroke-opacity="0.15" stroke-width="1"/>`,
			padLeft, y, viewWidth-padRight, y)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="12" fill="#000">%s</text>`,
			padLeft-6, y+4, Compact(tick))
	}
}

// writeXLabels draws up to MaxAxisLabels evenly-subsampled x-axis labels.
func (s *Screen) writeXLabels(b *strings.Builder, series []model.Point, xOf func(int) float64) {
	for _, i := range pickLabelIndexes(len(series), s.MaxAxisLabels) {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="#000">%s</text>`,
			xOf(i), viewHeight-8, escape(series[i].Label))
	}
}

// pickLabelIndexes subsamples point indexes for x-axis labelling: all of them
// when n fits the target, otherwise the first and last index plus evenly
// spaced intermediates, rounded from their fractional position, deduplicated.
func pickLabelIndexes(n, target int) []int {
	if n <= target {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}

		return indexes
	}

	indexes := make([]int, 0, target)
	seen := make(map[int]struct{}, target)
	for slot := range target {
		i := int(math.Round(float64(slot) * float64(n-1) / float64(target-1)))
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		indexes = append(indexes, i)
	}

	return indexes
}
