package insight

import (
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/epdtools/insightviz/internal/pkg/chart"
	"github.com/epdtools/insightviz/internal/pkg/model"
)

// maxPathEdges caps the ranked path edges kept in the canonical series.
const maxPathEdges = 6

// extractSeries fills the record's value fields from the result collection,
// dispatching on the resolved type. Any branch that cannot make sense of the
// shape degrades to the generic fallback, never to an error.
func (n *Normalizer) extractSeries(out *model.Insight, results []any) {
	var ok bool

	switch {
	case out.Type.TrendsLike():
		ok = n.extractTrends(out, results)
	case out.Type == model.TypeFunnel:
		ok = n.extractFunnel(out, results)
	case out.Type == model.TypeRetention:
		ok = n.extractRetention(out, results)
	case out.Type == model.TypePaths:
		ok = n.extractPaths(out, results)
	}

	if !ok {
		n.extractGeneric(out, results)
	}
}

// extractTrends handles trends, lifecycle and stickiness results: a non-empty
// ordered list of per-series objects, shaped by the display variant.
func (n *Normalizer) extractTrends(out *model.Insight, results []any) bool {
	if len(results) == 0 {
		return false
	}

	items := make([]rawTrendsItem, 0, len(results))
	for _, raw := range results {
		var item rawTrendsItem
		if err := decode(raw, &item); err != nil {
			n.l.Warn("trends item not decoded", slog.String("error", err.Error()))

			return false
		}
		items = append(items, item)
	}

	switch model.ClassifyDisplay(out.Display) {
	case model.DisplayBigNumber:
		var total float64
		for _, item := range items {
			total += item.value()
		}
		out.PrimaryValue = chart.Compact(total)
		out.SecondaryLabel = items[0].displayLabel()

		return true

	case model.DisplayPie:
		var total float64
		for _, item := range items {
			slice := item.value()
			total += slice
			out.Series = append(out.Series, model.NewPoint(item.displayLabel(), slice))
		}
		out.PrimaryValue = chart.Compact(total)
		out.SecondaryLabel = strconv.Itoa(len(out.Series))

		return true

	default:
		// bar family and the default line/area chart use the first series only
		first := items[0]
		out.PrimaryValue = chart.Compact(first.value())
		out.SecondaryLabel = first.displayLabel()
		for i, v := range first.Data {
			label := ""
			if i < len(first.Labels) {
				label = first.Labels[i]
			}
			out.Series = append(out.Series, model.NewPoint(label, v))
		}

		return true
	}
}

// extractFunnel handles funnel results with at least 2 steps: the primary
// value is the last-to-first conversion rate, the series one entry per step.
func (n *Normalizer) extractFunnel(out *model.Insight, results []any) bool {
	if len(results) < 2 {
		return false
	}

	steps := make([]rawFunnelStep, 0, len(results))
	for _, raw := range results {
		var step rawFunnelStep
		if err := decode(raw, &step); err != nil {
			n.l.Warn("funnel step not decoded", slog.String("error", err.Error()))

			return false
		}
		steps = append(steps, step)
	}

	out.PrimaryValue = conversionRate(steps[0].count(), steps[len(steps)-1].count()) + "%"
	out.SecondaryLabel = steps[0].displayName() + " → " + steps[len(steps)-1].displayName()
	for _, step := range steps {
		out.Series = append(out.Series, model.NewPoint(step.displayName(), step.count()))
	}

	return true
}

// conversionRate is the last/first step ratio as a percentage with one
// decimal, or "0" when the first step saw nobody.
func conversionRate(first, last float64) string {
	if first <= 0 {
		return "0"
	}

	rate := math.Round(last/first*1000) / 10

	return strconv.FormatFloat(rate, 'f', 1, 64)
}

// extractRetention handles retention results: the most recent (first) cohort
// becomes a percentage series per day offset relative to its day-0 count.
func (n *Normalizer) extractRetention(out *model.Insight, results []any) bool {
	if len(results) == 0 {
		return false
	}

	var cohort rawCohort
	if err := decode(results[0], &cohort); err != nil {
		n.l.Warn("retention cohort not decoded", slog.String("error", err.Error()))

		return false
	}

	var day0 float64
	if len(cohort.Values) > 0 {
		day0 = cohort.Values[0].count()
	}

	for i, v := range cohort.Values {
		var pct float64
		if day0 > 0 {
			pct = math.Round(v.count() / day0 * 100)
		}
		out.Series = append(out.Series, model.NewPoint("Day "+strconv.Itoa(i), pct))
	}

	if len(cohort.Values) >= 2 {
		out.PrimaryValue = strconv.FormatFloat(out.Series[1].Value, 'f', 0, 64) + "%"
		out.SecondaryLabel = "Day 1 retention"
	} else {
		out.PrimaryValue = chart.Compact(day0)
		out.SecondaryLabel = "Retained (Day 0)"
	}

	return true
}

// extractPaths handles path results: edges with both endpoints present,
// ranked descending by weight (falling back to count) and truncated to the
// heaviest few.
func (n *Normalizer) extractPaths(out *model.Insight, results []any) bool {
	edges := make([]rawPathEdge, 0, len(results))
	for _, raw := range results {
		var edge rawPathEdge
		if err := decode(raw, &edge); err != nil {
			n.l.Warn("path edge not decoded", slog.String("error", err.Error()))

			return false
		}
		if edge.Source == "" || edge.Target == "" {
			continue
		}
		edges = append(edges, edge)
	}

	out.PrimaryValue = chart.Compact(float64(len(edges)))
	out.SecondaryLabel = "total paths"

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].value() > edges[j].value()
	})
	if len(edges) > maxPathEdges {
		edges = edges[:maxPathEdges]
	}

	for _, edge := range edges {
		out.Series = append(out.Series, model.NewPoint(edge.Source+" → "+edge.Target, edge.value()))
	}

	return true
}

// extractGeneric is the last-resort branch for unrecognized types or shapes:
// the first result item's aggregate and label, no chart series. A non-numeric
// aggregate passes through as its string form.
func (n *Normalizer) extractGeneric(out *model.Insight, results []any) {
	if len(results) == 0 {
		out.PrimaryValue = chart.Compact(0)

		return
	}

	var item rawGenericItem
	if err := decode(results[0], &item); err != nil {
		n.l.Warn("result item not decoded", slog.String("error", err.Error()))

		return
	}

	out.PrimaryValue = chart.CompactAny(item.value())
	if label := item.displayLabel(); label != "" {
		out.SecondaryLabel = label
	}
}
