package insight

import (
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

// The several fallback chains below are ordinary precedence lists: each is an
// explicit ordered sequence of probes, so precedence stays auditable.

// resolveType resolves the insight type, first match wins: the legacy
// filters.insight string, then the modern query kinds, then trends.
//
// When both filters and query are present, filters wins for the type. This
// mirrors upstream behavior and is deliberately not symmetrical with display
// resolution.
func resolveType(rec rawRecord) model.Type {
	probes := []func() string{
		func() string {
			if rec.Filters == nil {
				return ""
			}
			return rec.Filters.Insight
		},
		func() string {
			if rec.Query == nil || rec.Query.Source == nil {
				return ""
			}
			return rec.Query.Source.Kind
		},
		func() string {
			if rec.Query == nil {
				return ""
			}
			return rec.Query.Kind
		},
	}

	for _, probe := range probes {
		if kind := probe(); kind != "" {
			return kindToType(kind)
		}
	}

	return model.TypeTrends
}

// kindToType matches a kind string case-insensitively by substring.
func kindToType(kind string) model.Type {
	k := strings.ToLower(kind)

	switch {
	case strings.Contains(k, "funnel"):
		return model.TypeFunnel
	case strings.Contains(k, "retention"):
		return model.TypeRetention
	case strings.Contains(k, "path"):
		return model.TypePaths
	case strings.Contains(k, "lifecycle"):
		return model.TypeLifecycle
	case strings.Contains(k, "stickiness"):
		return model.TypeStickiness
	default:
		return model.TypeTrends
	}
}

// resolveDisplay resolves the display-variant hint, first non-empty wins:
// legacy filters.display, then query.trendsFilter.display, then
// query.source.trendsFilter.display, then query.chartSettings.display.
func resolveDisplay(rec rawRecord) string {
	probes := []func() string{
		func() string {
			if rec.Filters == nil {
				return ""
			}
			return rec.Filters.Display
		},
		func() string {
			if rec.Query == nil || rec.Query.TrendsFilter == nil {
				return ""
			}
			return rec.Query.TrendsFilter.Display
		},
		func() string {
			if rec.Query == nil || rec.Query.Source == nil || rec.Query.Source.TrendsFilter == nil {
				return ""
			}
			return rec.Query.Source.TrendsFilter.Display
		},
		func() string {
			if rec.Query == nil || rec.Query.ChartSettings == nil {
				return ""
			}
			return rec.Query.ChartSettings.Display
		},
	}

	for _, probe := range probes {
		if display := probe(); display != "" {
			return display
		}
	}

	return ""
}

// resolveResults locates the result collection: a top-level result field,
// else a nested query_status.results field. Missing or non-array results
// report false and leave the caller to degrade per branch.
func resolveResults(working map[string]any) ([]any, bool) {
	probes := []func() (any, bool){
		func() (any, bool) {
			v, ok := working["result"]
			return v, ok
		},
		func() (any, bool) {
			qs, ok := working["query_status"].(map[string]any)
			if !ok {
				return nil, false
			}
			v, ok := qs["results"]
			return v, ok
		},
	}

	for _, probe := range probes {
		v, ok := probe()
		if !ok || v == nil {
			continue
		}
		if list, isList := v.([]any); isList {
			return list, true
		}
	}

	return nil, false
}

// hasResult reports whether a record carries a non-null result in either
// known location. Used to qualify dashboard tiles.
func hasResult(working map[string]any) bool {
	if v, ok := working["result"]; ok && v != nil {
		return true
	}
	if qs, ok := working["query_status"].(map[string]any); ok {
		if v, ok := qs["results"]; ok && v != nil {
			return true
		}
	}

	return false
}
