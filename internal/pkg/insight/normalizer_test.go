package insight

import (
	"encoding/json"
	"testing"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

func payload(t *testing.T, doc string) map[string]any {
	t.Helper()

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))

	return raw
}

func TestNormalizeTrendsLine(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"name": "Weekly pageviews",
		"filters": {"insight": "TRENDS"},
		"result": [
			{"label": "$pageview", "count": 132, "data": [10, 25, 18, 32, 47], "labels": ["Mon", "Tue", "Wed", "Thu", "Fri"]},
			{"label": "$autocapture", "count": 999, "data": [1, 2, 3]}
		]
	}`))

	assert.Equal(t, "Weekly pageviews", out.Title)
	assert.Equal(t, model.TypeTrends, out.Type)
	assert.Equal(t, "132", out.PrimaryValue)
	assert.Equal(t, "$pageview", out.SecondaryLabel)

	// only the first series feeds the chart
	require.Len(t, out.Series, 5)
	assert.Equal(t, model.Point{Label: "Mon", Value: 10}, out.Series[0])
	assert.Equal(t, model.Point{Label: "Fri", Value: 47}, out.Series[4])
}

func TestNormalizeTrendsPadsMissingLabels(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "TRENDS"},
		"result": [{"label": "views", "data": [1, 2, 3], "labels": ["Mon"]}]
	}`))

	require.Len(t, out.Series, 3)
	assert.Equal(t, "Mon", out.Series[0].Label)
	assert.Equal(t, "", out.Series[1].Label)
	assert.Equal(t, "", out.Series[2].Label)

	// no count means the data points are summed
	assert.Equal(t, "6", out.PrimaryValue)
}

func TestNormalizeBigNumber(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"name": "Unique users",
		"filters": {"insight": "TRENDS", "display": "BoldNumber"},
		"result": [
			{"label": "users", "count": 1000},
			{"label": "more", "count": 500}
		]
	}`))

	assert.Equal(t, "BoldNumber", out.Display)
	assert.Equal(t, "1.5K", out.PrimaryValue)
	assert.Equal(t, "users", out.SecondaryLabel)
	assert.Empty(t, out.Series)
}

func TestNormalizePie(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "TRENDS", "display": "ActionsPie"},
		"result": [
			{"label": "Chrome", "count": 60},
			{"label": "Firefox", "count": 30},
			{"label": "Safari", "count": 10}
		]
	}`))

	require.Len(t, out.Series, 3)
	assert.Equal(t, "100", out.PrimaryValue)
	assert.Equal(t, "3", out.SecondaryLabel)
	assert.Equal(t, model.Point{Label: "Chrome", Value: 60}, out.Series[0])
}

func TestNormalizeFunnel(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"name": "Signup funnel",
		"filters": {"insight": "FUNNELS"},
		"result": [
			{"name": "Visited", "count": 100},
			{"name": "viewed_pricing", "custom_name": "Viewed pricing", "count": 100},
			{"name": "Purchased", "count": 25}
		]
	}`))

	assert.Equal(t, model.TypeFunnel, out.Type)
	assert.Equal(t, "25.0%", out.PrimaryValue)
	assert.Equal(t, "Visited → Purchased", out.SecondaryLabel)

	require.Len(t, out.Series, 3)
	assert.Equal(t, model.Point{Label: "Viewed pricing", Value: 100}, out.Series[1])
}

func TestNormalizeFunnelEmptyFirstStep(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "FUNNELS"},
		"result": [
			{"name": "Visited", "count": 0},
			{"name": "Purchased", "count": 0}
		]
	}`))

	assert.Equal(t, "0%", out.PrimaryValue)
}

func TestNormalizeFunnelSingleStepFallsBack(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "FUNNELS"},
		"result": [{"name": "Visited", "count": 100}]
	}`))

	// one step is not a funnel: the generic branch takes over
	assert.Equal(t, "100", out.PrimaryValue)
	assert.Equal(t, "Visited", out.SecondaryLabel)
	assert.Empty(t, out.Series)
}

func TestNormalizeRetention(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "RETENTION"},
		"result": [
			{"values": [{"count": 100}, {"count": 40}, {"count": 10}]},
			{"values": [{"count": 80}, {"count": 20}]}
		]
	}`))

	assert.Equal(t, model.TypeRetention, out.Type)
	assert.Equal(t, "40%", out.PrimaryValue)
	assert.Equal(t, "Day 1 retention", out.SecondaryLabel)

	require.Len(t, out.Series, 3)
	assert.Equal(t, model.Point{Label: "Day 0", Value: 100}, out.Series[0])
	assert.Equal(t, model.Point{Label: "Day 1", Value: 40}, out.Series[1])
	assert.Equal(t, model.Point{Label: "Day 2", Value: 10}, out.Series[2])
}

func TestNormalizeRetentionSingleValue(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "RETENTION"},
		"result": [{"values": [{"count": 2000}]}]
	}`))

	assert.Equal(t, "2K", out.PrimaryValue)
	assert.Equal(t, "Retained (Day 0)", out.SecondaryLabel)
}

func TestNormalizePaths(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "PATHS"},
		"result": [
			{"source": "/a", "target": "/b", "weight": 3},
			{"source": "/b", "target": "/c", "weight": 8},
			{"source": "/c", "target": "/d", "weight": 1},
			{"source": "/d", "target": "/e", "weight": 7},
			{"source": "/e", "target": "/f", "weight": 5},
			{"source": "/f", "target": "/g", "weight": 4},
			{"source": "/g", "target": "/h", "weight": 6},
			{"source": "/h", "target": "/i", "weight": 2},
			{"source": "/dangling", "target": "", "weight": 99}
		]
	}`))

	assert.Equal(t, model.TypePaths, out.Type)
	assert.Equal(t, "8", out.PrimaryValue)
	assert.Equal(t, "total paths", out.SecondaryLabel)

	require.Len(t, out.Series, 6)
	assert.Equal(t, "/b → /c", out.Series[0].Label)
	for i := 1; i < len(out.Series); i++ {
		assert.Less(t, out.Series[i].Value, out.Series[i-1].Value)
	}
}

func TestNormalizePathEdgeFallsBackToCount(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"filters": {"insight": "PATHS"},
		"result": [
			{"source": "/a", "target": "/b", "count": 4},
			{"source": "/b", "target": "/c", "count": 9}
		]
	}`))

	require.Len(t, out.Series, 2)
	assert.Equal(t, model.Point{Label: "/b → /c", Value: 9}, out.Series[0])
}

func TestResolveTypePrecedence(t *testing.T) {
	n := New()

	t.Run("filters beat the query source", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"filters": {"insight": "RETENTION"},
			"query": {"kind": "InsightVizNode", "source": {"kind": "FunnelsQuery"}},
			"result": []
		}`))
		assert.Equal(t, model.TypeRetention, out.Type)
	})

	t.Run("query source beats the query kind", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"query": {"kind": "PathsQuery", "source": {"kind": "LifecycleQuery"}},
			"result": []
		}`))
		assert.Equal(t, model.TypeLifecycle, out.Type)
	})

	t.Run("query kind matched by substring", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"query": {"kind": "StickinessQuery"},
			"result": []
		}`))
		assert.Equal(t, model.TypeStickiness, out.Type)
	})

	t.Run("unknown kinds default to trends", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"query": {"kind": "HogQLQuery"},
			"result": []
		}`))
		assert.Equal(t, model.TypeTrends, out.Type)
	})
}

func TestResolveDisplayPrecedence(t *testing.T) {
	n := New()

	t.Run("filters display wins", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"filters": {"insight": "TRENDS", "display": "ActionsBar"},
			"query": {"trendsFilter": {"display": "ActionsPie"}},
			"result": []
		}`))
		assert.Equal(t, "ActionsBar", out.Display)
	})

	t.Run("nested source trendsFilter is probed", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"query": {"kind": "InsightVizNode", "source": {"kind": "TrendsQuery", "trendsFilter": {"display": "BoldNumber"}}},
			"result": []
		}`))
		assert.Equal(t, "BoldNumber", out.Display)
	})

	t.Run("chartSettings is the last probe", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"query": {"kind": "TrendsQuery", "chartSettings": {"display": "ActionsAreaGraph"}},
			"result": []
		}`))
		assert.Equal(t, "ActionsAreaGraph", out.Display)
	})
}

func TestNormalizeUnwrapsEnvelope(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"insight": {
			"name": "Wrapped",
			"filters": {"insight": "TRENDS"},
			"result": [{"label": "views", "count": 7}]
		}
	}`))

	assert.Equal(t, "Wrapped", out.Title)
	assert.Equal(t, "7", out.PrimaryValue)
}

func TestNormalizeDashboard(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"name": "Growth dashboard",
		"tiles": [
			{"insight": {"name": "No results yet", "result": null}},
			{"text": "a text tile"},
			{"insight": {
				"name": "Active users",
				"filters": {"insight": "TRENDS", "display": "BoldNumber"},
				"result": [{"label": "users", "count": 4200}]
			}}
		]
	}`))

	assert.Equal(t, "Active users", out.Title)
	assert.Equal(t, "4.2K", out.PrimaryValue)
}

func TestNormalizeDashboardTileNotDecoded(t *testing.T) {
	n := New()

	// the qualifying tile carries filters of an impossible shape; the record
	// still names the dashboard it came from
	out := n.Normalize(payload(t, `{
		"name": "Growth dashboard",
		"tiles": [
			{"insight": {"name": "Broken", "filters": [1, 2], "result": [{"count": 1}]}}
		]
	}`))

	assert.Equal(t, "Growth dashboard", out.Title)
	assert.Equal(t, model.NoData, out.PrimaryValue)
}

func TestNormalizeDashboardWithoutQualifyingTiles(t *testing.T) {
	n := New()

	out := n.Normalize(payload(t, `{
		"name": "Empty dashboard",
		"tiles": [
			{"insight": {"name": "Pending", "result": null}},
			{"text": "note"}
		]
	}`))

	assert.Equal(t, "Empty dashboard", out.Title)
	assert.Equal(t, model.NoData, out.PrimaryValue)
	assert.Empty(t, out.Series)
}

func TestNormalizeResultLocations(t *testing.T) {
	n := New()

	t.Run("query_status results are probed", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"filters": {"insight": "TRENDS"},
			"query_status": {"results": [{"label": "views", "count": 11}]}
		}`))
		assert.Equal(t, "11", out.PrimaryValue)
	})

	t.Run("missing results keep the sentinel", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"name": "Still computing",
			"filters": {"insight": "TRENDS"}
		}`))
		assert.Equal(t, "Still computing", out.Title)
		assert.Equal(t, model.NoData, out.PrimaryValue)
	})

	t.Run("empty results resolve to zero", func(t *testing.T) {
		out := n.Normalize(payload(t, `{
			"filters": {"insight": "TRENDS"},
			"result": []
		}`))
		assert.Equal(t, "0", out.PrimaryValue)
	})
}

func TestNormalizeNonNumericAggregate(t *testing.T) {
	n := New()

	// a non-numeric count defeats the typed trends decode; the generic branch
	// passes the scalar through as its string form
	out := n.Normalize(payload(t, `{
		"name": "Uptime",
		"filters": {"insight": "TRENDS"},
		"result": [{"label": "status", "count": "n/a"}]
	}`))

	assert.Equal(t, "n/a", out.PrimaryValue)
	assert.Equal(t, "status", out.SecondaryLabel)
	assert.Empty(t, out.Series)
}

func TestNormalizeTitleFallbacks(t *testing.T) {
	n := New()

	t.Run("derived name", func(t *testing.T) {
		out := n.Normalize(payload(t, `{"derived_name": "Pageview count", "result": []}`))
		assert.Equal(t, "Pageview count", out.Title)
	})

	t.Run("default title", func(t *testing.T) {
		out := n.Normalize(payload(t, `{"result": []}`))
		assert.Equal(t, "Untitled insight", out.Title)
	})
}

func TestNormalizeHostileShapes(t *testing.T) {
	n := New()

	for name, doc := range map[string]string{
		"empty object":          `{}`,
		"result is a scalar":    `{"result": 42}`,
		"result is an object":   `{"result": {"count": 1}}`,
		"tiles are scalars":     `{"tiles": [1, "two", null]}`,
		"insight is a string":   `{"insight": "not a record"}`,
		"mixed result items":    `{"filters": {"insight": "TRENDS"}, "result": [null, 3, "x"]}`,
		"funnel of wrong shape": `{"filters": {"insight": "FUNNELS"}, "result": [[1], [2]]}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				out := n.Normalize(payload(t, doc))
				assert.NotEmpty(t, out.Title)
			})
		})
	}
}

func TestNormalizeIsIdempotentOnInput(t *testing.T) {
	n := New()
	raw := payload(t, `{
		"filters": {"insight": "TRENDS"},
		"result": [{"label": "views", "count": 5, "data": [1, 4], "labels": ["a", "b"]}]
	}`)

	first := n.Normalize(raw)
	second := n.Normalize(raw)

	assert.Equal(t, first, second)
}
