package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestEmpty(t *testing.T) {
	in := Empty(TypeFunnel)

	assert.Equal(t, "Untitled insight", in.Title)
	assert.Equal(t, TypeFunnel, in.Type)
	assert.Equal(t, NoData, in.PrimaryValue)
	assert.Empty(t, in.Series)
}

func TestHasSeries(t *testing.T) {
	in := Insight{Series: []Point{{Value: 1}, {Value: 2}}}

	assert.True(t, in.HasSeries(1))
	assert.True(t, in.HasSeries(2))
	assert.False(t, in.HasSeries(3))
	assert.False(t, Insight{}.HasSeries(1))
}

func TestNewPointNormalizesNonFinite(t *testing.T) {
	assert.Equal(t, Point{Label: "a", Value: 3}, NewPoint("a", 3))
	assert.Equal(t, 0.0, NewPoint("nan", math.NaN()).Value)
	assert.Equal(t, 0.0, NewPoint("inf", math.Inf(1)).Value)
	assert.Equal(t, 0.0, NewPoint("-inf", math.Inf(-1)).Value)
}

func TestSeriesAggregates(t *testing.T) {
	series := []Point{{Value: 3}, {Value: 10}, {Value: 7}}

	assert.Equal(t, 10.0, MaxValue(series))
	assert.Equal(t, 20.0, Total(series))

	assert.Equal(t, 0.0, MaxValue(nil))
	assert.Equal(t, 0.0, Total(nil))
}

func TestScreenSetJSONShape(t *testing.T) {
	set := NewScreenSet("<div>markup</div>", 900)

	out, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	for _, key := range []string{"markup", "markup_half_horizontal", "markup_half_vertical", "markup_quadrant"} {
		assert.Equal(t, "<div>markup</div>", decoded[key], key)
	}
	assert.Equal(t, 900.0, decoded["refresh_interval"])
}

func TestTypes(t *testing.T) {
	for _, typ := range AllTypes() {
		assert.True(t, typ.IsValid(), typ)
		assert.NotEmpty(t, typ.String())
	}
	assert.False(t, Type("sql").IsValid())

	assert.Equal(t, "Funnel", TypeFunnel.Title())
	assert.Equal(t, "Trends", TypeTrends.Title())
}

func TestTrendsLike(t *testing.T) {
	assert.True(t, TypeTrends.TrendsLike())
	assert.True(t, TypeLifecycle.TrendsLike())
	assert.True(t, TypeStickiness.TrendsLike())
	assert.False(t, TypeFunnel.TrendsLike())
	assert.False(t, TypeRetention.TrendsLike())
	assert.False(t, TypePaths.TrendsLike())
}

func TestClassifyDisplay(t *testing.T) {
	for _, tc := range []struct {
		display  string
		expected DisplayClass
	}{
		{"", DisplayDefault},
		{"ActionsLineGraph", DisplayDefault},
		{"BoldNumber", DisplayBigNumber},
		{"big number", DisplayBigNumber},
		{"ActionsPie", DisplayPie},
		{"PIE", DisplayPie},
		{"ActionsBar", DisplayBar},
		{"ActionsBarValue", DisplayBar},
		{"ActionsAreaGraph", DisplayArea},
		{"WorldMap", DisplayDefault},
	} {
		assert.Equal(t, tc.expected, ClassifyDisplay(tc.display), "display=%q", tc.display)
	}
}

func TestDisplayClassString(t *testing.T) {
	assert.Equal(t, "big number", DisplayBigNumber.String())
	assert.Equal(t, "pie", DisplayPie.String())
	assert.Equal(t, "bar", DisplayBar.String())
	assert.Equal(t, "area", DisplayArea.String())
	assert.Equal(t, "default", DisplayDefault.String())
}
