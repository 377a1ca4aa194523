package insight

import (
	"github.com/go-viper/mapstructure/v2"
)

// decode maps a loosely typed payload fragment onto a typed raw shape,
// coercing scalars weakly (numbers may arrive as float64, int or string).
func decode(src, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}

	return dec.Decode(src)
}

// rawRecord is the typed view of a single insight record's metadata.
//
// A record carries either a legacy "filters" object, a modern "query" object,
// or both. Results stay untyped here: their shape depends on the insight type.
type rawRecord struct {
	Name        string      `mapstructure:"name"`
	DerivedName string      `mapstructure:"derived_name"`
	Filters     *rawFilters `mapstructure:"filters"`
	Query       *rawQuery   `mapstructure:"query"`
}

type rawFilters struct {
	Insight string `mapstructure:"insight"`
	Display string `mapstructure:"display"`
}

type rawQuery struct {
	Kind          string            `mapstructure:"kind"`
	Source        *rawQuerySource   `mapstructure:"source"`
	TrendsFilter  *rawDisplayHolder `mapstructure:"trendsFilter"`
	ChartSettings *rawDisplayHolder `mapstructure:"chartSettings"`
}

type rawQuerySource struct {
	Kind         string            `mapstructure:"kind"`
	TrendsFilter *rawDisplayHolder `mapstructure:"trendsFilter"`
}

type rawDisplayHolder struct {
	Display string `mapstructure:"display"`
}

// rawTrendsItem is one per-series object of a trends-like result.
type rawTrendsItem struct {
	Label  string    `mapstructure:"label"`
	Name   string    `mapstructure:"name"`
	Count  *float64  `mapstructure:"count"`
	Data   []float64 `mapstructure:"data"`
	Labels []string  `mapstructure:"labels"`
}

// displayLabel resolves the item caption, probing label then name.
func (it rawTrendsItem) displayLabel() string {
	if it.Label != "" {
		return it.Label
	}

	return it.Name
}

// value resolves the item's aggregate: its count when present, else the sum
// of its data points.
func (it rawTrendsItem) value() float64 {
	if it.Count != nil {
		return *it.Count
	}

	var sum float64
	for _, v := range it.Data {
		sum += v
	}

	return sum
}

type rawFunnelStep struct {
	Name       string   `mapstructure:"name"`
	CustomName string   `mapstructure:"custom_name"`
	Count      *float64 `mapstructure:"count"`
}

func (st rawFunnelStep) displayName() string {
	if st.CustomName != "" {
		return st.CustomName
	}

	return st.Name
}

func (st rawFunnelStep) count() float64 {
	if st.Count == nil {
		return 0
	}

	return *st.Count
}

type rawCohort struct {
	Values []rawCohortValue `mapstructure:"values"`
}

type rawCohortValue struct {
	Count *float64 `mapstructure:"count"`
}

func (v rawCohortValue) count() float64 {
	if v.Count == nil {
		return 0
	}

	return *v.Count
}

type rawPathEdge struct {
	Source string   `mapstructure:"source"`
	Target string   `mapstructure:"target"`
	Weight *float64 `mapstructure:"weight"`
	Count  *float64 `mapstructure:"count"`
}

// value resolves the edge magnitude, probing weight then count.
func (e rawPathEdge) value() float64 {
	if e.Weight != nil {
		return *e.Weight
	}
	if e.Count != nil {
		return *e.Count
	}

	return 0
}

// rawGenericItem is the minimal shape probed by the generic fallback branch.
//
// Its scalars stay untyped: the fallback handles shapes no other branch could
// make sense of, so a count may be anything, including a non-numeric string.
type rawGenericItem struct {
	Label           string `mapstructure:"label"`
	Name            string `mapstructure:"name"`
	Count           any    `mapstructure:"count"`
	AggregatedValue any    `mapstructure:"aggregated_value"`
}

func (it rawGenericItem) displayLabel() string {
	if it.Label != "" {
		return it.Label
	}

	return it.Name
}

// value resolves the item aggregate, probing count then aggregated_value.
func (it rawGenericItem) value() any {
	if it.Count != nil {
		return it.Count
	}
	if it.AggregatedValue != nil {
		return it.AggregatedValue
	}

	return 0
}
