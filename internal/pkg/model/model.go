package model

import "math"

// NoData is the sentinel displayed when an insight carries no usable value.
const NoData = "—"

// Insight is the canonical, renderer-agnostic representation of one analytics insight.
//
// An [Insight] is built once per render request by the normalizer and never persisted:
// it has no identity beyond the current call and is not mutated after construction.
type Insight struct {
	Title          string
	Type           Type
	Display        string
	PrimaryValue   string
	SecondaryLabel string
	Series         []Point
}

// Empty returns a canonical record with sentinel values, used when nothing
// usable could be extracted from a payload.
func Empty(typ Type) Insight {
	return Insight{
		Title:        "Untitled insight",
		Type:         typ,
		PrimaryValue: NoData,
	}
}

// HasSeries reports whether the insight carries at least n data points.
func (i Insight) HasSeries(n int) bool {
	return len(i.Series) >= n
}

// Point is a single labelled data point of an insight series.
//
// The position of a point in [Insight.Series] is semantically meaningful:
// chronological for time series, ranked for paths and funnels, ranked by
// magnitude for pie slices.
type Point struct {
	Label string
	Value float64
}

// NewPoint builds a data point, normalizing non-finite values to zero.
func NewPoint(label string, value float64) Point {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	return Point{Label: label, Value: value}
}

// MaxValue returns the largest point value in the series, or zero for an empty series.
func MaxValue(series []Point) float64 {
	var maxValue float64
	for _, p := range series {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	return maxValue
}

// Total returns the sum of all point values in the series.
func Total(series []Point) float64 {
	var total float64
	for _, p := range series {
		total += p.Value
	}

	return total
}

// ScreenSet carries the rendered markup duplicated across the four named layout
// slots understood by the display device, plus the refresh interval in seconds.
//
// The core performs no per-slot layout variation: every slot receives the same
// fragment and the device scales it to the slot.
type ScreenSet struct {
	Full           string `json:"markup"`
	HalfHorizontal string `json:"markup_half_horizontal"`
	HalfVertical   string `json:"markup_half_vertical"`
	Quadrant       string `json:"markup_quadrant"`
	RefreshSeconds int    `json:"refresh_interval"`
}

// NewScreenSet replicates one markup fragment across all four layout slots.
func NewScreenSet(markup string, refreshSeconds int) ScreenSet {
	return ScreenSet{
		Full:           markup,
		HalfHorizontal: markup,
		HalfVertical:   markup,
		Quadrant:       markup,
		RefreshSeconds: refreshSeconds,
	}
}
