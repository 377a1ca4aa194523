package chart

import (
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Compact formats a number in compact human-readable form: values of one
// million and above are scaled with an "M" suffix, values of one thousand and
// above with a "K" suffix, anything below is an integer string.
//
// Scaled values show one decimal place unless they are an exact integer.
// A scaled value of exactly 1 keeps its decimal ("1.0K", never a bare "1K").
func Compact(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "0"
	case v >= 1e6:
		return scaled(v/1e6) + "M"
	case v >= 1e3:
		return scaled(v/1e3) + "K"
	default:
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
}

// CompactAny formats like [Compact] for anything coercible to a number.
// Non-numeric input passes through as its string form.
func CompactAny(v any) string {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return cast.ToString(v)
	}

	return Compact(f)
}

func scaled(v float64) string {
	if v == math.Trunc(v) && v != 1 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}
