package chart

import "math"

// axis holds the "nice" tick values and ceiling computed for a Y axis.
type axis struct {
	Ticks   []float64
	AxisMax float64
}

// niceStepMultipliers is the ladder of human-friendly step multipliers,
// applied to the decimal magnitude of the raw maximum.
var niceStepMultipliers = []float64{1, 2, 2.5, 5, 10}

// niceAxis computes tick values and an axis ceiling from a raw series maximum.
// Tick values are rounded to the nearest integer.
//
// A non-positive maximum yields a single zero tick with an axis ceiling of 1,
// so renderers never divide by zero.
func niceAxis(rawMax float64) axis {
	if rawMax <= 0 {
		return axis{Ticks: []float64{0}, AxisMax: 1}
	}

	roughStep := rawMax / 4
	magnitude := math.Pow(10, math.Floor(math.Log10(roughStep)))

	step := niceStepMultipliers[len(niceStepMultipliers)-1] * magnitude
	for _, multiplier := range niceStepMultipliers {
		if multiplier*magnitude >= roughStep {
			step = multiplier * magnitude

			break
		}
	}

	axisMax := math.Ceil(rawMax/step) * step

	var ticks []float64
	for tick := 0.0; tick <= axisMax+step/2; tick += step {
		ticks = append(ticks, math.Round(tick))
	}

	return axis{Ticks: ticks, AxisMax: axisMax}
}
