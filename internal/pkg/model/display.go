package model

import "strings"

// DisplayClass is the closed set of chart families a display-variant hint
// resolves to. Classifying the free-form hint once keeps variant dispatch an
// explicit match instead of scattered substring checks.
type DisplayClass int

// Display classes, from most to least specific.
const (
	DisplayDefault DisplayClass = iota
	DisplayBigNumber
	DisplayPie
	DisplayBar
	DisplayArea
)

// String returns a short name for the display class.
func (c DisplayClass) String() string {
	switch c {
	case DisplayBigNumber:
		return "big number"
	case DisplayPie:
		return "pie"
	case DisplayBar:
		return "bar"
	case DisplayArea:
		return "area"
	default:
		return "default"
	}
}

// ClassifyDisplay maps a raw display-variant hint (e.g. "BoldNumber",
// "ActionsPie", "ActionsBarValue", "big number") to its [DisplayClass].
// An empty or unrecognized hint means "use the type's default renderer".
func ClassifyDisplay(display string) DisplayClass {
	hint := strings.ToLower(display)

	switch {
	case strings.Contains(hint, "boldnumber"), strings.Contains(hint, "big number"):
		return DisplayBigNumber
	case strings.Contains(hint, "pie"):
		return DisplayPie
	case strings.Contains(hint, "bar"):
		return DisplayBar
	case strings.Contains(hint, "area"):
		return DisplayArea
	default:
		return DisplayDefault
	}
}
