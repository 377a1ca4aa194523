package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies the kind of analytics query behind an insight.
type Type string

// Known insight types. Unrecognized payloads resolve to [TypeTrends].
const (
	TypeTrends     Type = "trends"
	TypeFunnel     Type = "funnel"
	TypeRetention  Type = "retention"
	TypePaths      Type = "paths"
	TypeLifecycle  Type = "lifecycle"
	TypeStickiness Type = "stickiness"
)

// String returns the insight type as a plain string.
func (t Type) String() string {
	return string(t)
}

// Title returns the insight type as a capitalized display word (e.g. "Funnel").
func (t Type) Title() string {
	caser := cases.Title(language.English, cases.NoLower) // the caser is stateful: cannot declare it globally

	return caser.String(string(t))
}

// IsValid reports whether the type is one of the six known insight kinds.
func (t Type) IsValid() bool {
	switch t {
	case TypeTrends, TypeFunnel, TypeRetention, TypePaths, TypeLifecycle, TypeStickiness:
		return true
	default:
		return false
	}
}

// AllTypes returns all known insight types.
func AllTypes() []Type {
	return []Type{
		TypeTrends,
		TypeFunnel,
		TypeRetention,
		TypePaths,
		TypeLifecycle,
		TypeStickiness,
	}
}

// TrendsLike reports whether the type shares the trends series shape
// (per-series objects with data and labels arrays).
func (t Type) TrendsLike() bool {
	switch t {
	case TypeTrends, TypeLifecycle, TypeStickiness:
		return true
	default:
		return false
	}
}
