// Package insight normalizes heterogeneous analytics payloads into the one
// canonical record consumed by the renderers.
//
// The normalizer never fails: malformed or unexpected payload shapes degrade
// to safe defaults (empty series, the "—" sentinel) and are logged.
package insight

import (
	"log/slog"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

const defaultTitle = "Untitled insight"

// Normalizer maps raw analytics payloads to canonical [model.Insight] records.
//
// It holds no mutable state and is safe to share across concurrent requests.
type Normalizer struct {
	l *slog.Logger
}

// New builds a [Normalizer].
func New() *Normalizer {
	return &Normalizer{
		l: slog.Default().With(slog.String("module", "insight")),
	}
}

// Normalize maps one raw payload, either a single insight record or a
// dashboard with tiles, to a canonical record.
//
// It never returns an error: whatever could be resolved is kept, everything
// else stays at its sentinel default.
func (n *Normalizer) Normalize(raw map[string]any) (out model.Insight) {
	out = model.Empty(model.TypeTrends)

	defer func() {
		// extraction works on hostile shapes: a payload must never take the
		// render request down with it
		if r := recover(); r != nil {
			n.l.Warn("payload extraction aborted", slog.Any("cause", r))
		}
	}()

	working := unwrapEnvelope(raw)

	titleFallback := defaultTitle
	if tiles, isDashboard := working["tiles"].([]any); isDashboard {
		name, _ := working["name"].(string)
		if name != "" {
			titleFallback = name
		}

		tile, found := firstQualifyingTile(tiles)
		if !found {
			n.l.Warn("dashboard has no tile with results")
			out.Title = titleFallback

			return out
		}
		working = tile
	}

	var rec rawRecord
	if err := decode(working, &rec); err != nil {
		n.l.Warn("insight record not decoded", slog.String("error", err.Error()))
		out.Title = titleFallback

		return out
	}

	out.Title = titleOf(rec, titleFallback)
	out.Type = resolveType(rec)
	out.Display = resolveDisplay(rec)

	results, found := resolveResults(working)
	if !found {
		n.l.Warn("no result collection in payload",
			slog.String("type", out.Type.String()),
			slog.String("title", out.Title),
		)

		return out
	}

	n.extractSeries(&out, results)

	return out
}

// unwrapEnvelope follows a nested "insight" field when the payload carries one.
func unwrapEnvelope(raw map[string]any) map[string]any {
	if nested, ok := raw["insight"].(map[string]any); ok {
		return nested
	}

	return raw
}

// firstQualifyingTile returns the first dashboard tile whose nested insight
// has a non-null result.
func firstQualifyingTile(tiles []any) (map[string]any, bool) {
	for _, raw := range tiles {
		tile, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		nested, ok := tile["insight"].(map[string]any)
		if !ok {
			continue
		}
		if hasResult(nested) {
			return nested, true
		}
	}

	return nil, false
}

// titleOf probes the record name, then its derived name, then the fallback.
func titleOf(rec rawRecord, fallback string) string {
	if rec.Name != "" {
		return rec.Name
	}
	if rec.DerivedName != "" {
		return rec.DerivedName
	}

	return fallback
}
