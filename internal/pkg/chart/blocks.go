package chart

import (
	"fmt"
	"strings"

	"github.com/epdtools/insightviz/internal/pkg/model"
)

// bigNumber renders the centered giant numeral with an optional caption.
func (s *Screen) bigNumber(primary, caption string) string {
	var b strings.Builder

	b.WriteString(`<div style="flex:1;display:flex;flex-direction:column;align-items:center;justify-content:center;">`)
	fmt.Fprintf(&b, `<div style="font-size:96px;font-weight:700;line-height:1;">%s</div>`, escape(primary))
	if caption != "" {
		fmt.Fprintf(&b, `<div style="font-size:22px;margin-top:10px;opacity:0.6;">%s</div>`, escape(caption))
	}
	b.WriteString(`</div>`)

	return b.String()
}

// rankedList renders zebra-striped rows with rank index, truncated label and
// right-aligned compact value, under a header caption. Requires at least 1 entry.
func (s *Screen) rankedList(series []model.Point, caption string) string {
	if len(series) == 0 {
		return s.emptyState()
	}

	var b strings.Builder

	b.WriteString(`<div style="flex:1;display:flex;flex-direction:column;min-height:0;">`)
	fmt.Fprintf(&b, `<div style="font-size:14px;opacity:0.6;margin-bottom:4px;">%s</div>`, escape(caption))

	rows := min(len(series), s.MaxListEntries)
	for i := range rows {
		p := series[i]
		background := "transparent"
		if i%2 == 1 {
			background = "#eee"
		}
		fmt.Fprintf(&b, `<div style="display:flex;align-items:center;padding:6px 8px;background:%s;font-size:16px;">
<div style="width:28px;font-weight:700;">%d</div>
<div style="flex:1;white-space:nowrap;overflow:hidden;">%s</div>
<div style="font-weight:600;">%s</div>
</div>`,
			background, i+1, escape(s.truncateLabel(p.Label)), Compact(p.Value))
	}
	b.WriteString(`</div>`)

	return b.String()
}

// emptyState renders the centered placeholder used whenever a renderer's
// minimum-data gate is not met.
func (s *Screen) emptyState() string {
	return `<div style="flex:1;display:flex;align-items:center;justify-content:center;font-size:20px;opacity:0.5;">No data to display</div>`
}

// truncateLabel cuts a label at the configured rune budget with an ellipsis.
func (s *Screen) truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= s.MaxLabelRunes {
		return label
	}

	return string(runes[:s.MaxLabelRunes-1]) + "…"
}
