package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/regdash/pkg/registry"
)

const columnGap = "  "

// Text renders a snapshot as aligned plain text with no ANSI codes.
type Text struct{}

// NewText creates a plain text renderer.
func NewText() *Text {
	return &Text{}
}

// Render formats the snapshot as a table followed by a totals line.
func (t *Text) Render(snap Snapshot) string {
	var sb strings.Builder
	if len(snap.Records) == 0 {
		sb.WriteString("no tests recorded (filter: " + snap.Filter.String() + ")\n")
	} else {
		writeTable(&sb, snap.Records)
	}
	sb.WriteString("\n")
	sb.WriteString("filter " + snap.Filter.String() + " · " + totalsLine(snap.Stats, false) + "\n")
	return sb.String()
}

func writeTable(sb *strings.Builder, records []registry.Record) {
	caser := cases.Title(language.English)
	rows := make([][3]string, 0, len(records)+1)
	rows = append(rows, [3]string{"STATUS", "LAST RUN", "TITLE"})
	for _, rec := range records {
		rows = append(rows, [3]string{
			StatusLabel(caser, rec.Status),
			registry.FormatRunAt(rec.LastRunAt),
			oneLine(rec.Title),
		})
	}

	var widths [2]int
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	for _, row := range rows {
		sb.WriteString(runewidth.FillRight(row[0], widths[0]))
		sb.WriteString(columnGap)
		sb.WriteString(runewidth.FillRight(row[1], widths[1]))
		sb.WriteString(columnGap)
		sb.WriteString(row[2])
		sb.WriteString("\n")
	}
}

// StatusLabel returns the title-cased status name, e.g. "Pending".
func StatusLabel(caser cases.Caser, s registry.Status) string {
	return caser.String(s.String())
}
