package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/regdash/pkg/registry"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// Markdown renders a snapshot as a markdown document for pasting into
// tickets or release notes.
type Markdown struct {
	Heading string
}

// NewMarkdown creates a markdown renderer with the default heading.
func NewMarkdown() *Markdown {
	return &Markdown{Heading: "Regression run"}
}

// Render formats the snapshot as a heading, a table and a totals line.
func (m *Markdown) Render(snap Snapshot) string {
	var sb strings.Builder
	sb.WriteString("# " + m.Heading + "\n\n")
	sb.WriteString("Generated " + registry.FormatRunAt(snap.GeneratedAt) + " · filter: " + snap.Filter.String() + "\n\n")

	if len(snap.Records) == 0 {
		sb.WriteString("_No tests recorded._\n\n")
	} else {
		caser := cases.Title(language.English)
		sb.WriteString("| Status | Last run | Title | Expected result |\n")
		sb.WriteString("| --- | --- | --- | --- |\n")
		for _, rec := range snap.Records {
			sb.WriteString("| " + StatusLabel(caser, rec.Status) +
				" | " + registry.FormatRunAt(rec.LastRunAt) +
				" | " + cell(rec.Title) +
				" | " + cell(rec.ExpectedResult) + " |\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(totalsLine(snap.Stats, true) + "\n")
	return sb.String()
}

func cell(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}
