// Package render provides output renderers for regdash session reports.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkoosis/regdash/pkg/registry"
)

// Format names a report renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts text, markdown (or md) and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected text, markdown, json)", s)
}

// Snapshot is a point-in-time copy of a registry view.
type Snapshot struct {
	GeneratedAt time.Time
	Filter      registry.Filter
	Records     []registry.Record
	Stats       registry.Stats
}

// Capture copies the filtered view and overall stats out of reg.
func Capture(reg *registry.Registry, f registry.Filter, now time.Time) Snapshot {
	return Snapshot{
		GeneratedAt: now,
		Filter:      f,
		Records:     reg.FilteredView(f),
		Stats:       reg.Stats(),
	}
}

// Renderer converts a snapshot to formatted output.
type Renderer interface {
	Render(snap Snapshot) string
}

// New returns the renderer for format.
func New(format Format) (Renderer, error) {
	switch format {
	case FormatText:
		return NewText(), nil
	case FormatMarkdown:
		return NewMarkdown(), nil
	case FormatJSON:
		return NewJSON(), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// Write renders snap in format and writes it to w.
func Write(w io.Writer, format Format, snap Snapshot) error {
	r, err := New(format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, r.Render(snap)); err != nil {
		return fmt.Errorf("writing %s report: %w", format, err)
	}
	return nil
}

// totalsLine is shared by the text and markdown renderers.
func totalsLine(s registry.Stats, bold bool) string {
	label := func(name string) string {
		if bold {
			return "**" + name + "**"
		}
		return name
	}
	return fmt.Sprintf("%s %d · %s %d · %s %d · %s %d",
		label("total"), s.Total,
		label("pending"), s.Pending,
		label("pass"), s.Pass,
		label("fail"), s.Fail)
}

// oneLine collapses line breaks so a field fits in a single table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
