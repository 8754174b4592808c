package sink

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/toldot/toldot/pkg/bounds"
)

// TextOption configures [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	columns int
	lang    string
}

// WithColumns sets the width of the year gauge drawn next to each person.
// Zero disables the gauge.
func WithColumns(n int) TextOption { return func(r *textRenderer) { r.columns = max(0, n) } }

// WithTextLanguage picks the name language.
func WithTextLanguage(lang string) TextOption { return func(r *textRenderer) { r.lang = lang } }

const nameWidth = 28

// RenderText writes an indented outline of blocks, rows, groups and persons
// for terminals and logs.
func RenderText(doc Document, opts ...TextOption) []byte {
	r := textRenderer{columns: 40, lang: "ru"}
	for _, opt := range opts {
		opt(&r)
	}
	people := doc.peopleBySlug()

	var buf bytes.Buffer
	if doc.Title != "" {
		fmt.Fprintf(&buf, "%s\n\n", doc.Title)
	}
	for _, b := range doc.Layout.Blocks {
		fmt.Fprintf(&buf, "%s (%s–%s)\n", periodLabel(b.Period, r.lang),
			formatYear(b.Period.StartYear), formatYear(b.Period.EndYear))
		for _, row := range b.Rows {
			if row.Placeholder {
				buf.WriteString("  (empty)\n")
				continue
			}
			fmt.Fprintf(&buf, "  %s\n", row.Label)
			for _, g := range row.Groups {
				fmt.Fprintf(&buf, "    [%s]\n", g.Label)
				for _, pl := range g.Layouts {
					name := personLabel(people[pl.Slug], pl.Slug, r.lang)
					line := fmt.Sprintf("      %s %-16s", padRight(name, nameWidth), yearSpan(pl.Range))
					if r.columns > 0 {
						line += " " + gauge(pl.Range.Start, pl.Range.End, doc.Bounds, r.columns)
					}
					buf.WriteString(strings.TrimRight(line, " ") + "\n")
				}
			}
		}
		buf.WriteString("\n")
	}
	if len(doc.Layout.Dropped) > 0 {
		fmt.Fprintf(&buf, "not placed (unknown period): %s\n", strings.Join(doc.Layout.Dropped, ", "))
	}
	return buf.Bytes()
}

func padRight(s string, n int) string {
	c := utf8.RuneCountInString(s)
	if c >= n {
		return string([]rune(s)[:n])
	}
	return s + strings.Repeat(" ", n-c)
}

// gauge draws start..end as a bar of '=' inside a columns-wide track
// spanning b.
func gauge(start, end int, b bounds.Bounds, columns int) string {
	span := b.Span()
	if span <= 0 {
		return ""
	}
	col := func(y int) int {
		c := (y - b.MinYear) * columns / span
		return min(columns-1, max(0, c))
	}
	lo, hi := col(start), col(end)
	return "|" + strings.Repeat(" ", lo) + strings.Repeat("=", hi-lo+1) + strings.Repeat(" ", columns-1-hi) + "|"
}
