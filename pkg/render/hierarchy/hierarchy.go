// Package hierarchy renders the structure of a layout (periods, rows and
// overlap groups) as a Graphviz diagram.
//
//	dot := hierarchy.ToDOT(res, hierarchy.Options{})
//	svg, err := hierarchy.RenderSVG(ctx, dot)
package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/render/styles"
)

// Options configures hierarchy rendering.
type Options struct {
	// People adds one leaf per placed person under its group.
	People bool
	// LeftToRight lays ranks out horizontally instead of top to bottom.
	LeftToRight bool
}

// ToDOT converts a layout result to Graphviz DOT. Node ids are the period id,
// "period/row" and the group id, so they are stable across runs.
func ToDOT(res layout.Result, opts Options) string {
	rankdir := "TB"
	if opts.LeftToRight {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph timeline {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, b := range res.Blocks {
		colors := styles.ColorsFor(b.Period.ID).WithBase(b.Period.Color)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", b.Period.ID,
			fmt.Sprintf("%s\n%d–%d", b.Period.DisplayName(), b.Period.StartYear, b.Period.EndYear),
			colors.PeriodBackground)

		for _, row := range b.Rows {
			rowID := b.Period.ID + "/" + row.ID
			if row.Placeholder {
				fmt.Fprintf(&buf, "  %q [label=\"(empty)\", style=\"rounded,dashed\"];\n", rowID)
				fmt.Fprintf(&buf, "  %q -> %q;\n", b.Period.ID, rowID)
				continue
			}
			fmt.Fprintf(&buf, "  %q [label=%q];\n", rowID, fmt.Sprintf("%s (%d)", row.Label, rowPeople(row)))
			fmt.Fprintf(&buf, "  %q -> %q;\n", b.Period.ID, rowID)

			for _, g := range row.Groups {
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", g.ID, fmt.Sprintf("%s\n%d people", g.Label, len(g.Layouts)))
				fmt.Fprintf(&buf, "  %q -> %q;\n", rowID, g.ID)
				if !opts.People {
					continue
				}
				for _, pl := range g.Layouts {
					attrs := []string{fmt.Sprintf("label=%q", pl.Slug), "shape=plaintext", "style=\"\""}
					if pl.Range.Estimated {
						attrs = append(attrs, "fontcolor=grey40")
					}
					fmt.Fprintf(&buf, "  %q [%s];\n", "person/"+pl.Slug, strings.Join(attrs, ", "))
					fmt.Fprintf(&buf, "  %q -> %q;\n", g.ID, "person/"+pl.Slug)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rowPeople(r layout.Row) int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Layouts)
	}
	return n
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
