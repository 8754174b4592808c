package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/toldot/toldot/pkg/render/hierarchy"
	"github.com/toldot/toldot/pkg/render/sink"
	"github.com/toldot/toldot/pkg/timeline"
)

// DefaultPNGScale doubles the PNG resolution.
const DefaultPNGScale = 2.0

// Document assembles the sink input for a layout and the persons it places.
func Document(l Layout, people []timeline.Person, opts Options) sink.Document {
	return sink.Document{
		Title:   opts.Title,
		Layout:  l.Result,
		People:  people,
		Bounds:  l.Bounds,
		Ticks:   l.Ticks,
		YearToX: l.Projection(),
		Density: l.Density,
	}
}

// RenderFromLayout produces one artifact per requested format. It does no
// caching; see [Runner.RenderWithCacheInfo].
func RenderFromLayout(ctx context.Context, l Layout, people []timeline.Person, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	doc := Document(l, people, opts)
	svgOpts := svgOptions(opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(doc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, doc, sink.WithSVGOptions(svgOpts...), sink.WithScale(DefaultPNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, doc, sink.WithSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(doc,
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONLanguage(opts.Language),
				sink.WithJSONPlacements())
		case FormatText:
			data = sink.RenderText(doc, sink.WithColumns(opts.Columns), sink.WithTextLanguage(opts.Language))
		case FormatDOT:
			data = []byte(hierarchy.ToDOT(l.Result, hierarchy.Options{People: true}))
		default:
			return nil, ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	out := []sink.SVGOption{
		sink.WithStyle(sink.StyleByName(opts.Style, opts.Seed)),
		sink.WithLanguage(opts.Language),
	}
	if opts.Axis {
		out = append(out, sink.WithAxis())
	}
	if opts.Legend {
		out = append(out, sink.WithLegend())
	}
	if opts.Minimap {
		out = append(out, sink.WithMinimap())
	}
	if opts.PersonURL != "" {
		out = append(out, sink.WithPersonURL(PersonURLFunc(opts.PersonURL)))
	}
	return out
}

// PersonURLFunc expands "{slug}" in tmpl with the escaped person slug.
func PersonURLFunc(tmpl string) func(timeline.Person) string {
	return func(p timeline.Person) string {
		return strings.ReplaceAll(tmpl, "{slug}", url.PathEscape(p.Slug))
	}
}
