// Package render turns a timeline layout into images.
//
// # Overview
//
//   - [sink]: output formats (SVG, JSON, plain text, PNG, PDF)
//   - [styles]: period colours and the visual styles used by the SVG sink
//   - [hierarchy]: a Graphviz diagram of the period, row and group structure
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(doc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
package render
