// Package sink writes a laid-out timeline to an output format.
//
// Every sink consumes a [Document]: the layout result plus what is needed to
// label it (persons, year bounds, axis ticks and the projection used to
// build the layout).
//
//	doc := sink.Document{Layout: res, People: people, Bounds: b, Ticks: ticks, YearToX: proj}
//	svg := sink.RenderSVG(doc, sink.WithAxis(), sink.WithLegend())
//	data, err := sink.RenderJSON(doc)
//
// [RenderPNG] and [RenderPDF] go through SVG and require rsvg-convert.
package sink
