package sink

import (
	"context"

	"github.com/toldot/toldot/pkg/render"
)

// RasterOption configures PNG and PDF output.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithSVGOptions passes options to the SVG pass that precedes conversion.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// WithScale sets the PNG zoom factor. PDF output ignores it.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

func newRaster(opts []RasterOption) rasterRenderer {
	r := rasterRenderer{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPNG renders the SVG and rasterizes it with rsvg-convert.
func RenderPNG(ctx context.Context, doc Document, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPNG(ctx, RenderSVG(doc, r.svgOpts...), r.scale)
}

// RenderPDF renders the SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, doc Document, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPDF(ctx, RenderSVG(doc, r.svgOpts...))
}
