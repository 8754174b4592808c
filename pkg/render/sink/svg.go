package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/render/styles"
	"github.com/toldot/toldot/pkg/timeline"
)

// Chrome sizes in pixels.
const (
	Margin          = 24.0
	TitleHeight     = 36.0
	AxisHeight      = 40.0
	LegendRowHeight = 20.0
	MinimapHeight   = 48.0
)

const personInteractionCSS = `
    .person { transition: stroke-width 0.15s ease, opacity 0.15s ease; cursor: pointer; }
    .person:hover { stroke-width: 3; }
    .axis-label, .legend-label, .row-label { font-family: system-ui, sans-serif; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	axis    bool
	legend  bool
	minimap bool
	lang    string
	urlFn   func(timeline.Person) string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithAxis() SVGOption                { return func(r *svgRenderer) { r.axis = true } }
func WithLegend() SVGOption              { return func(r *svgRenderer) { r.legend = true } }
func WithMinimap() SVGOption             { return func(r *svgRenderer) { r.minimap = true } }

// WithLanguage picks the name language: "ru" (default), "en" or "he".
func WithLanguage(lang string) SVGOption { return func(r *svgRenderer) { r.lang = lang } }

// WithPersonURL links each bar to the URL returned by fn. Empty URLs are
// not linked.
func WithPersonURL(fn func(timeline.Person) string) SVGOption {
	return func(r *svgRenderer) { r.urlFn = fn }
}

// RenderSVG draws the document as a standalone SVG.
func RenderSVG(doc Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	proj := doc.projection()

	contentW, contentH := doc.Layout.Size()
	if doc.Bounds.Span() > 0 {
		contentW = math.Max(contentW, proj(doc.Bounds.MaxYear))
	}
	width := contentW + Margin

	top := Margin / 2
	if doc.Title != "" {
		top += TitleHeight
	}
	axisY := top
	if r.axis {
		top += AxisHeight
	}
	bottom := top + contentH + Margin/2
	legendY := bottom
	if r.legend {
		bottom += legendHeight(len(doc.Layout.Blocks))
	}
	minimapY := bottom
	if r.minimap {
		bottom += MinimapHeight
	}
	height := bottom + Margin/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	r.style.RenderDefs(&buf)
	if doc.Title != "" {
		fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="system-ui, sans-serif" font-size="20" font-weight="700" fill="#222">%s</text>`+"\n",
			Margin/2, Margin/2+TitleHeight*0.7, styles.EscapeXML(doc.Title))
	}
	if r.axis {
		renderAxis(&buf, doc.Ticks, proj, axisY, top+contentH)
	}

	fmt.Fprintf(&buf, `  <g class="content" transform="translate(0 %.2f)">`+"\n", top)
	r.renderContent(&buf, doc)
	buf.WriteString("  </g>\n")

	if r.legend {
		renderLegend(&buf, doc.Layout.Blocks, legendY, r.lang)
	}
	if r.minimap {
		renderMinimap(&buf, doc.Density, doc.Bounds, proj, minimapY)
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", personInteractionCSS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, lang: "ru"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderContent(buf *bytes.Buffer, doc Document) {
	people := doc.peopleBySlug()
	var bars []styles.Bar

	for _, b := range doc.Layout.Blocks {
		colors := styles.ColorsFor(b.Period.ID).WithBase(b.Period.Color)
		r.style.RenderPeriod(buf, styles.Period{
			ID:     b.Period.ID,
			Label:  periodLabel(b.Period, r.lang),
			X:      b.X,
			Y:      b.Y,
			W:      b.Width,
			H:      b.Height,
			Colors: colors,
		})

		for _, row := range b.Rows {
			rowTop := b.Y + row.Y
			if row.Label != "" {
				fmt.Fprintf(buf, `  <text class="row-label" x="%.2f" y="%.2f" font-size="11" font-weight="600" fill="%s">%s</text>`+"\n",
					b.X+12, rowTop-8, colors.Text.OnBackground, styles.EscapeXML(row.Label))
			}
			for _, g := range row.Groups {
				gx, gw := groupExtent(g, b)
				r.style.RenderGroup(buf, styles.Group{
					ID:     g.ID,
					Label:  g.Label,
					X:      gx,
					Y:      rowTop + g.Y,
					W:      gw,
					H:      g.Height,
					Colors: colors,
				})
				for _, pl := range g.Layouts {
					p := people[pl.Slug]
					label := personLabel(p, pl.Slug, r.lang)
					bar := styles.Bar{
						ID:        pl.Slug,
						Label:     label,
						Title:     fmt.Sprintf("%s (%s)", label, yearSpan(pl.Range)),
						X:         pl.X,
						Y:         rowTop + g.Y + pl.Y,
						W:         pl.Width,
						H:         pl.Height,
						Estimated: pl.Range.Estimated,
						Verified:  p.Verified,
						Colors:    colors.WithBase(p.Color),
					}
					if r.urlFn != nil && p.Slug != "" {
						bar.URL = r.urlFn(p)
					}
					bars = append(bars, bar)
				}
			}
		}
	}

	for _, b := range bars {
		r.style.RenderBar(buf, b)
	}
	for _, b := range bars {
		r.style.RenderText(buf, b)
	}
}

// groupExtent spans every bar of g, padded a little, and never narrower
// than the bars themselves.
func groupExtent(g layout.Group, b layout.PeriodBlock) (x, w float64) {
	left, right := math.Inf(1), math.Inf(-1)
	for _, pl := range g.Layouts {
		left = math.Min(left, pl.X)
		right = math.Max(right, pl.X+pl.Width)
	}
	if math.IsInf(left, 1) {
		return b.X, b.Width
	}
	const pad = 4.0
	return left - pad, right - left + 2*pad
}

func renderAxis(buf *bytes.Buffer, ticks []int, proj layout.Projection, y, gridBottom float64) {
	baseline := y + AxisHeight - 8
	buf.WriteString(`  <g class="axis">` + "\n")
	if len(ticks) > 0 {
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#888" stroke-width="1"/>`+"\n",
			proj(ticks[0]), baseline, proj(ticks[len(ticks)-1]), baseline)
	}
	for _, t := range ticks {
		x := proj(t)
		if !bounds.IsMajor(t) {
			fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#bbb"/>`+"\n", x, baseline-4, x, baseline)
			continue
		}
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#666"/>`+"\n", x, baseline-10, x, baseline)
		fmt.Fprintf(buf, `    <line class="grid" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#eee" stroke-dasharray="2 4"/>`+"\n",
			x, baseline, x, gridBottom)
		fmt.Fprintf(buf, `    <text class="axis-label" x="%.2f" y="%.2f" font-size="11" text-anchor="middle" fill="#555">%s</text>`+"\n",
			x, baseline-14, formatYear(t))
	}
	buf.WriteString("  </g>\n")
}

func legendHeight(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*LegendRowHeight + Margin/2
}

func renderLegend(buf *bytes.Buffer, blocks []layout.PeriodBlock, y float64, lang string) {
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, b := range blocks {
		colors := styles.ColorsFor(b.Period.ID).WithBase(b.Period.Color)
		rowY := y + Margin/2 + float64(i)*LegendRowHeight
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="14" height="14" rx="3" fill="%s"/>`+"\n", Margin/2, rowY, colors.PeriodBase)
		fmt.Fprintf(buf, `    <text class="legend-label" x="%.2f" y="%.2f" font-size="12" fill="#333">%s (%s–%s)</text>`+"\n",
			Margin/2+22, rowY+11, styles.EscapeXML(periodLabel(b.Period, lang)),
			formatYear(b.Period.StartYear), formatYear(b.Period.EndYear))
	}
	buf.WriteString("  </g>\n")
}

func renderMinimap(buf *bytes.Buffer, density []float64, b bounds.Bounds, proj layout.Projection, y float64) {
	if len(density) == 0 || b.Span() <= 0 {
		return
	}
	left, right := proj(b.MinYear), proj(b.MaxYear)
	stripH := MinimapHeight - 12
	binW := (right - left) / float64(len(density))

	buf.WriteString(`  <g class="minimap">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#f5f5f5" stroke="#ddd"/>`+"\n",
		left, y, right-left, stripH)
	for i, v := range density {
		if v <= 0 {
			continue
		}
		h := v * stripH
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#6b7cff" opacity="0.7"/>`+"\n",
			left+float64(i)*binW, y+stripH-h, math.Max(binW-0.5, 0.5), h)
	}
	buf.WriteString("  </g>\n")
}
