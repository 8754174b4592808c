// Package handdrawn provides a sketchy timeline style: wobbly outlines,
// slightly tilted labels and a handwriting font. Output is deterministic for
// a given seed.
package handdrawn

import (
	"bytes"
	"fmt"

	"github.com/toldot/toldot/pkg/render/styles"
)

const (
	fontFamily = "'xkcd Script', 'Comic Neue', 'Comic Sans MS', cursive"
	strokeInk  = "#2b2b2b"
	maxWobble  = 2.5
)

// HandDrawn is a seeded sketch style.
type HandDrawn struct {
	seed uint64
}

// New returns a HandDrawn style. The same seed always draws the same shapes.
func New(seed uint64) *HandDrawn {
	return &HandDrawn{seed: seed}
}

func (h *HandDrawn) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="pencil" x="-5%" y="-5%" width="110%" height="110%">` + "\n")
	buf.WriteString(`      <feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" result="noise"/>` + "\n")
	buf.WriteString(`      <feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5"/>` + "\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString(`    <pattern id="estimatedHatch" width="6" height="6" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">` + "\n")
	buf.WriteString(`      <line x1="0" y1="0" x2="0" y2="6" stroke="white" stroke-width="2" opacity="0.5"/>` + "\n")
	buf.WriteString("    </pattern>\n")
	buf.WriteString("  </defs>\n")
}

func (h *HandDrawn) RenderPeriod(buf *bytes.Buffer, p styles.Period) {
	fmt.Fprintf(buf, `  <g class="period" id="period-%s">`+"\n", styles.EscapeXML(p.ID))
	fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="%s" stroke-width="2" opacity="0.7" filter="url(#pencil)"/>`+"\n",
		wobbledRect(p.X, p.Y, p.W, p.H, h.seed, p.ID), p.Colors.PeriodBackground, p.Colors.PeriodBorder)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="16" fill="%s" transform="rotate(%.2f %.2f %.2f)">%s</text>`+"\n",
		p.X+12, p.Y+26, fontFamily, strokeInk, rotationFor(p.ID, p.W, p.H), p.X+12, p.Y+26, styles.EscapeXML(p.Label))
	buf.WriteString("  </g>\n")
}

func (h *HandDrawn) RenderGroup(buf *bytes.Buffer, g styles.Group) {
	fmt.Fprintf(buf, `  <path class="group" d="%s" fill="none" stroke="%s" stroke-dasharray="5 4"/>`+"\n",
		wobbledRect(g.X, g.Y, g.W, g.H, h.seed, g.ID), g.Colors.PeriodBorder)
	fmt.Fprintf(buf, `  <text class="group-label" x="%.2f" y="%.2f" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
		g.X+6, g.Y+15, fontFamily, g.Colors.Text.Dimmed, styles.EscapeXML(g.Label))
}

func (h *HandDrawn) RenderBar(buf *bytes.Buffer, b styles.Bar) {
	styles.WrapURL(buf, b.URL, func() {
		path := wobbledRect(b.X, b.Y, b.W, b.H, h.seed, b.ID)
		dash := ""
		if b.Estimated {
			dash = ` stroke-dasharray="7 5"`
		}
		fmt.Fprintf(buf, `  <path id="person-%s" class="person" d="%s" fill="%s" stroke="%s" stroke-width="2"%s>`,
			styles.EscapeXML(b.ID), path, b.Colors.BarFill(b.Estimated, b.Verified), strokeInk, dash)
		styles.WriteTitle(buf, b.Title)
		buf.WriteString("</path>\n")
		if b.Estimated {
			fmt.Fprintf(buf, `  <path d="%s" fill="url(#estimatedHatch)" pointer-events="none"/>`+"\n", path)
		}
	})
}

func (h *HandDrawn) RenderText(buf *bytes.Buffer, b styles.Bar) {
	size := styles.FontSize(b)
	label := styles.TruncateLabel(b.Label, b.W, size)
	x, y := b.X+8, b.Y+b.H/2
	fmt.Fprintf(buf, `  <text class="person-label" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" dominant-baseline="middle" fill="%s" pointer-events="none" transform="rotate(%.2f %.2f %.2f)">%s</text>`+"\n",
		x, y, fontFamily, size, strokeInk, rotationFor(b.ID, b.W, b.H)/2, x, y, styles.EscapeXML(label))
}
