package styles

import (
	"bytes"
	"fmt"
)

const fontFamily = "system-ui, -apple-system, 'Segoe UI', sans-serif"

// Simple is a flat style with solid bars and thin borders.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderPeriod(buf *bytes.Buffer, p Period) {
	fmt.Fprintf(buf, `  <g class="period" id="period-%s">`+"\n", EscapeXML(p.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" opacity="0.6"/>`+"\n",
		p.X, p.Y, p.W, p.H, p.Colors.PeriodBackground)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="3" opacity="0.8"/>`+"\n",
		p.X, p.Y, p.X, p.Y+p.H, p.Colors.PeriodBorder)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" opacity="0.5"/>`+"\n",
		p.X+p.W, p.Y, p.X+p.W, p.Y+p.H, p.Colors.PeriodBorder)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="13" font-weight="600" fill="%s">%s</text>`+"\n",
		p.X+12, p.Y+24, fontFamily, p.Colors.Text.OnBackground, EscapeXML(p.Label))
	buf.WriteString("  </g>\n")
}

func (Simple) RenderGroup(buf *bytes.Buffer, g Group) {
	fmt.Fprintf(buf, `  <rect class="group" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-dasharray="4 3" rx="4"/>`+"\n",
		g.X, g.Y, g.W, g.H, g.Colors.PeriodBorder)
	fmt.Fprintf(buf, `  <text class="group-label" x="%.2f" y="%.2f" font-family="%s" font-size="10" fill="%s">%s</text>`+"\n",
		g.X+6, g.Y+15, fontFamily, g.Colors.Text.Dimmed, EscapeXML(g.Label))
}

func (Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	WrapURL(buf, b.URL, func() {
		dash := ""
		if b.Estimated {
			dash = ` stroke-dasharray="6 4"`
		}
		fmt.Fprintf(buf, `  <rect id="person-%s" class="person" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"%s>`,
			EscapeXML(b.ID), b.X, b.Y, b.W, b.H, b.Colors.BarFill(b.Estimated, b.Verified), b.Colors.PeriodBorder, dash)
		WriteTitle(buf, b.Title)
		buf.WriteString("</rect>\n")
	})
}

func (Simple) RenderText(buf *bytes.Buffer, b Bar) {
	size := FontSize(b)
	label := TruncateLabel(b.Label, b.W, size)
	fmt.Fprintf(buf, `  <text class="person-label" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" dominant-baseline="middle" fill="%s" pointer-events="none">%s</text>`+"\n",
		b.X+textPadding, b.Y+b.H/2, fontFamily, size, b.Colors.Text.OnPeriod, EscapeXML(label))
}
