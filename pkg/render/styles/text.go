package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.45
	fontCharWidth   = 0.55
	fontSizeMin     = 9.0
	fontSizeMax     = 16.0
	textPadding     = 6.0
)

// FontSize returns the label size for a bar: proportional to its height and
// clamped to a readable range.
func FontSize(b Bar) float64 {
	return max(fontSizeMin, min(fontSizeMax, b.H*fontHeightRatio))
}

// TruncateLabel shortens label to fit width at fontSize, appending "..".
// At least three characters are always kept.
func TruncateLabel(label string, width, fontSize float64) string {
	charWidth := fontSize * fontCharWidth
	maxChars := max(3, int((width-2*textPadding)/charWidth))
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WrapURL surrounds the output of fn with a link when url is set.
func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>\n")
	}
}

// WriteTitle writes an SVG <title> used as hover text.
func WriteTitle(buf *bytes.Buffer, title string) {
	if title != "" {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(title))
	}
}
