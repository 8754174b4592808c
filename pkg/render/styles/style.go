package styles

import "bytes"

// Style defines the visual appearance of a timeline.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, fonts).
	RenderDefs(buf *bytes.Buffer)
	// RenderPeriod writes a period's background band and header.
	RenderPeriod(buf *bytes.Buffer, p Period)
	// RenderGroup writes the frame and label of an overlap group.
	RenderGroup(buf *bytes.Buffer, g Group)
	// RenderBar writes a person's bar shape.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderText writes a person's label on top of its bar.
	RenderText(buf *bytes.Buffer, b Bar)
}

// Period is a period block in absolute pixels.
type Period struct {
	ID         string
	Label      string
	X, Y, W, H float64
	Colors     ColorSystem
}

// Group is an overlap group frame in absolute pixels.
type Group struct {
	ID         string
	Label      string
	X, Y, W, H float64
	Colors     ColorSystem
}

// Bar is one person's bar in absolute pixels.
type Bar struct {
	ID         string  // person slug
	Label      string  // display name
	Title      string  // hover text, usually the name and years
	X, Y, W, H float64 // position and dimensions
	Estimated  bool    // approximate dates, drawn dashed
	Verified   bool
	URL        string
	Colors     ColorSystem
}

// Names lists the built-in style names.
var Names = []string{"simple", "handdrawn"}
