// Package styles defines how timeline elements are drawn in SVG.
//
// A [Style] receives plain geometry ([Period], [Group], [Bar]) already
// projected to pixels and writes SVG fragments into a buffer. [Simple] is
// the default flat style; the handdrawn subpackage provides a sketchy one.
//
// Colours come from [ColorsFor], which derives a palette from a per-period
// hue. Explicit period or person colours override the generated base colour
// through [ColorSystem.WithBase].
package styles
