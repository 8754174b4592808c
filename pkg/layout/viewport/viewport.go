// Package viewport models panning and zooming over a laid-out timeline.
//
// A [Navigator] holds the scale limits and optional pan bounds. Its methods
// take a [Transform] and return the next one, so callers own the state:
//
//	nav := viewport.New(viewport.WithScaleLimits(0.4, 4))
//	t := nav.ZoomAt(viewport.Identity, 120, 0, 1.25)
//	lo, hi := viewport.VisibleWindow(t, -1000, 2, 800)
package viewport

import "math"

// Default scale limits.
const (
	DefaultMinScale = 0.4
	DefaultMaxScale = 4.0
)

// Inertia tuning for [Navigator.Coast].
const (
	Friction     = 0.92
	StopVelocity = 0.05
)

// Transform is a pan offset in pixels plus a zoom factor.
type Transform struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Identity is the unscaled, unpanned transform.
var Identity = Transform{Scale: 1}

// Bounds limits the pan offset. NaN leaves a side open.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Open returns bounds with every side unconstrained.
func Open() Bounds {
	n := math.NaN()
	return Bounds{MinX: n, MaxX: n, MinY: n, MaxY: n}
}

// Navigator applies navigation gestures within fixed limits.
type Navigator struct {
	minScale, maxScale float64
	bounds             *Bounds
}

// Option configures a [Navigator].
type Option func(*Navigator)

// WithScaleLimits sets the zoom range. Invalid ranges are ignored.
func WithScaleLimits(lo, hi float64) Option {
	return func(n *Navigator) {
		if lo > 0 && hi >= lo {
			n.minScale, n.maxScale = lo, hi
		}
	}
}

// WithBounds constrains the pan offset.
func WithBounds(b Bounds) Option {
	return func(n *Navigator) { n.bounds = &b }
}

// New returns a Navigator with the default scale limits and no pan bounds.
func New(opts ...Option) Navigator {
	n := Navigator{minScale: DefaultMinScale, maxScale: DefaultMaxScale}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// ClampScale limits s to the navigator's zoom range.
func (n Navigator) ClampScale(s float64) float64 {
	return math.Min(n.maxScale, math.Max(n.minScale, s))
}

func (n Navigator) clamp(t Transform) Transform {
	if n.bounds == nil {
		return t
	}
	t.X = clampAxis(t.X, n.bounds.MinX, n.bounds.MaxX)
	t.Y = clampAxis(t.Y, n.bounds.MinY, n.bounds.MaxY)
	return t
}

func clampAxis(v, lo, hi float64) float64 {
	if !math.IsNaN(lo) {
		v = math.Max(lo, v)
	}
	if !math.IsNaN(hi) {
		v = math.Min(hi, v)
	}
	return v
}

// PanBy shifts t by (dx, dy).
func (n Navigator) PanBy(t Transform, dx, dy float64) Transform {
	return n.clamp(Transform{Scale: t.Scale, X: t.X + dx, Y: t.Y + dy})
}

// ZoomAt multiplies the scale by factor, keeping the screen point (px, py)
// fixed.
func (n Navigator) ZoomAt(t Transform, px, py, factor float64) Transform {
	if t.Scale <= 0 {
		t.Scale = 1
	}
	next := n.ClampScale(t.Scale * factor)
	delta := next / t.Scale
	return n.clamp(Transform{
		Scale: next,
		X:     px - (px-t.X)*delta,
		Y:     py - (py-t.Y)*delta,
	})
}

// FlyTo jumps to offset (x, y). A non-positive scale keeps the current one.
func (n Navigator) FlyTo(t Transform, x, y, scale float64) Transform {
	if scale <= 0 {
		scale = t.Scale
	}
	return n.clamp(Transform{Scale: n.ClampScale(scale), X: x, Y: y})
}

// ApplyViewport fits the years [startYear, endYear] into viewportWidth pixels
// for a timeline drawn at basePxPerYear from minYear. The vertical offset is
// kept.
func (n Navigator) ApplyViewport(t Transform, startYear, endYear, minYear int, basePxPerYear, viewportWidth float64) Transform {
	years := math.Max(1, float64(endYear-startYear))
	scale := n.ClampScale(viewportWidth / (years * basePxPerYear))
	x := -float64(startYear-minYear) * basePxPerYear * scale
	return n.clamp(Transform{Scale: scale, X: x, Y: t.Y})
}

// Velocity is a pan speed in pixels per step.
type Velocity struct {
	VX, VY float64
}

// Coast advances one inertia step. It reports false once the velocity has
// decayed below [StopVelocity].
func (n Navigator) Coast(t Transform, v Velocity) (Transform, Velocity, bool) {
	v.VX *= Friction
	v.VY *= Friction
	if math.Abs(v.VX) < StopVelocity && math.Abs(v.VY) < StopVelocity {
		return t, Velocity{}, false
	}
	return n.PanBy(t, v.VX, v.VY), v, true
}

// VisibleWindow is the inverse of ApplyViewport: the year span shown by t in
// a viewport viewportWidth pixels wide.
func VisibleWindow(t Transform, minYear int, basePxPerYear, viewportWidth float64) (startYear, endYear float64) {
	pxPerYear := basePxPerYear * t.Scale
	if pxPerYear <= 0 {
		return float64(minYear), float64(minYear)
	}
	startYear = float64(minYear) - t.X/pxPerYear
	return startYear, startYear + viewportWidth/pxPerYear
}
