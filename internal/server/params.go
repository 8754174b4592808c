package server

import (
	"net/url"
	"strconv"
	"strings"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/pipeline"
)

// Query parameters for layout and render options, next to the filter
// parameters of pkg/filter.
const (
	ParamZoom      = "zoom"
	ParamPxPerYear = "px_per_year"
	ParamPadding   = "padding"
	ParamEpsilon   = "epsilon"
	ParamSkipEmpty = "skip_empty"
	ParamStyle     = "style"
	ParamLang      = "lang"
	ParamTitle     = "title"
	ParamAxis      = "axis"
	ParamLegend    = "legend"
	ParamMinimap   = "minimap"
	ParamSeed      = "seed"
	ParamColumns   = "columns"
)

// options overlays query parameters on the server defaults and validates
// the result.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.base
	opts.Formats = nil

	f, err := filter.Decode(q)
	if err != nil {
		return opts, err
	}
	opts.Filter = f

	p := paramReader{q: q}
	p.float(ParamZoom, &opts.Zoom)
	p.float(ParamPxPerYear, &opts.PxPerYear)
	p.int(ParamPadding, &opts.Padding)
	p.int(ParamEpsilon, &opts.Epsilon)
	p.int(ParamColumns, &opts.Columns)
	p.bool(ParamSkipEmpty, &opts.SkipEmpty)
	p.bool(ParamAxis, &opts.Axis)
	p.bool(ParamLegend, &opts.Legend)
	p.bool(ParamMinimap, &opts.Minimap)
	p.uint(ParamSeed, &opts.Seed)
	if v := q.Get(ParamStyle); v != "" {
		opts.Style = v
	}
	if v := q.Get(ParamLang); v != "" {
		opts.Language = v
	}
	if v := q.Get(ParamTitle); v != "" {
		opts.Title = v
	}
	if p.err != nil {
		return opts, p.err
	}

	if err := opts.ValidateForLayout(); err != nil {
		return opts, err
	}
	opts.SetRenderDefaults()
	if err := pipeline.ValidateStyle(opts.Style); err != nil {
		return opts, err
	}
	return opts, pipeline.ValidateLanguage(opts.Language)
}

// paramReader parses optional typed parameters, keeping the first error.
type paramReader struct {
	q   url.Values
	err error
}

func (p *paramReader) raw(name string) (string, bool) {
	v := strings.TrimSpace(p.q.Get(name))
	return v, v != "" && p.err == nil
}

func (p *paramReader) fail(name, v string, err error) {
	p.err = apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid %s %q", name, v)
}

func (p *paramReader) float(name string, dst *float64) {
	if v, ok := p.raw(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = f
	}
}

func (p *paramReader) int(name string, dst *int) {
	if v, ok := p.raw(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (p *paramReader) uint(name string, dst *uint64) {
	if v, ok := p.raw(name); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (p *paramReader) bool(name string, dst *bool) {
	if v, ok := p.raw(name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = b
	}
}
