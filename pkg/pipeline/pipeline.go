// Package pipeline runs the toldot stages end to end:
//
//  1. Load: read a dataset from a file, the timeline API, MongoDB or the
//     bundled sample (pkg/source)
//  2. Filter: narrow the persons with a filter state (pkg/filter)
//  3. Layout: compute bounds, ticks and the period block layout
//     (pkg/bounds, pkg/layout)
//  4. Render: produce SVG, PNG, PDF, JSON, text or DOT artifacts
//     (pkg/render/...)
//
// The CLI and the HTTP server both go through [Runner], which caches each
// stage under keys derived from its inputs:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sample:",
//	    Filter:  filter.New("rishonim"),
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
//
// The stage functions [ComputeLayout] and [RenderFromLayout] are pure and
// can be used without a runner.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/cache"
	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/layout"
	"github.com/toldot/toldot/pkg/render/sink"
	"github.com/toldot/toldot/pkg/timeline"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultSource is used when no dataset location is given.
	DefaultSource = "sample:"

	// DefaultPxPerYear is the horizontal scale at zoom 1.
	DefaultPxPerYear = 2.0

	// DefaultZoom multiplies DefaultPxPerYear.
	DefaultZoom = 1.0

	// MinZoom and MaxZoom bound Options.Zoom.
	MinZoom = 0.1
	MaxZoom = 10.0

	// DefaultSeed seeds the hand-drawn style.
	DefaultSeed = uint64(42)

	// DefaultLanguage is the label language.
	DefaultLanguage = "ru"

	// DefaultTitle is drawn above the timeline.
	DefaultTitle = "Toldot"
)

// DefaultStyle is the default visual style.
const DefaultStyle = sink.StyleSimple

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	sink.StyleSimple:    true,
	sink.StyleHanddrawn: true,
}

// ValidLanguages is the set of label languages.
var ValidLanguages = map[string]bool{"ru": true, "en": true, "he": true}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Load options
	Source     string `json:"source,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
	NoFallback bool   `json:"no_fallback,omitempty"`

	// Filter is applied after loading and also sent to remote sources.
	Filter filter.State `json:"-"`

	// Layout options
	Padding       int     `json:"padding,omitempty"`
	PxPerYear     float64 `json:"px_per_year,omitempty"`
	Zoom          float64 `json:"zoom,omitempty"`
	Epsilon       int     `json:"epsilon,omitempty"`
	MinLabelWidth float64 `json:"min_label_width,omitempty"`
	SkipEmpty     bool    `json:"skip_empty,omitempty"`
	TickStep      int     `json:"tick_step,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Title     string   `json:"title,omitempty"`
	Language  string   `json:"language,omitempty"`
	Axis      bool     `json:"axis,omitempty"`
	Legend    bool     `json:"legend,omitempty"`
	Minimap   bool     `json:"minimap,omitempty"`
	Seed      uint64   `json:"seed,omitempty"`
	Columns   int      `json:"columns,omitempty"`
	PersonURL string   `json:"person_url,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger `json:"-"`
	UserAgent string      `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Dataset     timeline.Dataset
	DatasetHash string
	Filtered    []timeline.Person
	Layout      Layout
	Artifacts   map[string][]byte
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats holds sizes and timings of a run.
type Stats struct {
	People     int
	Periods    int
	Filtered   int
	Dropped    int
	Blocks     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that style is supported.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return apperr.New(apperr.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, handdrawn)", style)
	}
	return nil
}

// ValidateLanguage checks that lang is supported.
func ValidateLanguage(lang string) error {
	if !ValidLanguages[lang] {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid language: %q (must be ru, en or he)", lang)
	}
	return nil
}

// ValidateAndSetDefaults validates every stage and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad applies load defaults and checks the filter.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if lo, hi, ok := o.Filter.DateRange(); ok {
		if err := apperr.ValidateYearRange(lo, hi); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Padding == 0 {
		o.Padding = bounds.DefaultPadding
	}
	if o.PxPerYear == 0 {
		o.PxPerYear = DefaultPxPerYear
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.MinLabelWidth == 0 {
		o.MinLabelWidth = layout.DefaultMinLabelWidth
	}
	o.setLogger()
}

// ValidateForLayout applies layout defaults and checks ranges.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	switch {
	case o.Padding < 0:
		return apperr.New(apperr.ErrCodeInvalidInput, "padding must not be negative")
	case o.PxPerYear < 0:
		return apperr.New(apperr.ErrCodeInvalidInput, "px-per-year must be positive")
	case o.Zoom < MinZoom || o.Zoom > MaxZoom:
		return apperr.New(apperr.ErrCodeInvalidInput, "zoom must lie within [%g, %g]", MinZoom, MaxZoom)
	case o.Epsilon < 0:
		return apperr.New(apperr.ErrCodeInvalidInput, "epsilon must not be negative")
	case o.TickStep < 0:
		return apperr.New(apperr.ErrCodeInvalidInput, "tick step must not be negative")
	}
	return nil
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForRender applies render defaults and checks formats, style and
// language.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return ValidateLanguage(o.Language)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// EffectivePxPerYear is PxPerYear scaled by Zoom.
func (o *Options) EffectivePxPerYear() float64 {
	return o.PxPerYear * o.Zoom
}

// LayoutKeyOpts returns the cache key inputs of the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Filter:        o.Filter.Key(),
		Padding:       o.Padding,
		PxPerYear:     o.EffectivePxPerYear(),
		Epsilon:       o.Epsilon,
		MinLabelWidth: o.MinLabelWidth,
		SkipEmpty:     o.SkipEmpty,
	}
}

// ArtifactKeyOpts returns the cache key inputs of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Language: o.Language,
		Title:    o.Title,
		Axis:     o.Axis,
		Legend:   o.Legend,
		Minimap:  o.Minimap,
	}
	switch format {
	case FormatText:
		k.Columns = o.Columns
	case FormatSVG, FormatPNG, FormatPDF:
		k.PersonURL = o.PersonURL
	}
	if o.Style == sink.StyleHanddrawn {
		k.Seed = o.Seed
	}
	return k
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String summarizes the options for debug logs.
func (o Options) String() string {
	return fmt.Sprintf("source=%s filter=%q zoom=%g formats=%v style=%s", o.Source, o.Filter.Key(), o.Zoom, o.Formats, o.Style)
}
