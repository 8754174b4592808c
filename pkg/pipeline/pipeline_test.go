package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toldot/toldot/pkg/cache"
	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/timeline"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && apperr.GetCode(err) != apperr.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, apperr.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"handdrawn", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}
	if opts.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", opts.Source, DefaultSource)
	}
	if opts.PxPerYear != DefaultPxPerYear || opts.Zoom != DefaultZoom {
		t.Errorf("PxPerYear, Zoom = %g, %g", opts.PxPerYear, opts.Zoom)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.Language != DefaultLanguage {
		t.Errorf("Style, Language = %q, %q", opts.Style, opts.Language)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative padding", Options{Padding: -1}},
		{"zoom too small", Options{Zoom: 0.01}},
		{"zoom too large", Options{Zoom: 11}},
		{"negative epsilon", Options{Epsilon: -2}},
		{"bad format", Options{Formats: []string{"gif"}}},
		{"bad style", Options{Style: "neon"}},
		{"bad language", Options{Language: "de"}},
		{"date range out of domain", Options{Filter: filter.New().WithDateRange(-20000, 100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if err := opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEffectivePxPerYear(t *testing.T) {
	opts := Options{PxPerYear: 3, Zoom: 2}
	if got := opts.EffectivePxPerYear(); got != 6 {
		t.Errorf("EffectivePxPerYear() = %g, want 6", got)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{Filter: filter.New("rishonim")}
	b := Options{Filter: filter.New("geonim")}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()

	k := cache.NewDefaultKeyer()
	if k.LayoutKey("h", a.LayoutKeyOpts()) == k.LayoutKey("h", b.LayoutKeyOpts()) {
		t.Error("different filters must give different layout keys")
	}

	c := a
	c.Zoom = 2
	if k.LayoutKey("h", a.LayoutKeyOpts()) == k.LayoutKey("h", c.LayoutKeyOpts()) {
		t.Error("zoom must change the layout key")
	}
}

func TestArtifactKeyOptsSeed(t *testing.T) {
	simple := Options{Style: "simple", Seed: 7}
	if got := simple.ArtifactKeyOpts(FormatSVG).Seed; got != 0 {
		t.Errorf("simple style Seed = %d, want 0", got)
	}
	hand := Options{Style: "handdrawn", Seed: 7}
	if got := hand.ArtifactKeyOpts(FormatSVG).Seed; got != 7 {
		t.Errorf("handdrawn style Seed = %d, want 7", got)
	}
}

func testDataset() timeline.Dataset {
	return timeline.Dataset{
		Periods: []timeline.Period{
			{ID: "geonim", NameRU: "Гаоны", StartYear: 589, EndYear: 1038},
			{ID: "rishonim", NameRU: "Ришоним", StartYear: 1000, EndYear: 1500},
		},
		People: []timeline.Person{
			{Slug: "saadia", NameEN: "Saadia", BirthYear: timeline.Year(882), DeathYear: timeline.Year(942), Period: "geonim"},
			{Slug: "rashi", NameEN: "Rashi", BirthYear: timeline.Year(1040), DeathYear: timeline.Year(1105), Period: "rishonim"},
			{Slug: "rambam", NameEN: "Rambam", BirthYear: timeline.Year(1138), DeathYear: timeline.Year(1204), Period: "rishonim"},
			{Slug: "stray", NameEN: "Stray", BirthYear: timeline.Year(1500), DeathYear: timeline.Year(1550), Period: "unknown"},
		},
	}
}

func TestComputeLayout(t *testing.T) {
	ds := testDataset()
	l := ComputeLayout(ds.People, ds.Periods, Options{})

	if l.Bounds.MinYear >= 589 || l.Bounds.MaxYear <= 1500 {
		t.Errorf("Bounds = %+v, want padding around 589..1500", l.Bounds)
	}
	if len(l.Ticks) == 0 || l.TickStep <= 0 {
		t.Errorf("Ticks = %v, TickStep = %d", l.Ticks, l.TickStep)
	}
	if l.PxPerYear != DefaultPxPerYear {
		t.Errorf("PxPerYear = %g, want %g", l.PxPerYear, DefaultPxPerYear)
	}
	if len(l.Result.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(l.Result.Blocks))
	}
	if len(l.Result.Dropped) != 1 || l.Result.Dropped[0] != "stray" {
		t.Errorf("Dropped = %v, want [stray]", l.Result.Dropped)
	}

	p, ok := l.Result.Find("rashi")
	if !ok {
		t.Fatal("rashi not placed")
	}
	if want := l.Projection()(1040); p.X != want {
		t.Errorf("rashi X = %g, want %g", p.X, want)
	}
}

func TestComputeLayoutIsDeterministic(t *testing.T) {
	ds := testDataset()
	a, _ := MarshalLayout(ComputeLayout(ds.People, ds.Periods, Options{}))
	b, _ := MarshalLayout(ComputeLayout(ds.People, ds.Periods, Options{}))
	if !bytes.Equal(a, b) {
		t.Error("ComputeLayout should be deterministic")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	ds := testDataset()
	l := ComputeLayout(ds.People, ds.Periods, Options{SkipEmpty: true})
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds != l.Bounds || len(got.Result.Placements()) != len(l.Result.Placements()) {
		t.Errorf("round trip lost data: %+v", got.Bounds)
	}
}

func TestRenderFromLayout(t *testing.T) {
	ds := testDataset()
	opts := Options{
		Formats:   []string{FormatSVG, FormatJSON, FormatText, FormatDOT},
		Axis:      true,
		PersonURL: "https://example.org/people/{slug}",
	}
	l := ComputeLayout(ds.People, ds.Periods, opts)
	artifacts, err := RenderFromLayout(context.Background(), l, ds.People, opts)
	if err != nil {
		t.Fatalf("RenderFromLayout: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") && !strings.HasPrefix(svg, "<?xml") {
		t.Errorf("svg artifact does not look like SVG: %.40q", svg)
	}
	if !strings.Contains(svg, "https://example.org/people/rashi") {
		t.Error("svg should link persons through the URL template")
	}
	if !json.Valid(artifacts[FormatJSON]) {
		t.Error("json artifact is not valid JSON")
	}
	if !strings.Contains(string(artifacts[FormatText]), "Раши") && !strings.Contains(string(artifacts[FormatText]), "Rashi") {
		t.Error("text artifact should name rashi")
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %.20q", artifacts[FormatDOT])
	}
}

func TestPersonURLFunc(t *testing.T) {
	fn := PersonURLFunc("/people/{slug}")
	if got := fn(timeline.Person{Slug: "rav ashi"}); got != "/people/rav%20ashi" {
		t.Errorf("PersonURLFunc = %q", got)
	}
}

// countingCache wraps a MemoryCache and counts writes per key prefix.
type countingCache struct {
	*cache.MemoryCache
	sets map[string]int
}

func newCountingCache() *countingCache {
	return &countingCache{MemoryCache: cache.NewMemoryCache(time.Hour, time.Hour), sets: map[string]int{}}
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	prefix, _, _ := strings.Cut(key, ":")
	c.sets[prefix]++
	return c.MemoryCache.Set(ctx, key, data, ttl)
}

func TestRunnerExecute(t *testing.T) {
	c := newCountingCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()

	opts := Options{
		Source:  "sample:",
		Filter:  filter.New("rishonim"),
		Formats: []string{FormatSVG, FormatText},
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.People == 0 || res.Stats.Periods == 0 {
		t.Fatalf("Stats = %+v", res.Stats)
	}
	if res.Stats.Filtered != 7 {
		t.Errorf("Filtered = %d, want 7 rishonim", res.Stats.Filtered)
	}
	for _, p := range res.Filtered {
		if p.Period != "rishonim" {
			t.Errorf("filtered person %s is in %s", p.Slug, p.Period)
		}
	}
	if res.DatasetHash == "" {
		t.Error("DatasetHash should be set")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(res.Artifacts))
	}
	if res.CacheInfo.LoadHit || res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss every cache: %+v", res.CacheInfo)
	}
	if c.sets["dataset"] != 0 {
		t.Error("the embedded sample should not be cached")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit layout and render caches: %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from the rendered one")
	}
}

func TestRunnerRenderPartialCache(t *testing.T) {
	c := newCountingCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()
	ds := testDataset()
	l := ComputeLayout(ds.People, ds.Periods, Options{})

	if _, err := r.Render(ctx, l, ds.People, Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.RenderWithCacheInfo(ctx, l, ds.People, Options{Formats: []string{FormatSVG, FormatText}})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("a format missing from the cache means no full hit")
	}
	if c.sets["artifact"] != 2 {
		t.Errorf("artifact writes = %d, want 2 (svg once, txt once)", c.sets["artifact"])
	}
}

func TestRunnerRenderCacheTracksPeople(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	write := func(name string) {
		t.Helper()
		data := `{"periods":[{"id":"rishonim","name_ru":"Ришоним","startYear":1000,"endYear":1500}],` +
			`"people":[{"slug":"rashi","name_en":"Rashi","name_ru":"` + name + `","birthYear":1040,"deathYear":1105,"period":"rishonim"}]}`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r := NewRunner(newCountingCache(), nil, quietLogger())
	opts := Options{Source: path, Language: "ru", Formats: []string{FormatJSON}}

	write("Раши")
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	write("Шломо бен Ицхак")
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	out := string(res.Artifacts[FormatJSON])
	if !strings.Contains(out, "Шломо бен Ицхак") || strings.Contains(out, "Раши") {
		t.Errorf("renamed person rendered from a stale artifact:\n%s", out)
	}
	if res.CacheInfo.RenderHit {
		t.Error("a renamed person must miss the artifact cache")
	}
}

func TestRunnerRenderCacheTracksOptions(t *testing.T) {
	r := NewRunner(newCountingCache(), nil, quietLogger())
	ctx := context.Background()
	ds := testDataset()
	l := ComputeLayout(ds.People, ds.Periods, Options{})

	tests := []struct {
		name         string
		first, again Options
		want         string
	}{
		{
			"person url",
			Options{Formats: []string{FormatSVG}, PersonURL: "https://a.example/{slug}"},
			Options{Formats: []string{FormatSVG}, PersonURL: "https://b.example/{slug}"},
			"https://b.example/rashi",
		},
		{
			"text columns",
			Options{Formats: []string{FormatText}, Columns: 20},
			Options{Formats: []string{FormatText}, Columns: 60},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := tt.first.Formats[0]
			first, _, err := r.RenderWithCacheInfo(ctx, l, ds.People, tt.first)
			if err != nil {
				t.Fatal(err)
			}
			again, hit, err := r.RenderWithCacheInfo(ctx, l, ds.People, tt.again)
			if err != nil {
				t.Fatal(err)
			}
			if hit {
				t.Error("changed render option hit the artifact cache")
			}
			if bytes.Equal(first[format], again[format]) {
				t.Error("changed render option produced identical output")
			}
			if tt.want != "" && !strings.Contains(string(again[format]), tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
		})
	}
}

func TestRunnerFilterChangesLayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	all, err := r.Execute(ctx, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	some, err := r.Execute(ctx, Options{Formats: []string{FormatJSON}, Filter: filter.New().WithQuery("rashi")})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(some.Layout.Result.Placements()); got != 1 {
		t.Errorf("query filter placed %d persons, want 1", got)
	}
	if len(all.Layout.Result.Placements()) <= 1 {
		t.Error("unfiltered run should place everyone")
	}
}

func TestRunnerUnknownSource(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), Options{Source: "people.xlsx"}); err == nil {
		t.Error("unsupported dataset file should fail")
	}
}

func TestHashDataset(t *testing.T) {
	a, err := HashDataset(testDataset())
	if err != nil {
		t.Fatal(err)
	}
	ds := testDataset()
	ds.People = ds.People[:1]
	b, _ := HashDataset(ds)
	if a == b {
		t.Error("different datasets should hash differently")
	}
}
