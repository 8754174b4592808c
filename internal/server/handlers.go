package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toldot/toldot/pkg/bounds"
	"github.com/toldot/toldot/pkg/buildinfo"
	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/render/hierarchy"
	"github.com/toldot/toldot/pkg/timeline"
)

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json; charset=utf-8",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string    `json:"status"`
	Version  string    `json:"version"`
	People   int       `json:"people"`
	Periods  int       `json:"periods"`
	LoadedAt time.Time `json:"loaded_at"`
}

// PeopleResponse is the body of GET /api/timeline/people. It matches the
// payload read by pkg/source, so one toldot server can feed another.
type PeopleResponse struct {
	People  []timeline.Person `json:"people"`
	Periods []timeline.Period `json:"periods"`
	Stats   timeline.Stats    `json:"stats"`
}

// BoundsResponse is the body of GET /api/timeline/bounds.
type BoundsResponse struct {
	bounds.Bounds
	Step  int   `json:"step"`
	Ticks []int `json:"ticks"`
	Major []int `json:"major"`
}

// LayoutResponse is the body of GET /api/timeline/layout.
type LayoutResponse struct {
	DatasetHash string          `json:"dataset_hash"`
	Cached      bool            `json:"cached"`
	Layout      pipeline.Layout `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds, loadedAt := s.snapshot()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  buildinfo.Version,
		People:   len(ds.People),
		Periods:  len(ds.Periods),
		LoadedAt: loadedAt,
	})
}

// filtered decodes the filter parameters and applies them to the current
// dataset.
func (s *Server) filtered(r *http.Request) (timeline.Dataset, []timeline.Person, error) {
	ds, _ := s.snapshot()
	f, err := filter.Decode(r.URL.Query())
	if err != nil {
		return ds, nil, err
	}
	return ds, s.runner.Filter(r.Context(), ds.People, f), nil
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	ds, people, err := s.filtered(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if people == nil {
		people = []timeline.Person{}
	}
	writeJSON(w, http.StatusOK, PeopleResponse{
		People:  people,
		Periods: ds.Periods,
		Stats:   timeline.ComputeStats(people),
	})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := apperr.ValidateSlug(slug); err != nil {
		writeError(w, err)
		return
	}
	ds, _ := s.snapshot()
	p, ok := ds.Person(slug)
	if !ok {
		writeError(w, apperr.New(apperr.ErrCodePersonNotFound, "person %q not found", slug))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	ds, people, err := s.filtered(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	b := bounds.GetTimelineBounds(people, ds.Periods, opts.Padding)
	step := bounds.TickStep(b.Span())
	ticks := bounds.BuildTickMarks(b.MinYear, b.MaxYear, step)
	major := []int{}
	for _, t := range ticks {
		if bounds.IsMajor(t) {
			major = append(major, t)
		}
	}
	writeJSON(w, http.StatusOK, BoundsResponse{Bounds: b, Step: step, Ticks: ticks, Major: major})
}

// layout runs the cached layout stage for the request.
func (s *Server) layout(r *http.Request) (pipeline.Layout, []timeline.Person, pipeline.Options, string, bool, error) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		return pipeline.Layout{}, nil, opts, "", false, err
	}
	ds, _ := s.snapshot()
	people := s.runner.Filter(r.Context(), ds.People, opts.Filter)
	l, hash, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), ds, people, opts)
	return l, people, opts, hash, hit, err
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, _, _, hash, hit, err := s.layout(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{DatasetHash: hash, Cached: hit, Layout: l})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, apperr.New(apperr.ErrCodeNotFound, "unknown render format %q", format))
		return
	}

	l, people, opts, _, _, err := s.layout(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, people, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	l, _, _, _, _, err := s.layout(r)
	if err != nil {
		writeError(w, err)
		return
	}
	svg, err := hierarchy.RenderSVG(r.Context(), hierarchy.ToDOT(l.Result, hierarchy.Options{}))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.ErrCodeInternal, err, "render hierarchy"))
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	_, _ = w.Write(svg)
}
