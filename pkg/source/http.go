package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/httputil"
	"github.com/toldot/toldot/pkg/timeline"
)

// API paths relative to the base URL.
const (
	PeoplePath   = "/api/timeline/people"
	ProfilesPath = "/api/profile/list"
)

// HTTPSource loads the dataset from a timeline API.
//
// It requests PeoplePath with the encoded filter as query string. When that
// fails or returns no people, it builds the dataset from ProfilesPath,
// synthesizing spans for undated persons with [WithBounds], and when that
// fails too it serves the bundled sample. NoFallback disables both steps.
type HTTPSource struct {
	BaseURL    string
	Query      string
	Client     *httputil.Client
	Logger     *log.Logger
	NoFallback bool
}

// NewHTTPSource builds a source for the API at baseURL.
func NewHTTPSource(baseURL string, opts Options) *HTTPSource {
	c := httputil.NewClient()
	c.UserAgent = opts.UserAgent
	c.Limiter = httputil.NewLimiter(opts.RequestsPerSecond, 0)
	return &HTTPSource{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Query:      opts.Query,
		Client:     c,
		Logger:     opts.Logger,
		NoFallback: opts.NoFallback,
	}
}

func (s *HTTPSource) Name() string { return s.BaseURL }

func (s *HTTPSource) Load(ctx context.Context) (timeline.Dataset, error) {
	if err := apperr.ValidateURL(s.BaseURL); err != nil {
		return timeline.Dataset{}, err
	}

	ds, err := s.loadPeople(ctx)
	if err == nil || s.NoFallback || ctx.Err() != nil {
		return ds, err
	}
	s.warn("timeline API unavailable, trying profile list", err)

	ds, err = s.loadProfiles(ctx)
	if err == nil || ctx.Err() != nil {
		return ds, err
	}
	s.warn("profile list unavailable, serving bundled sample", err)
	return NewSampleSource().Load(ctx)
}

func (s *HTTPSource) loadPeople(ctx context.Context) (timeline.Dataset, error) {
	url := s.BaseURL + PeoplePath
	if s.Query != "" {
		url += "?" + s.Query
	}

	var p Payload
	if err := s.Client.GetJSON(ctx, url, &p); err != nil {
		return timeline.Dataset{}, err
	}
	if len(p.People) == 0 {
		return timeline.Dataset{}, errors.New("empty timeline payload")
	}
	return finish(s.Name(), p, s.Logger)
}

func (s *HTTPSource) loadProfiles(ctx context.Context) (timeline.Dataset, error) {
	var list []RawPerson
	if err := s.Client.GetJSON(ctx, s.BaseURL+ProfilesPath, &list); err != nil {
		return timeline.Dataset{}, fmt.Errorf("profile list: %w", err)
	}

	ds, err := finish(s.Name()+ProfilesPath, Payload{People: list}, s.Logger)
	if err != nil {
		return timeline.Dataset{}, err
	}
	for i, p := range ds.People {
		ds.People[i] = WithBounds(p, ds.Periods)
	}
	return ds, nil
}

func (s *HTTPSource) warn(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, "source", s.BaseURL, "err", err)
	}
}
