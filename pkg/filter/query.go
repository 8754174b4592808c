package filter

import (
	"net/url"
	"strconv"
	"strings"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

// Query parameter names understood by the timeline API.
const (
	ParamPeriods     = "periods"
	ParamRegions     = "regions"
	ParamGenerations = "generations"
	ParamQuery       = "q"
	ParamStart       = "start"
	ParamEnd         = "end"
)

// Encode renders s as URL query values. Empty axes are omitted; set members
// are comma-joined in sorted order.
func (s State) Encode() url.Values {
	v := url.Values{}
	if ids := s.Periods(); len(ids) > 0 {
		v.Set(ParamPeriods, strings.Join(ids, ","))
	}
	if rs := s.Regions(); len(rs) > 0 {
		parts := make([]string, len(rs))
		for i, r := range rs {
			parts[i] = string(r)
		}
		v.Set(ParamRegions, strings.Join(parts, ","))
	}
	if gs := s.Generations(); len(gs) > 0 {
		parts := make([]string, len(gs))
		for i, g := range gs {
			parts[i] = strconv.Itoa(g)
		}
		v.Set(ParamGenerations, strings.Join(parts, ","))
	}
	if s.query != "" {
		v.Set(ParamQuery, s.query)
	}
	if lo, hi, ok := s.DateRange(); ok {
		v.Set(ParamStart, strconv.Itoa(lo))
		v.Set(ParamEnd, strconv.Itoa(hi))
	}
	return v
}

// Key is a canonical string for s, equal for equal filter states.
func (s State) Key() string {
	return s.Encode().Encode()
}

// Decode parses query values produced by [State.Encode]. Unknown regions,
// non-numeric generations and a half-specified date range are rejected.
func Decode(v url.Values) (State, error) {
	var s State

	if ids := splitList(v.Get(ParamPeriods)); len(ids) > 0 {
		s = s.WithPeriods(ids)
	}

	if raw := splitList(v.Get(ParamRegions)); len(raw) > 0 {
		rs := make([]timeline.Region, 0, len(raw))
		for _, item := range raw {
			r, ok := timeline.ParseRegion(item)
			if !ok {
				return State{}, apperr.New(apperr.ErrCodeInvalidFilter, "unknown region %q", item)
			}
			rs = append(rs, r)
		}
		s = s.WithRegions(rs)
	}

	if raw := splitList(v.Get(ParamGenerations)); len(raw) > 0 {
		gs := make([]int, 0, len(raw))
		for _, item := range raw {
			g, err := strconv.Atoi(item)
			if err != nil {
				return State{}, apperr.Wrap(apperr.ErrCodeInvalidFilter, err, "invalid generation %q", item)
			}
			gs = append(gs, g)
		}
		s = s.WithGenerations(gs)
	}

	s = s.WithQuery(v.Get(ParamQuery))

	start, end := v.Get(ParamStart), v.Get(ParamEnd)
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return State{}, apperr.New(apperr.ErrCodeInvalidFilter, "date range needs both %s and %s", ParamStart, ParamEnd)
	default:
		lo, err := strconv.Atoi(start)
		if err != nil {
			return State{}, apperr.Wrap(apperr.ErrCodeInvalidFilter, err, "invalid %s year %q", ParamStart, start)
		}
		hi, err := strconv.Atoi(end)
		if err != nil {
			return State{}, apperr.Wrap(apperr.ErrCodeInvalidFilter, err, "invalid %s year %q", ParamEnd, end)
		}
		if err := apperr.ValidateYearRange(lo, hi); err != nil {
			return State{}, err
		}
		s = s.WithDateRange(lo, hi)
	}

	return s, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
