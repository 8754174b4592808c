package dates

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/toldot/toldot/pkg/timeline"
)

var (
	yearPattern    = regexp.MustCompile(`\d{3,4}`)
	centuryPattern = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\s+century`)
)

// ParseLifespan extracts a year range from free text.
//
// The first two 3–4 digit tokens become start and end; the range is estimated
// when the text contains "c." or "ca.". Failing that, an ordinal century such
// as "12th century" maps to [(N-1)*100, N*100] and is always estimated. A lone
// year is not a range.
func ParseLifespan(text string) (timeline.LifespanRange, bool) {
	if years := yearPattern.FindAllString(text, 2); len(years) == 2 {
		start, _ := strconv.Atoi(years[0])
		end, _ := strconv.Atoi(years[1])
		return timeline.LifespanRange{
			Start:     start,
			End:       end,
			Estimated: strings.Contains(text, "c.") || strings.Contains(text, "ca."),
		}, true
	}

	if m := centuryPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return timeline.LifespanRange{
			Start:     (n - 1) * 100,
			End:       n * 100,
			Estimated: true,
		}, true
	}

	return timeline.LifespanRange{}, false
}

// DeriveLifespanRange resolves the drawable span of p.
//
// Precedence: explicit LifespanRange, then BirthYear with DeathYear (not
// estimated), then ParseLifespan on the Lifespan text.
func DeriveLifespanRange(p timeline.Person) (timeline.LifespanRange, bool) {
	if p.LifespanRange != nil {
		return *p.LifespanRange, true
	}
	if p.BirthYear != nil && p.DeathYear != nil {
		return timeline.LifespanRange{Start: *p.BirthYear, End: *p.DeathYear}, true
	}
	if p.Lifespan != "" {
		return ParseLifespan(p.Lifespan)
	}
	return timeline.LifespanRange{}, false
}

// AnchorYear is the single year used to bin a person on a density strip:
// birth year, then the start of the derived range, then the flourit year.
func AnchorYear(p timeline.Person) (int, bool) {
	if p.BirthYear != nil {
		return *p.BirthYear, true
	}
	if r, ok := DeriveLifespanRange(p); ok {
		return r.Start, true
	}
	if p.FlouritYear != nil {
		return *p.FlouritYear, true
	}
	return 0, false
}
