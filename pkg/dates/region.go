package dates

import (
	"strings"

	"github.com/toldot/toldot/pkg/timeline"
)

// regionKeywords is checked top to bottom; the first region with a matching
// keyword wins, so "germany" beats "france" when both occur.
var regionKeywords = []struct {
	region   timeline.Region
	keywords []string
}{
	{timeline.RegionGermany, []string{"germany", "ashkenaz", "герм"}},
	{timeline.RegionFrance, []string{"france", "франц"}},
	{timeline.RegionEngland, []string{"england", "англ"}},
	{timeline.RegionProvence, []string{"provence", "прованс"}},
	{timeline.RegionSepharad, []string{"sepharad", "spain", "испан"}},
	{timeline.RegionItaly, []string{"italy", "итал"}},
	{timeline.RegionNorthAfrica, []string{"north africa", "maghreb", "северн", "магриб"}},
	{timeline.RegionYemen, []string{"yemen", "йемен"}},
	{timeline.RegionEgypt, []string{"egypt", "егип"}},
	{timeline.RegionBabylonia, []string{"babylonia", "bavel", "вавил"}},
	{timeline.RegionEretzIsrael, []string{"israel", "palestine", "эрец"}},
}

// InferRegionFromText guesses a region from a plain-text summary and a
// category list using case-insensitive substring matches.
func InferRegionFromText(summary string, categories []string) (timeline.Region, bool) {
	haystack := strings.ToLower(strings.Join(categories, " ") + " " + summary)
	for _, rk := range regionKeywords {
		for _, kw := range rk.keywords {
			if strings.Contains(haystack, kw) {
				return rk.region, true
			}
		}
	}
	return "", false
}
