package styles

import (
	"fmt"
	"math"
	"strings"
)

// DefaultHue is used for periods without an entry in [PeriodHues].
const DefaultHue = 200

// PeriodHues assigns each known period a base hue in degrees.
var PeriodHues = map[string]int{
	"shoftim":             30,
	"malakhim_united":     45,
	"malakhim_divided":    35,
	"hasmonean":           210,
	"zugot":               190,
	"tannaim_temple":      80,
	"tannaim_post_temple": 95,
	"amoraim_israel":      140,
	"amoraim_babylonia":   150,
	"savoraim":            170,
	"pumbedita":           220,
	"geonim":              260,
	"rishonim":            290,
	"achronim":            310,
}

var lightHues = []int{30, 45, 50, 60, 170, 180, 190}

// BarColors are the fills used for person bars.
type BarColors struct {
	Normal    string `json:"normal"`
	Verified  string `json:"verified"`
	Estimated string `json:"estimated"`
	Hover     string `json:"hover"`
	Selected  string `json:"selected"`
}

// TextColors are the label colours.
type TextColors struct {
	OnPeriod     string `json:"onPeriod"`
	OnBackground string `json:"onBackground"`
	Dimmed       string `json:"dimmed"`
}

// ColorSystem is the palette of one period.
type ColorSystem struct {
	Hue              int        `json:"hue"`
	PeriodBase       string     `json:"periodBase"`
	PeriodBackground string     `json:"periodBackground"`
	PeriodBorder     string     `json:"periodBorder"`
	Bar              BarColors  `json:"bar"`
	Text             TextColors `json:"text"`
}

// ColorsFor returns the palette generated from periodID's hue.
func ColorsFor(periodID string) ColorSystem {
	hue, ok := PeriodHues[periodID]
	if !ok {
		hue = DefaultHue
	}
	return ColorSystem{
		Hue:              hue,
		PeriodBase:       fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue),
		PeriodBackground: fmt.Sprintf("hsl(%d, 40%%, 95%%)", hue),
		PeriodBorder:     fmt.Sprintf("hsl(%d, 50%%, 70%%)", hue),
		Bar: BarColors{
			Normal:    fmt.Sprintf("hsla(%d, 70%%, 50%%, 0.8)", hue),
			Verified:  fmt.Sprintf("hsla(%d, 70%%, 50%%, 1)", hue),
			Estimated: fmt.Sprintf("hsla(%d, 70%%, 50%%, 0.5)", hue),
			Hover:     fmt.Sprintf("hsl(%d, 70%%, 60%%)", hue),
			Selected:  fmt.Sprintf("hsl(%d, 90%%, 50%%)", hue),
		},
		Text: TextColors{
			OnPeriod:     contrastColor(hue),
			OnBackground: "#333333",
			Dimmed:       "#999999",
		},
	}
}

// WithBase replaces the base and every bar colour with color. An empty
// color returns c unchanged.
func (c ColorSystem) WithBase(color string) ColorSystem {
	color = strings.TrimSpace(color)
	if color == "" {
		return c
	}
	c.PeriodBase = color
	c.Bar = BarColors{Normal: color, Verified: color, Estimated: color, Hover: color, Selected: color}
	return c
}

// BarFill picks the bar colour for the given flags.
func (c ColorSystem) BarFill(estimated, verified bool) string {
	switch {
	case estimated:
		return c.Bar.Estimated
	case verified:
		return c.Bar.Verified
	default:
		return c.Bar.Normal
	}
}

func contrastColor(hue int) string {
	for _, h := range lightHues {
		if math.Abs(float64(h-hue)) < 20 {
			return "#000000"
		}
	}
	return "#FFFFFF"
}
