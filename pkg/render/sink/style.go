package sink

import (
	"github.com/toldot/toldot/pkg/render/styles"
	"github.com/toldot/toldot/pkg/render/styles/handdrawn"
)

// Style names.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// StyleByName returns the style registered under name, seeding sketchy
// styles with seed. Unknown names fall back to [styles.Simple].
func StyleByName(name string, seed uint64) styles.Style {
	if name == StyleHanddrawn {
		return handdrawn.New(seed)
	}
	return styles.Simple{}
}

func stylesColor(periodID string) string {
	return styles.ColorsFor(periodID).PeriodBase
}
