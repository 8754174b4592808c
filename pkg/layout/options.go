package layout

type config struct {
	epsilon       int
	minLabelWidth float64
	skipEmpty     bool
}

func defaultConfig() config {
	return config{minLabelWidth: DefaultMinLabelWidth}
}

// Option configures [Build].
type Option func(*config)

// WithEpsilon sets how many years may separate two lifespans that still join
// the same group. Negative values are treated as 0.
func WithEpsilon(years int) Option {
	return func(c *config) { c.epsilon = max(0, years) }
}

// WithMinLabelWidth sets the minimum person bar width. Non-positive values
// keep the default.
func WithMinLabelWidth(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.minLabelWidth = px
		}
	}
}

// WithSkipEmptyPeriods omits blocks for periods without persons.
func WithSkipEmptyPeriods() Option {
	return func(c *config) { c.skipEmpty = true }
}
