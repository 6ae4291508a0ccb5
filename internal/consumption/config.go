// Package consumption implements the period aggregation engine: it groups
// purchases into consumption periods, projects a completion date for the
// still-open final period, and spreads each period's ounces and cost across
// the calendar months and years it covers.
//
// The engine is pure: output depends only on the purchase list, the
// reference date passed as "now", and the Config.
package consumption

// Config holds the engine's tunable policy knobs.
type Config struct {
	// OverlapThreshold is the consumption rate, in ounces per day, above
	// which the gap to the next purchase is judged too short for the
	// current bags to be finished. Such purchases are merged into the
	// current period as concurrently open.
	OverlapThreshold float64

	// LookbackDays bounds the trailing window, ending at the final
	// period's start, used to estimate the current consumption rate when
	// projecting the final period's completion date.
	LookbackDays int
}

// Default policy values. The threshold corresponds to roughly a 12 oz bag
// every four days.
const (
	DefaultOverlapThreshold = 3.0
	DefaultLookbackDays     = 30
)

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		OverlapThreshold: DefaultOverlapThreshold,
		LookbackDays:     DefaultLookbackDays,
	}
}

// normalize replaces non-positive knobs with their defaults.
func (c Config) normalize() Config {
	if c.OverlapThreshold <= 0 {
		c.OverlapThreshold = DefaultOverlapThreshold
	}
	if c.LookbackDays <= 0 {
		c.LookbackDays = DefaultLookbackDays
	}
	return c
}
