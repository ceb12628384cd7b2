package compare

import "time"

// Config holds the tunables of the comparison engine. The ranking weights are
// a configuration surface on purpose; the defaults favor price over distance
// and let a preference nudge a store up without guaranteeing first place.
type Config struct {
	// Ranking weights
	PriceWeight     float64
	DistanceWeight  float64
	PreferenceBonus float64

	// Fan-out settings
	MaxConcurrentQuotes int64
	QuoteTimeout        time.Duration

	// Validation limits
	MaxItems int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		PriceWeight:         0.6,
		DistanceWeight:      0.4,
		PreferenceBonus:     0.15,
		MaxConcurrentQuotes: 16,
		QuoteTimeout:        10 * time.Second,
		MaxItems:            50,
	}
}
