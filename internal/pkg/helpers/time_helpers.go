package helpers

import "time"

// ParseDuration parses a duration string, falling back to a default when the
// value is empty or malformed. Config values are validated at load, so the
// fallback is only hit for optional fields.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
