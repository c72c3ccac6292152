// ABOUTME: Sync interval labels and their staleness thresholds.
// ABOUTME: Maps human-readable labels, including legacy aliases, to durations.
package config

import (
	"strings"
	"time"
)

const day = 24 * time.Hour

// DefaultInterval is the label used for new installations.
const DefaultInterval = "1 week"

// IntervalLabels lists the canonical labels in ascending threshold order.
var IntervalLabels = []string{"now", "1 week", "14 days", "1 month", "6 months"}

var thresholds = map[string]time.Duration{
	"now":      0,
	"1 week":   7 * day,
	"14 days":  14 * day,
	"1 month":  30 * day,
	"6 months": 182 * day,

	// labels written by older versions of the settings document
	"1 týden": 7 * day,
	"14 dní":  14 * day,
	"1 měsíc": 30 * day,
}

// IsKnownInterval reports whether label maps to a threshold.
func IsKnownInterval(label string) bool {
	_, ok := thresholds[strings.TrimSpace(label)]
	return ok
}

// Threshold returns the staleness threshold for label.
// Unrecognized labels use the DefaultInterval threshold.
func Threshold(label string) time.Duration {
	if d, ok := thresholds[strings.TrimSpace(label)]; ok {
		return d
	}
	return thresholds[DefaultInterval]
}
