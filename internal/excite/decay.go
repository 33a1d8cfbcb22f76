package excite

import (
	"math"
	"time"
)

const secondsPerDay = 86400

// Decay returns the weight value shrunk exponentially by the days elapsed
// between updatedAt and now: value * (1-ratePerDay)^days. Negative elapsed
// time (clock skew, future-dated writes) decays nothing, so the stored
// value is never amplified.
func Decay(value float64, updatedAt, now time.Time, ratePerDay float64) float64 {
	days := now.Sub(updatedAt).Seconds() / secondsPerDay
	if days <= 0 {
		return value
	}
	return value * math.Pow(1-ratePerDay, days)
}
