package service

import (
	"math"
	"time"
)

// DefaultHourlyRate is the fixed parking tariff in RWF per hour.
const DefaultHourlyRate = 500.0

// ComputeFee is the billing policy: elapsed time is rounded up to whole
// hours with a floor of one, so any stay up to an hour bills exactly one
// hour and 61 minutes bills two. Clock skew (exit at or before entry)
// still bills the one-hour floor. Pure function, no side effects.
func ComputeFee(entryTime, exitTime time.Time, hourlyRate float64) (amount float64, durationHours int) {
	elapsed := exitTime.Sub(entryTime)
	durationHours = int(math.Ceil(elapsed.Hours()))
	if durationHours < 1 {
		durationHours = 1
	}
	return float64(durationHours) * hourlyRate, durationHours
}
