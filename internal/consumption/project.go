package consumption

import (
	"math"
	"time"

	"beanwatch/internal/models"
)

// closeFinalPeriod resolves the open final period produced by segment.
//
// When prior closed periods overlap the trailing lookback window ending at
// the final period's start, their rates are day-weighted into an average and
// the final period's End becomes the date the remaining ounces run out at
// that rate, with Projected set. With no usable history (a single period, no
// window overlap, or a zero average rate) End falls back to today.
//
// The input slice is not mutated; a new final period value is returned in a
// fresh slice.
func closeFinalPeriod(
	periods []models.ConsumptionPeriod,
	now time.Time,
	lookbackDays int,
) []models.ConsumptionPeriod {
	if len(periods) == 0 {
		return nil
	}

	out := make([]models.ConsumptionPeriod, len(periods))
	copy(out, periods)

	final := out[len(out)-1]
	final.End = models.DateOnly(now)
	final.Projected = false

	if avg, ok := trailingRate(out[:len(out)-1], final.Start, lookbackDays); ok {
		projectedDays := int(math.Ceil(final.TotalOunces() / avg))
		final.End = final.Start.AddDate(0, 0, projectedDays)
		final.Projected = true
	}

	out[len(out)-1] = final
	return out
}

// trailingRate computes the day-weighted average consumption rate of the
// closed periods over [until-lookbackDays, until). Reports false when no
// period overlaps the window or the averaged rate is not positive, in which
// case a projection would divide by zero.
func trailingRate(closed []models.ConsumptionPeriod, until time.Time, lookbackDays int) (float64, bool) {
	windowStart := until.AddDate(0, 0, -lookbackDays)

	var weightedOunces float64
	var totalDays int

	for _, p := range closed {
		start := p.Start
		if start.Before(windowStart) {
			start = windowStart
		}
		end := p.End
		if end.After(until) {
			end = until
		}

		overlap := models.DaysBetween(start, end)
		if overlap <= 0 {
			continue
		}

		weightedOunces += float64(overlap) * p.OuncesPerDay()
		totalDays += overlap
	}

	if totalDays == 0 {
		return 0, false
	}

	avg := weightedOunces / float64(totalDays)
	if avg <= 0 {
		return 0, false
	}
	return avg, true
}
