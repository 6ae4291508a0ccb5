package consumption

import (
	"beanwatch/internal/models"
)

// segment partitions date-ordered purchases into consumption periods.
//
// A purchase is merged into the current period when finishing the period's
// bags before that purchase would require a rate above threshold — the new
// bag must have been opened while the old ones were still in use. Otherwise
// the current period is closed at the purchase date and a new period begins.
//
// The returned final period is still open: its End is zero and is resolved
// by closeFinalPeriod. Every purchase belongs to exactly one period and a
// period's Start is always its first member's date.
func segment(purchases []models.Purchase, threshold float64) []models.ConsumptionPeriod {
	if len(purchases) == 0 {
		return nil
	}

	var periods []models.ConsumptionPeriod
	current := models.ConsumptionPeriod{
		Members: []models.Purchase{purchases[0]},
		Start:   purchases[0].Date,
	}

	for _, next := range purchases[1:] {
		daysToNext := models.DaysBetween(current.Start, next.Date)

		// Zero or negative gaps force a merge: with no elapsed time
		// concurrency cannot be ruled out.
		merge := daysToNext <= 0 ||
			current.TotalOunces()/float64(daysToNext) > threshold

		if merge {
			current.Members = append(current.Members, next)
			continue
		}

		current.End = next.Date
		periods = append(periods, current)
		current = models.ConsumptionPeriod{
			Members: []models.Purchase{next},
			Start:   next.Date,
		}
	}

	return append(periods, current)
}
