package consumption

import (
	"time"

	"beanwatch/internal/models"
)

// Report is the full output of one engine run.
type Report struct {
	Periods     []models.ConsumptionPeriod
	Months      []models.MonthTotal
	Years       []models.YearTotal
	Summary     models.Summary
	GeneratedAt time.Time
}

// CurrentPeriod returns the open (last) period, or nil when there is none.
func (r *Report) CurrentPeriod() *models.ConsumptionPeriod {
	if len(r.Periods) == 0 {
		return nil
	}
	return &r.Periods[len(r.Periods)-1]
}

// BuildReport runs the full pipeline: segmentation, final-period projection,
// calendar distribution, yearly roll-up and summary scalars.
//
// now is the reference date for the no-projection fallback and the summary
// rates; passing the same purchases and now always yields the same report.
// The input slice is not modified. An empty input yields an empty report.
func BuildReport(purchases []models.Purchase, now time.Time, cfg Config) *Report {
	cfg = cfg.normalize()
	today := models.DateOnly(now)

	report := &Report{GeneratedAt: today}
	if len(purchases) == 0 {
		return report
	}

	ordered := make([]models.Purchase, len(purchases))
	copy(ordered, purchases)
	for i := range ordered {
		ordered[i].Date = models.DateOnly(ordered[i].Date)
	}
	models.SortPurchases(ordered)

	report.Periods = closeFinalPeriod(
		segment(ordered, cfg.OverlapThreshold),
		today,
		cfg.LookbackDays,
	)
	report.Months = distributeMonths(report.Periods)
	report.Years = rollupYears(report.Months)
	report.Summary = summarize(ordered, today)

	return report
}

// summarize computes the overall scalars from first purchase through today.
func summarize(ordered []models.Purchase, today time.Time) models.Summary {
	s := models.Summary{
		Purchases:     len(ordered),
		FirstPurchase: ordered[0].Date,
		LastPurchase:  ordered[len(ordered)-1].Date,
	}
	for _, p := range ordered {
		s.TotalOunces += p.Ounces
		s.TotalCost += p.Cost
	}

	days := models.DaysBetween(s.FirstPurchase, today)
	if days < 1 {
		days = 1
	}
	s.OuncesPerDay = s.TotalOunces / float64(days)
	s.CostPerDay = s.TotalCost / float64(days)
	return s
}
