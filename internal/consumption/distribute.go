package consumption

import (
	"sort"
	"time"

	"beanwatch/internal/models"
)

// distributeMonths spreads each period's ounces and cost across the calendar
// months it covers, weighted by day overlap.
//
// The walk cuts at the last day of each month, so the day that spans a month
// boundary is credited to the later month: a period covering Jan 20 – Feb 10
// puts 11 days in January (20th through the 31st) and 10 in February. Chunk
// day counts sum to the period's day count, which keeps the total ounces and
// cost over all buckets equal to the totals over all purchases.
func distributeMonths(periods []models.ConsumptionPeriod) []models.MonthTotal {
	buckets := make(map[time.Time]*models.MonthTotal)

	for _, p := range periods {
		start := models.DateOnly(p.Start)
		end := models.DateOnly(p.End)
		// A same-day period still represents one day of consumption.
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}

		ozRate := p.OuncesPerDay()
		costRate := p.CostPerDay()

		cursor := start
		month := models.FirstOfMonth(start)
		for cursor.Before(end) {
			cut := models.LastOfMonth(month)
			segEnd := cut
			if end.Before(cut) {
				segEnd = end
			}

			if days := models.DaysBetween(cursor, segEnd); days > 0 {
				b := buckets[month]
				if b == nil {
					b = &models.MonthTotal{Month: month}
					buckets[month] = b
				}
				b.Days += days
				b.Ounces += float64(days) * ozRate
				b.Cost += float64(days) * costRate
				cursor = segEnd
			}

			month = month.AddDate(0, 1, 0)
		}
	}

	months := make([]models.MonthTotal, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.Before(months[j].Month)
	})
	return months
}

// rollupYears sums month buckets into year buckets.
func rollupYears(months []models.MonthTotal) []models.YearTotal {
	buckets := make(map[int]*models.YearTotal)

	for _, m := range months {
		year := m.Month.Year()
		b := buckets[year]
		if b == nil {
			b = &models.YearTotal{Year: year}
			buckets[year] = b
		}
		b.Ounces += m.Ounces
		b.Cost += m.Cost
		b.Days += m.Days
	}

	years := make([]models.YearTotal, 0, len(buckets))
	for _, b := range buckets {
		years = append(years, *b)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})
	return years
}
