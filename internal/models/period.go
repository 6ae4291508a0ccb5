package models

import "time"

// ConsumptionPeriod is a contiguous date range during which one or more
// purchased bags are modeled as being consumed concurrently. Start is the
// date of the first member purchase. End is the date the next period begins,
// or — for the open final period — either "today" or a projected completion
// date (Projected is true in the latter case). The range is end-exclusive.
type ConsumptionPeriod struct {
	Members   []Purchase
	Start     time.Time
	End       time.Time
	Projected bool
}

// Days returns the period length in whole days, clamped to at least 1 so a
// same-day period never divides by zero.
func (p ConsumptionPeriod) Days() int {
	days := DaysBetween(p.Start, p.End)
	if days < 1 {
		return 1
	}
	return days
}

// MemberCount returns the number of purchases in the period.
func (p ConsumptionPeriod) MemberCount() int {
	return len(p.Members)
}

// TotalOunces returns the summed size of all member purchases.
func (p ConsumptionPeriod) TotalOunces() float64 {
	var total float64
	for _, m := range p.Members {
		total += m.Ounces
	}
	return total
}

// TotalCost returns the summed cost of all member purchases.
func (p ConsumptionPeriod) TotalCost() float64 {
	var total float64
	for _, m := range p.Members {
		total += m.Cost
	}
	return total
}

// OuncesPerDay returns the period's consumption rate in ounces per day.
func (p ConsumptionPeriod) OuncesPerDay() float64 {
	return p.TotalOunces() / float64(p.Days())
}

// CostPerDay returns the period's spend rate per day.
func (p ConsumptionPeriod) CostPerDay() float64 {
	return p.TotalCost() / float64(p.Days())
}

// Simultaneous reports whether more than one bag was open at once.
func (p ConsumptionPeriod) Simultaneous() bool {
	return len(p.Members) > 1
}
