package models

import (
	"fmt"
	"time"
)

// MonthTotal accumulates the day-weighted share of consumption periods that
// falls inside one calendar month. Days is the number of period days the
// month covers; it is always positive for an emitted bucket.
type MonthTotal struct {
	Month  time.Time // first day of the month, UTC
	Ounces float64
	Cost   float64
	Days   int
}

// Key returns the bucket key in "YYYY-MM" form.
func (m MonthTotal) Key() string {
	return m.Month.Format("2006-01")
}

// OuncesPerDay returns the month's average consumption rate.
func (m MonthTotal) OuncesPerDay() float64 {
	if m.Days == 0 {
		return 0
	}
	return m.Ounces / float64(m.Days)
}

// CostPerDay returns the month's average spend rate.
func (m MonthTotal) CostPerDay() float64 {
	if m.Days == 0 {
		return 0
	}
	return m.Cost / float64(m.Days)
}

// YearTotal is the additive roll-up of a year's month buckets.
type YearTotal struct {
	Year   int
	Ounces float64
	Cost   float64
	Days   int
}

// Key returns the bucket key in "YYYY" form.
func (y YearTotal) Key() string {
	return fmt.Sprintf("%d", y.Year)
}

// OuncesPerDay returns the year's average consumption rate.
func (y YearTotal) OuncesPerDay() float64 {
	if y.Days == 0 {
		return 0
	}
	return y.Ounces / float64(y.Days)
}

// CostPerDay returns the year's average spend rate.
func (y YearTotal) CostPerDay() float64 {
	if y.Days == 0 {
		return 0
	}
	return y.Cost / float64(y.Days)
}

// Summary holds overall scalars across the whole purchase history.
type Summary struct {
	Purchases     int
	TotalOunces   float64
	TotalCost     float64
	OuncesPerDay  float64
	CostPerDay    float64
	FirstPurchase time.Time
	LastPurchase  time.Time
}
