package models

import (
	"sort"
	"time"
)

// Purchase is a single coffee purchase record.
// Only Date, Ounces and Cost participate in consumption math; Roaster and
// Name are carried for display.
type Purchase struct {
	ID      int64
	Date    time.Time
	Roaster string
	Name    string
	Ounces  float64
	Cost    float64
}

// Label returns a display label for the purchase.
func (p Purchase) Label() string {
	switch {
	case p.Roaster != "" && p.Name != "":
		return p.Roaster + " " + p.Name
	case p.Roaster != "":
		return p.Roaster
	case p.Name != "":
		return p.Name
	default:
		return "(unnamed)"
	}
}

// SortPurchases orders purchases ascending by date. The sort is stable so
// same-day purchases keep their input order.
func SortPurchases(purchases []Purchase) {
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Date.Before(purchases[j].Date)
	})
}
