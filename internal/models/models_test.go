package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, time.March, 1), date(2024, time.March, 1), 0},
		{"one day", date(2024, time.March, 1), date(2024, time.March, 2), 1},
		{"month boundary", date(2024, time.January, 20), date(2024, time.February, 10), 21},
		{"reversed", date(2024, time.March, 2), date(2024, time.March, 1), -1},
		{"ignores time of day", time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC), date(2024, time.March, 2), 1},
		{"leap february", date(2024, time.February, 1), date(2024, time.March, 1), 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMonthHelpers(t *testing.T) {
	d := date(2024, time.February, 15)
	if got := FirstOfMonth(d); !got.Equal(date(2024, time.February, 1)) {
		t.Errorf("FirstOfMonth = %v", got)
	}
	if got := LastOfMonth(d); !got.Equal(date(2024, time.February, 29)) {
		t.Errorf("LastOfMonth = %v", got)
	}
	if got := LastOfMonth(date(2023, time.February, 1)); !got.Equal(date(2023, time.February, 28)) {
		t.Errorf("LastOfMonth non-leap = %v", got)
	}
}

func TestPeriodDaysClamped(t *testing.T) {
	p := ConsumptionPeriod{
		Start: date(2024, time.March, 1),
		End:   date(2024, time.March, 1),
	}
	if p.Days() != 1 {
		t.Errorf("Expected same-day period to clamp to 1 day, got %d", p.Days())
	}

	p.End = date(2024, time.March, 8)
	if p.Days() != 7 {
		t.Errorf("Expected 7 days, got %d", p.Days())
	}
}

func TestPeriodTotals(t *testing.T) {
	p := ConsumptionPeriod{
		Members: []Purchase{
			{Ounces: 12, Cost: 18},
			{Ounces: 10, Cost: 14},
		},
		Start: date(2024, time.March, 1),
		End:   date(2024, time.March, 12),
	}

	if p.TotalOunces() != 22 {
		t.Errorf("TotalOunces = %v", p.TotalOunces())
	}
	if p.TotalCost() != 32 {
		t.Errorf("TotalCost = %v", p.TotalCost())
	}
	if !p.Simultaneous() {
		t.Error("Two members should be simultaneous")
	}
	if p.OuncesPerDay() != 2 {
		t.Errorf("OuncesPerDay = %v", p.OuncesPerDay())
	}
}

func TestSortPurchases_StableOnTies(t *testing.T) {
	day := date(2024, time.March, 1)
	purchases := []Purchase{
		{Date: date(2024, time.March, 5), Name: "later"},
		{Date: day, Name: "first"},
		{Date: day, Name: "second"},
	}

	SortPurchases(purchases)

	if purchases[0].Name != "first" || purchases[1].Name != "second" {
		t.Errorf("Tie order not preserved: %s, %s", purchases[0].Name, purchases[1].Name)
	}
	if purchases[2].Name != "later" {
		t.Errorf("Expected date order, got %s last", purchases[2].Name)
	}
}

func TestPurchaseLabel(t *testing.T) {
	tests := []struct {
		name     string
		purchase Purchase
		want     string
	}{
		{"both", Purchase{Roaster: "Heart", Name: "Colombia"}, "Heart Colombia"},
		{"roaster only", Purchase{Roaster: "Heart"}, "Heart"},
		{"name only", Purchase{Name: "Colombia"}, "Colombia"},
		{"neither", Purchase{}, "(unnamed)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.purchase.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBucketRatesGuardZeroDays(t *testing.T) {
	m := MonthTotal{Month: date(2024, time.March, 1)}
	if m.OuncesPerDay() != 0 || m.CostPerDay() != 0 {
		t.Error("Zero-day month bucket must report zero rates")
	}
	y := YearTotal{Year: 2024}
	if y.OuncesPerDay() != 0 || y.CostPerDay() != 0 {
		t.Error("Zero-day year bucket must report zero rates")
	}
}

func TestBucketKeys(t *testing.T) {
	m := MonthTotal{Month: date(2024, time.March, 1)}
	if m.Key() != "2024-03" {
		t.Errorf("MonthTotal.Key() = %q", m.Key())
	}
	y := YearTotal{Year: 2024}
	if y.Key() != "2024" {
		t.Errorf("YearTotal.Key() = %q", y.Key())
	}
}

func TestTimeRangeCycle(t *testing.T) {
	r := TimeRange12Months
	seen := map[TimeRange]bool{}
	for i := 0; i < 4; i++ {
		if seen[r] {
			t.Fatalf("Range %v repeated before cycling", r)
		}
		seen[r] = true
		r = r.Next()
	}
	if r != TimeRange12Months {
		t.Errorf("Expected cycle back to start, got %v", r)
	}
}

func TestTimeRangeMonths(t *testing.T) {
	if TimeRange12Months.Months() != 12 {
		t.Error("12 month range")
	}
	if TimeRangeAllTime.Months() != 0 {
		t.Error("All-time range should be unlimited")
	}
}
