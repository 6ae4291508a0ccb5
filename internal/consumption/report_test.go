package consumption

import (
	"math"
	"reflect"
	"testing"
	"time"

	"beanwatch/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approx(t *testing.T, got, want float64, context string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", context, got, want)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, date(2024, time.March, 1), DefaultConfig())

	if len(report.Periods) != 0 {
		t.Errorf("Expected no periods, got %d", len(report.Periods))
	}
	if len(report.Months) != 0 || len(report.Years) != 0 {
		t.Error("Expected no calendar buckets for empty input")
	}
	if report.Summary.Purchases != 0 || report.Summary.TotalCost != 0 {
		t.Error("Expected zero summary for empty input")
	}
	if report.CurrentPeriod() != nil {
		t.Error("Expected nil current period for empty input")
	}
}

func TestBuildReport_SinglePurchase(t *testing.T) {
	day := date(2024, time.March, 1)
	purchases := []models.Purchase{{Date: day, Ounces: 12, Cost: 18}}

	report := BuildReport(purchases, day, DefaultConfig())

	if len(report.Periods) != 1 {
		t.Fatalf("Expected 1 period, got %d", len(report.Periods))
	}
	p := report.Periods[0]
	if !p.Start.Equal(day) || !p.End.Equal(day) {
		t.Errorf("Expected start=end=%v, got start=%v end=%v", day, p.Start, p.End)
	}
	if p.Projected {
		t.Error("A lone period has no history to project from")
	}
	if p.Days() != 1 {
		t.Errorf("Expected clamped 1 day, got %d", p.Days())
	}
	approx(t, p.OuncesPerDay(), 12, "ounces per day")
	approx(t, p.CostPerDay(), 18, "cost per day")
}

func TestSegment_MergesFastCadence(t *testing.T) {
	// 10 oz after 1 day means 10 oz/day, far above the 3 oz/day threshold:
	// the second bag must have been opened alongside the first.
	purchases := []models.Purchase{
		{Date: date(2024, time.January, 1), Ounces: 10},
		{Date: date(2024, time.January, 2), Ounces: 10},
	}

	periods := segment(purchases, 3.0)
	if len(periods) != 1 {
		t.Fatalf("Expected 1 merged period, got %d", len(periods))
	}
	if periods[0].MemberCount() != 2 {
		t.Errorf("Expected 2 members, got %d", periods[0].MemberCount())
	}
	if !periods[0].Simultaneous() {
		t.Error("Expected a simultaneous period")
	}
}

func TestSegment_SplitsSlowCadence(t *testing.T) {
	// 10 oz over 5 days is 2 oz/day, under the threshold: two periods.
	first := date(2024, time.January, 1)
	second := date(2024, time.January, 6)
	purchases := []models.Purchase{
		{Date: first, Ounces: 10},
		{Date: second, Ounces: 10},
	}

	periods := segment(purchases, 3.0)
	if len(periods) != 2 {
		t.Fatalf("Expected 2 periods, got %d", len(periods))
	}
	if !periods[0].End.Equal(second) {
		t.Errorf("First period should close at the next purchase date, got %v", periods[0].End)
	}
	if !periods[1].Start.Equal(second) {
		t.Errorf("Second period should start at its first member date, got %v", periods[1].Start)
	}
	if periods[0].Days() != 5 {
		t.Errorf("Expected 5 days, got %d", periods[0].Days())
	}
}

func TestSegment_SameDayForcesMerge(t *testing.T) {
	day := date(2024, time.January, 1)
	purchases := []models.Purchase{
		{Date: day, Ounces: 0.5},
		{Date: day, Ounces: 0.5},
	}

	periods := segment(purchases, 3.0)
	if len(periods) != 1 {
		t.Fatalf("Expected same-day purchases to merge, got %d periods", len(periods))
	}
}

func TestSegment_ThresholdGoverning(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		gapDays   int
		ounces    float64
		want      int // period count
	}{
		{"rate above threshold merges", 3.0, 2, 10, 1},
		{"rate at threshold splits", 5.0, 2, 10, 2},
		{"rate below threshold splits", 12.0, 2, 10, 2},
		{"zero quantity never merges on rate", 3.0, 2, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchases := []models.Purchase{
				{Date: date(2024, time.May, 1), Ounces: tt.ounces},
				{Date: date(2024, time.May, 1+tt.gapDays), Ounces: tt.ounces},
			}
			periods := segment(purchases, tt.threshold)
			if len(periods) != tt.want {
				t.Errorf("Expected %d periods, got %d", tt.want, len(periods))
			}
		})
	}
}

func TestBuildReport_ProjectsFinalPeriod(t *testing.T) {
	// Closed period: 30 oz over 10 days = 3 oz/day, fully inside the
	// 30-day lookback window. The open 30 oz bag should last 10 more days.
	start := date(2024, time.April, 1)
	next := date(2024, time.April, 11)
	purchases := []models.Purchase{
		{Date: start, Ounces: 30, Cost: 40},
		{Date: next, Ounces: 30, Cost: 40},
	}

	report := BuildReport(purchases, date(2024, time.April, 15), DefaultConfig())
	if len(report.Periods) != 2 {
		t.Fatalf("Expected 2 periods, got %d", len(report.Periods))
	}

	final := report.Periods[1]
	if !final.Projected {
		t.Fatal("Expected the final period to be projected")
	}
	wantEnd := next.AddDate(0, 0, 10)
	if !final.End.Equal(wantEnd) {
		t.Errorf("Expected projected end %v, got %v", wantEnd, final.End)
	}
}

func TestBuildReport_ProjectionUsesTrailingWindowOnly(t *testing.T) {
	// An old faster period entirely outside the lookback window must not
	// influence the projection; only the recent slow period counts.
	purchases := []models.Purchase{
		{Date: date(2024, time.January, 1), Ounces: 20},  // 2 oz/day for 10 days
		{Date: date(2024, time.January, 11), Ounces: 20}, // then 0.2 oz/day for 100 days
		{Date: date(2024, time.April, 20), Ounces: 10},
	}

	report := BuildReport(purchases, date(2024, time.April, 25), DefaultConfig())
	if len(report.Periods) != 3 {
		t.Fatalf("Expected 3 periods, got %d", len(report.Periods))
	}
	final := report.Periods[2]
	if !final.Projected {
		t.Fatal("Expected a projection")
	}

	// Window [Mar 21, Apr 20) overlaps only the 0.2 oz/day period, so the
	// 10 oz bag projects to ceil(10/0.2) = 50 days.
	wantEnd := date(2024, time.April, 20).AddDate(0, 0, 50)
	if !final.End.Equal(wantEnd) {
		t.Errorf("Expected projected end %v, got %v", wantEnd, final.End)
	}
}

func TestBuildReport_ZeroRateWindowFallsBackToToday(t *testing.T) {
	// The only closed period carries zero ounces, so the trailing average
	// is zero and projecting would divide by zero.
	today := date(2024, time.June, 1)
	purchases := []models.Purchase{
		{Date: date(2024, time.May, 1), Ounces: 0, Cost: 5},
		{Date: date(2024, time.May, 20), Ounces: 12, Cost: 16},
	}

	report := BuildReport(purchases, today, DefaultConfig())
	final := report.Periods[len(report.Periods)-1]
	if final.Projected {
		t.Error("Expected no projection from a zero-rate window")
	}
	if !final.End.Equal(today) {
		t.Errorf("Expected fallback end %v, got %v", today, final.End)
	}
}

func TestTrailingRate_NoWindowOverlap(t *testing.T) {
	// A closed period that ended long before the window opens contributes
	// nothing, so no rate can be estimated.
	closed := []models.ConsumptionPeriod{{
		Members: []models.Purchase{{Date: date(2023, time.January, 1), Ounces: 12}},
		Start:   date(2023, time.January, 1),
		End:     date(2023, time.February, 1),
	}}

	if _, ok := trailingRate(closed, date(2024, time.July, 1), 30); ok {
		t.Error("Expected no trailing rate when history predates the window")
	}
}

func TestTrailingRate_PartialOverlapIsDayWeighted(t *testing.T) {
	// 13 days of a 0.5 oz/day period fall inside the window alongside 17
	// days at 1.0 oz/day; the average weights each by its overlap.
	closed := []models.ConsumptionPeriod{
		{
			Members: []models.Purchase{{Date: date(2024, time.January, 1), Ounces: 22}},
			Start:   date(2024, time.January, 1), // 44 days at 0.5 oz/day
			End:     date(2024, time.February, 14),
		},
		{
			Members: []models.Purchase{{Date: date(2024, time.February, 14), Ounces: 17}},
			Start:   date(2024, time.February, 14), // 17 days at 1.0 oz/day
			End:     date(2024, time.March, 2),
		},
	}

	avg, ok := trailingRate(closed, date(2024, time.March, 2), 30)
	if !ok {
		t.Fatal("Expected a trailing rate")
	}
	want := (13*0.5 + 17*1.0) / 30.0
	if math.Abs(avg-want) > 1e-9 {
		t.Errorf("Expected day-weighted average %v, got %v", want, avg)
	}
}

func TestDistributeMonths_BoundarySplit(t *testing.T) {
	// 21 days at 1 oz/day from Jan 20 to Feb 10: January covers the 20th
	// through the 31st (11 days), February the rest (10 days).
	period := models.ConsumptionPeriod{
		Members: []models.Purchase{{Date: date(2024, time.January, 20), Ounces: 21, Cost: 21}},
		Start:   date(2024, time.January, 20),
		End:     date(2024, time.February, 10),
	}

	months := distributeMonths([]models.ConsumptionPeriod{period})
	if len(months) != 2 {
		t.Fatalf("Expected 2 month buckets, got %d", len(months))
	}

	jan, feb := months[0], months[1]
	if jan.Key() != "2024-01" || feb.Key() != "2024-02" {
		t.Fatalf("Unexpected bucket keys: %s, %s", jan.Key(), feb.Key())
	}
	if jan.Days != 11 || feb.Days != 10 {
		t.Errorf("Expected 11/10 day split, got %d/%d", jan.Days, feb.Days)
	}
	approx(t, jan.Ounces, 11, "january ounces")
	approx(t, feb.Ounces, 10, "february ounces")
	approx(t, jan.Ounces+feb.Ounces, period.TotalOunces(), "ounce conservation")
	approx(t, jan.Cost+feb.Cost, period.TotalCost(), "cost conservation")
}

func TestDistributeMonths_SingleMonthPeriodStaysWhole(t *testing.T) {
	period := models.ConsumptionPeriod{
		Members: []models.Purchase{{Date: date(2024, time.March, 5), Ounces: 12, Cost: 17}},
		Start:   date(2024, time.March, 5),
		End:     date(2024, time.March, 20),
	}

	months := distributeMonths([]models.ConsumptionPeriod{period})
	if len(months) != 1 {
		t.Fatalf("Expected 1 month bucket, got %d", len(months))
	}
	approx(t, months[0].Ounces, 12, "ounces")
	approx(t, months[0].Cost, 17, "cost")
	if months[0].Days != 15 {
		t.Errorf("Expected 15 days, got %d", months[0].Days)
	}
}

func TestDistributeMonths_SameDayPeriodCountsOneDay(t *testing.T) {
	day := date(2024, time.March, 15)
	period := models.ConsumptionPeriod{
		Members: []models.Purchase{{Date: day, Ounces: 8, Cost: 12}},
		Start:   day,
		End:     day,
	}

	months := distributeMonths([]models.ConsumptionPeriod{period})
	if len(months) != 1 {
		t.Fatalf("Expected 1 month bucket, got %d", len(months))
	}
	if months[0].Key() != "2024-03" {
		t.Errorf("Expected the start month, got %s", months[0].Key())
	}
	if months[0].Days != 1 {
		t.Errorf("Expected 1 effective day, got %d", months[0].Days)
	}
	approx(t, months[0].Ounces, 8, "ounces")
}

func TestBuildReport_Conservation(t *testing.T) {
	purchases := []models.Purchase{
		{Date: date(2023, time.November, 3), Ounces: 12, Cost: 17.5},
		{Date: date(2023, time.November, 20), Ounces: 10, Cost: 14},
		{Date: date(2023, time.December, 28), Ounces: 12, Cost: 19},
		{Date: date(2023, time.December, 30), Ounces: 8, Cost: 11.25}, // merges: 2-day gap
		{Date: date(2024, time.January, 25), Ounces: 12, Cost: 16},
		{Date: date(2024, time.February, 14), Ounces: 0, Cost: 0}, // degenerate freebie
		{Date: date(2024, time.March, 2), Ounces: 10, Cost: 15},
	}

	var wantOunces, wantCost float64
	for _, p := range purchases {
		wantOunces += p.Ounces
		wantCost += p.Cost
	}

	report := BuildReport(purchases, date(2024, time.March, 10), DefaultConfig())

	var periodOunces, periodCost float64
	for _, p := range report.Periods {
		periodOunces += p.TotalOunces()
		periodCost += p.TotalCost()
	}
	approx(t, periodOunces, wantOunces, "period ounce conservation")
	approx(t, periodCost, wantCost, "period cost conservation")

	var monthOunces, monthCost float64
	var monthDays int
	for _, m := range report.Months {
		monthOunces += m.Ounces
		monthCost += m.Cost
		monthDays += m.Days
		if m.Days <= 0 {
			t.Errorf("Bucket %s emitted with non-positive day count", m.Key())
		}
	}
	approx(t, monthOunces, wantOunces, "month ounce conservation")
	approx(t, monthCost, wantCost, "month cost conservation")

	var periodDays int
	for _, p := range report.Periods {
		periodDays += p.Days()
	}
	if monthDays != periodDays {
		t.Errorf("Month day counts %d do not reconstruct period days %d", monthDays, periodDays)
	}

	var yearOunces, yearCost float64
	for _, y := range report.Years {
		yearOunces += y.Ounces
		yearCost += y.Cost
	}
	approx(t, yearOunces, wantOunces, "year ounce conservation")
	approx(t, yearCost, wantCost, "year cost conservation")
}

func TestBuildReport_ZeroQuantityProducesNoNaN(t *testing.T) {
	purchases := []models.Purchase{
		{Date: date(2024, time.January, 1), Ounces: 0, Cost: 0},
	}
	report := BuildReport(purchases, date(2024, time.January, 1), DefaultConfig())

	p := report.Periods[0]
	if math.IsNaN(p.OuncesPerDay()) || math.IsInf(p.OuncesPerDay(), 0) {
		t.Error("Zero quantity must not produce NaN/Inf rates")
	}
	for _, m := range report.Months {
		if math.IsNaN(m.OuncesPerDay()) {
			t.Errorf("Bucket %s has NaN rate", m.Key())
		}
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	purchases := []models.Purchase{
		{Date: date(2024, time.January, 5), Ounces: 12, Cost: 18},
		{Date: date(2024, time.January, 6), Ounces: 10, Cost: 15},
		{Date: date(2024, time.February, 20), Ounces: 12, Cost: 17},
	}
	now := date(2024, time.March, 1)

	first := BuildReport(purchases, now, DefaultConfig())
	second := BuildReport(purchases, now, DefaultConfig())

	if !reflect.DeepEqual(first, second) {
		t.Error("Same input and reference date must produce identical reports")
	}
}

func TestBuildReport_UnorderedInputIsSorted(t *testing.T) {
	purchases := []models.Purchase{
		{Date: date(2024, time.February, 20), Ounces: 12, Cost: 17},
		{Date: date(2024, time.January, 5), Ounces: 12, Cost: 18},
	}

	report := BuildReport(purchases, date(2024, time.March, 1), DefaultConfig())
	if len(report.Periods) == 0 {
		t.Fatal("Expected periods")
	}
	if !report.Periods[0].Start.Equal(date(2024, time.January, 5)) {
		t.Errorf("Expected the earliest purchase to start the first period, got %v",
			report.Periods[0].Start)
	}
	// Caller's slice order must be untouched.
	if !purchases[0].Date.Equal(date(2024, time.February, 20)) {
		t.Error("Input slice was mutated")
	}
}

func TestSummarize(t *testing.T) {
	purchases := []models.Purchase{
		{Date: date(2024, time.January, 1), Ounces: 12, Cost: 20},
		{Date: date(2024, time.January, 11), Ounces: 8, Cost: 10},
	}

	report := BuildReport(purchases, date(2024, time.January, 21), DefaultConfig())
	s := report.Summary

	if s.Purchases != 2 {
		t.Errorf("Expected 2 purchases, got %d", s.Purchases)
	}
	approx(t, s.TotalOunces, 20, "total ounces")
	approx(t, s.TotalCost, 30, "total cost")
	// 20 days from first purchase through the reference date.
	approx(t, s.OuncesPerDay, 1.0, "overall ounces per day")
	approx(t, s.CostPerDay, 1.5, "overall cost per day")
	if !s.FirstPurchase.Equal(date(2024, time.January, 1)) {
		t.Errorf("Unexpected first purchase date %v", s.FirstPurchase)
	}
	if !s.LastPurchase.Equal(date(2024, time.January, 11)) {
		t.Errorf("Unexpected last purchase date %v", s.LastPurchase)
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{}.normalize()
	if cfg.OverlapThreshold != DefaultOverlapThreshold {
		t.Errorf("Expected default threshold, got %v", cfg.OverlapThreshold)
	}
	if cfg.LookbackDays != DefaultLookbackDays {
		t.Errorf("Expected default lookback, got %v", cfg.LookbackDays)
	}

	cfg = Config{OverlapThreshold: 5, LookbackDays: 14}.normalize()
	if cfg.OverlapThreshold != 5 || cfg.LookbackDays != 14 {
		t.Error("Explicit values must be preserved")
	}
}
