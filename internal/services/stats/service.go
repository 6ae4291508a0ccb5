// Package stats computes and caches consumption reports.
package stats

import (
	"sync"
	"time"

	"beanwatch/internal/consumption"
	"beanwatch/internal/models"
)

// Service owns the consumption report derived from the purchase log.
// Rebuilds are pure functions of the input, so the cache is always
// reproducible from the purchases and the clock.
type Service struct {
	mu     sync.RWMutex
	cfg    consumption.Config
	clock  func() time.Time
	report *consumption.Report
}

// New creates a stats service with the given segmentation config.
func New(cfg consumption.Config) *Service {
	return &Service{
		cfg:   cfg,
		clock: time.Now,
	}
}

// SetClock overrides the time source. Used by tests for deterministic reports.
func (s *Service) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// Rebuild recomputes the report from the given purchases and caches it.
func (s *Service) Rebuild(purchases []models.Purchase) *consumption.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := consumption.BuildReport(purchases, s.clock(), s.cfg)
	s.report = report
	return report
}

// Report returns the cached report, or nil before the first rebuild.
func (s *Service) Report() *consumption.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// CurrentPeriod returns the open consumption period, or nil when there is
// no report or no purchases.
func (s *Service) CurrentPeriod() *models.ConsumptionPeriod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.report == nil {
		return nil
	}
	return s.report.CurrentPeriod()
}

// DaysRemaining returns the projected days of coffee left in the current
// period. ok is false when there is no projected depletion date.
func (s *Service) DaysRemaining() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.report == nil {
		return 0, false
	}
	current := s.report.CurrentPeriod()
	if current == nil || !current.Projected {
		return 0, false
	}

	days := models.DaysBetween(models.DateOnly(s.report.GeneratedAt), current.End)
	if days < 0 {
		days = 0
	}
	return days, true
}

// MonthsInRange returns the month totals restricted to the given time range,
// measured back from the report's generation time.
func (s *Service) MonthsInRange(timeRange models.TimeRange) []models.MonthTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.report == nil {
		return nil
	}
	if timeRange == models.TimeRangeAllTime {
		out := make([]models.MonthTotal, len(s.report.Months))
		copy(out, s.report.Months)
		return out
	}

	cutoff := models.FirstOfMonth(s.report.GeneratedAt.AddDate(0, -timeRange.Months()+1, 0))
	var out []models.MonthTotal
	for _, m := range s.report.Months {
		if !m.Month.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

// Summary returns the lifetime summary scalars.
func (s *Service) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.report == nil {
		return models.Summary{}
	}
	return s.report.Summary
}
