// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"beanwatch/internal/config"
	"beanwatch/internal/consumption"
	"beanwatch/internal/db"
	"beanwatch/internal/models"
	"beanwatch/internal/services/library"
	"beanwatch/internal/services/stats"
)

type (
	// PurchasesChangedEvent is emitted when the purchase log changes.
	PurchasesChangedEvent struct {
		Purchases []models.Purchase
	}

	// ReportUpdatedEvent is emitted when the consumption report is rebuilt.
	ReportUpdatedEvent struct {
		Report *consumption.Report
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent carries the headline scalars for the status bar.
	StatsEvent struct {
		PurchaseCount int
		TotalOunces   float64
		TotalCost     float64
		DaysRemaining int
		HasProjection bool
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (PurchasesChangedEvent) isServiceEvent() {}
func (ReportUpdatedEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()            {}
func (StatsEvent) isServiceEvent()            {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu           sync.RWMutex
	library      *library.Service
	stats        *stats.Service
	database     *db.DB
	lowStockDays int
	eventChan    chan ServiceEvent
	stopChan     chan struct{}
	subscribers  []chan<- ServiceEvent

	prevDaysLeft    int
	prevDaysKnown   bool
	notificationsOn bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		lowStockDays:    cfg.LowStockDays,
		eventChan:       make(chan ServiceEvent, 100),
		stopChan:        make(chan struct{}),
		notificationsOn: true,
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.library, err = library.New(cfg.PurchasesPath, m.database)
	if err != nil {
		return nil, err
	}

	m.stats = stats.New(consumption.Config{
		OverlapThreshold: cfg.OverlapThreshold,
		LookbackDays:     cfg.LookbackDays,
	})
	m.stats.Rebuild(m.library.GetPurchases())

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.library.Events():
			m.handleLibraryEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleLibraryEvent converts and broadcasts purchase log events.
func (m *Manager) handleLibraryEvent(event library.Event) {
	switch event.Type {
	case library.EventPurchasesLoaded, library.EventPurchasesChanged,
		library.EventPurchaseAdded:
		m.refresh()

	case library.EventError:
		m.broadcast(ErrorEvent{
			Service: "library",
			Error:   event.Error,
		})
	}
}

// refresh rebuilds the report from the current purchases and broadcasts.
func (m *Manager) refresh() {
	purchases := m.library.GetPurchases()
	report := m.stats.Rebuild(purchases)

	m.broadcast(PurchasesChangedEvent{Purchases: purchases})
	m.broadcast(ReportUpdatedEvent{Report: report})
	m.broadcast(m.GetStats())

	m.checkNotifications()
}

// checkNotifications fires a desktop notification when the projected
// depletion date crosses below the low stock threshold.
func (m *Manager) checkNotifications() {
	days, ok := m.stats.DaysRemaining()

	m.mu.Lock()
	prevDays, prevKnown := m.prevDaysLeft, m.prevDaysKnown
	m.prevDaysLeft, m.prevDaysKnown = days, ok
	enabled := m.notificationsOn
	m.mu.Unlock()

	if !enabled || !ok || !prevKnown {
		return
	}

	// Only notify when we cross the threshold downwards
	if days <= m.lowStockDays && prevDays > m.lowStockDays {
		title := "Low Coffee Stock"
		body := fmt.Sprintf("Current beans run out in about %d day(s).", days)
		_ = beeep.Notify(title, body, "")
	}
}

// SetNotifications toggles desktop notifications.
func (m *Manager) SetNotifications(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsOn = on
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// GetPurchases returns the current purchase list.
func (m *Manager) GetPurchases() []models.Purchase {
	return m.library.GetPurchases()
}

// AddPurchase appends a purchase to the log. The report refresh follows via
// the library's file watcher.
func (m *Manager) AddPurchase(p models.Purchase) error {
	return m.library.AddPurchase(p)
}

// Report returns the current consumption report.
func (m *Manager) Report() *consumption.Report {
	return m.stats.Report()
}

// GetStats returns aggregated statistics.
func (m *Manager) GetStats() StatsEvent {
	summary := m.stats.Summary()
	days, ok := m.stats.DaysRemaining()

	return StatsEvent{
		PurchaseCount: summary.Purchases,
		TotalOunces:   summary.TotalOunces,
		TotalCost:     summary.TotalCost,
		DaysRemaining: days,
		HasProjection: ok,
	}
}

// Library returns the library service.
func (m *Manager) Library() *library.Service {
	return m.library
}

// Stats returns the stats service.
func (m *Manager) Stats() *stats.Service {
	return m.stats
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.library != nil {
		if err := m.library.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// InitialState returns the initial state for TUI initialization.
func (m *Manager) InitialState() ([]models.Purchase, *consumption.Report, StatsEvent) {
	return m.GetPurchases(), m.Report(), m.GetStats()
}
