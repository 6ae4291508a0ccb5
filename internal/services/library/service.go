// Package library manages the purchase log with file watching and persistence.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"beanwatch/internal/db"
	"beanwatch/internal/importer"
	"beanwatch/internal/logger"
	"beanwatch/internal/models"
)

// Event represents a library service event.
type Event struct {
	Type  EventType
	Error error
}

// EventType defines the type of library event.
type EventType int

const (
	EventPurchasesLoaded EventType = iota
	EventPurchasesChanged
	EventPurchaseAdded
	EventError
)

// Service manages the purchase log with file watching and change notifications.
// The log file is the source of truth; the database mirrors it for queries.
type Service struct {
	mu            sync.RWMutex
	purchases     []models.Purchase
	filePath      string
	database      *db.DB
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a new library service and starts file watching.
func New(filePath string, database *db.DB) (*Service, error) {
	s := &Service{
		purchases: make([]models.Purchase, 0),
		filePath:  filePath,
		database:  database,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Load purchases from file
	if err := s.loadPurchases(); err != nil {
		// If file doesn't exist, start with an empty log
		if os.IsNotExist(err) {
			if err := os.WriteFile(filePath, nil, 0o600); err != nil {
				return nil, fmt.Errorf("failed to create log file: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to load purchases: %w", err)
		}
	}

	// Start file watcher
	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventPurchasesLoaded})

	return s, nil
}

// Events returns the event channel for subscribing to purchase changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the watched log file path.
func (s *Service) Path() string {
	return s.filePath
}

// GetPurchases returns a copy of all purchases in date order.
func (s *Service) GetPurchases() []models.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]models.Purchase, len(s.purchases))
	copy(purchases, s.purchases)
	return purchases
}

// Count returns the number of purchases.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.purchases)
}

// AddPurchase appends a purchase to the log file. The watcher picks up the
// write and triggers a reload, so the in-memory state follows the file.
func (s *Service) AddPurchase(p models.Purchase) error {
	if p.Date.IsZero() {
		return fmt.Errorf("purchase has no date")
	}
	if p.Ounces < 0 || p.Cost < 0 {
		return fmt.Errorf("purchase has negative size or cost")
	}

	line := fmt.Sprintf("%s,%s,%s,%g,%g\n",
		p.Date.Format("2006-01-02"), p.Roaster, p.Name, p.Ounces, p.Cost)

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append purchase: %w", err)
	}

	s.sendEvent(Event{Type: EventPurchaseAdded})
	return nil
}

// Reload forces a reload of the log file.
func (s *Service) Reload() error {
	if err := s.loadPurchases(); err != nil {
		return err
	}
	s.sendEvent(Event{Type: EventPurchasesChanged})
	return nil
}

// loadPurchases reads the log file and mirrors it into the database.
func (s *Service) loadPurchases() error {
	if _, err := os.Stat(s.filePath); err != nil {
		return err
	}

	purchases, err := importer.LoadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.purchases = purchases
	s.mu.Unlock()

	if s.database != nil {
		if err := s.database.ReplacePurchases(purchases); err != nil {
			logger.Error("failed to sync purchases to database", "error", err)
		}
	}

	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation/deletion)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about our log file
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads purchases after an external change.
func (s *Service) handleFileChange() {
	if err := s.loadPurchases(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	s.sendEvent(Event{Type: EventPurchasesChanged})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
