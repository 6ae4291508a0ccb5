package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"beanwatch/internal/consumption"
	"beanwatch/internal/models"
	"beanwatch/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// PurchasesLoadedMsg contains the loaded purchase log.
type PurchasesLoadedMsg struct {
	Purchases []models.Purchase
	Stats     services.StatsEvent
}

// ReportLoadedMsg contains the rebuilt consumption report.
type ReportLoadedMsg struct {
	Report *consumption.Report
}

// ReloadResultMsg contains the result of a forced log reload.
type ReloadResultMsg struct {
	Success bool
	Error   error
}

// AddPurchaseResultMsg contains the result of appending a purchase.
type AddPurchaseResultMsg struct {
	Purchase models.Purchase
	Success  bool
	Error    error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "purchases", "report"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// TimeRangeChangedMsg signals the history time range selection changed.
type TimeRangeChangedMsg struct {
	Range models.TimeRange
}

// SelectedPeriodChangedMsg signals that the selected period in the UI changed.
type SelectedPeriodChangedMsg struct {
	Index int
}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}
