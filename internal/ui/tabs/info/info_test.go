package info

import (
	"strings"
	"testing"

	"beanwatch/internal/app"
	"beanwatch/internal/config"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{}
	m := New(state, cfg)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{
		PurchasesPath:    "/tmp/coffee.csv",
		DatabasePath:     "/tmp/beanwatch.db",
		OverlapThreshold: 3.0,
		LookbackDays:     30,
		LowStockDays:     3,
	}
	m := New(state, cfg)
	m.SetSize(80, 24)

	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
	if !strings.Contains(view, "coffee.csv") {
		t.Error("View should show the purchase log path")
	}
	if !strings.Contains(view, "Log Format") {
		t.Error("View should document the log format")
	}
}

func TestModel_View_NilConfig(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("View should show the missing-config hint")
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
