// Package main is the entry point for the beanwatch TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"beanwatch/internal/app"
	"beanwatch/internal/config"
	"beanwatch/internal/services"
	"beanwatch/internal/ui/tabs/dashboard"
	"beanwatch/internal/ui/tabs/history"
	"beanwatch/internal/ui/tabs/info"
	"beanwatch/internal/ui/tabs/periods"
	"beanwatch/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the purchase log watcher and the report engine
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),
		periods.New(state),
		history.New(state, svcManager),
		info.New(state, cfg),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`beanwatch - coffee purchase log and consumption dashboard

Usage:
  beanwatch [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Periods, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  t               Cycle the history time range
  r               Reload the purchase log
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  BEANWATCH_PURCHASES_PATH  Purchase log (CSV) path
  BEANWATCH_DB_PATH         SQLite database path
  BEANWATCH_RATE_THRESHOLD  Oz/day rate above which purchases merge (default: 3.0)
  BEANWATCH_LOOKBACK_DAYS   Trailing window for projections (default: 30)
  BEANWATCH_LOW_STOCK_DAYS  Days-left threshold for desktop alerts (default: 3)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/beanwatch/.env
  - ~/.beanwatch/.env`)
}
