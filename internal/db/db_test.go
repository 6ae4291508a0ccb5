package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"beanwatch/internal/models"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, db.Path())
	}

	// Verify file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("Nested directories were not created")
	}
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	var name string
	err := db.QueryRowContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type='table' AND name='purchases'").Scan(&name)
	if err != nil {
		t.Errorf("Table purchases does not exist: %v", err)
	}
}

func TestInsertAndGetPurchases(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	p := models.Purchase{
		Date:    time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Roaster: "Heart",
		Name:    "Colombia",
		Ounces:  12,
		Cost:    18.5,
	}

	if err := db.InsertPurchase(&p); err != nil {
		t.Fatalf("InsertPurchase failed: %v", err)
	}
	if p.ID == 0 {
		t.Error("Expected ID to be assigned")
	}

	purchases, err := db.GetPurchases()
	if err != nil {
		t.Fatalf("GetPurchases failed: %v", err)
	}
	if len(purchases) != 1 {
		t.Fatalf("Expected 1 purchase, got %d", len(purchases))
	}

	got := purchases[0]
	if !got.Date.Equal(p.Date) {
		t.Errorf("Date = %v, want %v", got.Date, p.Date)
	}
	if got.Roaster != "Heart" || got.Name != "Colombia" {
		t.Errorf("Unexpected fields %q %q", got.Roaster, got.Name)
	}
	if got.Ounces != 12 || got.Cost != 18.5 {
		t.Errorf("Unexpected numbers %v %v", got.Ounces, got.Cost)
	}
}

func TestGetPurchases_OrderedByDate(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	later := models.Purchase{Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Roaster: "Later"}
	earlier := models.Purchase{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), Roaster: "Earlier"}

	if err := db.InsertPurchase(&later); err != nil {
		t.Fatalf("InsertPurchase failed: %v", err)
	}
	if err := db.InsertPurchase(&earlier); err != nil {
		t.Fatalf("InsertPurchase failed: %v", err)
	}

	purchases, err := db.GetPurchases()
	if err != nil {
		t.Fatalf("GetPurchases failed: %v", err)
	}
	if purchases[0].Roaster != "Earlier" {
		t.Errorf("Expected date-ascending order, got %q first", purchases[0].Roaster)
	}
}

func TestReplacePurchases(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	old := models.Purchase{Date: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), Roaster: "Old"}
	if err := db.InsertPurchase(&old); err != nil {
		t.Fatalf("InsertPurchase failed: %v", err)
	}

	replacement := []models.Purchase{
		{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), Roaster: "A", Ounces: 12, Cost: 18},
		{Date: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), Roaster: "B", Ounces: 10, Cost: 17},
	}

	if err := db.ReplacePurchases(replacement); err != nil {
		t.Fatalf("ReplacePurchases failed: %v", err)
	}

	count, err := db.CountPurchases()
	if err != nil {
		t.Fatalf("CountPurchases failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 purchases after replace, got %d", count)
	}

	purchases, err := db.GetPurchases()
	if err != nil {
		t.Fatalf("GetPurchases failed: %v", err)
	}
	for _, p := range purchases {
		if p.Roaster == "Old" {
			t.Error("Old purchase survived replace")
		}
	}
}

func TestReplacePurchases_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	p := models.Purchase{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)}
	if err := db.InsertPurchase(&p); err != nil {
		t.Fatalf("InsertPurchase failed: %v", err)
	}

	if err := db.ReplacePurchases(nil); err != nil {
		t.Fatalf("ReplacePurchases failed: %v", err)
	}

	count, err := db.CountPurchases()
	if err != nil {
		t.Fatalf("CountPurchases failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty table, got %d rows", count)
	}
}

func TestGetPurchasesSince(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	purchases := []models.Purchase{
		{Date: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := db.ReplacePurchases(purchases); err != nil {
		t.Fatalf("ReplacePurchases failed: %v", err)
	}

	since := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	got, err := db.GetPurchasesSince(since)
	if err != nil {
		t.Fatalf("GetPurchasesSince failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 purchases on or after %v, got %d", since, len(got))
	}
}

func TestPurchaseDateRange(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	// Empty table
	_, _, ok, err := db.PurchaseDateRange()
	if err != nil {
		t.Fatalf("PurchaseDateRange failed: %v", err)
	}
	if ok {
		t.Error("Expected ok=false for empty table")
	}

	purchases := []models.Purchase{
		{Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := db.ReplacePurchases(purchases); err != nil {
		t.Fatalf("ReplacePurchases failed: %v", err)
	}

	first, last, ok, err := db.PurchaseDateRange()
	if err != nil {
		t.Fatalf("PurchaseDateRange failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true")
	}
	if !first.Equal(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected first date %v", first)
	}
	if !last.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected last date %v", last)
	}
}

func TestVacuum(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Verify database is closed by trying to query
	_, err := db.QueryContext(context.Background(), "SELECT 1")
	if err == nil {
		t.Error("Expected error querying closed database")
	}
}

// Helper to create a test database
func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}
