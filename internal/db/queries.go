package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"beanwatch/internal/logger"
	"beanwatch/internal/models"
)

// dateFormat is how purchase dates are stored; it sorts lexicographically.
const dateFormat = "2006-01-02"

// InsertPurchase adds a single purchase record.
func (db *DB) InsertPurchase(p *models.Purchase) error {
	query := `
		INSERT INTO purchases (date, roaster, name, ounces, cost)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(context.Background(), query,
		p.Date.Format(dateFormat),
		p.Roaster,
		p.Name,
		p.Ounces,
		p.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		p.ID = id
	}

	return nil
}

// ReplacePurchases swaps the whole purchases table for the given records in
// one transaction. The log file is the source of truth; a reload replaces
// rather than merges.
func (db *DB) ReplacePurchases(purchases []models.Purchase) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM purchases"); err != nil {
		return fmt.Errorf("failed to clear purchases: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO purchases (date, roaster, name, ounces, cost)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range purchases {
		if _, err := stmt.Exec(
			p.Date.Format(dateFormat),
			p.Roaster,
			p.Name,
			p.Ounces,
			p.Cost,
		); err != nil {
			return fmt.Errorf("failed to insert purchase: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchases: %w", err)
	}
	return nil
}

// GetPurchases returns all purchases ordered by date, then insertion order.
func (db *DB) GetPurchases() ([]models.Purchase, error) {
	query := `
		SELECT id, date, roaster, name, ounces, cost
		FROM purchases
		ORDER BY date, id
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var purchases []models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

// GetPurchasesSince returns purchases dated on or after the given date.
func (db *DB) GetPurchasesSince(since time.Time) ([]models.Purchase, error) {
	query := `
		SELECT id, date, roaster, name, ounces, cost
		FROM purchases
		WHERE date >= ?
		ORDER BY date, id
	`

	rows, err := db.QueryContext(context.Background(), query, since.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var purchases []models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

// CountPurchases returns the number of stored purchases.
func (db *DB) CountPurchases() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM purchases").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

// PurchaseDateRange returns the earliest and latest purchase dates. ok is
// false when the table is empty.
func (db *DB) PurchaseDateRange() (first, last time.Time, ok bool, err error) {
	var minStr, maxStr sql.NullString
	err = db.QueryRowContext(context.Background(),
		"SELECT MIN(date), MAX(date) FROM purchases").Scan(&minStr, &maxStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query date range: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	first, err = time.ParseInLocation(dateFormat, minStr.String, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("corrupt date %q: %w", minStr.String, err)
	}
	last, err = time.ParseInLocation(dateFormat, maxStr.String, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("corrupt date %q: %w", maxStr.String, err)
	}
	return first, last, true, nil
}

func scanPurchase(rows *sql.Rows) (models.Purchase, error) {
	var p models.Purchase
	var dateStr string

	if err := rows.Scan(&p.ID, &dateStr, &p.Roaster, &p.Name, &p.Ounces, &p.Cost); err != nil {
		return models.Purchase{}, fmt.Errorf("failed to scan purchase: %w", err)
	}

	date, err := time.ParseInLocation(dateFormat, dateStr, time.UTC)
	if err != nil {
		return models.Purchase{}, fmt.Errorf("corrupt date %q: %w", dateStr, err)
	}
	p.Date = date

	return p, nil
}
