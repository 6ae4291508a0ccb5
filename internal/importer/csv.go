package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"beanwatch/internal/models"
)

// csv column indexes, per the long-standing log layout:
// date, roaster, name, ounces, cost
const (
	colDate = iota
	colRoaster
	colName
	colOunces
	colCost
	colCount
)

// LoadCSV reads purchases from a CSV file. A header row is detected by an
// unparseable date in the first column and skipped.
func LoadCSV(path string) ([]models.Purchase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open purchase file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	var purchases []models.Purchase
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) < colCount {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, colCount, len(row))
		}

		date, err := parseDate(row[colDate])
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		ounces, err := parseFloat(row[colOunces])
		if err != nil {
			return nil, fmt.Errorf("row %d: size: %w", i+1, err)
		}
		cost, err := parseFloat(row[colCost])
		if err != nil {
			return nil, fmt.Errorf("row %d: cost: %w", i+1, err)
		}

		p := models.Purchase{
			Date:    date,
			Roaster: strings.TrimSpace(row[colRoaster]),
			Name:    strings.TrimSpace(row[colName]),
			Ounces:  ounces,
			Cost:    cost,
		}
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		purchases = append(purchases, p)
	}

	models.SortPurchases(purchases)
	return purchases, nil
}

func parseFloat(value string) (float64, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return f, nil
}
