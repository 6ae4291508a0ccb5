// Package importer loads purchase records from the coffee log file.
// CSV and YAML formats are supported; the format is chosen by file
// extension. Malformed records are rejected here so the aggregation engine
// only ever sees well-formed input.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"beanwatch/internal/models"
)

// dateLayouts are the date formats that have appeared in the log over the
// years.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// LoadFile reads purchases from path, dispatching on the file extension.
func LoadFile(path string) ([]models.Purchase, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported purchase file format: %q", filepath.Ext(path))
	}
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// validate rejects records the engine is not specified to handle.
func validate(p models.Purchase) error {
	if p.Date.IsZero() {
		return fmt.Errorf("missing date")
	}
	if p.Ounces < 0 {
		return fmt.Errorf("negative size %v", p.Ounces)
	}
	if p.Cost < 0 {
		return fmt.Errorf("negative cost %v", p.Cost)
	}
	return nil
}
