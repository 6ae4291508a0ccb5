package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"beanwatch/internal/models"
)

// yamlPurchase mirrors one entry of the YAML log.
type yamlPurchase struct {
	Date    string  `yaml:"date"`
	Roaster string  `yaml:"roaster"`
	Name    string  `yaml:"name"`
	Ounces  float64 `yaml:"ounces"`
	Cost    float64 `yaml:"cost"`
}

// LoadYAML reads purchases from a YAML file holding a list of entries.
func LoadYAML(path string) ([]models.Purchase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase file: %w", err)
	}

	var entries []yamlPurchase
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	purchases := make([]models.Purchase, 0, len(entries))
	for i, e := range entries {
		date, err := parseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		p := models.Purchase{
			Date:    date,
			Roaster: e.Roaster,
			Name:    e.Name,
			Ounces:  e.Ounces,
			Cost:    e.Cost,
		}
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		purchases = append(purchases, p)
	}

	models.SortPurchases(purchases)
	return purchases, nil
}
