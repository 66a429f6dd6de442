package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Dataset is the cleaned review corpus as produced by the scraping
// pipeline: restaurants with their customer reviews.
type Dataset struct {
	Restaurants []Restaurant `json:"restaurants"`
}

type Restaurant struct {
	Name       string   `json:"name"`
	Cuisine    []string `json:"cuisine"`
	PriceRange string   `json:"price_range"`
	Rating     float64  `json:"rating"`
	Reviews    []Review `json:"reviews"`
}

type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
	Author string  `json:"author"`
	Date   string  `json:"date"`
	Source string  `json:"source"`
}

func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	return &dataset, nil
}

func (d *Dataset) ReviewCount() int {
	count := 0
	for _, r := range d.Restaurants {
		for _, review := range r.Reviews {
			if len(strings.TrimSpace(review.Text)) > 0 {
				count++
			}
		}
	}
	return count
}
