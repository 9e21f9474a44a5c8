package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Food is one entry of the food reference table.
type Food struct {
	Name        string
	Calories    int
	SuitableFor []string
}

// FoodCatalog is the immutable food reference table with case-insensitive
// name lookup.
type FoodCatalog struct {
	Foods  []Food
	byName map[string]*Food
}

// NewFoodCatalog builds a catalog from an in-memory table.
func NewFoodCatalog(foods []Food) *FoodCatalog {
	cat := &FoodCatalog{
		Foods:  foods,
		byName: make(map[string]*Food, len(foods)),
	}
	for i := range cat.Foods {
		cat.byName[strings.ToLower(cat.Foods[i].Name)] = &cat.Foods[i]
	}
	return cat
}

// LoadFoods reads the food table from a CSV file with columns
// "food,calories,suitable_for" (tags pipe-separated).
func LoadFoods(path string) (*FoodCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open food catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read food catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("food catalog %s has no entries", path)
	}

	cat := &FoodCatalog{byName: make(map[string]*Food)}
	for _, rec := range records[1:] {
		if len(rec) < 2 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		calories, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("food catalog %s: bad calorie count for %q: %w", path, rec[0], err)
		}
		food := Food{
			Name:     strings.TrimSpace(rec[0]),
			Calories: calories,
		}
		if len(rec) > 2 {
			for _, tag := range strings.Split(rec[2], "|") {
				if t := strings.TrimSpace(tag); t != "" {
					food.SuitableFor = append(food.SuitableFor, t)
				}
			}
		}
		cat.Foods = append(cat.Foods, food)
	}
	for i := range cat.Foods {
		cat.byName[strings.ToLower(cat.Foods[i].Name)] = &cat.Foods[i]
	}

	return cat, nil
}

// Lookup finds a food by name, case-insensitively. Returns nil when the
// food is not in the table.
func (c *FoodCatalog) Lookup(name string) *Food {
	return c.byName[strings.ToLower(name)]
}
