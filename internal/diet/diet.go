// Package diet derives a per-meal food plan from detected conditions, the
// user's stated goal and the food reference table.
package diet

import (
	"strings"

	"github.com/arogyalab/backend/internal/catalog"
)

// MealEntry is one row of the diet chart.
type MealEntry struct {
	Meal     string `json:"meal"`
	Items    string `json:"items"`
	Calories int    `json:"calories"`
	Reason   string `json:"reason"`
}

var mealTypes = []string{"Breakfast", "Lunch", "Snack", "Dinner"}

// Meal suggestion table keyed by meal then by primary condition, with a
// per-meal default list. Food names resolve against the catalog at build
// time; names missing from the catalog are skipped.
var mealSuggestions = map[string]map[string][]string{
	"Breakfast": {
		"diabetes":    {"Oatmeal", "Greek Yogurt", "Almonds", "Berries", "Cinnamon"},
		"anemia":      {"Spinach", "Eggs", "Moong Dal Chilla", "Pomegranate Seeds"},
		"cholesterol": {"Oatmeal", "Walnuts", "Flax Seeds", "Apple"},
		"default":     {"Oatmeal", "Eggs", "Whole Grain Bread", "Milk"},
	},
	"Lunch": {
		"diabetes":    {"Brown Rice", "Grilled Chicken", "Mixed Vegetables", "Quinoa"},
		"anemia":      {"Spinach", "Lentil Soup", "Chickpeas", "Beetroot"},
		"cholesterol": {"Fish (Salmon)", "Brown Rice", "Steamed Vegetables", "Oats"},
		"default":     {"Brown Rice", "Grilled Chicken", "Dal Tadka", "Mixed Vegetables"},
	},
	"Snack": {
		"diabetes":    {"Almonds", "Apple", "Greek Yogurt", "Chia Seeds"},
		"anemia":      {"Dates", "Pumpkin Seeds", "Dark Chocolate", "Raisins"},
		"cholesterol": {"Walnuts", "Oatmeal Cookies", "Fruits", "Nuts"},
		"default":     {"Apple", "Almonds", "Cucumber Slices", "Sprouts Salad"},
	},
	"Dinner": {
		"diabetes":    {"Grilled Fish", "Cauliflower Rice", "Steamed Vegetables", "Quinoa"},
		"anemia":      {"Paneer", "Spinach Curry", "Lentil Dal", "Brown Rice"},
		"cholesterol": {"Tofu", "Steamed Vegetables", "Millet", "Fish Curry"},
		"default":     {"Paneer", "Quinoa", "Steamed Vegetables", "Dal Makhani"},
	},
}

// Top-up list used when a meal resolves fewer than two foods.
var generalFoods = []string{"Apple", "Almonds", "Greek Yogurt", "Quinoa"}

const varietySuffix = " - Additional foods provide variety and balanced nutrition"

// ConditionTags maps condition strings to the fixed tag set by substring
// containment and appends the goal-derived tag. Duplicates accumulate and
// are harmless; the muscle and weight_loss tags never match the meal table
// and exist for future extension.
func ConditionTags(conditions []string, goal string) []string {
	var tags []string
	for _, cond := range conditions {
		lower := strings.ToLower(cond)
		if strings.Contains(lower, "anemia") {
			tags = append(tags, "anemia")
		}
		if strings.Contains(lower, "cholesterol") {
			tags = append(tags, "cholesterol")
		}
		if strings.Contains(lower, "sugar") || strings.Contains(lower, "diabetes") {
			tags = append(tags, "diabetes")
		}
		if strings.Contains(lower, "triglycerides") {
			tags = append(tags, "triglycerides")
		}
	}
	switch goal {
	case "diabetes_control":
		tags = append(tags, "diabetes")
	case "muscle_gain":
		tags = append(tags, "muscle")
	case "weight_loss":
		tags = append(tags, "weight_loss")
	}
	return tags
}

// PrimaryCondition selects the single tag that drives meal selection:
// diabetes first, then anemia, then cholesterol, else "".
func PrimaryCondition(tags []string) string {
	for _, want := range []string{"diabetes", "anemia", "cholesterol"} {
		for _, tag := range tags {
			if tag == want {
				return want
			}
		}
	}
	return ""
}

type resolvedFood struct {
	name     string
	calories int
	reason   string
}

// BuildDietChart assembles the four-meal chart. Every meal ends up with at
// least one food and a non-empty reason; calories are the integer sum of
// the resolved foods.
func BuildDietChart(conditions []string, goal string, foods *catalog.FoodCatalog) []MealEntry {
	tags := ConditionTags(conditions, goal)
	primary := PrimaryCondition(tags)

	chart := make([]MealEntry, 0, len(mealTypes))
	for _, meal := range mealTypes {
		suggested := mealSuggestions[meal]["default"]
		if primary != "" {
			if list, ok := mealSuggestions[meal][primary]; ok {
				suggested = list
			}
		}

		var resolved []resolvedFood
		for _, name := range suggested {
			food := foods.Lookup(name)
			if food == nil {
				continue
			}
			resolved = append(resolved, resolvedFood{
				name:     food.Name,
				calories: food.Calories,
				reason:   reasonFor(primary, goal),
			})
		}

		if len(resolved) < 2 {
			for _, name := range generalFoods {
				if len(resolved) >= 3 {
					break
				}
				food := foods.Lookup(name)
				if food == nil || containsFood(resolved, food.Name) {
					continue
				}
				resolved = append(resolved, resolvedFood{
					name:     food.Name,
					calories: food.Calories,
					reason:   "General healthy choice for balanced nutrition",
				})
			}
		}

		chart = append(chart, mealEntry(meal, resolved))
	}
	return chart
}

func reasonFor(primary, goal string) string {
	switch primary {
	case "diabetes":
		return "Low glycemic index food to help control blood sugar levels"
	case "anemia":
		return "Rich in iron and nutrients to combat anemia"
	case "cholesterol":
		return "Heart-healthy food to help lower cholesterol"
	default:
		return "Balanced nutrition for overall health and " + strings.ReplaceAll(goal, "_", " ")
	}
}

func containsFood(resolved []resolvedFood, name string) bool {
	for _, f := range resolved {
		if f.name == name {
			return true
		}
	}
	return false
}

func mealEntry(meal string, resolved []resolvedFood) MealEntry {
	names := make([]string, 0, len(resolved))
	total := 0
	sameReason := true
	for i, f := range resolved {
		names = append(names, f.name)
		total += f.calories
		if i > 0 && f.reason != resolved[0].reason {
			sameReason = false
		}
	}

	reason := ""
	if len(resolved) > 0 {
		reason = resolved[0].reason
		if !sameReason {
			reason += varietySuffix
		}
	}

	return MealEntry{
		Meal:     meal,
		Items:    strings.Join(names, ", "),
		Calories: total,
		Reason:   reason,
	}
}
