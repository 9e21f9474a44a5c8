package diet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalab/backend/internal/catalog"
)

func fullFoodCatalog() *catalog.FoodCatalog {
	names := []struct {
		name     string
		calories int
	}{
		{"Oatmeal", 150}, {"Greek Yogurt", 100}, {"Almonds", 160}, {"Berries", 85},
		{"Cinnamon", 6}, {"Spinach", 23}, {"Eggs", 155}, {"Moong Dal Chilla", 128},
		{"Pomegranate Seeds", 83}, {"Walnuts", 185}, {"Flax Seeds", 55}, {"Apple", 95},
		{"Whole Grain Bread", 80}, {"Milk", 103}, {"Brown Rice", 215},
		{"Grilled Chicken", 165}, {"Mixed Vegetables", 90}, {"Quinoa", 120},
		{"Lentil Soup", 140}, {"Chickpeas", 164}, {"Beetroot", 44},
		{"Fish (Salmon)", 208}, {"Steamed Vegetables", 80}, {"Oats", 150},
		{"Dal Tadka", 180}, {"Chia Seeds", 138}, {"Dates", 66},
		{"Pumpkin Seeds", 126}, {"Dark Chocolate", 170}, {"Raisins", 85},
		{"Oatmeal Cookies", 120}, {"Fruits", 90}, {"Nuts", 170},
		{"Cucumber Slices", 16}, {"Sprouts Salad", 120}, {"Grilled Fish", 180},
		{"Cauliflower Rice", 40}, {"Paneer", 265}, {"Spinach Curry", 145},
		{"Lentil Dal", 150}, {"Tofu", 76}, {"Millet", 119}, {"Fish Curry", 190},
		{"Dal Makhani", 230},
	}
	foods := make([]catalog.Food, 0, len(names))
	for _, n := range names {
		foods = append(foods, catalog.Food{Name: n.name, Calories: n.calories})
	}
	return catalog.NewFoodCatalog(foods)
}

func TestConditionTags(t *testing.T) {
	tags := ConditionTags([]string{"High Blood Sugar", "Anemia"}, "weight_loss")
	assert.Contains(t, tags, "diabetes")
	assert.Contains(t, tags, "anemia")
	assert.Contains(t, tags, "weight_loss")
	assert.NotContains(t, tags, "cholesterol")
}

func TestConditionTagsGoalDrivesDiabetes(t *testing.T) {
	tags := ConditionTags(nil, "diabetes_control")
	assert.Equal(t, []string{"diabetes"}, tags)
}

func TestPrimaryConditionPriority(t *testing.T) {
	assert.Equal(t, "diabetes", PrimaryCondition([]string{"cholesterol", "anemia", "diabetes"}))
	assert.Equal(t, "anemia", PrimaryCondition([]string{"cholesterol", "anemia"}))
	assert.Equal(t, "cholesterol", PrimaryCondition([]string{"cholesterol"}))
	assert.Equal(t, "", PrimaryCondition([]string{"triglycerides"}))
	assert.Equal(t, "", PrimaryCondition(nil))
}

func TestBuildDietChartFourMeals(t *testing.T) {
	chart := BuildDietChart([]string{"Anemia"}, "weight_loss", fullFoodCatalog())

	require.Len(t, chart, 4)
	meals := []string{"Breakfast", "Lunch", "Snack", "Dinner"}
	for i, entry := range chart {
		assert.Equal(t, meals[i], entry.Meal)
		assert.NotEmpty(t, entry.Items)
		assert.Greater(t, entry.Calories, 0)
		assert.NotEmpty(t, entry.Reason)
	}

	// Anemia drives the breakfast picks.
	assert.Contains(t, chart[0].Items, "Spinach")
	assert.Equal(t, "Rich in iron and nutrients to combat anemia", chart[0].Reason)
}

func TestBuildDietChartCaloriesSum(t *testing.T) {
	chart := BuildDietChart(nil, "weight_loss", fullFoodCatalog())

	// Default breakfast: Oatmeal + Eggs + Whole Grain Bread + Milk.
	assert.Equal(t, "Oatmeal, Eggs, Whole Grain Bread, Milk", chart[0].Items)
	assert.Equal(t, 150+155+80+103, chart[0].Calories)
	assert.Equal(t, "Balanced nutrition for overall health and weight loss", chart[0].Reason)
}

func TestBuildDietChartTopUpFromGeneralList(t *testing.T) {
	// A sparse catalog resolves only one lunch food, forcing the general
	// top-up and the variety suffix.
	sparse := catalog.NewFoodCatalog([]catalog.Food{
		{Name: "Oatmeal", Calories: 150},
		{Name: "Brown Rice", Calories: 215},
		{Name: "Apple", Calories: 95},
		{Name: "Almonds", Calories: 160},
		{Name: "Greek Yogurt", Calories: 100},
		{Name: "Quinoa", Calories: 120},
	})

	chart := BuildDietChart(nil, "muscle_gain", sparse)
	require.Len(t, chart, 4)

	lunch := chart[1]
	items := strings.Split(lunch.Items, ", ")
	assert.GreaterOrEqual(t, len(items), 3)
	assert.True(t, strings.HasSuffix(lunch.Reason, varietySuffix))
}

func TestBuildDietChartSkipsUnknownFoodsWithoutDuplicates(t *testing.T) {
	chart := BuildDietChart([]string{"High Blood Sugar"}, "weight_loss", fullFoodCatalog())

	for _, entry := range chart {
		items := strings.Split(entry.Items, ", ")
		seen := map[string]bool{}
		for _, item := range items {
			assert.False(t, seen[item], "duplicate %s in %s", item, entry.Meal)
			seen[item] = true
		}
	}
}
