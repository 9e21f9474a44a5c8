package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Hemoglobin":        "hemoglobin",
		"Hemoglobin (Hb)":   "hemoglobin_hb",
		"Total Cholesterol": "total_cholesterol",
		"HbA1c (%)":         "hba1c_percent",
		"SGOT / AST":        "sgot__ast",
		"Vitamin B-12":      "vitamin_b_12",
		"T3, Total":         "t3_total",
	}
	for name, want := range cases {
		assert.Equal(t, want, NormalizeKey(name), name)
	}
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLabTests(t *testing.T) {
	path := writeCSV(t, "tests.csv",
		"Test Name,Synonyms\n"+
			"Hemoglobin,Hemoglobin|Haemoglobin|Hb\n"+
			"Sugar,Sugar|Glucose|Blood Sugar\n"+
			"Platelet Count,\n")

	cat, err := LoadLabTests(path)
	require.NoError(t, err)
	require.Len(t, cat.Tests, 3)

	assert.Equal(t, "hemoglobin", cat.Tests[0].Key)
	assert.Equal(t, []string{"Hemoglobin", "Haemoglobin", "Hb"}, cat.Tests[0].Synonyms)

	// Entries without synonyms fall back to the canonical name.
	assert.Equal(t, []string{"Platelet Count"}, cat.Tests[2].Synonyms)

	assert.Equal(t, []string{"Hemoglobin", "Sugar", "Platelet Count"}, cat.ParameterNames())
}

func TestLoadLabTestsMissingFile(t *testing.T) {
	_, err := LoadLabTests(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadLabTestsEmpty(t *testing.T) {
	path := writeCSV(t, "tests.csv", "Test Name,Synonyms\n")
	_, err := LoadLabTests(path)
	assert.Error(t, err)
}

func TestLoadFoods(t *testing.T) {
	path := writeCSV(t, "foods.csv",
		"food,calories,suitable_for\n"+
			"Oatmeal,150,diabetes|cholesterol\n"+
			"Apple,95,\n")

	cat, err := LoadFoods(path)
	require.NoError(t, err)
	require.Len(t, cat.Foods, 2)

	oatmeal := cat.Lookup("OATMEAL")
	require.NotNil(t, oatmeal)
	assert.Equal(t, 150, oatmeal.Calories)
	assert.Equal(t, []string{"diabetes", "cholesterol"}, oatmeal.SuitableFor)

	assert.Nil(t, cat.Lookup("Pizza"))
}

func TestLoadFoodsBadCalories(t *testing.T) {
	path := writeCSV(t, "foods.csv", "food,calories,suitable_for\nOatmeal,lots,\n")
	_, err := LoadFoods(path)
	assert.Error(t, err)
}

// The shipped data files must stay loadable; startup treats failure as
// fatal.
func TestShippedCatalogsLoad(t *testing.T) {
	labs, err := LoadLabTests(filepath.Join("..", "..", "data", "medical_test_parameters.csv"))
	require.NoError(t, err)
	assert.Greater(t, len(labs.Tests), 20)

	foods, err := LoadFoods(filepath.Join("..", "..", "data", "food_data.csv"))
	require.NoError(t, err)
	assert.Greater(t, len(foods.Foods), 20)

	// Every meal-table food the diet engine references must resolve.
	for _, name := range []string{"Oatmeal", "Greek Yogurt", "Almonds", "Apple", "Quinoa", "Paneer"} {
		assert.NotNil(t, foods.Lookup(name), name)
	}
}
