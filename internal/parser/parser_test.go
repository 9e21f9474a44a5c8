package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyalab/backend/internal/catalog"
)

func testCatalog() *catalog.LabTestCatalog {
	return &catalog.LabTestCatalog{Tests: []catalog.LabTest{
		{Name: "Hemoglobin (Hb)", Synonyms: []string{"Hemoglobin (Hb)", "Hemoglobin", "Hb"}, Key: "hemoglobin_hb"},
		{Name: "Hemoglobin", Synonyms: []string{"Hemoglobin", "Haemoglobin", "Hb"}, Key: "hemoglobin"},
		{Name: "Sugar", Synonyms: []string{"Sugar", "Glucose", "Blood Sugar"}, Key: "sugar"},
		{Name: "Total Cholesterol", Synonyms: []string{"Total Cholesterol", "Cholesterol"}, Key: "total_cholesterol"},
	}}
}

func TestParseValuesColonSeparator(t *testing.T) {
	values, conditions := ParseValues("Hemoglobin: 9.2 g/dL", testCatalog())
	assert.Equal(t, "9.2", values["hemoglobin"])
	assert.Equal(t, "9.2", values["hemoglobin_hb"])
	assert.Contains(t, conditions, "Anemia")
}

func TestParseValuesUnitBetweenNameAndNumber(t *testing.T) {
	// No separator, an alphabetic unit token sits between name and value.
	values, _ := ParseValues("Glucose mgdl 150", testCatalog())
	assert.Equal(t, "150", values["sugar"])
}

func TestParseValuesEqualsAndDashSeparators(t *testing.T) {
	values, _ := ParseValues("Sugar = 120\nCholesterol - 210", testCatalog())
	assert.Equal(t, "120", values["sugar"])
	assert.Equal(t, "210", values["total_cholesterol"])
}

func TestParseValuesFirstMatchWins(t *testing.T) {
	values, _ := ParseValues("Glucose: 150\nSugar: 90", testCatalog())
	// Synonym order decides: "Sugar" is tried before "Glucose".
	assert.Equal(t, "90", values["sugar"])
}

func TestParseValuesUnmatchedKeysAbsent(t *testing.T) {
	values, conditions := ParseValues("Nothing numeric here", testCatalog())
	assert.Empty(t, values)
	assert.NotNil(t, conditions)
	assert.Empty(t, conditions)
}

func TestDetectConditionsThresholds(t *testing.T) {
	conditions := DetectConditions(map[string]string{
		"sugar":      "141",
		"hemoglobin": "11.9",
	})
	assert.ElementsMatch(t, []string{"High Blood Sugar", "Anemia"}, conditions)

	conditions = DetectConditions(map[string]string{
		"sugar":      "140",
		"hemoglobin": "12",
	})
	assert.Empty(t, conditions)
}

func TestDetectConditionsSkipsUnparseableValue(t *testing.T) {
	conditions := DetectConditions(map[string]string{
		"sugar":      "12.5.3",
		"hemoglobin": "9",
	})
	assert.Equal(t, []string{"Anemia"}, conditions)
}

// The catalog derives "total_cholesterol" while the rule reads
// "cholesterol", so a high total cholesterol never raises the flag. This
// test pins that behavior; changing either side is a deliberate decision.
func TestDetectConditionsTotalCholesterolKeyNeverTriggers(t *testing.T) {
	values, conditions := ParseValues("Total Cholesterol: 280", testCatalog())
	assert.Equal(t, "280", values["total_cholesterol"])
	assert.Empty(t, conditions)
}
