package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
}

func TestBuildForwardFill(t *testing.T) {
	// Newest first: hemoglobin only observed in the middle report.
	reports := []ReportValues{
		{Values: map[string]string{"sugar": "150"}, Timestamp: day(3)},
		{Values: map[string]string{"sugar": "130", "hemoglobin": "11.5"}, Timestamp: day(2)},
		{Values: map[string]string{"sugar": "120"}, Timestamp: day(1)},
	}

	series, labels := Build(reports)

	assert.Equal(t, []string{"2026-08-01", "2026-08-02", "2026-08-03"}, labels)
	assert.Equal(t, []float64{120, 130, 150}, series["sugar"])
	// Zero before first observation, carried forward after.
	assert.Equal(t, []float64{0, 11.5, 11.5}, series["hemoglobin"])
}

func TestBuildSeriesLengthMatchesReportCount(t *testing.T) {
	reports := []ReportValues{
		{Values: map[string]string{"a": "1"}, Timestamp: day(2)},
		{Values: map[string]string{"b": "2"}, Timestamp: day(1)},
	}

	series, labels := Build(reports)
	assert.Len(t, labels, 2)
	for key, s := range series {
		assert.Len(t, s, 2, key)
	}
}

func TestBuildSkipsUnparseableValues(t *testing.T) {
	reports := []ReportValues{
		{Values: map[string]string{"sugar": "abc"}, Timestamp: day(2)},
		{Values: map[string]string{"sugar": "120"}, Timestamp: day(1)},
	}

	series, _ := Build(reports)
	// The bad value keeps the carried 120 instead of resetting.
	assert.Equal(t, []float64{120, 120}, series["sugar"])
}

func TestBuildEmpty(t *testing.T) {
	series, labels := Build(nil)
	assert.Empty(t, series)
	assert.Empty(t, labels)
}

func TestCompareNeedsTwoReports(t *testing.T) {
	comparison := Compare([]ReportValues{{Values: map[string]string{"sugar": "150"}}})
	assert.NotNil(t, comparison)
	assert.Empty(t, comparison)
}

func TestCompareClassification(t *testing.T) {
	comparison := Compare([]ReportValues{
		{Values: map[string]string{"sugar": "150", "hemoglobin": "11.0", "tsh": "2.5"}},
		{Values: map[string]string{"sugar": "130", "hemoglobin": "12.5", "tsh": "2.5"}},
	})

	require.Len(t, comparison, 3)
	assert.Equal(t, Delta{Latest: 150, Previous: 130, Status: StatusWorse}, comparison["sugar"])
	assert.Equal(t, Delta{Latest: 11, Previous: 12.5, Status: StatusImproved}, comparison["hemoglobin"])
	assert.Equal(t, Delta{Latest: 2.5, Previous: 2.5, Status: StatusNoChange}, comparison["tsh"])
}

func TestCompareMutualFallback(t *testing.T) {
	// A key present on one side only borrows the other side's value and
	// always reads no_change.
	comparison := Compare([]ReportValues{
		{Values: map[string]string{"sugar": "150"}},
		{Values: map[string]string{"hemoglobin": "12.5"}},
	})

	require.Len(t, comparison, 2)
	assert.Equal(t, Delta{Latest: 150, Previous: 150, Status: StatusNoChange}, comparison["sugar"])
	assert.Equal(t, Delta{Latest: 12.5, Previous: 12.5, Status: StatusNoChange}, comparison["hemoglobin"])
}

func TestCompareIgnoresOlderReports(t *testing.T) {
	comparison := Compare([]ReportValues{
		{Values: map[string]string{"sugar": "150"}},
		{Values: map[string]string{"sugar": "150"}},
		{Values: map[string]string{"sugar": "90"}},
	})

	assert.Equal(t, StatusNoChange, comparison["sugar"].Status)
}

func TestCompareSkipsValuesNeitherSideParses(t *testing.T) {
	comparison := Compare([]ReportValues{
		{Values: map[string]string{"sugar": "null"}},
		{Values: map[string]string{"sugar": ""}},
	})
	assert.Empty(t, comparison)
}
