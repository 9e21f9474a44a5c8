// Package parser extracts numeric lab values from raw report text and
// derives coarse condition flags from fixed thresholds.
package parser

import (
	"regexp"
	"strconv"

	"github.com/arogyalab/backend/internal/catalog"
)

// ParseValues scans text for every catalog entry and returns a mapping of
// normalized test key to the captured numeric-looking substring, plus the
// detected conditions.
//
// Matching is first-hit-wins: for each entry, each known name is tried with
// two patterns (bare "name: 12.5" and "name unit: 12.5"), and the first
// pattern that matches anywhere in the text settles that key. A report that
// lists the same test twice keeps whichever occurrence the first matching
// pattern finds. Keys that never match are simply absent.
func ParseValues(text string, cat *catalog.LabTestCatalog) (map[string]string, []string) {
	values := make(map[string]string)

	for _, test := range cat.Tests {
	search:
		for _, name := range test.Synonyms {
			quoted := regexp.QuoteMeta(name)
			patterns := []string{
				`(?i)` + quoted + `\s*[:=\-]?\s*([\d.]+)`,
				`(?i)` + quoted + `\s*[a-zA-Z]*\s*[:=\-]?\s*([\d.]+)`,
			}
			for _, pat := range patterns {
				if m := regexp.MustCompile(pat).FindStringSubmatch(text); m != nil {
					values[test.Key] = m[1]
					break search
				}
			}
		}
	}

	return values, DetectConditions(values)
}

type conditionRule struct {
	key       string
	condition string
	trigger   func(v float64) bool
}

// Only these keys drive flags; everything else parsed is informational.
// The cholesterol rule reads key "cholesterol" while the catalog derives
// "total_cholesterol" — kept as-is, see the regression test pinning it.
var conditionRules = []conditionRule{
	{key: "sugar", condition: "High Blood Sugar", trigger: func(v float64) bool { return v > 140 }},
	{key: "cholesterol", condition: "High Cholesterol", trigger: func(v float64) bool { return v > 200 }},
	{key: "hemoglobin", condition: "Anemia", trigger: func(v float64) bool { return v < 12 }},
}

// DetectConditions applies the fixed threshold rules to extracted values.
// A value that fails to parse as a float skips that single rule only.
func DetectConditions(values map[string]string) []string {
	conditions := []string{}
	for _, rule := range conditionRules {
		raw, ok := values[rule.key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if rule.trigger(v) {
			conditions = append(conditions, rule.condition)
		}
	}
	return conditions
}
