// Package trends builds per-parameter time series and latest-vs-previous
// comparisons across a user's report history.
package trends

import (
	"sort"
	"strconv"
	"time"
)

// ReportValues is the slice of a stored report the trend engine needs.
type ReportValues struct {
	Values    map[string]string
	Timestamp time.Time
}

// Delta is the comparison outcome for one parameter.
type Delta struct {
	Latest   float64 `json:"latest"`
	Previous float64 `json:"previous"`
	Status   string  `json:"status"`
}

const (
	StatusWorse    = "worse"
	StatusImproved = "improved"
	StatusNoChange = "no_change"
)

// Keys returns the sorted union of every key present across the reports.
// A key never referenced in any report is never emitted.
func Keys(reports []ReportValues) []string {
	seen := make(map[string]struct{})
	for _, r := range reports {
		for k := range r.Values {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build folds the reports oldest to newest carrying the last known value
// per key forward, so each series has exactly one point per report. Before
// a key's first observation the series holds zero.
func Build(reportsNewestFirst []ReportValues) (map[string][]float64, []string) {
	oldestFirst := make([]ReportValues, len(reportsNewestFirst))
	for i, r := range reportsNewestFirst {
		oldestFirst[len(reportsNewestFirst)-1-i] = r
	}

	keys := Keys(oldestFirst)
	series := make(map[string][]float64, len(keys))
	lastKnown := make(map[string]float64, len(keys))
	known := make(map[string]bool, len(keys))

	for _, report := range oldestFirst {
		for _, key := range keys {
			if v, ok := parseValue(report.Values[key]); ok {
				lastKnown[key] = v
				known[key] = true
			}
			if known[key] {
				series[key] = append(series[key], lastKnown[key])
			} else {
				series[key] = append(series[key], 0)
			}
		}
	}

	labels := make([]string, 0, len(oldestFirst))
	for _, report := range oldestFirst {
		labels = append(labels, report.Timestamp.Format("2006-01-02"))
	}
	return series, labels
}

// Compare classifies the delta between the two most recent reports for the
// union of their keys. A key missing from one report borrows the other
// report's value for both sides (mutual fallback), so a parameter present
// in only one of the two always classifies as no_change.
func Compare(reportsNewestFirst []ReportValues) map[string]Delta {
	if len(reportsNewestFirst) < 2 {
		return map[string]Delta{}
	}
	latest := reportsNewestFirst[0].Values
	previous := reportsNewestFirst[1].Values

	comparison := make(map[string]Delta)
	for _, key := range Keys([]ReportValues{{Values: latest}, {Values: previous}}) {
		newVal, newOK := parseValue(latest[key])
		oldVal, oldOK := parseValue(previous[key])
		if !newOK && !oldOK {
			continue
		}
		if !newOK {
			newVal = oldVal
		}
		if !oldOK {
			oldVal = newVal
		}

		status := StatusNoChange
		switch {
		case newVal > oldVal:
			status = StatusWorse
		case newVal < oldVal:
			status = StatusImproved
		}
		comparison[key] = Delta{Latest: newVal, Previous: oldVal, Status: status}
	}
	return comparison
}

func parseValue(raw string) (float64, bool) {
	if raw == "" || raw == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
