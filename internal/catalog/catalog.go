package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LabTest is one entry of the lab-test reference table. Key is derived from
// Name once at load time and used as the map key for extracted values.
type LabTest struct {
	Name     string
	Synonyms []string
	Key      string
}

// LabTestCatalog is the immutable lab-test reference table, loaded once at
// startup and shared read-only.
type LabTestCatalog struct {
	Tests []LabTest
}

// NormalizeKey derives the extraction key from a canonical test name:
// lowercase, separators collapsed to underscores, units markers expanded.
// The replacement order matters and is kept stable so keys never drift
// between releases.
func NormalizeKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ")", "")
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.ReplaceAll(key, "%", "percent")
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, ".", "")
	key = strings.ReplaceAll(key, ",", "")
	key = strings.ReplaceAll(key, "__", "_")
	return key
}

// LoadLabTests reads the lab-test table from a CSV file with columns
// "Test Name,Synonyms" (synonyms pipe-separated). A missing or malformed
// file is an error; the process cannot serve extraction without it.
func LoadLabTests(path string) (*LabTestCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lab test catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read lab test catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("lab test catalog %s has no entries", path)
	}

	cat := &LabTestCatalog{}
	for _, rec := range records[1:] {
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		name := strings.TrimSpace(rec[0])
		test := LabTest{
			Name: name,
			Key:  NormalizeKey(name),
		}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			for _, syn := range strings.Split(rec[1], "|") {
				if s := strings.TrimSpace(syn); s != "" {
					test.Synonyms = append(test.Synonyms, s)
				}
			}
		}
		if len(test.Synonyms) == 0 {
			test.Synonyms = []string{name}
		}
		cat.Tests = append(cat.Tests, test)
	}

	return cat, nil
}

// ParameterNames returns the canonical names in catalog order, for display.
func (c *LabTestCatalog) ParameterNames() []string {
	names := make([]string, 0, len(c.Tests))
	for _, t := range c.Tests {
		names = append(names, t.Name)
	}
	return names
}
