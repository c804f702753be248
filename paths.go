package skuquery

import (
	"fmt"
	"slices"
	"strings"
)

// PathEntry aggregates every occurrence of a property found at one path
// across a collection.
type PathEntry struct {
	Path        string   `json:"path"`
	ActualNames []string `json:"actualNames"`
	Occurrences int      `json:"occurrences"`
	// ExampleValue and ValueType come from the first occurrence discovered.
	ExampleValue any    `json:"exampleValue"`
	ValueType    string `json:"valueType"`
}

// PathReport is the result of EnumeratePaths. When Found is false only
// Property, Found and Message are serialized.
type PathReport struct {
	Property         string      `json:"property"`
	Found            bool        `json:"found"`
	UniquePaths      int         `json:"uniquePaths,omitzero"`
	TotalOccurrences int         `json:"totalOccurrences,omitzero"`
	Paths            []PathEntry `json:"paths,omitzero"`
	Message          string      `json:"message,omitempty"`
}

// EnumeratePaths finds every distinct path at which property occurs in c.
// Occurrences group by their ancestor chain; the matched key itself is
// compared lower-cased, so spellings like "Foo" and "foo" under the same
// parent share one entry whose Path is the first one discovered.
// Entries are ordered by occurrence count, most frequent first; ties keep the
// order in which their paths were first discovered.
func EnumeratePaths(c Collection, property string) *PathReport {
	var entries []*PathEntry
	byPath := make(map[string]*PathEntry)

	for _, rec := range c {
		for _, m := range FindAll(rec, property) {
			key := groupKey(m)
			e, ok := byPath[key]
			if !ok {
				e = &PathEntry{
					Path:         m.Path,
					ExampleValue: m.Value,
					ValueType:    m.Type,
				}
				byPath[key] = e
				entries = append(entries, e)
			}
			if !slices.Contains(e.ActualNames, m.Key) {
				e.ActualNames = append(e.ActualNames, m.Key)
			}
			e.Occurrences++
		}
	}

	slices.SortStableFunc(entries, func(a, b *PathEntry) int {
		return b.Occurrences - a.Occurrences
	})

	r := &PathReport{Property: property}
	if len(entries) == 0 {
		r.Message = fmt.Sprintf(`Property "%s" not found in any SKU`, property)
		return r
	}
	r.Found = true
	r.UniquePaths = len(entries)
	r.Paths = make([]PathEntry, len(entries))
	for i, e := range entries {
		r.Paths[i] = *e
		r.TotalOccurrences += e.Occurrences
	}
	return r
}

// groupKey is m's path with only the final segment lower-cased.
func groupKey(m Match) string {
	parent := strings.TrimSuffix(m.Path, m.Key)
	return parent + strings.ToLower(m.Key)
}
