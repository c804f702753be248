package skuquery

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = "full"

var (
	// FullFormat writes the whole report as indented JSON:
	//
	//	{"property": "...", "found": true, "count": 1, "skus": [...]}
	FullFormat = NewFormat("full", writeFull)

	// NamesOnlyFormat writes the skuName of each matching record on its own
	// line, or a single "No SKUs found" line when nothing matched.
	NamesOnlyFormat = NewFormat("names-only", writeNames)

	// CountFormat writes the number of matching records.
	CountFormat = NewFormat("count", writeCount)
)

// Builtin bundles the full, names-only and count formats.
func Builtin() Registration {
	return Group(FullFormat, NamesOnlyFormat, CountFormat)
}

func writeFull(w io.Writer, r *QueryReport) error {
	return WriteJSON(w, r)
}

func writeNames(w io.Writer, r *QueryReport) error {
	if len(r.SKUs) == 0 {
		_, err := fmt.Fprintln(w, "No SKUs found with property:", r.Property)
		return err
	}
	for _, sku := range r.SKUs {
		name, err := displayName(sku.SKUName)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// displayName renders a skuName for line output: strings verbatim, other
// values as compact JSON, and a missing name as an empty line.
func displayName(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	b, err := json.Marshal(v, json.WithMarshalers(Marshalers()))
	if err != nil {
		return "", fmt.Errorf("marshal skuName: %w", err)
	}
	return string(b), nil
}

func writeCount(w io.Writer, r *QueryReport) error {
	_, err := fmt.Fprintln(w, r.Count)
	return err
}
