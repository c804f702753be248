package source

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/calumari/skuquery"
)

func decodeJSON(data []byte, binding string) (skuquery.Array, error) {
	var root any
	if err := json.Unmarshal(data, &root, json.WithUnmarshalers(skuquery.Unmarshalers())); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return bound(root, binding)
}

// decodeJS reads the literal assigned to binding in a JS source file. Text
// around the assignment is ignored; the literal itself must be strict JSON.
func decodeJS(data []byte, binding string) (skuquery.Array, error) {
	re := regexp.MustCompile(`(?m)^[ \t]*(?:(?:const|let|var)\s+)?` + regexp.QuoteMeta(binding) + `\s*=\s*`)
	loc := re.FindIndex(data)
	if loc == nil {
		return nil, &SchemaError{Binding: binding, Reason: "no assignment found"}
	}

	dec := jsontext.NewDecoder(bytes.NewReader(data[loc[1]:]))
	raw, err := dec.ReadValue()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s literal: %w", ErrLoad, binding, err)
	}
	var v any
	if err := json.Unmarshal(bytes.Clone(raw), &v, json.WithUnmarshalers(skuquery.Unmarshalers())); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	arr, ok := v.(skuquery.Array)
	if !ok {
		return nil, &SchemaError{Binding: binding, Reason: fmt.Sprintf("bound to %s, not an array", describe(v))}
	}
	return arr, nil
}
