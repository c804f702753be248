package skuquery

import (
	"fmt"
	"io"
	"math"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshalers returns the marshalers that encode a Document as a JSON object
// with members in entry order. NaN and infinities, which YAML sources can
// carry, are written as null.
func Marshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(marshalDocument),
		json.MarshalToFunc(marshalFloat),
	)
}

func marshalFloat(enc *jsontext.Encoder, f float64) error {
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		return json.SkipFunc
	}
	return enc.WriteToken(jsontext.Null)
}

func marshalDocument(enc *jsontext.Encoder, d Document) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range d {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write object key %q: %w", e.Key, err)
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return fmt.Errorf("write object value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

// WriteJSON writes v to w as two-space indented JSON followed by a newline.
// Documents anywhere in v keep their entry order.
func WriteJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v, json.WithMarshalers(Marshalers()), jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
