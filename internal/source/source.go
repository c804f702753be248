// Package source loads SKU collections from data files without evaluating
// their contents.
//
// A data file binds an ordered array of records to a conventional name,
// "skus" by default. Three encodings are understood:
//
//	JSON  {"skus": [ {...}, ... ]}
//	YAML  skus:
//	        - skuName: ...
//	JS    const skus = [ {...}, ... ];
//
// For JS files only the literal assigned to the binding is read, and it must
// be strict JSON.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/calumari/skuquery"
)

// Error kinds reported by Load. Callers classify with errors.Is.
var (
	ErrNotFound = errors.New("file not found")
	ErrLoad     = errors.New("loading SKU data")
	ErrSchema   = errors.New("missing collection binding")
)

// DefaultBinding is the name the collection is conventionally bound to.
const DefaultBinding = "skus"

// Format identifies the encoding of a data file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatYAML, FormatJS:
		return f, nil
	case "":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("unknown input format %q (want auto, json, yaml or js)", s)
}

// FormatFor picks a format from the file extension: .yaml/.yml are YAML,
// .js/.mjs/.cjs are JS, everything else is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".js", ".mjs", ".cjs":
		return FormatJS
	default:
		return FormatJSON
	}
}

type options struct {
	binding string
	format  Format
	logger  *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithBinding sets the name the collection is expected under.
func WithBinding(name string) Option {
	return func(o *options) { o.binding = name }
}

// WithFormat forces an encoding instead of guessing from the extension.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// SchemaError reports a data source that does not bind the expected
// collection. It matches ErrSchema.
type SchemaError struct {
	Binding string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("SKU data file did not define %q variable: %s", e.Binding, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Load reads the data file at path and returns the collection bound to the
// configured name. Every failure wraps one of ErrNotFound, ErrLoad or
// ErrSchema.
func Load(path string, opts ...Option) (skuquery.Collection, error) {
	o := options{binding: DefaultBinding, format: FormatAuto, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	format := o.format
	if format == FormatAuto {
		format = FormatFor(path)
	}
	o.logger.Debug("read data source", "path", path, "format", format, "bytes", len(data))

	var arr skuquery.Array
	switch format {
	case FormatJSON:
		arr, err = decodeJSON(data, o.binding)
	case FormatYAML:
		arr, err = decodeYAML(data, o.binding)
	case FormatJS:
		arr, err = decodeJS(data, o.binding)
	default:
		err = fmt.Errorf("%w: unsupported format %q", ErrLoad, format)
	}
	if err != nil {
		return nil, err
	}

	o.logger.Debug("loaded collection", "binding", o.binding, "records", len(arr))
	return skuquery.Collection(arr), nil
}

// bound extracts the collection from a decoded root value.
func bound(root any, binding string) (skuquery.Array, error) {
	doc, ok := root.(skuquery.Document)
	if !ok {
		return nil, &SchemaError{Binding: binding, Reason: fmt.Sprintf("top level is %s, not a mapping", describe(root))}
	}
	v, ok := doc.Get(binding)
	if !ok {
		return nil, &SchemaError{Binding: binding, Reason: "no such top-level key"}
	}
	arr, ok := v.(skuquery.Array)
	if !ok {
		return nil, &SchemaError{Binding: binding, Reason: fmt.Sprintf("bound to %s, not an array", describe(v))}
	}
	return arr, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case skuquery.Array:
		return "an array"
	case skuquery.Document:
		return "a mapping"
	}
	return "a " + skuquery.TypeOf(v)
}
