// Package skuquery locates properties by name inside collections of SKU
// records, regardless of nesting depth or key casing.
package skuquery

import (
	"maps"
	"slices"
	"strings"
)

// Document represents a mapping, defined as an ordered collection of key-value
// pairs. Entry order is the order keys appeared in the source data and is the
// order every traversal follows.
type Document []Entry

// Array represents an array, defined as a slice of values of any type. Arrays
// are opaque to traversal.
type Array []any

// Entry represents a single entry in a document. It consists of a string key and an
// associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// Collection is the ordered sequence of records a query scans.
type Collection []any

// Get returns the value stored under exactly key.
func (d Document) Get(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup returns the value stored under key, comparing keys case-insensitively.
// An exact-case entry wins over an earlier entry that only differs in casing.
func (d Document) Lookup(key string) (any, bool) {
	if v, ok := d.Get(key); ok {
		return v, true
	}
	lower := strings.ToLower(key)
	for _, e := range d {
		if strings.ToLower(e.Key) == lower {
			return e.Value, true
		}
	}
	return nil, false
}

// field returns the value under exactly key in a Document or a
// map[string]any. Other values hold no fields.
func field(m any, key string) (any, bool) {
	switch m := m.(type) {
	case Document:
		return m.Get(key)
	case map[string]any:
		v, ok := m[key]
		return v, ok
	}
	return nil, false
}

// fieldFold is field with Lookup's case-insensitive matching. Among map keys
// that differ only in casing the first in sorted order wins.
func fieldFold(m any, key string) (any, bool) {
	switch m := m.(type) {
	case Document:
		return m.Lookup(key)
	case map[string]any:
		if v, ok := m[key]; ok {
			return v, true
		}
		lower := strings.ToLower(key)
		keys := slices.Sorted(maps.Keys(m))
		for _, k := range keys {
			if strings.ToLower(k) == lower {
				return m[k], true
			}
		}
	}
	return nil, false
}
