package skuquery

import (
	"slices"
	"strings"
)

// Match is a single occurrence of the target property inside a record.
type Match struct {
	// Path is the dot-separated chain of keys from the record root, each in
	// the casing found along this route.
	Path string
	// Key is the key as spelled at the match site.
	Key   string
	Value any
	// Type is the JavaScript-style type tag of Value, see TypeOf.
	Type string
}

// FindAll returns every occurrence of property within node in depth-first,
// pre-order traversal order. Keys are compared case-insensitively. A key that
// matches is still descended into, so nested matches beneath it are reported
// too. Array elements are never visited.
func FindAll(node any, property string) []Match {
	var out []Match
	walk(node, strings.ToLower(property), "", func(m Match) bool {
		out = append(out, m)
		return true
	})
	return out
}

// FindFirst returns the first occurrence of property within node under the
// same traversal order as FindAll.
func FindFirst(node any, property string) (Match, bool) {
	var (
		first Match
		found bool
	)
	walk(node, strings.ToLower(property), "", func(m Match) bool {
		first, found = m, true
		return false
	})
	return first, found
}

// walk visits node and reports matches to visit until visit returns false.
// It returns false once traversal was stopped.
func walk(node any, target, prefix string, visit func(Match) bool) bool {
	switch n := node.(type) {
	case Document:
		for _, e := range n {
			if !walkEntry(e.Key, e.Value, target, prefix, visit) {
				return false
			}
		}
	case map[string]any:
		// hand-built records have no insertion order; fall back to sorted keys
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !walkEntry(k, n[k], target, prefix, visit) {
				return false
			}
		}
	}
	return true
}

func walkEntry(key string, value any, target, prefix string, visit func(Match) bool) bool {
	path := key
	if prefix != "" {
		path = prefix + "." + key
	}
	if strings.ToLower(key) == target {
		if !visit(Match{Path: path, Key: key, Value: value, Type: TypeOf(value)}) {
			return false
		}
	}
	if isMapping(value) {
		return walk(value, target, path, visit)
	}
	return true
}

func isMapping(v any) bool {
	switch v.(type) {
	case Document, map[string]any:
		return true
	}
	return false
}

// TypeOf returns the JavaScript typeof tag for a decoded value: "boolean",
// "number", "string", or "object" for documents, arrays and null.
func TypeOf(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case string:
		return "string"
	default:
		return "object"
	}
}
