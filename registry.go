package skuquery

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Formatter renders a query report to w.
type Formatter func(w io.Writer, r *QueryReport) error

// ErrUnknownFormat is returned by Lookup when no formatter is registered
// under the requested name.
var ErrUnknownFormat = errors.New("unknown output format")

// Registry maps output format names to formatters. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Formatter
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[string]Formatter)}
}

// validateName accepts lower-case ASCII letters and digits, optionally joined
// by single inner hyphens, e.g. "names-only".
func validateName(name string) error {
	if name == "" {
		return errors.New("format name is empty")
	}
	if name[0] == '-' || name[len(name)-1] == '-' || strings.Contains(name, "--") {
		return fmt.Errorf("format %q invalid name (hyphens must separate words)", name)
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return fmt.Errorf("format %q invalid name (unexpected character %q)", name, c)
		}
	}
	return nil
}

// Register adds fn under name.
func (r *Registry) Register(name string, fn Formatter) error {
	if err := validateName(name); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("format %q has nil formatter", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("format %q already registered", name)
	}
	r.entries[name] = fn
	return nil
}

// Lookup returns the formatter registered under name.
func (r *Registry) Lookup(name string) (Formatter, error) {
	r.mu.RLock()
	fn, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of: %s)", ErrUnknownFormat, name, strings.Join(r.Names(), ", "))
	}
	return fn, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render looks up name and writes rep to w with it.
func (r *Registry) Render(w io.Writer, name string, rep *QueryReport) error {
	fn, err := r.Lookup(name)
	if err != nil {
		return err
	}
	if err := fn(w, rep); err != nil {
		return fmt.Errorf("format %q: %w", name, err)
	}
	return nil
}
