package source

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/calumari/skuquery"
)

// maxYAMLNodes bounds how many nodes alias expansion may produce.
var maxYAMLNodes = 1 << 20

var errYAMLTooLarge = errors.New("document too large after alias expansion")

func decodeYAML(data []byte, binding string) (skuquery.Array, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	conv := yamlConverter{active: make(map[*yaml.Node]bool), budget: maxYAMLNodes}
	root, err := conv.convert(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return bound(root, binding)
}

// yamlConverter turns a node tree into the ordered record model. Mapping key
// order is kept as written; aliases are expanded in place.
type yamlConverter struct {
	// active holds the collections currently being converted. An alias that
	// points at one of them would expand forever.
	active map[*yaml.Node]bool
	budget int
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	if c.budget--; c.budget < 0 {
		return nil, errYAMLTooLarge
	}
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if c.active[n.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s refers to an enclosing node", n.Line, n.Value)
		}
		return c.convert(n.Alias)
	case yaml.MappingNode:
		c.active[n] = true
		defer delete(c.active, n)
		return c.mapping(n)
	case yaml.SequenceNode:
		c.active[n] = true
		defer delete(c.active, n)
		arr := make(skuquery.Array, 0, len(n.Content))
		for _, child := range n.Content {
			val, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		// timestamps decode to their string spelling when the target is any
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func (c *yamlConverter) mapping(n *yaml.Node) (skuquery.Document, error) {
	d := make(skuquery.Document, 0, len(n.Content)/2)
	seen := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		line := k.Line
		if k.Kind == yaml.AliasNode {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", line)
		}
		if prev, ok := seen[k.Value]; ok {
			return nil, fmt.Errorf("line %d: mapping key %q already defined at line %d", line, k.Value, prev)
		}
		seen[k.Value] = line
		val, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		d = append(d, skuquery.Entry{Key: k.Value, Value: val})
	}
	return d, nil
}
