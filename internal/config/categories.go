package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/category"
)

// Categories is a YAML mapping of category label to keywords. Declaration
// order is kept because the first matching category wins.
//
//	categories:
//	  groceries: [tesco, sainsbury]
//	  transport: [tfl]
type Categories []category.Rule

// UnmarshalYAML decodes a mapping node pair by pair.
func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: categories must be a mapping", node.Line)
	}
	rules := make(Categories, 0, len(node.Content)/2)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate category %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var keywords []string
		switch val.Kind {
		case yaml.SequenceNode:
			if err := val.Decode(&keywords); err != nil {
				return fmt.Errorf("category %q: %w", key.Value, err)
			}
		case yaml.ScalarNode:
			if val.Value != "" {
				keywords = []string{val.Value}
			}
		default:
			return fmt.Errorf("line %d: category %q needs a keyword list", val.Line, key.Value)
		}
		rules = append(rules, category.Rule{Label: key.Value, Keywords: keywords})
	}
	*c = rules
	return nil
}

// MarshalYAML encodes the rules as a mapping in declaration order.
func (c Categories) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range c {
		var val yaml.Node
		if err := val.Encode(r.Keywords); err != nil {
			return nil, err
		}
		val.Style = yaml.FlowStyle
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: r.Label}, &val)
	}
	return node, nil
}
