package scope

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes an include scope declared in YAML. A scalar names a
// single relation, a sequence merges its elements, and a mapping nests
// scopes under relation keys in document order:
//
//	books:
//	  - genre
//	  - author.id
//	tags: ~
func (t *Tree) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeNode(node)
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// MarshalYAML encodes the tree as nested mappings. Leaf relations are
// written with a null value.
func (t Tree) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range t.entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}
		var val *yaml.Node
		if e.sub.IsEmpty() {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
		} else {
			v, err := e.sub.MarshalYAML()
			if err != nil {
				return nil, err
			}
			val = v.(*yaml.Node)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func decodeNode(node *yaml.Node) (Tree, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Tree{}, nil
		}
		return decodeNode(node.Content[0])
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return Tree{}, nil
		}
		return Resolve(node.Value)
	case yaml.SequenceNode:
		var t Tree
		for _, item := range node.Content {
			sub, err := decodeNode(item)
			if err != nil {
				return Tree{}, err
			}
			t.Merge(sub)
		}
		return t, nil
	case yaml.MappingNode:
		var t Tree
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if err := validateKey(k.Value); err != nil {
				return Tree{}, fmt.Errorf("line %d: %w", k.Line, err)
			}
			sub, err := decodeNode(v)
			if err != nil {
				return Tree{}, err
			}
			if existing, ok := t.Get(k.Value); ok {
				merged := existing.Clone()
				merged.Merge(sub)
				sub = merged
			}
			t.Set(k.Value, sub)
		}
		return t, nil
	default:
		return Tree{}, fmt.Errorf("%w: unexpected yaml node at line %d", ErrInvalidDirective, node.Line)
	}
}
