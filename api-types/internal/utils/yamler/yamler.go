package yamler

import (
	"gopkg.in/yaml.v3"
)

// Builders for yaml.Node trees used by MarshalYAML implementations.
//
// Scalars carry explicit tags so that ambiguous literals survive
// re-encoding: a Text node holding "42" is emitted quoted, not as an int.

func Text(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func Bool(b bool) *yaml.Node {
	value := "false"
	if b {
		value = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}
}

// Number builds a scalar from a numeric literal.
// The caller is responsible for passing a literal YAML can read back
// as a number.
func Number(literal string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: literal}
}

func Null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func Seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

type MapEntry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

func Entry(k *yaml.Node, v *yaml.Node) MapEntry {
	return MapEntry{Key: k, Value: v}
}

func Map(entries ...MapEntry) *yaml.Node {
	content := []*yaml.Node{}

	for _, e := range entries {
		content = append(content, e.Key)
		content = append(content, e.Value)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

// Resolve unwraps document nodes and follows alias nodes, so that
// UnmarshalYAML implementations see the node they mean to decode.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

// Lookup finds the value node for key in a mapping node.
// It returns nil when the key is not there.
func Lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := Resolve(mapping.Content[i])
		if k != nil && k.Kind == yaml.ScalarNode && k.Value == key {
			return Resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// IsNull is true for a missing node and for an explicit null scalar.
func IsNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
