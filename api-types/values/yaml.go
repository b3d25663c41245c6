package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golemcloud/witkit-api-types/internal/utils/yamler"
	"gopkg.in/yaml.v3"
)

// UnmarshalNode decodes a YAML node into a Value. Scalars are typed by
// their resolved tag; numeric literals are rewritten where needed so
// that the Value re-encodes as legal JSON (hex ints become decimal,
// and so on). Aliases are followed.
func UnmarshalNode(node *yaml.Node) (Value, error) {
	node = yamler.Resolve(node)
	if node == nil {
		return Null{}, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return Null{}, nil
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, fmt.Errorf("boolean scalar %q is broken: %w", node.Value, err)
			}
			return Bool(b), nil
		case "!!int":
			return Number(decimalIntLiteral(node.Value)), nil
		case "!!float":
			lit, err := jsonFloatLiteral(node.Value)
			if err != nil {
				return nil, err
			}
			return Number(lit), nil
		default:
			return Text(node.Value), nil
		}
	case yaml.SequenceNode:
		arr := make(Array, len(node.Content))
		for i, c := range node.Content {
			v, err := UnmarshalNode(c)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case yaml.MappingNode:
		obj := Object{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			k := yamler.Resolve(node.Content[i])
			if k == nil || k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("object key should be a scalar")
			}
			v, err := UnmarshalNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Name: k.Value, Value: v})
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported YAML node (kind %d)", node.Kind)
}

// decimalIntLiteral rewrites YAML integer spellings (hex, octal,
// binary, "_" separators) to plain decimal.
func decimalIntLiteral(lit string) string {
	if i, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(lit, 0, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	// a decimal integer wider than 64 bits; keep it exact
	lit = strings.ReplaceAll(lit, "_", "")
	return strings.TrimPrefix(lit, "+")
}

func jsonFloatLiteral(lit string) (string, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("cannot represent %q as a JSON number", lit)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func (Null) MarshalYAML() (interface{}, error) {
	return yamler.Null(), nil
}

func (b Bool) MarshalYAML() (interface{}, error) {
	return yamler.Bool(bool(b)), nil
}

func (n Number) MarshalYAML() (interface{}, error) {
	return yamler.Number(n.yamlLiteral()), nil
}

// yamlLiteral adjusts the JSON literal so that YAML reads it back as a
// number: exponent forms without a dot, like "1e3", would resolve as
// strings.
func (n Number) yamlLiteral() string {
	lit := string(n)
	if lit == "" {
		return "0"
	}
	if !strings.ContainsAny(lit, ".eE") {
		return lit // integer, unbounded in YAML
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.Contains(s, ".") && strings.Contains(s, "e") {
		s = strings.Replace(s, "e", ".0e", 1)
	}
	return s
}

func (t Text) MarshalYAML() (interface{}, error) {
	return yamler.Text(string(t)), nil
}

func (a Array) MarshalYAML() (interface{}, error) {
	items := make([]*yaml.Node, len(a))
	for i, v := range a {
		n, err := MarshalNode(v)
		if err != nil {
			return nil, err
		}
		items[i] = n
	}
	return yamler.Seq(items...), nil
}

func (obj Object) MarshalYAML() (interface{}, error) {
	entries := make([]yamler.MapEntry, len(obj))
	for i, m := range obj {
		n, err := MarshalNode(m.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = yamler.Entry(yamler.Text(m.Name), n)
	}
	return yamler.Map(entries...), nil
}

// MarshalNode marshals a Value to its yaml.Node form, the counterpart
// of UnmarshalNode. A nil Value is a null node.
func MarshalNode(v Value) (*yaml.Node, error) {
	if v == nil {
		return yamler.Null(), nil
	}
	m, ok := v.(yaml.Marshaler)
	if !ok {
		return nil, fmt.Errorf("value %T does not marshal to YAML", v)
	}
	y, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	n, ok := y.(*yaml.Node)
	if !ok {
		return nil, fmt.Errorf("value %T does not marshal to a YAML node", v)
	}
	return n, nil
}
