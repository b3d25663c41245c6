package types

import (
	"fmt"

	"github.com/golemcloud/witkit-api-types/internal/utils/yamler"
	"gopkg.in/yaml.v3"
)

// UnmarshalNode decodes a YAML type descriptor. The mapping shape is
// the same as the JSON one, keyed by "type".
func UnmarshalNode(node *yaml.Node) (Type, error) {
	node = yamler.Resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("type descriptor should be a mapping")
	}

	tagNode := yamler.Lookup(node, "type")
	if tagNode == nil || tagNode.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf(`type descriptor has no "type" tag`)
	}
	tag := tagNode.Value

	switch Kind(tag) {
	case KindBool:
		return Bool{}, nil
	case KindU8:
		return U8{}, nil
	case KindU16:
		return U16{}, nil
	case KindU32:
		return U32{}, nil
	case KindU64:
		return U64{}, nil
	case KindS8:
		return S8{}, nil
	case KindS16:
		return S16{}, nil
	case KindS32:
		return S32{}, nil
	case KindS64:
		return S64{}, nil
	case KindF32:
		return F32{}, nil
	case KindF64:
		return F64{}, nil
	case KindChr:
		return Chr{}, nil
	case KindStr:
		return Str{}, nil
	case KindRecord:
		fields, err := decodeFieldSeq(yamler.Lookup(node, "fields"))
		if err != nil {
			return nil, err
		}
		return Record{Fields: fields}, nil
	case KindTuple:
		items, err := decodeTypeSeq(yamler.Lookup(node, "items"))
		if err != nil {
			return nil, err
		}
		return Tuple{Items: items}, nil
	case KindList:
		elem, err := decodeInner(yamler.Lookup(node, "inner"))
		if err != nil {
			return nil, err
		}
		return List{Elem: elem}, nil
	case KindOption:
		inner, err := decodeInner(yamler.Lookup(node, "inner"))
		if err != nil {
			return nil, err
		}
		return Option{Inner: inner}, nil
	case KindFlags:
		names, err := decodeStringSeq(yamler.Lookup(node, "names"))
		if err != nil {
			return nil, err
		}
		return Flags{Names: names}, nil
	case KindEnum:
		cases, err := decodeStringSeq(yamler.Lookup(node, "cases"))
		if err != nil {
			return nil, err
		}
		return Enum{Cases: cases}, nil
	case KindVariant:
		cases, err := decodeCaseSeq(yamler.Lookup(node, "cases"))
		if err != nil {
			return nil, err
		}
		return Variant{Cases: cases}, nil
	case KindResult:
		ok, err := decodeInner(yamler.Lookup(node, "ok"))
		if err != nil {
			return nil, err
		}
		errTyp, err := decodeInner(yamler.Lookup(node, "err"))
		if err != nil {
			return nil, err
		}
		return Result{Ok: ok, Err: errTyp}, nil
	default:
		return Unknown{Tag: tag}, nil
	}
}

func decodeInner(n *yaml.Node) (Type, error) {
	if yamler.IsNull(n) {
		return nil, nil
	}
	return UnmarshalNode(n)
}

func decodeTypeSeq(n *yaml.Node) ([]Type, error) {
	if yamler.IsNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of type descriptors")
	}
	items := make([]Type, len(n.Content))
	for i, c := range n.Content {
		t, err := UnmarshalNode(c)
		if err != nil {
			return nil, err
		}
		items[i] = t
	}
	return items, nil
}

func decodeFieldSeq(n *yaml.Node) ([]Field, error) {
	if yamler.IsNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of fields")
	}
	fields := make([]Field, len(n.Content))
	for i, c := range n.Content {
		if err := fields[i].UnmarshalYAML(c); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func decodeCaseSeq(n *yaml.Node) ([]Case, error) {
	if yamler.IsNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of cases")
	}
	cases := make([]Case, len(n.Content))
	for i, c := range n.Content {
		if err := cases[i].UnmarshalYAML(c); err != nil {
			return nil, err
		}
	}
	return cases, nil
}

func decodeStringSeq(n *yaml.Node) ([]string, error) {
	if yamler.IsNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of names")
	}
	names := make([]string, len(n.Content))
	for i, c := range n.Content {
		c = yamler.Resolve(c)
		if c.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("expected a scalar name")
		}
		names[i] = c.Value
	}
	return names, nil
}

func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("field should be a mapping")
	}
	nameNode := yamler.Lookup(value, "name")
	if nameNode == nil || nameNode.Kind != yaml.ScalarNode {
		return fmt.Errorf(`required field missing: "name"`)
	}
	f.Name = nameNode.Value

	typ, err := decodeInner(yamler.Lookup(value, "typ"))
	if err != nil {
		return err
	}
	f.Type = typ
	return nil
}

func (c *Case) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("case should be a mapping")
	}
	nameNode := yamler.Lookup(value, "name")
	if nameNode == nil || nameNode.Kind != yaml.ScalarNode {
		return fmt.Errorf(`required field missing: "name"`)
	}
	c.Name = nameNode.Value

	typ, err := decodeInner(yamler.Lookup(value, "typ"))
	if err != nil {
		return err
	}
	c.Type = typ
	return nil
}

// MarshalNode marshals a descriptor to its yaml.Node form, the
// counterpart of UnmarshalNode.
func MarshalNode(t Type) (*yaml.Node, error) {
	m, ok := t.(yaml.Marshaler)
	if !ok {
		return nil, fmt.Errorf("type %T does not marshal to YAML", t)
	}
	v, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	n, ok := v.(*yaml.Node)
	if !ok {
		return nil, fmt.Errorf("type %T does not marshal to a YAML node", t)
	}
	return n, nil
}

func yamlTag(k Kind) (interface{}, error) {
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(k))),
	), nil
}

func (Bool) MarshalYAML() (interface{}, error) { return yamlTag(KindBool) }
func (U8) MarshalYAML() (interface{}, error)   { return yamlTag(KindU8) }
func (U16) MarshalYAML() (interface{}, error)  { return yamlTag(KindU16) }
func (U32) MarshalYAML() (interface{}, error)  { return yamlTag(KindU32) }
func (U64) MarshalYAML() (interface{}, error)  { return yamlTag(KindU64) }
func (S8) MarshalYAML() (interface{}, error)   { return yamlTag(KindS8) }
func (S16) MarshalYAML() (interface{}, error)  { return yamlTag(KindS16) }
func (S32) MarshalYAML() (interface{}, error)  { return yamlTag(KindS32) }
func (S64) MarshalYAML() (interface{}, error)  { return yamlTag(KindS64) }
func (F32) MarshalYAML() (interface{}, error)  { return yamlTag(KindF32) }
func (F64) MarshalYAML() (interface{}, error)  { return yamlTag(KindF64) }
func (Chr) MarshalYAML() (interface{}, error)  { return yamlTag(KindChr) }
func (Str) MarshalYAML() (interface{}, error)  { return yamlTag(KindStr) }

func (u Unknown) MarshalYAML() (interface{}, error) { return yamlTag(Kind(u.Tag)) }

func (r Record) MarshalYAML() (interface{}, error) {
	fields := make([]*yaml.Node, len(r.Fields))
	for i, f := range r.Fields {
		n, err := f.marshalYAMLNode()
		if err != nil {
			return nil, err
		}
		fields[i] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindRecord))),
		yamler.Entry(yamler.Text("fields"), yamler.Seq(fields...)),
	), nil
}

func (f Field) MarshalYAML() (interface{}, error) {
	return f.marshalYAMLNode()
}

func (f Field) marshalYAMLNode() (*yaml.Node, error) {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("name"), yamler.Text(f.Name)),
	}
	if f.Type != nil {
		n, err := MarshalNode(f.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("typ"), n))
	}
	return yamler.Map(entries...), nil
}

func (t Tuple) MarshalYAML() (interface{}, error) {
	items := make([]*yaml.Node, len(t.Items))
	for i, item := range t.Items {
		n, err := MarshalNode(item)
		if err != nil {
			return nil, err
		}
		items[i] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindTuple))),
		yamler.Entry(yamler.Text("items"), yamler.Seq(items...)),
	), nil
}

func (l List) MarshalYAML() (interface{}, error) {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindList))),
	}
	if l.Elem != nil {
		n, err := MarshalNode(l.Elem)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("inner"), n))
	}
	return yamler.Map(entries...), nil
}

func (o Option) MarshalYAML() (interface{}, error) {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindOption))),
	}
	if o.Inner != nil {
		n, err := MarshalNode(o.Inner)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("inner"), n))
	}
	return yamler.Map(entries...), nil
}

func (f Flags) MarshalYAML() (interface{}, error) {
	names := make([]*yaml.Node, len(f.Names))
	for i, name := range f.Names {
		names[i] = yamler.Text(name)
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindFlags))),
		yamler.Entry(yamler.Text("names"), yamler.Seq(names...)),
	), nil
}

func (e Enum) MarshalYAML() (interface{}, error) {
	cases := make([]*yaml.Node, len(e.Cases))
	for i, c := range e.Cases {
		cases[i] = yamler.Text(c)
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindEnum))),
		yamler.Entry(yamler.Text("cases"), yamler.Seq(cases...)),
	), nil
}

func (v Variant) MarshalYAML() (interface{}, error) {
	cases := make([]*yaml.Node, len(v.Cases))
	for i, c := range v.Cases {
		n, err := c.marshalYAMLNode()
		if err != nil {
			return nil, err
		}
		cases[i] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindVariant))),
		yamler.Entry(yamler.Text("cases"), yamler.Seq(cases...)),
	), nil
}

func (c Case) MarshalYAML() (interface{}, error) {
	return c.marshalYAMLNode()
}

func (c Case) marshalYAMLNode() (*yaml.Node, error) {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("name"), yamler.Text(c.Name)),
	}
	if c.Type != nil {
		n, err := MarshalNode(c.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("typ"), n))
	}
	return yamler.Map(entries...), nil
}

func (r Result) MarshalYAML() (interface{}, error) {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("type"), yamler.Text(string(KindResult))),
	}
	if r.Ok != nil {
		n, err := MarshalNode(r.Ok)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("ok"), n))
	}
	if r.Err != nil {
		n, err := MarshalNode(r.Err)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("err"), n))
	}
	return yamler.Map(entries...), nil
}
