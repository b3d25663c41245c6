package exports

import (
	"fmt"

	"github.com/golemcloud/witkit-api-types/internal/utils/yamler"
	"github.com/golemcloud/witkit-api-types/types"
	"gopkg.in/yaml.v3"
)

func (m Metadata) MarshalYAML() (interface{}, error) {
	exps := make([]*yaml.Node, len(m.Exports))
	for i, e := range m.Exports {
		n, err := nodeOf(e)
		if err != nil {
			return nil, err
		}
		exps[i] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("exports"), yamler.Seq(exps...)),
	), nil
}

func (m *Metadata) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("export manifest should be a mapping")
	}

	seq := yamler.Lookup(value, "exports")
	if yamler.IsNull(seq) {
		m.Exports = []Export{}
		return nil
	}
	if seq.Kind != yaml.SequenceNode {
		return fmt.Errorf(`"exports" should be a sequence`)
	}

	exps := make([]Export, len(seq.Content))
	for i, c := range seq.Content {
		e, err := unmarshalExportNode(c)
		if err != nil {
			return err
		}
		exps[i] = e
	}
	m.Exports = exps
	return nil
}

func unmarshalExportNode(n *yaml.Node) (Export, error) {
	n = yamler.Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("export should be a mapping")
	}
	tag := yamler.Lookup(n, "type")
	if tag == nil || tag.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf(`export has no "type" tag`)
	}

	switch tag.Value {
	case "Function":
		fn := Function{}
		if err := fn.UnmarshalYAML(n); err != nil {
			return nil, err
		}
		return fn, nil
	case "Instance":
		inst := Instance{}
		if err := inst.UnmarshalYAML(n); err != nil {
			return nil, err
		}
		return inst, nil
	default:
		return nil, fmt.Errorf("unknown export type %q", tag.Value)
	}
}

func (f Function) MarshalYAML() (interface{}, error) {
	params := make([]*yaml.Node, len(f.Parameters))
	for i, p := range f.Parameters {
		n, err := nodeOf(p)
		if err != nil {
			return nil, err
		}
		params[i] = n
	}
	results := make([]*yaml.Node, len(f.Results))
	for i, r := range f.Results {
		n, err := nodeOf(r)
		if err != nil {
			return nil, err
		}
		results[i] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text("Function")),
		yamler.Entry(yamler.Text("name"), yamler.Text(f.Name)),
		yamler.Entry(yamler.Text("parameters"), yamler.Seq(params...)),
		yamler.Entry(yamler.Text("results"), yamler.Seq(results...)),
	), nil
}

func (f *Function) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("function export should be a mapping")
	}
	name := yamler.Lookup(value, "name")
	if name == nil || name.Kind != yaml.ScalarNode {
		return fmt.Errorf(`required field missing: "name"`)
	}
	f.Name = name.Value

	f.Parameters = nil
	if params := yamler.Lookup(value, "parameters"); !yamler.IsNull(params) {
		if params.Kind != yaml.SequenceNode {
			return fmt.Errorf(`"parameters" should be a sequence`)
		}
		fields := make([]types.Field, len(params.Content))
		for i, c := range params.Content {
			if err := fields[i].UnmarshalYAML(c); err != nil {
				return err
			}
		}
		f.Parameters = fields
	}

	f.Results = nil
	if results := yamler.Lookup(value, "results"); !yamler.IsNull(results) {
		if results.Kind != yaml.SequenceNode {
			return fmt.Errorf(`"results" should be a sequence`)
		}
		rs := make([]FunctionResult, len(results.Content))
		for i, c := range results.Content {
			if err := rs[i].UnmarshalYAML(c); err != nil {
				return err
			}
		}
		f.Results = rs
	}
	return nil
}

func (r FunctionResult) MarshalYAML() (interface{}, error) {
	entries := []yamler.MapEntry{}
	if r.Name != nil {
		entries = append(entries, yamler.Entry(yamler.Text("name"), yamler.Text(*r.Name)))
	}
	if r.Type != nil {
		n, err := types.MarshalNode(r.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, yamler.Entry(yamler.Text("typ"), n))
	}
	return yamler.Map(entries...), nil
}

func (r *FunctionResult) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("function result should be a mapping")
	}

	r.Name = nil
	if name := yamler.Lookup(value, "name"); !yamler.IsNull(name) {
		if name.Kind != yaml.ScalarNode {
			return fmt.Errorf(`"name" should be a scalar`)
		}
		n := name.Value
		r.Name = &n
	}

	typ := yamler.Lookup(value, "typ")
	if yamler.IsNull(typ) {
		r.Type = nil
		return nil
	}
	t, err := types.UnmarshalNode(typ)
	if err != nil {
		return err
	}
	r.Type = t
	return nil
}

func (i Instance) MarshalYAML() (interface{}, error) {
	fns := make([]*yaml.Node, len(i.Functions))
	for idx, fn := range i.Functions {
		n, err := nodeOf(fn)
		if err != nil {
			return nil, err
		}
		fns[idx] = n
	}
	return yamler.Map(
		yamler.Entry(yamler.Text("type"), yamler.Text("Instance")),
		yamler.Entry(yamler.Text("name"), yamler.Text(i.Name)),
		yamler.Entry(yamler.Text("functions"), yamler.Seq(fns...)),
	), nil
}

func (i *Instance) UnmarshalYAML(value *yaml.Node) error {
	value = yamler.Resolve(value)
	if value == nil || value.Kind != yaml.MappingNode {
		return fmt.Errorf("instance export should be a mapping")
	}
	name := yamler.Lookup(value, "name")
	if name == nil || name.Kind != yaml.ScalarNode {
		return fmt.Errorf(`required field missing: "name"`)
	}
	i.Name = name.Value

	i.Functions = nil
	if fns := yamler.Lookup(value, "functions"); !yamler.IsNull(fns) {
		if fns.Kind != yaml.SequenceNode {
			return fmt.Errorf(`"functions" should be a sequence`)
		}
		functions := make([]Function, len(fns.Content))
		for idx, c := range fns.Content {
			if err := functions[idx].UnmarshalYAML(c); err != nil {
				return err
			}
		}
		i.Functions = functions
	}
	return nil
}

// nodeOf forces a value down to its yaml.Node form.
func nodeOf(v any) (*yaml.Node, error) {
	m, ok := v.(yaml.Marshaler)
	if !ok {
		return nil, fmt.Errorf("%T does not marshal to YAML", v)
	}
	y, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	n, ok := y.(*yaml.Node)
	if !ok {
		return nil, fmt.Errorf("%T does not marshal to a YAML node", v)
	}
	return n, nil
}
