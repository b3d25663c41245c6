package exports

import (
	"encoding/json"
	"fmt"

	"github.com/golemcloud/witkit-api-types/types"
)

// UnmarshalExport decodes a single export, discriminated by its
// "type" tag.
func UnmarshalExport(data []byte) (Export, error) {
	head := struct {
		Type *string `json:"type"`
	}{}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("export is broken: %w", err)
	}
	if head.Type == nil {
		return nil, fmt.Errorf(`export has no "type" tag`)
	}

	switch *head.Type {
	case "Function":
		fn := Function{}
		if err := json.Unmarshal(data, &fn); err != nil {
			return nil, err
		}
		return fn, nil
	case "Instance":
		inst := Instance{}
		if err := json.Unmarshal(data, &inst); err != nil {
			return nil, err
		}
		return inst, nil
	default:
		return nil, fmt.Errorf("unknown export type %q", *head.Type)
	}
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	exps := m.Exports
	if exps == nil {
		exps = []Export{}
	}
	return json.Marshal(struct {
		Exports []Export `json:"exports"`
	}{Exports: exps})
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	envelope := struct {
		Exports []json.RawMessage `json:"exports"`
	}{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	exps := make([]Export, len(envelope.Exports))
	for i, raw := range envelope.Exports {
		e, err := UnmarshalExport(raw)
		if err != nil {
			return err
		}
		exps[i] = e
	}
	m.Exports = exps
	return nil
}

func (f Function) MarshalJSON() ([]byte, error) {
	params := f.Parameters
	if params == nil {
		params = []types.Field{}
	}
	results := f.Results
	if results == nil {
		results = []FunctionResult{}
	}
	return json.Marshal(struct {
		Type       string           `json:"type"`
		Name       string           `json:"name"`
		Parameters []types.Field    `json:"parameters"`
		Results    []FunctionResult `json:"results"`
	}{
		Type:       "Function",
		Name:       f.Name,
		Parameters: params,
		Results:    results,
	})
}

func (f *Function) UnmarshalJSON(data []byte) error {
	envelope := struct {
		Name       *string          `json:"name"`
		Parameters []types.Field    `json:"parameters"`
		Results    []FunctionResult `json:"results"`
	}{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if envelope.Name == nil {
		return fmt.Errorf(`required field missing: "name"`)
	}

	f.Name = *envelope.Name
	f.Parameters = envelope.Parameters
	f.Results = envelope.Results
	return nil
}

func (r FunctionResult) MarshalJSON() ([]byte, error) {
	var typ json.RawMessage
	if r.Type != nil {
		t, err := json.Marshal(r.Type)
		if err != nil {
			return nil, err
		}
		typ = t
	}
	return json.Marshal(struct {
		Name *string         `json:"name,omitempty"`
		Typ  json.RawMessage `json:"typ,omitempty"`
	}{Name: r.Name, Typ: typ})
}

func (r *FunctionResult) UnmarshalJSON(data []byte) error {
	envelope := struct {
		Name *string         `json:"name"`
		Typ  json.RawMessage `json:"typ"`
	}{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	r.Name = envelope.Name
	if len(envelope.Typ) == 0 || string(envelope.Typ) == "null" {
		r.Type = nil
		return nil
	}
	t, err := types.Unmarshal(envelope.Typ)
	if err != nil {
		return err
	}
	r.Type = t
	return nil
}

func (i Instance) MarshalJSON() ([]byte, error) {
	fns := i.Functions
	if fns == nil {
		fns = []Function{}
	}
	return json.Marshal(struct {
		Type      string     `json:"type"`
		Name      string     `json:"name"`
		Functions []Function `json:"functions"`
	}{
		Type:      "Instance",
		Name:      i.Name,
		Functions: fns,
	})
}

func (i *Instance) UnmarshalJSON(data []byte) error {
	envelope := struct {
		Name      *string    `json:"name"`
		Functions []Function `json:"functions"`
	}{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if envelope.Name == nil {
		return fmt.Errorf(`required field missing: "name"`)
	}

	i.Name = *envelope.Name
	i.Functions = envelope.Functions
	return nil
}
