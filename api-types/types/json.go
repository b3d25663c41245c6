package types

import (
	"encoding/json"
	"fmt"
)

// Unmarshal decodes a JSON type descriptor.
//
// The wire shape is an object tagged with "type":
//
//	{"type": "Record", "fields": [{"name": "id", "typ": {"type": "U64"}}]}
//
// An object with an unrecognized tag decodes to Unknown; a document
// without a "type" key is an error.
func Unmarshal(data []byte) (Type, error) {
	var envelope struct {
		Type   *string         `json:"type"`
		Fields []Field         `json:"fields"`
		Items  []rawType       `json:"items"`
		Inner  *rawType        `json:"inner"`
		Names  []string        `json:"names"`
		Cases  json.RawMessage `json:"cases"`
		Ok     *rawType        `json:"ok"`
		Err    *rawType        `json:"err"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("type descriptor is broken: %w", err)
	}
	if envelope.Type == nil {
		return nil, fmt.Errorf(`type descriptor has no "type" tag`)
	}

	switch Kind(*envelope.Type) {
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
		return Record{Fields: envelope.Fields}, nil
	case KindTuple:
		items := make([]Type, len(envelope.Items))
		for i, raw := range envelope.Items {
			items[i] = raw.t
		}
		return Tuple{Items: items}, nil
	case KindList:
		return List{Elem: deref(envelope.Inner)}, nil
	case KindOption:
		return Option{Inner: deref(envelope.Inner)}, nil
	case KindFlags:
		return Flags{Names: envelope.Names}, nil
	case KindEnum:
		var cases []string
		if len(envelope.Cases) != 0 {
			if err := json.Unmarshal(envelope.Cases, &cases); err != nil {
				return nil, fmt.Errorf(`"cases" of Enum is broken: %w`, err)
			}
		}
		return Enum{Cases: cases}, nil
	case KindVariant:
		var cases []Case
		if len(envelope.Cases) != 0 {
			if err := json.Unmarshal(envelope.Cases, &cases); err != nil {
				return nil, fmt.Errorf(`"cases" of Variant is broken: %w`, err)
			}
		}
		return Variant{Cases: cases}, nil
	case KindResult:
		return Result{Ok: deref(envelope.Ok), Err: deref(envelope.Err)}, nil
	default:
		return Unknown{Tag: *envelope.Type}, nil
	}
}

// rawType defers decoding of a nested descriptor during Unmarshal.
type rawType struct {
	t Type
}

func (r *rawType) UnmarshalJSON(data []byte) error {
	t, err := Unmarshal(data)
	if err != nil {
		return err
	}
	r.t = t
	return nil
}

func deref(r *rawType) Type {
	if r == nil {
		return nil
	}
	return r.t
}

func marshalType(t Type) (json.RawMessage, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func marshalTag(k Kind) ([]byte, error) {
	return json.Marshal(struct {
		Type Kind `json:"type"`
	}{Type: k})
}

func (Bool) MarshalJSON() ([]byte, error) { return marshalTag(KindBool) }
func (U8) MarshalJSON() ([]byte, error)   { return marshalTag(KindU8) }
func (U16) MarshalJSON() ([]byte, error)  { return marshalTag(KindU16) }
func (U32) MarshalJSON() ([]byte, error)  { return marshalTag(KindU32) }
func (U64) MarshalJSON() ([]byte, error)  { return marshalTag(KindU64) }
func (S8) MarshalJSON() ([]byte, error)   { return marshalTag(KindS8) }
func (S16) MarshalJSON() ([]byte, error)  { return marshalTag(KindS16) }
func (S32) MarshalJSON() ([]byte, error)  { return marshalTag(KindS32) }
func (S64) MarshalJSON() ([]byte, error)  { return marshalTag(KindS64) }
func (F32) MarshalJSON() ([]byte, error)  { return marshalTag(KindF32) }
func (F64) MarshalJSON() ([]byte, error)  { return marshalTag(KindF64) }
func (Chr) MarshalJSON() ([]byte, error)  { return marshalTag(KindChr) }
func (Str) MarshalJSON() ([]byte, error)  { return marshalTag(KindStr) }

func (u Unknown) MarshalJSON() ([]byte, error) { return marshalTag(Kind(u.Tag)) }

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Kind    `json:"type"`
		Fields []Field `json:"fields"`
	}{Type: KindRecord, Fields: r.Fields})
}

func (f Field) MarshalJSON() ([]byte, error) {
	typ, err := marshalType(f.Type)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"typ,omitempty"`
	}{Name: f.Name, Type: typ})
}

func (f *Field) UnmarshalJSON(data []byte) error {
	e := new(struct {
		Name *string  `json:"name"`
		Type *rawType `json:"typ"`
	})
	if err := json.Unmarshal(data, e); err != nil {
		return err
	}
	if e.Name == nil {
		return fmt.Errorf(`required field missing: "name"`)
	}
	f.Name = *e.Name
	f.Type = deref(e.Type)
	return nil
}

func (t Tuple) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(t.Items))
	for i, item := range t.Items {
		raw, err := marshalType(item)
		if err != nil {
			return nil, err
		}
		items[i] = raw
	}
	return json.Marshal(struct {
		Type  Kind              `json:"type"`
		Items []json.RawMessage `json:"items"`
	}{Type: KindTuple, Items: items})
}

func (l List) MarshalJSON() ([]byte, error) {
	inner, err := marshalType(l.Elem)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  Kind            `json:"type"`
		Inner json.RawMessage `json:"inner,omitempty"`
	}{Type: KindList, Inner: inner})
}

func (o Option) MarshalJSON() ([]byte, error) {
	inner, err := marshalType(o.Inner)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  Kind            `json:"type"`
		Inner json.RawMessage `json:"inner,omitempty"`
	}{Type: KindOption, Inner: inner})
}

func (f Flags) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Kind     `json:"type"`
		Names []string `json:"names"`
	}{Type: KindFlags, Names: f.Names})
}

func (e Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Kind     `json:"type"`
		Cases []string `json:"cases"`
	}{Type: KindEnum, Cases: e.Cases})
}

func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Kind   `json:"type"`
		Cases []Case `json:"cases"`
	}{Type: KindVariant, Cases: v.Cases})
}

func (c Case) MarshalJSON() ([]byte, error) {
	typ, err := marshalType(c.Type)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"typ,omitempty"`
	}{Name: c.Name, Type: typ})
}

func (c *Case) UnmarshalJSON(data []byte) error {
	e := new(struct {
		Name *string  `json:"name"`
		Type *rawType `json:"typ"`
	})
	if err := json.Unmarshal(data, e); err != nil {
		return err
	}
	if e.Name == nil {
		return fmt.Errorf(`required field missing: "name"`)
	}
	c.Name = *e.Name
	c.Type = deref(e.Type)
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	ok, err := marshalType(r.Ok)
	if err != nil {
		return nil, err
	}
	errTyp, err := marshalType(r.Err)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type Kind            `json:"type"`
		Ok   json.RawMessage `json:"ok,omitempty"`
		Err  json.RawMessage `json:"err,omitempty"`
	}{Type: KindResult, Ok: ok, Err: errTyp})
}
