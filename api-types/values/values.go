// Package values holds the dynamic values checked against type
// descriptors: the JSON/YAML data a user edits before invoking a
// function. The model is a closed sum so that the engine can match a
// descriptor and a value in lock-step.
package values

import (
	"github.com/golemcloud/witkit-api-types/internal/utils/cmp"
)

// Kind names the runtime kind of a value, as it appears in messages
// shown to the user.
type Kind string

const (
	KindNull    Kind = "Null"
	KindBoolean Kind = "Boolean"
	KindNumber  Kind = "Number"
	KindString  Kind = "String"
	KindArray   Kind = "Array"
	KindObject  Kind = "Object"
)

// Value is a dynamically-typed value. The set of implementations is
// closed: Null, Bool, Number, Text, Array and Object. A nil Value is
// read as Null everywhere.
type Value interface {
	Kind() Kind
	Equal(other Value) bool
	isValue()
}

// KindOf names the kind of v, reading nil as Null.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// Equal compares two values structurally. Nil is equal to Null.
// Number equality is literal ("1e3" differs from "1000"); Object
// equality is order-sensitive.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	return a.Equal(b)
}

type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) isValue()   {}
func (Null) Equal(other Value) bool {
	if other == nil {
		return true
	}
	_, ok := other.(Null)
	return ok
}

type Bool bool

func (Bool) Kind() Kind { return KindBoolean }
func (Bool) isValue()   {}
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Number carries the decimal literal from the wire, like json.Number.
// Keeping the literal keeps 64-bit boundaries exact where float64
// cannot, and lets messages quote the input as written.
type Number string

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}
func (n Number) Equal(other Value) bool {
	o, ok := other.(Number)
	return ok && n == o
}

type Text string

func (Text) Kind() Kind { return KindString }
func (Text) isValue()   {}
func (t Text) Equal(other Value) bool {
	o, ok := other.(Text)
	return ok && t == o
}

type Array []Value

func (Array) Kind() Kind { return KindArray }
func (Array) isValue()   {}
func (a Array) Equal(other Value) bool {
	o, ok := other.(Array)
	if !ok || len(a) != len(o) {
		return false
	}
	for i, v := range a {
		if !Equal(v, o[i]) {
			return false
		}
	}
	return true
}

// Object is an insertion-ordered list of members. Duplicate names are
// preserved as decoded; Get returns the first match, which is what the
// variant contract (first enumerated key wins) relies on.
type Object []Member

func (Object) Kind() Kind { return KindObject }
func (Object) isValue()   {}
func (obj Object) Equal(other Value) bool {
	o, ok := other.(Object)
	return ok && cmp.SliceEqual(obj, o)
}

// Get returns the first member named name.
func (obj Object) Get(name string) (Value, bool) {
	for _, m := range obj {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

type Member struct {
	Name  string
	Value Value
}

func (m Member) Equal(other Member) bool {
	return m.Name == other.Name && Equal(m.Value, other.Value)
}
