// Package types holds the structural type descriptors served in
// component metadata: primitives, records, tuples, lists, options,
// flags, enums, variants and results, as they appear on the wire.
package types

import (
	"github.com/golemcloud/witkit-api-types/internal/utils/cmp"
)

// Kind is the wire tag of a type descriptor, like "U32" or "Record".
type Kind string

const (
	KindBool Kind = "Bool"
	KindU8   Kind = "U8"
	KindU16  Kind = "U16"
	KindU32  Kind = "U32"
	KindU64  Kind = "U64"
	KindS8   Kind = "S8"
	KindS16  Kind = "S16"
	KindS32  Kind = "S32"
	KindS64  Kind = "S64"
	KindF32  Kind = "F32"
	KindF64  Kind = "F64"
	KindChr  Kind = "Chr"
	KindStr  Kind = "Str"

	KindRecord  Kind = "Record"
	KindTuple   Kind = "Tuple"
	KindList    Kind = "List"
	KindOption  Kind = "Option"
	KindFlags   Kind = "Flags"
	KindEnum    Kind = "Enum"
	KindVariant Kind = "Variant"
	KindResult  Kind = "Result"
)

// Type is a type descriptor node. The set of implementations is closed:
// the primitives above, Record, Tuple, List, Option, Flags, Enum,
// Variant, Result and Unknown. Descriptors are immutable once decoded.
type Type interface {
	// Kind returns the wire tag of this node.
	Kind() Kind

	// Equal reports whether other is structurally identical to this
	// node, including the order of fields, items, names and cases.
	Equal(other Type) bool

	isType()
}

// Equal compares two descriptors. Either side may be nil; two nils are
// equal.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

type Bool struct{}

func (Bool) Kind() Kind { return KindBool }
func (Bool) isType()    {}
func (Bool) Equal(other Type) bool {
	_, ok := other.(Bool)
	return ok
}

type U8 struct{}

func (U8) Kind() Kind { return KindU8 }
func (U8) isType()    {}
func (U8) Equal(other Type) bool {
	_, ok := other.(U8)
	return ok
}

type U16 struct{}

func (U16) Kind() Kind { return KindU16 }
func (U16) isType()    {}
func (U16) Equal(other Type) bool {
	_, ok := other.(U16)
	return ok
}

type U32 struct{}

func (U32) Kind() Kind { return KindU32 }
func (U32) isType()    {}
func (U32) Equal(other Type) bool {
	_, ok := other.(U32)
	return ok
}

type U64 struct{}

func (U64) Kind() Kind { return KindU64 }
func (U64) isType()    {}
func (U64) Equal(other Type) bool {
	_, ok := other.(U64)
	return ok
}

type S8 struct{}

func (S8) Kind() Kind { return KindS8 }
func (S8) isType()    {}
func (S8) Equal(other Type) bool {
	_, ok := other.(S8)
	return ok
}

type S16 struct{}

func (S16) Kind() Kind { return KindS16 }
func (S16) isType()    {}
func (S16) Equal(other Type) bool {
	_, ok := other.(S16)
	return ok
}

type S32 struct{}

func (S32) Kind() Kind { return KindS32 }
func (S32) isType()    {}
func (S32) Equal(other Type) bool {
	_, ok := other.(S32)
	return ok
}

type S64 struct{}

func (S64) Kind() Kind { return KindS64 }
func (S64) isType()    {}
func (S64) Equal(other Type) bool {
	_, ok := other.(S64)
	return ok
}

type F32 struct{}

func (F32) Kind() Kind { return KindF32 }
func (F32) isType()    {}
func (F32) Equal(other Type) bool {
	_, ok := other.(F32)
	return ok
}

type F64 struct{}

func (F64) Kind() Kind { return KindF64 }
func (F64) isType()    {}
func (F64) Equal(other Type) bool {
	_, ok := other.(F64)
	return ok
}

type Chr struct{}

func (Chr) Kind() Kind { return KindChr }
func (Chr) isType()    {}
func (Chr) Equal(other Type) bool {
	_, ok := other.(Chr)
	return ok
}

type Str struct{}

func (Str) Kind() Kind { return KindStr }
func (Str) isType()    {}
func (Str) Equal(other Type) bool {
	_, ok := other.(Str)
	return ok
}

// Record is a product type with named fields. Field order is
// significant for display and for Equal, but not for validation.
type Record struct {
	Fields []Field
}

func (Record) Kind() Kind { return KindRecord }
func (Record) isType()    {}
func (r Record) Equal(other Type) bool {
	o, ok := other.(Record)
	return ok && cmp.SliceEqual(r.Fields, o.Fields)
}

// Field is a named member of a Record, and also names the parameters
// of a function signature.
type Field struct {
	Name string
	Type Type
}

func (f Field) Equal(other Field) bool {
	return f.Name == other.Name && Equal(f.Type, other.Type)
}

// Tuple is a positional product type with fixed arity.
type Tuple struct {
	Items []Type
}

func (Tuple) Kind() Kind { return KindTuple }
func (Tuple) isType()    {}
func (t Tuple) Equal(other Type) bool {
	o, ok := other.(Tuple)
	if !ok || len(t.Items) != len(o.Items) {
		return false
	}
	for i, item := range t.Items {
		if !Equal(item, o.Items[i]) {
			return false
		}
	}
	return true
}

// List is a homogeneous sequence of unbounded length.
type List struct {
	Elem Type
}

func (List) Kind() Kind { return KindList }
func (List) isType()    {}
func (l List) Equal(other Type) bool {
	o, ok := other.(List)
	return ok && Equal(l.Elem, o.Elem)
}

// Option is zero-or-one presence of the inner type. Absence is null at
// the value level.
type Option struct {
	Inner Type
}

func (Option) Kind() Kind { return KindOption }
func (Option) isType()    {}
func (op Option) Equal(other Type) bool {
	o, ok := other.(Option)
	return ok && Equal(op.Inner, o.Inner)
}

// Flags is a set-valued type: a value is a subset of Names.
// Names is an ordered set; the first name doubles as the default.
type Flags struct {
	Names []string
}

func (Flags) Kind() Kind { return KindFlags }
func (Flags) isType()    {}
func (f Flags) Equal(other Type) bool {
	o, ok := other.(Flags)
	return ok && cmp.SliceEq(f.Names, o.Names)
}

// Enum is a closed set of case names; a value is exactly one of them.
type Enum struct {
	Cases []string
}

func (Enum) Kind() Kind { return KindEnum }
func (Enum) isType()    {}
func (e Enum) Equal(other Type) bool {
	o, ok := other.(Enum)
	return ok && cmp.SliceEq(e.Cases, o.Cases)
}

// Variant is a tagged union. A value is an object selecting one case
// by name. A Variant with no cases degrades to an always-null type.
type Variant struct {
	Cases []Case
}

func (Variant) Kind() Kind { return KindVariant }
func (Variant) isType()    {}
func (v Variant) Equal(other Type) bool {
	o, ok := other.(Variant)
	return ok && cmp.SliceEqual(v.Cases, o.Cases)
}

// Case is one alternative of a Variant. Type is nil for a unit case,
// which carries no payload.
type Case struct {
	Name string
	Type Type
}

func (c Case) Equal(other Case) bool {
	return c.Name == other.Name && Equal(c.Type, other.Type)
}

// Result describes a success-or-error outcome. Either side may be nil
// when that side carries no payload.
type Result struct {
	Ok  Type
	Err Type
}

func (Result) Kind() Kind { return KindResult }
func (Result) isType()    {}
func (r Result) Equal(other Type) bool {
	o, ok := other.(Result)
	return ok && Equal(r.Ok, o.Ok) && Equal(r.Err, o.Err)
}

// Unknown preserves a wire tag this package does not recognize.
// Decoding never fails on it; the validator rejects it, and the
// normalizer and renderer pass it through marked.
type Unknown struct {
	Tag string
}

func (u Unknown) Kind() Kind { return Kind(u.Tag) }
func (Unknown) isType()      {}
func (u Unknown) Equal(other Type) bool {
	o, ok := other.(Unknown)
	return ok && u.Tag == o.Tag
}
