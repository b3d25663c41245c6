// Package defaults synthesizes editable default values for typed
// parameters: the skeleton a user starts from before invoking a
// function.
package defaults

import (
	"strings"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit-api-types/values"
)

// ForType builds the default value of a type descriptor.
//
// It never fails. Descriptors this package cannot interpret map to
// Null, since the result feeds an editor form, not a gate.
func ForType(t types.Type) values.Value {
	switch typ := t.(type) {
	case types.Bool:
		return values.Bool(false)
	case types.U8, types.U16, types.U32, types.U64,
		types.S8, types.S16, types.S32, types.S64,
		types.F32, types.F64:
		return values.Number("0")
	case types.Str, types.Chr:
		return values.Text("")
	case types.Record:
		obj := make(values.Object, len(typ.Fields))
		for i, f := range typ.Fields {
			obj[i] = values.Member{Name: f.Name, Value: ForType(f.Type)}
		}
		return obj
	case types.Tuple:
		items := make(values.Array, len(typ.Items))
		for i, item := range typ.Items {
			items[i] = ForType(item)
		}
		return items
	case types.List:
		// a single template row, to be duplicated or removed in the editor
		return values.Array{ForType(typ.Elem)}
	case types.Option:
		return values.Null{}
	case types.Flags:
		if len(typ.Names) == 0 {
			return values.Array{}
		}
		return values.Array{values.Text(typ.Names[0])}
	case types.Enum:
		if len(typ.Cases) == 0 {
			return values.Text("")
		}
		return values.Text(typ.Cases[0])
	case types.Variant:
		if len(typ.Cases) == 0 {
			return values.Null{}
		}
		first := typ.Cases[0]
		return values.Object{{Name: first.Name, Value: ForType(first.Type)}}
	case types.Result:
		return values.Object{
			{Name: "ok", Value: ForType(typ.Ok)},
			{Name: "err", Value: errPlaceholder(typ.Err)},
		}
	default:
		return values.Null{}
	}
}

// errPlaceholder hints at the legal error values when the err side is
// an enum. Otherwise it is an empty text to be filled in.
func errPlaceholder(err types.Type) values.Value {
	if enum, ok := err.(types.Enum); ok {
		return values.Text(strings.Join(enum.Cases, " | "))
	}
	return values.Text("")
}

// ForParameters builds the positional argument array for an ordered
// parameter list.
func ForParameters(params []types.Field) values.Array {
	args := make(values.Array, len(params))
	for i, p := range params {
		args[i] = ForType(p.Type)
	}
	return args
}

// ForFunction builds the positional argument array for fn.
func ForFunction(fn exports.Function) values.Array {
	return ForParameters(fn.Parameters)
}
