// Package render turns type descriptors into operator-facing text:
// a display tree for documentation popovers and the WIT signature
// lines shown when describing a component.
package render

import (
	"fmt"
	"strings"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/pkg/utils"
)

// Signature renders a descriptor as a display tree. The tree is for
// reading, not for round-tripping: record keys carry annotations,
// enum cases collapse into one line and variant keys name the kind
// of their payload.
func Signature(t types.Type) values.Value {
	switch typ := t.(type) {
	case types.Record:
		obj := values.Object{}
		for _, f := range typ.Fields {
			obj = append(obj, values.Member{
				Name:  annotate(f.Name, f.Type),
				Value: Signature(f.Type),
			})
		}
		return obj
	case types.Tuple:
		return values.Array(utils.Map(typ.Items, Signature))
	case types.List:
		return values.Object{{Name: "list", Value: Signature(typ.Elem)}}
	case types.Option:
		return values.Object{{Name: "option", Value: Signature(typ.Inner)}}
	case types.Flags:
		return values.Array(utils.Map(typ.Names, func(n string) values.Value {
			return values.Text(n)
		}))
	case types.Enum:
		return values.Text(strings.Join(typ.Cases, " | "))
	case types.Variant:
		obj := values.Object{}
		for _, c := range typ.Cases {
			if c.Type == nil {
				obj = append(obj, values.Member{Name: c.Name, Value: values.Null{}})
				continue
			}
			obj = append(obj, values.Member{
				Name:  fmt.Sprintf("%s (%s)", c.Name, mnemonic(c.Type)),
				Value: Signature(c.Type),
			})
		}
		return obj
	case types.Result:
		return values.Object{
			{Name: "ok", Value: sideOrNull(typ.Ok)},
			{Name: "err", Value: sideOrNull(typ.Err)},
		}
	case nil, types.Unknown:
		return values.Text("unknown")
	default:
		return values.Text(mnemonic(typ))
	}
}

func sideOrNull(t types.Type) values.Value {
	if t == nil {
		return values.Null{}
	}
	return Signature(t)
}

// annotate decorates a record key with the wrapper kind of its type,
// so that `tags (list)` reads naturally in a popover.
func annotate(name string, t types.Type) string {
	switch t.(type) {
	case types.Option, types.List, types.Flags, types.Enum:
		return fmt.Sprintf("%s (%s)", name, mnemonic(t))
	default:
		return name
	}
}

// mnemonic is the short lowercase name of a kind: u32, str, record.
func mnemonic(t types.Type) string {
	return strings.ToLower(string(t.Kind()))
}

// TypeString renders a descriptor as WIT signature text.
func TypeString(t types.Type) string {
	switch typ := t.(type) {
	case types.Bool:
		return "bool"
	case types.U8:
		return "u8"
	case types.U16:
		return "u16"
	case types.U32:
		return "u32"
	case types.U64:
		return "u64"
	case types.S8:
		return "s8"
	case types.S16:
		return "s16"
	case types.S32:
		return "s32"
	case types.S64:
		return "s64"
	case types.F32:
		return "f32"
	case types.F64:
		return "f64"
	case types.Chr:
		return "char"
	case types.Str:
		return "string"
	case types.Record:
		fields := utils.Map(typ.Fields, func(f types.Field) string {
			return fmt.Sprintf("%s: %s", f.Name, TypeString(f.Type))
		})
		return fmt.Sprintf("record { %s }", strings.Join(fields, ", "))
	case types.Tuple:
		return fmt.Sprintf("tuple<%s>", strings.Join(utils.Map(typ.Items, TypeString), ", "))
	case types.List:
		return fmt.Sprintf("list<%s>", TypeString(typ.Elem))
	case types.Option:
		return fmt.Sprintf("option<%s>", TypeString(typ.Inner))
	case types.Flags:
		return fmt.Sprintf("flags { %s }", strings.Join(typ.Names, ", "))
	case types.Enum:
		return fmt.Sprintf("enum { %s }", strings.Join(typ.Cases, ", "))
	case types.Variant:
		cases := utils.Map(typ.Cases, func(c types.Case) string {
			if c.Type == nil {
				return c.Name
			}
			return fmt.Sprintf("%s(%s)", c.Name, TypeString(c.Type))
		})
		return fmt.Sprintf("variant { %s }", strings.Join(cases, ", "))
	case types.Result:
		switch {
		case typ.Ok == nil && typ.Err == nil:
			return "result"
		case typ.Err == nil:
			return fmt.Sprintf("result<%s>", TypeString(typ.Ok))
		case typ.Ok == nil:
			return fmt.Sprintf("result<_, %s>", TypeString(typ.Err))
		default:
			return fmt.Sprintf("result<%s, %s>", TypeString(typ.Ok), TypeString(typ.Err))
		}
	default:
		return "unknown"
	}
}

// FunctionString renders one exported function as a signature line,
// like `iface.{fn}(a: u32) -> result<_, string>`. prefix is the
// owning instance name, empty for a bare export. Result names are
// not shown; multiple results are parenthesized.
func FunctionString(prefix string, f exports.Function) string {
	name := f.Name
	if prefix != "" {
		name = exports.FullName(prefix, f.Name)
	}

	params := utils.Map(f.Parameters, func(p types.Field) string {
		return fmt.Sprintf("%s: %s", p.Name, TypeString(p.Type))
	})
	results := utils.Map(f.Results, func(r exports.FunctionResult) string {
		return TypeString(r.Type)
	})

	line := fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	switch len(results) {
	case 0:
		return line
	case 1:
		return line + " -> " + results[0]
	default:
		return fmt.Sprintf("%s -> (%s)", line, strings.Join(results, ", "))
	}
}
