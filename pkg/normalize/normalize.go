// Package normalize rebuilds type descriptors in canonical form: the
// shape the platform stores, compares and re-serves. Everything a
// decode envelope may have carried besides the tag-relevant payload
// dies here, nil slices become empty, and flag names are deduplicated.
package normalize

import (
	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit/pkg/utils"
)

// Type rebuilds t canonically. It never fails and is idempotent.
// Unknown descriptors pass through unchanged; nil stays nil.
func Type(t types.Type) types.Type {
	switch typ := t.(type) {
	case types.Record:
		fields := make([]types.Field, len(typ.Fields))
		for i, f := range typ.Fields {
			fields[i] = types.Field{Name: f.Name, Type: Type(f.Type)}
		}
		return types.Record{Fields: fields}
	case types.Tuple:
		return types.Tuple{Items: utils.Map(typ.Items, Type)}
	case types.List:
		return types.List{Elem: Type(typ.Elem)}
	case types.Option:
		return types.Option{Inner: Type(typ.Inner)}
	case types.Flags:
		return types.Flags{Names: dedup(typ.Names)}
	case types.Enum:
		return types.Enum{Cases: append([]string{}, typ.Cases...)}
	case types.Variant:
		cases := make([]types.Case, len(typ.Cases))
		for i, c := range typ.Cases {
			cases[i] = types.Case{Name: c.Name, Type: Type(c.Type)}
		}
		return types.Variant{Cases: cases}
	case types.Result:
		return types.Result{Ok: Type(typ.Ok), Err: Type(typ.Err)}
	default:
		// primitives and Unknown carry nothing to rebuild
		return t
	}
}

// dedup keeps the first occurrence of each name.
func dedup(names []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Parameters normalizes each parameter's descriptor.
func Parameters(params []types.Field) []types.Field {
	out := make([]types.Field, len(params))
	for i, p := range params {
		out[i] = types.Field{Name: p.Name, Type: Type(p.Type)}
	}
	return out
}

// Function normalizes every descriptor of fn.
func Function(fn exports.Function) exports.Function {
	results := make([]exports.FunctionResult, len(fn.Results))
	for i, r := range fn.Results {
		results[i] = exports.FunctionResult{Name: r.Name, Type: Type(r.Type)}
	}
	return exports.Function{
		Name:       fn.Name,
		Parameters: Parameters(fn.Parameters),
		Results:    results,
	}
}

// Export normalizes every descriptor under e.
func Export(e exports.Export) exports.Export {
	switch ex := e.(type) {
	case exports.Function:
		return Function(ex)
	case exports.Instance:
		fns := make([]exports.Function, len(ex.Functions))
		for i, fn := range ex.Functions {
			fns[i] = Function(fn)
		}
		return exports.Instance{Name: ex.Name, Functions: fns}
	default:
		return e
	}
}

// Metadata normalizes every descriptor in an export manifest.
func Metadata(m exports.Metadata) exports.Metadata {
	out := make([]exports.Export, len(m.Exports))
	for i, e := range m.Exports {
		out[i] = Export(e)
	}
	return exports.Metadata{Exports: out}
}
