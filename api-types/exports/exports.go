// Package exports models the invocable surface of a deployed
// component: the functions it exports, either directly or grouped
// under named instances, together with their parameter and result
// types.
package exports

import (
	"github.com/golemcloud/witkit-api-types/internal/utils/cmp"
	"github.com/golemcloud/witkit-api-types/types"
)

// Metadata is the export manifest of a component.
type Metadata struct {
	Exports []Export
}

func (m Metadata) Equal(other Metadata) bool {
	return cmp.SliceEqual(m.Exports, other.Exports)
}

// FindFunction resolves an invocation name: the "instance.{fn}" form
// for a function under an instance, or a bare name for a function
// exported directly. The first match in declaration order wins.
func (m Metadata) FindFunction(name string) (Function, bool) {
	for _, e := range m.Exports {
		switch ex := e.(type) {
		case Function:
			if ex.Name == name {
				return ex, true
			}
		case Instance:
			for _, fn := range ex.Functions {
				if FullName(ex.Name, fn.Name) == name {
					return fn, true
				}
			}
		}
	}
	return Function{}, false
}

// FunctionNames lists every invocation name in declaration order.
func (m Metadata) FunctionNames() []string {
	names := []string{}
	for _, e := range m.Exports {
		switch ex := e.(type) {
		case Function:
			names = append(names, ex.Name)
		case Instance:
			for _, fn := range ex.Functions {
				names = append(names, FullName(ex.Name, fn.Name))
			}
		}
	}
	return names
}

// FullName is the invocation name of function fn exported by instance
// prefix, in the form "prefix.{fn}".
func FullName(prefix string, fn string) string {
	return prefix + ".{" + fn + "}"
}

// Export is a single entry of a component's export manifest, either a
// bare Function or an Instance grouping functions.
type Export interface {
	Equal(other Export) bool
	isExport()
}

// Function is an invocable operation: an ordered parameter list and
// zero or more results.
type Function struct {
	Name       string
	Parameters []types.Field
	Results    []FunctionResult
}

func (Function) isExport() {}

func (f Function) Equal(other Export) bool {
	o, ok := other.(Function)
	return ok &&
		f.Name == o.Name &&
		cmp.SliceEqual(f.Parameters, o.Parameters) &&
		cmp.SliceEqual(f.Results, o.Results)
}

// FunctionResult is a single return value of a function.
// Results may be unnamed.
type FunctionResult struct {
	Name *string
	Type types.Type
}

func (r FunctionResult) Equal(other FunctionResult) bool {
	if (r.Name == nil) != (other.Name == nil) {
		return false
	}
	if r.Name != nil && *r.Name != *other.Name {
		return false
	}
	return types.Equal(r.Type, other.Type)
}

// Instance is a named group of exported functions.
type Instance struct {
	Name      string
	Functions []Function
}

func (Instance) isExport() {}

func (i Instance) Equal(other Export) bool {
	o, ok := other.(Instance)
	if !ok || i.Name != o.Name || len(i.Functions) != len(o.Functions) {
		return false
	}
	for idx := range i.Functions {
		if !i.Functions[idx].Equal(o.Functions[idx]) {
			return false
		}
	}
	return true
}
