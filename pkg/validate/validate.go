// Package validate checks dynamic values against type descriptors.
//
// A check stops at the first violation, found depth-first and
// left-to-right, and reports it with the path of the offending value
// ("config.items[2].name"). Checks never panic and never aggregate;
// a nil value is checked as Null.
package validate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/golemcloud/witkit-api-types/errors"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/pkg/utils"
)

// Value checks v against t. The root of the reported path is empty.
func Value(v values.Value, t types.Type) error {
	if e := check(v, t, ""); e != nil {
		return e
	}
	return nil
}

// Parameter checks v against the parameter p. The root of the
// reported path is the parameter name.
func Parameter(v values.Value, p types.Field) error {
	if e := check(v, p.Type, p.Name); e != nil {
		return e
	}
	return nil
}

// Arguments checks a positional argument list against an ordered
// parameter list: arity first, then each argument in order.
func Arguments(args []values.Value, params []types.Field) error {
	if len(args) != len(params) {
		return violation(
			errors.Mismatch, "",
			"expected %d arguments, but found %d", len(params), len(args),
		)
	}
	for i, p := range params {
		if e := check(args[i], p.Type, p.Name); e != nil {
			return e
		}
	}
	return nil
}

func check(v values.Value, t types.Type, path string) *errors.ErrorMessage {
	switch typ := t.(type) {
	case types.Bool:
		return expect(v, values.KindBoolean, path)
	case types.U8:
		return checkWhole(v, boundsU8, path)
	case types.U16:
		return checkWhole(v, boundsU16, path)
	case types.U32:
		return checkWhole(v, boundsU32, path)
	case types.U64:
		return checkWhole(v, boundsU64, path)
	case types.S8:
		return checkWhole(v, boundsS8, path)
	case types.S16:
		return checkWhole(v, boundsS16, path)
	case types.S32:
		return checkWhole(v, boundsS32, path)
	case types.S64:
		return checkWhole(v, boundsS64, path)
	case types.F32, types.F64:
		// any number goes: no range, precision or finiteness check
		return expect(v, values.KindNumber, path)
	case types.Chr, types.Str:
		return expect(v, values.KindString, path)
	case types.Record:
		return checkRecord(v, typ, path)
	case types.Tuple:
		return checkTuple(v, typ, path)
	case types.List:
		return checkList(v, typ, path)
	case types.Option:
		if isNull(v) {
			return nil
		}
		return check(v, typ.Inner, path)
	case types.Flags:
		return checkFlags(v, typ, path)
	case types.Enum:
		return checkEnum(v, typ, path)
	case types.Variant:
		return checkVariant(v, typ, path)
	case types.Result:
		return checkResult(v, typ, path)
	case types.Unknown:
		return violation(errors.Schema, path, "unknown type tag %q", typ.Tag)
	default:
		// only a nil descriptor reaches here; the descriptor set is sealed
		return violation(errors.Schema, path, "missing type descriptor")
	}
}

func checkRecord(v values.Value, t types.Record, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindObject, path); e != nil {
		return e
	}
	obj := v.(values.Object)
	for _, f := range t.Fields {
		// a missing member is checked as Null, so optional fields
		// accept absence and required ones report a mismatch
		member, _ := obj.Get(f.Name)
		if e := check(member, f.Type, joinField(path, f.Name)); e != nil {
			return e
		}
	}
	return nil
}

func checkTuple(v values.Value, t types.Tuple, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindArray, path); e != nil {
		return e
	}
	arr := v.(values.Array)
	if len(arr) != len(t.Items) {
		return violation(
			errors.Mismatch, path,
			"expected a tuple of %d elements, but found %d", len(t.Items), len(arr),
		)
	}
	for i, item := range t.Items {
		if e := check(arr[i], item, joinIndex(path, i)); e != nil {
			return e
		}
	}
	return nil
}

func checkList(v values.Value, t types.List, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindArray, path); e != nil {
		return e
	}
	for i, el := range v.(values.Array) {
		if e := check(el, t.Elem, joinIndex(path, i)); e != nil {
			return e
		}
	}
	return nil
}

func checkFlags(v values.Value, t types.Flags, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindArray, path); e != nil {
		return e
	}
	for i, el := range v.(values.Array) {
		name, ok := el.(values.Text)
		if !ok {
			return violation(
				errors.Mismatch, joinIndex(path, i),
				"expected %s, but found %s", values.KindString, values.KindOf(el),
			)
		}
		if _, found := utils.First(t.Names, eq(string(name))); !found {
			return violation(
				errors.UnknownCase, joinIndex(path, i),
				"invalid input %q, valid values are %s", string(name), strings.Join(t.Names, ", "),
			)
		}
	}
	return nil
}

func checkEnum(v values.Value, t types.Enum, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindString, path); e != nil {
		return e
	}
	name := v.(values.Text)
	if _, found := utils.First(t.Cases, eq(string(name))); !found {
		return violation(
			errors.UnknownCase, path,
			"invalid input %q, valid values are %s", string(name), strings.Join(t.Cases, ", "),
		)
	}
	return nil
}

func checkVariant(v values.Value, t types.Variant, path string) *errors.ErrorMessage {
	if len(t.Cases) == 0 {
		// a variant without cases admits nothing; only null passes
		return expect(v, values.KindNull, path)
	}
	if e := expect(v, values.KindObject, path); e != nil {
		return e
	}
	obj := v.(values.Object)
	if len(obj) == 0 {
		return violation(
			errors.Mismatch, path,
			"expected exactly one variant case, but the object is empty",
		)
	}

	// the first member selects the case; extra members are ignored
	selected := obj[0]
	c, found := utils.First(t.Cases, func(c types.Case) bool { return c.Name == selected.Name })
	if !found {
		return violation(errors.UnknownCase, path, "unknown key %q in the variant", selected.Name)
	}

	if c.Type == nil {
		if !isNull(selected.Value) {
			return violation(
				errors.Mismatch, path,
				"case %q carries no payload, but found %s", c.Name, values.KindOf(selected.Value),
			)
		}
		return nil
	}
	return check(selected.Value, c.Type, joinField(path, c.Name))
}

func checkResult(v values.Value, t types.Result, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindObject, path); e != nil {
		return e
	}
	obj := v.(values.Object)

	if ok, found := obj.Get("ok"); found {
		if t.Ok == nil {
			if !isNull(ok) {
				return violation(
					errors.Mismatch, joinField(path, "ok"),
					"expected %s, but found %s", values.KindNull, values.KindOf(ok),
				)
			}
		} else if e := check(ok, t.Ok, joinField(path, "ok")); e != nil {
			return e
		}
	}

	// the err side is display text whatever the declared shape is
	if errv, found := obj.Get("err"); found && !isNull(errv) {
		if _, isText := errv.(values.Text); !isText {
			return violation(
				errors.Mismatch, joinField(path, "err"),
				"expected %s, but found %s", values.KindString, values.KindOf(errv),
			)
		}
	}
	return nil
}

// expect checks the runtime kind of v.
func expect(v values.Value, want values.Kind, path string) *errors.ErrorMessage {
	if got := values.KindOf(v); got != want {
		return violation(errors.Mismatch, path, "expected %s, but found %s", want, got)
	}
	return nil
}

func violation(code errors.Code, path string, format string, args ...any) *errors.ErrorMessage {
	return &errors.ErrorMessage{
		Reason: fmt.Sprintf(format, args...),
		Path:   path,
		Code:   code,
	}
}

func isNull(v values.Value) bool {
	return values.KindOf(v) == values.KindNull
}

func eq(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

func joinField(path string, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinIndex(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// bounds is the inclusive legal range of an integer type.
type bounds struct {
	min, max       *big.Rat
	minLit, maxLit string
}

func newBounds(min, max string) bounds {
	lo, _ := new(big.Rat).SetString(min)
	hi, _ := new(big.Rat).SetString(max)
	return bounds{min: lo, max: hi, minLit: min, maxLit: max}
}

var (
	boundsU8  = newBounds("0", "255")
	boundsU16 = newBounds("0", "65535")
	boundsU32 = newBounds("0", "4294967295")
	boundsU64 = newBounds("0", "18446744073709551615")
	boundsS8  = newBounds("-128", "127")
	boundsS16 = newBounds("-32768", "32767")
	boundsS32 = newBounds("-2147483648", "2147483647")
	boundsS64 = newBounds("-9223372036854775808", "9223372036854775807")
)

// checkWhole checks an integer-typed value: a Number whose literal is
// a whole number within b. The literal is read as an exact rational,
// so "255.0" and "1e2" are whole and 64-bit boundaries stay precise.
func checkWhole(v values.Value, b bounds, path string) *errors.ErrorMessage {
	if e := expect(v, values.KindNumber, path); e != nil {
		return e
	}
	lit := string(v.(values.Number))
	rat, ok := new(big.Rat).SetString(lit)
	if !ok {
		return violation(errors.Mismatch, path, "value %s is not a number", lit)
	}
	if !rat.IsInt() {
		return violation(errors.Mismatch, path, "value %s is not a whole number", lit)
	}
	if rat.Cmp(b.min) < 0 || rat.Cmp(b.max) > 0 {
		return violation(
			errors.Range, path,
			"value %s is not within the range of %s to %s", lit, b.minLit, b.maxLit,
		)
	}
	return nil
}
