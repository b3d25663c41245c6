package render_test

import (
	"testing"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/pkg/render"
	"github.com/golemcloud/witkit/pkg/utils/pointer"
)

func TestSignature(t *testing.T) {
	type When struct {
		typ types.Type
	}
	type Then struct {
		want values.Value
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := render.Signature(when.typ)
			if !values.Equal(got, then.want) {
				t.Errorf(
					"signature of %+v\n===got===\n%+v\n===want===\n%+v",
					when.typ, got, then.want,
				)
			}
		}
	}

	t.Run("primitives render as lowercase mnemonics", theory(
		When{typ: types.U32{}},
		Then{want: values.Text("u32")},
	))
	t.Run("str keeps its short mnemonic", theory(
		When{typ: types.Str{}},
		Then{want: values.Text("str")},
	))
	t.Run("chr keeps its short mnemonic", theory(
		When{typ: types.Chr{}},
		Then{want: values.Text("chr")},
	))
	t.Run("bool renders lowercased", theory(
		When{typ: types.Bool{}},
		Then{want: values.Text("bool")},
	))
	t.Run("tuple renders as an array of its items", theory(
		When{typ: types.Tuple{Items: []types.Type{types.U32{}, types.Str{}}}},
		Then{want: values.Array{values.Text("u32"), values.Text("str")}},
	))
	t.Run("list wraps its element under a list key", theory(
		When{typ: types.List{Elem: types.U8{}}},
		Then{want: values.Object{
			{Name: "list", Value: values.Text("u8")},
		}},
	))
	t.Run("option wraps its inner under an option key", theory(
		When{typ: types.Option{Inner: types.U32{}}},
		Then{want: values.Object{
			{Name: "option", Value: values.Text("u32")},
		}},
	))
	t.Run("flags render as the array of legal names", theory(
		When{typ: types.Flags{Names: []string{"read", "write"}}},
		Then{want: values.Array{values.Text("read"), values.Text("write")}},
	))
	t.Run("enum renders as pipe-joined cases", theory(
		When{typ: types.Enum{Cases: []string{"a", "b", "c"}}},
		Then{want: values.Text("a | b | c")},
	))
	t.Run("record keys are annotated for wrapper kinds only", theory(
		When{typ: types.Record{Fields: []types.Field{
			{Name: "name", Type: types.Str{}},
			{Name: "nickname", Type: types.Option{Inner: types.Str{}}},
			{Name: "tags", Type: types.List{Elem: types.Str{}}},
			{Name: "perms", Type: types.Flags{Names: []string{"r", "w"}}},
			{Name: "color", Type: types.Enum{Cases: []string{"red", "green"}}},
		}}},
		Then{want: values.Object{
			{Name: "name", Value: values.Text("str")},
			{Name: "nickname (option)", Value: values.Object{
				{Name: "option", Value: values.Text("str")},
			}},
			{Name: "tags (list)", Value: values.Object{
				{Name: "list", Value: values.Text("str")},
			}},
			{Name: "perms (flags)", Value: values.Array{
				values.Text("r"), values.Text("w"),
			}},
			{Name: "color (enum)", Value: values.Text("red | green")},
		}},
	))
	t.Run("variant keys name the payload kind, unit cases map to null", theory(
		When{typ: types.Variant{Cases: []types.Case{
			{Name: "off"},
			{Name: "rgb", Type: types.Tuple{Items: []types.Type{
				types.U8{}, types.U8{}, types.U8{},
			}}},
			{Name: "named", Type: types.Str{}},
		}}},
		Then{want: values.Object{
			{Name: "off", Value: values.Null{}},
			{Name: "rgb (tuple)", Value: values.Array{
				values.Text("u8"), values.Text("u8"), values.Text("u8"),
			}},
			{Name: "named (str)", Value: values.Text("str")},
		}},
	))
	t.Run("result renders both sides", theory(
		When{typ: types.Result{Ok: types.U32{}, Err: types.Str{}}},
		Then{want: values.Object{
			{Name: "ok", Value: values.Text("u32")},
			{Name: "err", Value: values.Text("str")},
		}},
	))
	t.Run("nil result sides render as null", theory(
		When{typ: types.Result{}},
		Then{want: values.Object{
			{Name: "ok", Value: values.Null{}},
			{Name: "err", Value: values.Null{}},
		}},
	))
	t.Run("unknown descriptors render as unknown", theory(
		When{typ: types.Unknown{Tag: "Handle"}},
		Then{want: values.Text("unknown")},
	))
	t.Run("nil descriptors render as unknown", theory(
		When{typ: nil},
		Then{want: values.Text("unknown")},
	))
}

func TestTypeString(t *testing.T) {
	type When struct {
		typ types.Type
	}
	type Then struct {
		want string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := render.TypeString(when.typ)
			if got != then.want {
				t.Errorf("TypeString: got %q, want %q", got, then.want)
			}
		}
	}

	t.Run("bool", theory(When{typ: types.Bool{}}, Then{want: "bool"}))
	t.Run("u8", theory(When{typ: types.U8{}}, Then{want: "u8"}))
	t.Run("u16", theory(When{typ: types.U16{}}, Then{want: "u16"}))
	t.Run("u32", theory(When{typ: types.U32{}}, Then{want: "u32"}))
	t.Run("u64", theory(When{typ: types.U64{}}, Then{want: "u64"}))
	t.Run("s8", theory(When{typ: types.S8{}}, Then{want: "s8"}))
	t.Run("s16", theory(When{typ: types.S16{}}, Then{want: "s16"}))
	t.Run("s32", theory(When{typ: types.S32{}}, Then{want: "s32"}))
	t.Run("s64", theory(When{typ: types.S64{}}, Then{want: "s64"}))
	t.Run("f32", theory(When{typ: types.F32{}}, Then{want: "f32"}))
	t.Run("f64", theory(When{typ: types.F64{}}, Then{want: "f64"}))
	t.Run("chr spells char", theory(When{typ: types.Chr{}}, Then{want: "char"}))
	t.Run("str spells string", theory(When{typ: types.Str{}}, Then{want: "string"}))

	t.Run("record", theory(
		When{typ: types.Record{Fields: []types.Field{
			{Name: "a", Type: types.U64{}},
			{Name: "b", Type: types.Str{}},
		}}},
		Then{want: "record { a: u64, b: string }"},
	))
	t.Run("variant", theory(
		When{typ: types.Variant{Cases: []types.Case{
			{Name: "none"},
			{Name: "some", Type: types.U32{}},
		}}},
		Then{want: "variant { none, some(u32) }"},
	))
	t.Run("enum", theory(
		When{typ: types.Enum{Cases: []string{"a", "b"}}},
		Then{want: "enum { a, b }"},
	))
	t.Run("flags", theory(
		When{typ: types.Flags{Names: []string{"read", "write"}}},
		Then{want: "flags { read, write }"},
	))
	t.Run("tuple", theory(
		When{typ: types.Tuple{Items: []types.Type{types.U32{}, types.Str{}}}},
		Then{want: "tuple<u32, string>"},
	))
	t.Run("empty tuple", theory(
		When{typ: types.Tuple{}},
		Then{want: "tuple<>"},
	))
	t.Run("list", theory(
		When{typ: types.List{Elem: types.U8{}}},
		Then{want: "list<u8>"},
	))
	t.Run("option", theory(
		When{typ: types.Option{Inner: types.U32{}}},
		Then{want: "option<u32>"},
	))
	t.Run("result with no payloads", theory(
		When{typ: types.Result{}},
		Then{want: "result"},
	))
	t.Run("result with ok only", theory(
		When{typ: types.Result{Ok: types.U32{}}},
		Then{want: "result<u32>"},
	))
	t.Run("result with err only", theory(
		When{typ: types.Result{Err: types.Str{}}},
		Then{want: "result<_, string>"},
	))
	t.Run("result with both sides", theory(
		When{typ: types.Result{Ok: types.U32{}, Err: types.Str{}}},
		Then{want: "result<u32, string>"},
	))
	t.Run("nesting composes", theory(
		When{typ: types.List{Elem: types.Option{Inner: types.Record{
			Fields: []types.Field{{Name: "x", Type: types.F64{}}},
		}}}},
		Then{want: "list<option<record { x: f64 }>>"},
	))
	t.Run("unknown descriptors spell unknown", theory(
		When{typ: types.Unknown{Tag: "Handle"}},
		Then{want: "unknown"},
	))
}

func TestFunctionString(t *testing.T) {
	type When struct {
		prefix string
		fn     exports.Function
	}
	type Then struct {
		want string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := render.FunctionString(when.prefix, when.fn)
			if got != then.want {
				t.Errorf("FunctionString: got %q, want %q", got, then.want)
			}
		}
	}

	t.Run("instance functions take the full name", theory(
		When{
			prefix: "golem:it/api",
			fn: exports.Function{
				Name: "total",
				Results: []exports.FunctionResult{
					{Type: types.F64{}},
				},
			},
		},
		Then{want: "golem:it/api.{total}() -> f64"},
	))
	t.Run("parameters are name-typed and comma-joined", theory(
		When{
			prefix: "iface",
			fn: exports.Function{
				Name: "fn",
				Parameters: []types.Field{
					{Name: "a", Type: types.U32{}},
					{Name: "b", Type: types.Str{}},
				},
				Results: []exports.FunctionResult{
					{Type: types.Result{Err: types.Str{}}},
				},
			},
		},
		Then{want: "iface.{fn}(a: u32, b: string) -> result<_, string>"},
	))
	t.Run("no results means no arrow", theory(
		When{
			prefix: "golem:it/api",
			fn: exports.Function{
				Name: "add-item",
				Parameters: []types.Field{
					{Name: "item", Type: types.Record{Fields: []types.Field{
						{Name: "name", Type: types.Str{}},
						{Name: "quantity", Type: types.U32{}},
					}}},
				},
			},
		},
		Then{want: "golem:it/api.{add-item}(item: record { name: string, quantity: u32 })"},
	))
	t.Run("multiple results are parenthesized, names dropped", theory(
		When{
			fn: exports.Function{
				Name: "stat",
				Results: []exports.FunctionResult{
					{Name: pointer.Ref("count"), Type: types.U32{}},
					{Name: pointer.Ref("label"), Type: types.Str{}},
				},
			},
		},
		Then{want: "stat() -> (u32, string)"},
	))
	t.Run("bare exports keep their bare name", theory(
		When{
			fn: exports.Function{
				Name: "healthcheck",
				Results: []exports.FunctionResult{
					{Type: types.Enum{Cases: []string{"up", "down"}}},
				},
			},
		},
		Then{want: "healthcheck() -> enum { up, down }"},
	))
}
