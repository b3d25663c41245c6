package common_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/youta-t/flarc"
)

func TestWriteDocument(t *testing.T) {
	doc := values.Object{
		{Name: "name", Value: values.Text("x")},
		{Name: "count", Value: values.Number("42")},
	}

	t.Run("yaml is the default format", func(t *testing.T) {
		out := bytes.Buffer{}
		if err := common.WriteDocument(&out, "", doc); err != nil {
			t.Fatal(err)
		}

		expected := "name: x\ncount: 42\n"
		if out.String() != expected {
			t.Errorf(
				"unmatch:\n===actual===\n%s\n===expected===\n%s",
				out.String(), expected,
			)
		}

		explicit := bytes.Buffer{}
		if err := common.WriteDocument(&explicit, "yaml", doc); err != nil {
			t.Fatal(err)
		}
		if out.String() != explicit.String() {
			t.Errorf(
				"format yaml differs from the default: (%s, %s)",
				explicit.String(), out.String(),
			)
		}
	})

	t.Run("json is indented and keeps member order", func(t *testing.T) {
		out := bytes.Buffer{}
		if err := common.WriteDocument(&out, "json", doc); err != nil {
			t.Fatal(err)
		}

		expected := `{
    "name": "x",
    "count": 42
}
`
		if out.String() != expected {
			t.Errorf(
				"unmatch:\n===actual===\n%s\n===expected===\n%s",
				out.String(), expected,
			)
		}
	})

	t.Run("unknown formats are usage errors", func(t *testing.T) {
		out := bytes.Buffer{}
		err := common.WriteDocument(&out, "toml", doc)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("something is written: %s", out.String())
		}
	})
}
