package describe_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/describe"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/internal/commandline"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/logger"
	"github.com/youta-t/flarc"
)

func sampleMetadata() exports.Metadata {
	return exports.Metadata{
		Exports: []exports.Export{
			exports.Instance{
				Name: "golem:it/api",
				Functions: []exports.Function{
					{
						Name: "add-item",
						Parameters: []types.Field{
							{Name: "item", Type: types.Record{Fields: []types.Field{
								{Name: "name", Type: types.Str{}},
								{Name: "quantity", Type: types.U32{}},
							}}},
						},
					},
					{
						Name: "total",
						Results: []exports.FunctionResult{
							{Type: types.F64{}},
						},
					},
				},
			},
			exports.Function{
				Name: "healthcheck",
				Results: []exports.FunctionResult{
					{Type: types.Enum{Cases: []string{"up", "down"}}},
				},
			},
		},
	}
}

func TestDescribeTask(t *testing.T) {
	type When struct {
		args    map[string][]string
		format  string
		meta    exports.Metadata
		loadErr error
	}
	type Then struct {
		stdout string
		err    error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			load := func(path string) (exports.Metadata, error) {
				if path != "./metadata.yaml" {
					t.Errorf("unexpected path: %s", path)
				}
				return when.meta, when.loadErr
			}
			testee := describe.Task(load)

			stdout := bytes.Buffer{}
			err := testee(
				context.Background(),
				logger.Null(),
				common.CommonFlags{Format: when.format},
				commandline.MockCommandline[struct{}]{
					Fullname_: "wit describe",
					Stdout_:   &stdout,
					Stderr_:   io.Discard,
					Flags_:    struct{}{},
					Args_:     when.args,
				},
				[]any{},
			)

			if then.err == nil {
				if err != nil {
					t.Fatal(err)
				}
			} else if !errors.Is(err, then.err) {
				t.Errorf("unexpected error: %v", err)
			}

			if stdout.String() != then.stdout {
				t.Errorf(
					"unmatch:\n===actual===\n%s\n===expected===\n%s",
					stdout.String(), then.stdout,
				)
			}
		}
	}

	t.Run("without FUNCTION, it lists every invocable full name", theory(
		When{
			args: map[string][]string{
				describe.ARG_METADATA: {"./metadata.yaml"},
			},
			meta: sampleMetadata(),
		},
		Then{
			stdout: `golem:it/api.{add-item}
golem:it/api.{total}
healthcheck
`,
		},
	))

	t.Run("with FUNCTION, it prints the signature and the parameter tree", theory(
		When{
			args: map[string][]string{
				describe.ARG_METADATA: {"./metadata.yaml"},
				describe.ARG_FUNCTION: {"golem:it/api.{add-item}"},
			},
			meta: sampleMetadata(),
		},
		Then{
			stdout: `golem:it/api.{add-item}(item: record { name: string, quantity: u32 })
item:
  name: str
  quantity: u32
`,
		},
	))

	t.Run("--format json renders the parameter tree as JSON", theory(
		When{
			args: map[string][]string{
				describe.ARG_METADATA: {"./metadata.yaml"},
				describe.ARG_FUNCTION: {"golem:it/api.{add-item}"},
			},
			format: "json",
			meta:   sampleMetadata(),
		},
		Then{
			stdout: `golem:it/api.{add-item}(item: record { name: string, quantity: u32 })
{
    "item": {
        "name": "str",
        "quantity": "u32"
    }
}
`,
		},
	))

	t.Run("bare function exports describe by bare name", theory(
		When{
			args: map[string][]string{
				describe.ARG_METADATA: {"./metadata.yaml"},
				describe.ARG_FUNCTION: {"healthcheck"},
			},
			meta: sampleMetadata(),
		},
		Then{
			stdout: `healthcheck() -> enum { up, down }
{}
`,
		},
	))

	t.Run("unknown functions are usage errors", theory(
		When{
			args: map[string][]string{
				describe.ARG_METADATA: {"./metadata.yaml"},
				describe.ARG_FUNCTION: {"no-such-fn"},
			},
			meta: sampleMetadata(),
		},
		Then{
			stdout: "",
			err:    flarc.ErrUsage,
		},
	))

	{
		expectedError := errors.New("fake error")
		t.Run("when loading fails, it returns the error", theory(
			When{
				args: map[string][]string{
					describe.ARG_METADATA: {"./metadata.yaml"},
				},
				loadErr: expectedError,
			},
			Then{
				stdout: "",
				err:    expectedError,
			},
		))
	}
}
