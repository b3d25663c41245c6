package describe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit/cmd/wit/metadata"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/pkg/render"
	"github.com/youta-t/flarc"
)

type Option struct {
	load func(path string) (exports.Metadata, error)
}

func WithLoad(
	load func(path string) (exports.Metadata, error),
) func(*Option) *Option {
	return func(cmd *Option) *Option {
		cmd.load = load
		return cmd
	}
}

const (
	ARG_METADATA = "METADATA"
	ARG_FUNCTION = "FUNCTION"
)

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		load: metadata.Load,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Show functions exported from a component.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_METADATA, Required: true,
				Help: "Path to the component metadata file (JSON or YAML).",
			},
			{
				Name: ARG_FUNCTION, Required: false,
				Help: "Function to be described, like iface.{fn} or a bare name. When omitted, all functions are listed.",
			},
		},
		common.NewTask(Task(option.load)),
		flarc.WithDescription(`
List functions exported from a component, or describe one of them.

Without FUNCTION, every invocable full name is printed, one per line:

	{{ .Command }} ./metadata.yaml

With FUNCTION, its signature is printed, followed by the display tree
of each parameter in the format selected by --format:

	{{ .Command }} ./metadata.yaml 'golem:it/api.{add-item}'
`),
	)
}

func Task(
	load func(path string) (exports.Metadata, error),
) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlags common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		metadataPath := cl.Args()[ARG_METADATA][0]
		meta, err := load(metadataPath)
		if err != nil {
			return fmt.Errorf("%w: failed to load metadata (%s)", err, metadataPath)
		}

		names := cl.Args()[ARG_FUNCTION]
		if len(names) == 0 {
			for _, name := range meta.FunctionNames() {
				fmt.Fprintln(cl.Stdout(), name)
			}
			return nil
		}

		name := names[0]
		prefix, fn, ok := metadata.Resolve(meta, name)
		if !ok {
			return fmt.Errorf(
				"%w: function %q is not exported. functions: %s",
				flarc.ErrUsage, name, strings.Join(meta.FunctionNames(), ", "),
			)
		}

		fmt.Fprintln(cl.Stdout(), render.FunctionString(prefix, fn))

		signature := render.Signature(types.Record{Fields: fn.Parameters})
		return common.WriteDocument(cl.Stdout(), commonFlags.Format, signature)
	}
}
