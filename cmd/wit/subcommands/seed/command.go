package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit/cmd/wit/metadata"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/pkg/defaults"
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
		"Write a default argument document for a function.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_METADATA, Required: true,
				Help: "Path to the component metadata file (JSON or YAML).",
			},
			{
				Name: ARG_FUNCTION, Required: true,
				Help: "Function to be invoked, like iface.{fn} or a bare name.",
			},
		},
		common.NewTask(Task(option.load)),
		flarc.WithDescription(`
Write the default argument array of a function, one element per
parameter, in the format selected by --format.

	{{ .Command }} ./metadata.yaml 'golem:it/api.{add-item}' > args.yaml

The document is a seed: edit it, then verify it with "check".
Every element is the zero-ish value of its parameter type, so numbers
are 0, strings are empty, options are null and variants take their
first case.
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

		name := cl.Args()[ARG_FUNCTION][0]
		fn, ok := meta.FindFunction(name)
		if !ok {
			return fmt.Errorf(
				"%w: function %q is not exported. functions: %s",
				flarc.ErrUsage, name, strings.Join(meta.FunctionNames(), ", "),
			)
		}

		return common.WriteDocument(cl.Stdout(), commonFlags.Format, defaults.ForFunction(fn))
	}
}
