package check

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	apierr "github.com/golemcloud/witkit-api-types/errors"
	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/cmd/wit/metadata"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/pkg/utils/filewatch"
	"github.com/golemcloud/witkit/pkg/validate"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Watch bool `flag:"watch" alias:"w" help:"Keep watching METADATA and ARGS, and re-check on each change."`
}

type Option struct {
	load         func(path string) (exports.Metadata, error)
	loadDocument func(path string) (values.Value, error)
}

func WithLoad(
	load func(path string) (exports.Metadata, error),
) func(*Option) *Option {
	return func(cmd *Option) *Option {
		cmd.load = load
		return cmd
	}
}

func WithLoadDocument(
	loadDocument func(path string) (values.Value, error),
) func(*Option) *Option {
	return func(cmd *Option) *Option {
		cmd.loadDocument = loadDocument
		return cmd
	}
}

const (
	ARG_METADATA  = "METADATA"
	ARG_FUNCTION  = "FUNCTION"
	ARG_ARGUMENTS = "ARGS"
)

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		load:         metadata.Load,
		loadDocument: metadata.LoadDocument,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Verify an argument document against a function's parameters.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_METADATA, Required: true,
				Help: "Path to the component metadata file (JSON or YAML).",
			},
			{
				Name: ARG_FUNCTION, Required: true,
				Help: "Function to be invoked, like iface.{fn} or a bare name.",
			},
			{
				Name: ARG_ARGUMENTS, Required: true,
				Help: "Path to the argument document. It should be a JSON or YAML array.",
			},
		},
		common.NewTask(Task(option.load, option.loadDocument)),
		flarc.WithDescription(`
Verify that an argument document fits the parameters of a function.

	{{ .Command }} ./metadata.yaml 'golem:it/api.{add-item}' ./args.yaml

"OK" means the arguments are well-typed. Otherwise the first violation
is printed with the path of the broken element, and the command exits
non-zero.

To keep checking while you edit the document, pass --watch:

	{{ .Command }} --watch ./metadata.yaml 'golem:it/api.{add-item}' ./args.yaml

Each time METADATA or ARGS is written, the check runs again.
Interrupt (Ctrl-C) to quit.
`),
	)
}

func Task(
	load func(path string) (exports.Metadata, error),
	loadDocument func(path string) (values.Value, error),
) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlags common.CommonFlags,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		metadataPath := cl.Args()[ARG_METADATA][0]
		name := cl.Args()[ARG_FUNCTION][0]
		argumentsPath := cl.Args()[ARG_ARGUMENTS][0]

		pass := func() error {
			meta, err := load(metadataPath)
			if err != nil {
				return fmt.Errorf("%w: failed to load metadata (%s)", err, metadataPath)
			}

			fn, ok := meta.FindFunction(name)
			if !ok {
				return fmt.Errorf(
					"%w: function %q is not exported. functions: %s",
					flarc.ErrUsage, name, strings.Join(meta.FunctionNames(), ", "),
				)
			}

			doc, err := loadDocument(argumentsPath)
			if err != nil {
				return fmt.Errorf("%w: failed to load arguments (%s)", err, argumentsPath)
			}
			args, ok := doc.(values.Array)
			if !ok {
				return fmt.Errorf(
					"arguments should be an array, but %s holds %s",
					argumentsPath, values.KindOf(doc),
				)
			}

			if err := validate.Arguments(args, fn.Parameters); err != nil {
				fmt.Fprintln(cl.Stdout(), err.Error())
				return err
			}

			fmt.Fprintln(cl.Stdout(), "OK")
			return nil
		}

		if !cl.Flags().Watch {
			return pass()
		}

		for {
			// start watching before checking, not to miss updates during a pass
			wctx, cancel, err := filewatch.UntilModifyContext(ctx, metadataPath, argumentsPath)
			if err != nil {
				return err
			}

			if err := pass(); err != nil {
				em := &apierr.ErrorMessage{}
				if !errors.As(err, &em) {
					// not a violation; the file may be broken mid-edit. keep watching.
					logger.Println(err)
				}
			}

			<-wctx.Done()
			cancel()
			if ctx.Err() != nil {
				return nil
			}
			logger.Println("changed:", context.Cause(wctx))
		}
	}
}
