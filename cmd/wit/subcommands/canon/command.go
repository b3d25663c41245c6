package canon

import (
	"context"
	"fmt"
	"log"

	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit/cmd/wit/metadata"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/pkg/normalize"
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

const ARG_METADATA = "METADATA"

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		load: metadata.Load,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Rewrite component metadata into its canonical shape.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_METADATA, Required: true,
				Help: "Path to the component metadata file (JSON or YAML).",
			},
		},
		common.NewTask(Task(option.load)),
		flarc.WithDescription(`
Load component metadata, rewrite every type descriptor into its
canonical shape and write the whole document to stdout in the format
selected by --format.

	{{ .Command }} ./metadata.json > canonical.json

Descriptors are re-encoded in their minimal form and duplicated flag
names are dropped, so two files describing the same component come out
identical. Canonicalizing twice changes nothing.
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

		return common.WriteDocument(cl.Stdout(), commonFlags.Format, normalize.Metadata(meta))
	}
}
