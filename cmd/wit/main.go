package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	subcanon "github.com/golemcloud/witkit/cmd/wit/subcommands/canon"
	subcheck "github.com/golemcloud/witkit/cmd/wit/subcommands/check"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	subdescribe "github.com/golemcloud/witkit/cmd/wit/subcommands/describe"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/logger"
	subseed "github.com/golemcloud/witkit/cmd/wit/subcommands/seed"
	subversion "github.com/golemcloud/witkit/cmd/wit/subcommands/version"
	"github.com/golemcloud/witkit/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	describe := try.To(subdescribe.New()).OrFatal(logger)
	seed := try.To(subseed.New()).OrFatal(logger)
	check := try.To(subcheck.New()).OrFatal(logger)
	canon := try.To(subcanon.New()).OrFatal(logger)
	version := try.To(subversion.New()).OrFatal(logger)

	wit := try.To(
		flarc.NewCommandGroup(
			"Inspect component metadata and craft invocation arguments.",
			common.Flags(),
			flarc.WithSubcommand("describe", describe),
			flarc.WithSubcommand("seed", seed),
			flarc.WithSubcommand("check", check),
			flarc.WithSubcommand("canon", canon),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, wit, flarc.WithHelp(true)))
}
