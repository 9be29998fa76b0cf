package main

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docserve/cmd/docserve/commands"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("docserve"),
		kong.Description("Serve a hierarchical markdown corpus with includes, navigation and search."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("docserve %s (built %s, commit %s)",
				version.Version, version.BuildTime, version.GitCommit),
		},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	if err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
