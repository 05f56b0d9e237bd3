package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/obagen/cmd/obagen/commands"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("obagen"),
		kong.Description("Build-time generators for the Oba interpreter: guide examples and inlined modules."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
