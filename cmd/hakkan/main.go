package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hakkan/cmd/hakkan/commands"
	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("hakkan"),
		kong.Description("Static weblog generator"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		commands.Vars(),
	)

	if err := parser.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
