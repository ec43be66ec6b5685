package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apilinks/cmd/apilinks/commands"
	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/apilinks/internal/version"
)

func main() {
	var cli commands.CLI
	globals := commands.NewGlobal()

	parser, err := kong.New(&cli,
		kong.Name("apilinks"),
		kong.Description("Validate and correct API reference links in markdown mapping documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(globals),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			errors.NewCLIErrorAdapter(cli.Verbose, globals.Logger).HandleError(err)
		}
		parser.FatalIfErrorf(err)
	}

	err = ctx.Run(&cli)
	_ = globals.Close()
	errors.NewCLIErrorAdapter(cli.Verbose, globals.Logger).HandleError(err)
}
