package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Run the skins scoring server"`
	Calc    CalcCmd          `cmd:"" help:"Score a single round from the command line"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("skinsd"),
		kong.Description("Skins-game scoring engine and server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
