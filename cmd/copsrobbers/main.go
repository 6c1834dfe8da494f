package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" type:"path" default:"copsrobbers.hcl" help:"HCL configuration file (defaults apply if it does not exist)"`
	Debug  bool   `help:"Enable debug logging"`
	JSON   bool   `name:"json" help:"Log as JSON lines"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Watch the strategies play in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games headless and report the results"`
	Serve    ServeCmd         `cmd:"" help:"Stream a live series of games over WebSocket"`
	Graphs   GraphsCmd        `cmd:"" help:"List the available boards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("copsrobbers"),
		kong.Description("Cops and Robbers on a graph, with MENACE learners"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
