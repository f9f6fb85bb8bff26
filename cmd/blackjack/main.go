package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play blackjack in the terminal"`
	Odds     OddsCmd          `cmd:"" help:"Estimate win probabilities for a hand"`
	Bench    BenchCmd         `cmd:"" help:"Measure evaluator throughput and spread"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds with scripted strategies"`
	Worker   WorkerCmd        `cmd:"" hidden:"" help:"Serve one evaluation job on stdin/stdout"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multi-seat blackjack with a Monte Carlo action evaluator"),
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
