package main

import (
	"os"

	"github.com/lox/blackjack/internal/evaluator"
)

// WorkerCmd is started by the process executor: it reads one job from
// stdin and writes the win count to stdout
type WorkerCmd struct{}

func (c *WorkerCmd) Run(g *Globals) error {
	ctx, cancel := signalContext()
	defer cancel()
	return evaluator.ServeWorker(ctx, os.Stdin, os.Stdout)
}
