/*
main is the entry point for our command line utility.

Initial argparsing and app definition is done entirely through
"github.com/urfave/cli/v2", the same way the teacher's poly/main.go wires
its own commands.

When naming new flags please make sure they don't collide with already
existent flags.
*/
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is separated from the actual &cli.App to help with testing.
func main() {
	run(os.Args)
}

// run is separated from main for debugging's sake.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the single top-level command: predict interactions
// between a target and a query RNA.
func application() *cli.App {
	return &cli.App{
		Name:  "intarna",
		Usage: "Predict RNA-RNA interactions between a target and a query sequence.",
		Flags: predictFlags(),
		Action: func(c *cli.Context) error {
			return predictCommand(c)
		},
	}
}
