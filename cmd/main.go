package main

import (
	"log"
	"os"

	"github.com/common-fate/flowlint/cmd/command"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "flowlint",
		Usage: "static analysis for n8n workflow documents",
		Commands: []*cli.Command{
			&command.Check,
			&command.Graph,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
