package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-fate/clio"
	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/dialect/n8n"
	"github.com/common-fate/flowlint/pkg/workflow"
	"github.com/urfave/cli/v2"
)

var Graph = cli.Command{
	Name:  "graph",
	Usage: "draw the connection graph of a workflow document",
	Flags: []cli.Flag{
		&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "the workflow file to draw", Required: true},
		&cli.PathFlag{Name: "svg", Usage: "render an SVG to this path instead of printing DOT"},
	},
	Action: func(c *cli.Context) error {
		f := c.Path("file")

		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}

		g, err := flowlint.Unmarshal(data, n8n.Dialect)

		var pe workflow.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(os.Stderr, "%s\n", pe.PrettyPrint(true))
		}

		if err != nil {
			return err
		}

		shaded, err := flowlint.Shade(g)
		if err != nil {
			return err
		}
		if len(shaded) > 0 {
			clio.Warnf("%d nodes are not reachable from an entry point: %v", len(shaded), shaded)
		}

		out := c.Path("svg")
		if out == "" {
			return flowlint.DOT(g, os.Stdout)
		}

		err = flowlint.RenderSVG(g, out)
		if err != nil {
			return err
		}
		clio.Successf("rendered %s", out)
		return nil
	},
}
