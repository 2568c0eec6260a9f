package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-fate/clio"
	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/config"
	"github.com/common-fate/flowlint/pkg/filter"
	"github.com/common-fate/flowlint/pkg/report"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var Check = cli.Command{
	Name:      "check",
	Usage:     "lint workflow documents",
	ArgsUsage: "[workflow.json...]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{Name: "file", Aliases: []string{"f"}, Usage: "a workflow file to check, may be repeated"},
		&cli.StringSliceFlag{Name: "checker", Aliases: []string{"c"}, Usage: "the checkers to run (structural, security, quality, performance), defaults to all"},
		&cli.StringFlag{Name: "format", Usage: "the report format (text, markdown, json)"},
		&cli.StringSliceFlag{Name: "ignore", Usage: "a CEL expression matching diagnostics to suppress, e.g. 'kind == \"MAGIC_NUMBER\"'"},
		&cli.PathFlag{Name: "config", Usage: "the config file, defaults to " + config.DefaultFile + " if it exists"},
		&cli.BoolFlag{Name: "source", Usage: "annotate diagnostics with the offending part of the document"},
		&cli.BoolFlag{Name: "no-color", Usage: "disable colours in the text report"},
		&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "the number of files to check at once"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.Load(c.Path("config"))
		if err != nil {
			return err
		}

		files := append(c.StringSlice("file"), c.Args().Slice()...)
		if len(files) == 0 {
			return errors.New("no workflow files given: use -f <file>")
		}

		checkers := cfg.Checkers
		if c.IsSet("checker") {
			checkers = c.StringSlice("checker")
		}
		formatName := cfg.Format
		if c.IsSet("format") {
			formatName = c.String("format")
		}
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}
		ignore := append(cfg.Ignore, c.StringSlice("ignore")...)
		f, err := filter.Compile(ignore...)
		if err != nil {
			return err
		}

		opts := report.Options{
			Format: format,
			Color:  !c.Bool("no-color") && !color.NoColor,
			Source: cfg.Source || c.Bool("source"),
		}

		var linter flowlint.Linter
		reports := make([]*flowlint.Report, len(files))

		g, ctx := errgroup.WithContext(c.Context)
		limit := c.Int("concurrency")
		if limit < 1 {
			limit = 1
		}
		g.SetLimit(limit)

		for i, file := range files {
			i, file := i, file
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				clio.Debugf("checking %s", file)

				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				r, err := linter.Lint(data, checkers...)
				if err != nil {
					return fmt.Errorf("checking %s: %w", file, err)
				}
				r, err = r.Filter(f)
				if err != nil {
					return fmt.Errorf("filtering %s: %w", file, err)
				}
				reports[i] = r
				return nil
			})
		}
		err = g.Wait()
		if err != nil {
			return err
		}

		exitCode := 0
		failed := 0
		for i, r := range reports {
			if len(files) > 1 && format != report.JSON {
				clio.Infof("%s", files[i])
			}
			err = report.Write(os.Stdout, r, opts)
			if err != nil {
				return err
			}
			if code := report.ExitCode(r); code != 0 {
				failed++
				if code > exitCode {
					exitCode = code
				}
			}
		}

		if exitCode != 0 {
			clio.Errorf("found blocking issues in %d of %d workflow files", failed, len(files))
			return cli.Exit("", exitCode)
		}

		clio.Successf("checked %d workflow files", len(files))
		return nil
	},
}
