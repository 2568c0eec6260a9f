package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/common-fate/clio"
	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/dialect/n8n"
	"github.com/common-fate/flowlint/pkg/report"
)

// renders the connection graph and a markdown report
// for every workflow in docs/examples.
func main() {
	err := run()
	if err != nil {
		log.Fatal(err)
	}
}

func run() error {
	exampleFolder := "docs/examples"
	outputFolder := "docs/img"

	files, err := os.ReadDir(exampleFolder)
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			clio.Infof("skipping %s: not a workflow file", file.Name())
			continue
		}
		name := strings.TrimSuffix(file.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(exampleFolder, file.Name()))
		if err != nil {
			return err
		}

		g, err := flowlint.Unmarshal(data, n8n.Dialect)
		if err != nil {
			return err
		}
		_, err = flowlint.Shade(g)
		if err != nil {
			return err
		}

		outfile := filepath.Join(outputFolder, name+".svg")
		err = flowlint.RenderSVG(g, outfile)
		if err != nil {
			return err
		}
		clio.Successf("rendered %s", outfile)

		r, err := flowlint.Lint(data)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		err = report.Write(&buf, r, report.Options{Format: report.Markdown})
		if err != nil {
			return err
		}

		reportfile := filepath.Join(exampleFolder, name+".md")
		err = os.WriteFile(reportfile, buf.Bytes(), 0o644)
		if err != nil {
			return err
		}
		clio.Successf("wrote %s", reportfile)
	}
	return nil
}
