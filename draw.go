package flowlint

import (
	"bytes"
	"io"

	"github.com/dominikbraun/graph/draw"
	"github.com/goccy/go-graphviz"

	"github.com/common-fate/flowlint/pkg/workflow"
)

// Shade fills the vertices of nodes which can't be reached from an
// entry point. It returns the IDs of the shaded nodes.
func Shade(g *workflow.Graph) ([]string, error) {
	a := g.Analyses()
	var shaded []string
	for _, id := range g.IDs() {
		if a.Reachable(id) {
			continue
		}
		_, props, err := g.G.VertexWithProperties(id)
		if err != nil {
			return nil, err
		}
		props.Attributes["style"] = "filled"
		props.Attributes["fillcolor"] = "#D3D3D3"
		shaded = append(shaded, id)
	}
	return shaded, nil
}

// DOT writes the graph in graphviz DOT format.
func DOT(g *workflow.Graph, w io.Writer) error {
	return draw.DOT(g.G, w)
}

// RenderSVG renders the graph to an SVG file.
func RenderSVG(g *workflow.Graph, filename string) error {
	var buf bytes.Buffer
	err := DOT(g, &buf)
	if err != nil {
		return err
	}

	parsed, err := graphviz.ParseBytes(buf.Bytes())
	if err != nil {
		return err
	}
	gv := graphviz.New()
	defer gv.Close()

	return gv.RenderFilename(parsed, graphviz.SVG, filename)
}
