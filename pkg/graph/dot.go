package graph

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/radialtree/pkg/errors"
)

// dotScale converts frame units (pixels) into Graphviz points.
const dotScale = 72.0 / 96.0

// ExportDOT converts a layout into an undirected Graphviz graph with every
// placed node pinned at its frame position (pos="x,y!"). Graphviz puts the
// origin bottom-left, so y is flipped against the frame height. Unplaced
// nodes and unrouted edges are omitted.
//
// Render the result with a position-respecting engine: neato -n2.
func ExportDOT(l Layout) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", pt(l.Width), pt(l.Height))
	buf.WriteString("  node [shape=circle, width=0.15, fixedsize=true, fontsize=10];\n")
	buf.WriteString("  edge [splines=true];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		if !n.Placed() {
			continue
		}
		fmt.Fprintf(&buf, "  %s [label=%s, pos=\"%s,%s!\"];\n",
			dotQuote(n.ID), dotQuote(n.DisplayLabel()), pt(*n.X), pt(l.Height-*n.Y))
	}

	buf.WriteString("\n")
	for _, p := range l.Paths {
		fmt.Fprintf(&buf, "  %s -- %s;\n", dotQuote(p.From), dotQuote(p.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotQuoter escapes a DOT double-quoted string. Backslashes are doubled so
// ids and labels never form Graphviz escapes such as \N or \G.
var dotQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func dotQuote(s string) string {
	return `"` + dotQuoter.Replace(s) + `"`
}

func pt(v float64) string {
	return strconv.FormatFloat(v*dotScale, 'f', 2, 64)
}

// ValidateDOT parses dot with Graphviz and reports syntax errors as
// INVALID_FORMAT.
func ValidateDOT(ctx context.Context, dot string) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()
	return nil
}
