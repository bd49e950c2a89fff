package export

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

// nodeStyle per diagram node type; unknown types fall back to a plain box.
var nodeStyle = map[string]string{
	domain.NodeClient:   `shape=box,style="rounded,filled",fillcolor="#e3f2fd"`,
	domain.NodeGateway:  `shape=hexagon,style="filled",fillcolor="#ede7f6"`,
	domain.NodeService:  `shape=box,style="rounded,filled",fillcolor="#eef6ff"`,
	domain.NodeDatabase: `shape=cylinder,style="filled",fillcolor="#fff3cd"`,
	domain.NodeCache:    `shape=cylinder,style="filled",fillcolor="#fde2e4"`,
	domain.NodeExternal: `shape=box,style="dashed"`,
}

// DOT renders the diagram as a Graphviz digraph. Connections whose endpoints
// are missing are left out.
func DOT(p domain.Project) []byte {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [shape=box, style=rounded];\n")
	if p.Title != "" {
		fmt.Fprintf(&b, "  labelloc=\"t\"; label=%s; fontname=\"Helvetica\";\n", quote(p.Title))
	}

	for _, n := range p.DiagramNodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		style, ok := nodeStyle[n.Type]
		if !ok {
			style = "shape=box"
		}
		fmt.Fprintf(&b, "  %s [label=%s, %s];\n", quote(n.ID), quote(label), style)
	}

	for _, c := range p.ResolvedConnections() {
		lbl := c.Protocol
		if c.Label != "" {
			if lbl != "" {
				lbl += ": "
			}
			lbl += c.Label
		}
		fmt.Fprintf(&b, "  %s -> %s [label=%s, tooltip=%s];\n", quote(c.From), quote(c.To), quote(lbl), quote(c.ID))
	}

	b.WriteString("}\n")
	return []byte(b.String())
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
