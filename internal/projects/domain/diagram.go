package domain

// ResolvedConnections returns the connections whose endpoints both exist in
// the node list, in stored order. Dangling connections are kept in the
// document but skipped here.
func (p *Project) ResolvedConnections() []DiagramConnection {
	nodes := p.nodeSet()
	out := make([]DiagramConnection, 0, len(p.DiagramConnections))
	for _, c := range p.DiagramConnections {
		if _, ok := nodes[c.From]; !ok {
			continue
		}
		if _, ok := nodes[c.To]; !ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DanglingConnections returns the connections that reference at least one
// node id not present in the project.
func (p *Project) DanglingConnections() []DiagramConnection {
	nodes := p.nodeSet()
	out := []DiagramConnection{}
	for _, c := range p.DiagramConnections {
		_, fromOK := nodes[c.From]
		_, toOK := nodes[c.To]
		if !fromOK || !toOK {
			out = append(out, c)
		}
	}
	return out
}

func (p *Project) nodeSet() map[string]struct{} {
	nodes := make(map[string]struct{}, len(p.DiagramNodes))
	for _, n := range p.DiagramNodes {
		nodes[n.ID] = struct{}{}
	}
	return nodes
}
