package domain

import "fmt"

// Validate checks the invariants a whole document must hold before it is
// accepted as a replacement: a project id, unique ids per list, known node
// types and known sections.
func (p *Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id required", ErrInvalidProject)
	}
	seen := map[string]struct{}{}
	for _, s := range p.Microservices {
		if err := checkID("microservice", s.ID, seen); err != nil {
			return err
		}
	}
	seen = map[string]struct{}{}
	for _, n := range p.DiagramNodes {
		if err := checkID("diagram node", n.ID, seen); err != nil {
			return err
		}
		if !IsNodeType(n.Type) {
			return fmt.Errorf("%w: node %q has type %q", ErrInvalidNodeType, n.ID, n.Type)
		}
	}
	seen = map[string]struct{}{}
	for _, c := range p.DiagramConnections {
		if err := checkID("connection", c.ID, seen); err != nil {
			return err
		}
	}
	for _, s := range p.CompletedSections {
		if !IsSection(s) {
			return fmt.Errorf("%w: %q", ErrUnknownSection, s)
		}
	}
	return nil
}

func checkID(kind, id string, seen map[string]struct{}) error {
	if id == "" {
		return fmt.Errorf("%w: %s without id", ErrInvalidProject, kind)
	}
	if _, ok := seen[id]; ok {
		return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id)
	}
	seen[id] = struct{}{}
	return nil
}
