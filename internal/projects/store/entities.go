package store

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

// AddMicroservice appends svc. An empty id is filled in; a duplicate id is
// rejected. The stored value is returned.
func (s *Store) AddMicroservice(ctx context.Context, svc domain.Microservice) (domain.Microservice, error) {
	_, _, err := s.mutate(ctx, "add_microservice", func(p *domain.Project) (bool, error) {
		if svc.ID == "" {
			svc.ID = s.newID(domain.PrefixMicroservice)
		}
		for _, existing := range p.Microservices {
			if existing.ID == svc.ID {
				return false, fmt.Errorf("%w: microservice %q", domain.ErrDuplicateID, svc.ID)
			}
		}
		p.Microservices = append(p.Microservices, svc)
		return true, nil
	})
	if err != nil {
		return domain.Microservice{}, err
	}
	return svc, nil
}

// UpdateMicroservice merges u into the microservice with id. It reports
// whether the id was found; an absent id changes nothing.
func (s *Store) UpdateMicroservice(ctx context.Context, id string, u domain.MicroserviceUpdate) (bool, error) {
	_, found, err := s.mutate(ctx, "update_microservice", func(p *domain.Project) (bool, error) {
		for i := range p.Microservices {
			if p.Microservices[i].ID == id {
				u.Apply(&p.Microservices[i])
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// RemoveMicroservice drops the microservice with id, if present.
func (s *Store) RemoveMicroservice(ctx context.Context, id string) (bool, error) {
	_, found, err := s.mutate(ctx, "remove_microservice", func(p *domain.Project) (bool, error) {
		out := p.Microservices[:0]
		for _, svc := range p.Microservices {
			if svc.ID != id {
				out = append(out, svc)
			}
		}
		removed := len(out) != len(p.Microservices)
		p.Microservices = out
		return removed, nil
	})
	return found, err
}

// AddDiagramNode appends n after checking its type.
func (s *Store) AddDiagramNode(ctx context.Context, n domain.DiagramNode) (domain.DiagramNode, error) {
	if !domain.IsNodeType(n.Type) {
		return domain.DiagramNode{}, fmt.Errorf("%w: %q", domain.ErrInvalidNodeType, n.Type)
	}
	_, _, err := s.mutate(ctx, "add_diagram_node", func(p *domain.Project) (bool, error) {
		if n.ID == "" {
			n.ID = s.newID(domain.PrefixNode)
		}
		for _, existing := range p.DiagramNodes {
			if existing.ID == n.ID {
				return false, fmt.Errorf("%w: diagram node %q", domain.ErrDuplicateID, n.ID)
			}
		}
		p.DiagramNodes = append(p.DiagramNodes, n)
		return true, nil
	})
	if err != nil {
		return domain.DiagramNode{}, err
	}
	return n, nil
}

func (s *Store) UpdateDiagramNode(ctx context.Context, id string, u domain.DiagramNodeUpdate) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	_, found, err := s.mutate(ctx, "update_diagram_node", func(p *domain.Project) (bool, error) {
		for i := range p.DiagramNodes {
			if p.DiagramNodes[i].ID == id {
				u.Apply(&p.DiagramNodes[i])
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// RemoveDiagramNode drops the node with id. Connections that reference it
// are kept.
func (s *Store) RemoveDiagramNode(ctx context.Context, id string) (bool, error) {
	_, found, err := s.mutate(ctx, "remove_diagram_node", func(p *domain.Project) (bool, error) {
		out := p.DiagramNodes[:0]
		for _, n := range p.DiagramNodes {
			if n.ID != id {
				out = append(out, n)
			}
		}
		removed := len(out) != len(p.DiagramNodes)
		p.DiagramNodes = out
		return removed, nil
	})
	return found, err
}

// AddConnection appends c. Its endpoints are not checked against the nodes.
func (s *Store) AddConnection(ctx context.Context, c domain.DiagramConnection) (domain.DiagramConnection, error) {
	_, _, err := s.mutate(ctx, "add_connection", func(p *domain.Project) (bool, error) {
		if c.ID == "" {
			c.ID = s.newID(domain.PrefixConnection)
		}
		for _, existing := range p.DiagramConnections {
			if existing.ID == c.ID {
				return false, fmt.Errorf("%w: connection %q", domain.ErrDuplicateID, c.ID)
			}
		}
		p.DiagramConnections = append(p.DiagramConnections, c)
		return true, nil
	})
	if err != nil {
		return domain.DiagramConnection{}, err
	}
	return c, nil
}

func (s *Store) UpdateConnection(ctx context.Context, id string, u domain.DiagramConnectionUpdate) (bool, error) {
	_, found, err := s.mutate(ctx, "update_connection", func(p *domain.Project) (bool, error) {
		for i := range p.DiagramConnections {
			if p.DiagramConnections[i].ID == id {
				u.Apply(&p.DiagramConnections[i])
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

func (s *Store) RemoveConnection(ctx context.Context, id string) (bool, error) {
	_, found, err := s.mutate(ctx, "remove_connection", func(p *domain.Project) (bool, error) {
		out := p.DiagramConnections[:0]
		for _, c := range p.DiagramConnections {
			if c.ID != id {
				out = append(out, c)
			}
		}
		removed := len(out) != len(p.DiagramConnections)
		p.DiagramConnections = out
		return removed, nil
	})
	return found, err
}
