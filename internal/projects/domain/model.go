package domain

import "time"

// Project is the single design document a student works on. It owns every
// child list; nothing outside the store holds references into it.
type Project struct {
	ID                    string              `json:"id" yaml:"id"`
	Title                 string              `json:"title" yaml:"title"`
	Description           string              `json:"description" yaml:"description"`
	CompletedSections     []string            `json:"completedSections" yaml:"completedSections"`
	Microservices         []Microservice      `json:"microservices" yaml:"microservices"`
	DiagramNodes          []DiagramNode       `json:"diagramNodes" yaml:"diagramNodes"`
	DiagramConnections    []DiagramConnection `json:"diagramConnections" yaml:"diagramConnections"`
	DataArchitectureNotes string              `json:"dataArchitectureNotes" yaml:"dataArchitectureNotes"`
	SequenceFlowSteps     []string            `json:"sequenceFlowSteps" yaml:"sequenceFlowSteps"`
	SecurityMeasures      map[string]bool     `json:"securityMeasures" yaml:"securityMeasures"`
	CloudComponents       []string            `json:"cloudComponents" yaml:"cloudComponents"`
	CostAnalysis          string              `json:"costAnalysis" yaml:"costAnalysis"`
	LastUpdated           int64               `json:"lastUpdated" yaml:"lastUpdated"` // unix millis
}

type Microservice struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Responsibilities string `json:"responsibilities" yaml:"responsibilities"`
	Entities         string `json:"entities" yaml:"entities"`
	Endpoints        string `json:"endpoints" yaml:"endpoints"`
	Dependencies     string `json:"dependencies" yaml:"dependencies"`
	DatabaseType     string `json:"databaseType" yaml:"databaseType"`
}

type DiagramNode struct {
	ID    string  `json:"id" yaml:"id"`
	Type  string  `json:"type" yaml:"type"`
	Label string  `json:"label" yaml:"label"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// DiagramConnection links two nodes by id. From and To are not checked
// against the node list.
type DiagramConnection struct {
	ID       string `json:"id" yaml:"id"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Protocol string `json:"protocol" yaml:"protocol"`
	Label    string `json:"label" yaml:"label"`
}

// UpdatedAt converts LastUpdated to a time.Time.
func (p *Project) UpdatedAt() time.Time {
	return time.UnixMilli(p.LastUpdated)
}

// IsSectionComplete reports whether section id is marked complete.
func (p *Project) IsSectionComplete(id string) bool {
	for _, s := range p.CompletedSections {
		if s == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	out := p
	out.CompletedSections = append([]string(nil), p.CompletedSections...)
	out.Microservices = append([]Microservice(nil), p.Microservices...)
	out.DiagramNodes = append([]DiagramNode(nil), p.DiagramNodes...)
	out.DiagramConnections = append([]DiagramConnection(nil), p.DiagramConnections...)
	out.SequenceFlowSteps = append([]string(nil), p.SequenceFlowSteps...)
	out.CloudComponents = append([]string(nil), p.CloudComponents...)
	out.SecurityMeasures = make(map[string]bool, len(p.SecurityMeasures))
	for k, v := range p.SecurityMeasures {
		out.SecurityMeasures[k] = v
	}
	out.Normalize()
	return out
}

// Normalize replaces nil lists and maps with empty ones so encoders never
// emit null for them.
func (p *Project) Normalize() {
	if p.CompletedSections == nil {
		p.CompletedSections = []string{}
	}
	if p.Microservices == nil {
		p.Microservices = []Microservice{}
	}
	if p.DiagramNodes == nil {
		p.DiagramNodes = []DiagramNode{}
	}
	if p.DiagramConnections == nil {
		p.DiagramConnections = []DiagramConnection{}
	}
	if p.SequenceFlowSteps == nil {
		p.SequenceFlowSteps = []string{}
	}
	if p.CloudComponents == nil {
		p.CloudComponents = []string{}
	}
	if p.SecurityMeasures == nil {
		p.SecurityMeasures = map[string]bool{}
	}
}
