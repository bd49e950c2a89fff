package domain

// ProjectUpdate is a partial update of the top-level project fields. Nil
// fields are left untouched. Slices and maps replace the stored value.
type ProjectUpdate struct {
	Title                 *string          `json:"title,omitempty"`
	Description           *string          `json:"description,omitempty"`
	CompletedSections     *[]string        `json:"completedSections,omitempty"`
	DataArchitectureNotes *string          `json:"dataArchitectureNotes,omitempty"`
	SequenceFlowSteps     *[]string        `json:"sequenceFlowSteps,omitempty"`
	SecurityMeasures      *map[string]bool `json:"securityMeasures,omitempty"`
	CloudComponents       *[]string        `json:"cloudComponents,omitempty"`
	CostAnalysis          *string          `json:"costAnalysis,omitempty"`
}

// Empty reports whether the update sets no field.
func (u ProjectUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.CompletedSections == nil &&
		u.DataArchitectureNotes == nil && u.SequenceFlowSteps == nil &&
		u.SecurityMeasures == nil && u.CloudComponents == nil && u.CostAnalysis == nil
}

func (u ProjectUpdate) Apply(p *Project) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.CompletedSections != nil {
		p.CompletedSections = dedupe(*u.CompletedSections)
	}
	if u.DataArchitectureNotes != nil {
		p.DataArchitectureNotes = *u.DataArchitectureNotes
	}
	if u.SequenceFlowSteps != nil {
		p.SequenceFlowSteps = append([]string{}, (*u.SequenceFlowSteps)...)
	}
	if u.SecurityMeasures != nil {
		m := make(map[string]bool, len(*u.SecurityMeasures))
		for k, v := range *u.SecurityMeasures {
			m[k] = v
		}
		p.SecurityMeasures = m
	}
	if u.CloudComponents != nil {
		p.CloudComponents = append([]string{}, (*u.CloudComponents)...)
	}
	if u.CostAnalysis != nil {
		p.CostAnalysis = *u.CostAnalysis
	}
}

type MicroserviceUpdate struct {
	Name             *string `json:"name,omitempty"`
	Responsibilities *string `json:"responsibilities,omitempty"`
	Entities         *string `json:"entities,omitempty"`
	Endpoints        *string `json:"endpoints,omitempty"`
	Dependencies     *string `json:"dependencies,omitempty"`
	DatabaseType     *string `json:"databaseType,omitempty"`
}

func (u MicroserviceUpdate) Apply(s *Microservice) {
	setString(&s.Name, u.Name)
	setString(&s.Responsibilities, u.Responsibilities)
	setString(&s.Entities, u.Entities)
	setString(&s.Endpoints, u.Endpoints)
	setString(&s.Dependencies, u.Dependencies)
	setString(&s.DatabaseType, u.DatabaseType)
}

type DiagramNodeUpdate struct {
	Type  *string  `json:"type,omitempty"`
	Label *string  `json:"label,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

// Validate checks the node type when it is being changed.
func (u DiagramNodeUpdate) Validate() error {
	if u.Type != nil && !IsNodeType(*u.Type) {
		return ErrInvalidNodeType
	}
	return nil
}

func (u DiagramNodeUpdate) Apply(n *DiagramNode) {
	setString(&n.Type, u.Type)
	setString(&n.Label, u.Label)
	if u.X != nil {
		n.X = *u.X
	}
	if u.Y != nil {
		n.Y = *u.Y
	}
}

type DiagramConnectionUpdate struct {
	From     *string `json:"from,omitempty"`
	To       *string `json:"to,omitempty"`
	Protocol *string `json:"protocol,omitempty"`
	Label    *string `json:"label,omitempty"`
}

func (u DiagramConnectionUpdate) Apply(c *DiagramConnection) {
	setString(&c.From, u.From)
	setString(&c.To, u.To)
	setString(&c.Protocol, u.Protocol)
	setString(&c.Label, u.Label)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
