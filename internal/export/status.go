package export

import "github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"

// Status summarizes progress on a project.
type Status struct {
	CompletedSections   int     `json:"completedSections"`
	TotalSections       int     `json:"totalSections"`
	CompletionPercent   float64 `json:"completionPercent"`
	Microservices       int     `json:"microservices"`
	Components          int     `json:"components"`
	Connections         int     `json:"connections"`
	DanglingConnections int     `json:"danglingConnections"`
	SecurityEnabled     int     `json:"securityEnabled"`
	SecurityKnown       int     `json:"securityKnown"`
	LastUpdated         int64   `json:"lastUpdated"`
}

func Summarize(p domain.Project) Status {
	completed := 0
	for _, sec := range domain.Sections {
		if p.IsSectionComplete(sec.ID) {
			completed++
		}
	}
	enabled := 0
	for _, on := range p.SecurityMeasures {
		if on {
			enabled++
		}
	}
	total := len(domain.Sections)
	return Status{
		CompletedSections:   completed,
		TotalSections:       total,
		CompletionPercent:   float64(completed) / float64(total) * 100,
		Microservices:       len(p.Microservices),
		Components:          len(p.DiagramNodes),
		Connections:         len(p.DiagramConnections),
		DanglingConnections: len(p.DanglingConnections()),
		SecurityEnabled:     enabled,
		SecurityKnown:       len(domain.SecurityMeasureIDs),
		LastUpdated:         p.LastUpdated,
	}
}
