package store

import (
	"encoding/json"
	"fmt"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

const (
	// DefaultKey is the fixed name the project document is stored under.
	DefaultKey = "archdesign-project"

	// DocumentVersion is the envelope version written by Encode. Version 0 is
	// the legacy envelope that carried no explicit version bump.
	DocumentVersion = 1
)

type envelope struct {
	State   envelopeState `json:"state"`
	Version *int          `json:"version,omitempty"`
}

type envelopeState struct {
	Project json.RawMessage `json:"project"`
}

// Encode wraps p in the versioned storage envelope.
func Encode(p domain.Project) ([]byte, error) {
	p.Normalize()
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	v := DocumentVersion
	return json.Marshal(envelope{State: envelopeState{Project: raw}, Version: &v})
}

// Decode reads a stored envelope. Fields absent from the stored project keep
// their value from base; fields present replace it. Documents written by a
// newer version are rejected. The returned version is the one found on disk.
func Decode(data []byte, base domain.Project) (domain.Project, int, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Project{}, 0, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	version := 0
	if env.Version != nil {
		version = *env.Version
	}
	if version > DocumentVersion || version < 0 {
		return domain.Project{}, version, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, version)
	}
	if len(env.State.Project) == 0 || string(env.State.Project) == "null" {
		return domain.Project{}, version, fmt.Errorf("%w: missing project", domain.ErrCorruptDocument)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(env.State.Project, &fields); err != nil {
		return domain.Project{}, version, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	out := base.Clone()
	// json merges into existing maps and reuses slice backing arrays, so any
	// stored collection must start empty rather than from the default.
	resets := map[string]func(){
		"completedSections":  func() { out.CompletedSections = nil },
		"microservices":      func() { out.Microservices = nil },
		"diagramNodes":       func() { out.DiagramNodes = nil },
		"diagramConnections": func() { out.DiagramConnections = nil },
		"sequenceFlowSteps":  func() { out.SequenceFlowSteps = nil },
		"securityMeasures":   func() { out.SecurityMeasures = nil },
		"cloudComponents":    func() { out.CloudComponents = nil },
	}
	for name, reset := range resets {
		if _, ok := fields[name]; ok {
			reset()
		}
	}
	if err := json.Unmarshal(env.State.Project, &out); err != nil {
		return domain.Project{}, version, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	if out.ID == "" {
		out.ID = base.ID
	}
	out.Normalize()
	return out, version, nil
}
