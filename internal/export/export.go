// Package export renders a project as JSON, YAML, a Markdown report or a
// Graphviz diagram.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

// Formats understood by Render.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatDOT      = "dot"
)

// JSON returns the project with two-space indentation.
func JSON(p domain.Project) ([]byte, error) {
	p.Normalize()
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return out, nil
}

func YAML(p domain.Project) ([]byte, error) {
	p.Normalize()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown renders the human-readable report. loc controls how the last
// updated time is printed; nil means time.Local.
func Markdown(p domain.Project, loc *time.Location) []byte {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Description:** %s\n\n", p.Description)
	fmt.Fprintf(&b, "**Last Updated:** %s\n\n", p.UpdatedAt().In(loc).Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Project Sections\n\n")
	for _, sec := range domain.Sections {
		mark := "○"
		if p.IsSectionComplete(sec.ID) {
			mark = "✓"
		}
		fmt.Fprintf(&b, "- [%s] Section %s\n", mark, sec.ID)
	}

	b.WriteString("\n## Microservices\n\n")
	for _, svc := range p.Microservices {
		deps := svc.Dependencies
		if deps == "" {
			deps = "None"
		}
		fmt.Fprintf(&b, "### %s\n", svc.Name)
		fmt.Fprintf(&b, "- **Responsibilities:** %s\n", svc.Responsibilities)
		fmt.Fprintf(&b, "- **Entities:** %s\n", svc.Entities)
		fmt.Fprintf(&b, "- **Database:** %s\n", svc.DatabaseType)
		fmt.Fprintf(&b, "- **Dependencies:** %s\n\n", deps)
	}

	b.WriteString("\n## Architecture Components\n\n")
	fmt.Fprintf(&b, "Total Components: %d\n", len(p.DiagramNodes))
	fmt.Fprintf(&b, "Total Connections: %d\n\n", len(p.DiagramConnections))

	return []byte(b.String())
}

// Render dispatches on format and returns the body with its content type.
func Render(p domain.Project, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		out, err := JSON(p)
		return out, "application/json", err
	case FormatMarkdown, "md":
		return Markdown(p, nil), "text/markdown; charset=utf-8", nil
	case FormatYAML, "yml":
		out, err := YAML(p)
		return out, "application/yaml", err
	case FormatDOT, "gv":
		return DOT(p), "text/vnd.graphviz; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}

// Filename returns the download name for format, e.g. "My Title-project.md".
func Filename(p domain.Project, format string) string {
	ext := "json"
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		ext = "md"
	case FormatYAML, "yml":
		ext = "yaml"
	case FormatDOT, "gv":
		ext = "dot"
	}
	title := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, p.Title)
	return fmt.Sprintf("%s-project.%s", title, ext)
}
