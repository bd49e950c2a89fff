package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/archdesign/internal/export"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the project as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := export.JSON(a.store.Get())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize project progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.store.Get()
			st := export.Summarize(p)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Project:       %s\n", p.Title)
			fmt.Fprintf(w, "Completion:    %d / %d sections (%.0f%%)\n", st.CompletedSections, st.TotalSections, st.CompletionPercent)
			fmt.Fprintf(w, "Microservices: %d\n", st.Microservices)
			fmt.Fprintf(w, "Components:    %d\n", st.Components)
			fmt.Fprintf(w, "Connections:   %d (%d dangling)\n", st.Connections, st.DanglingConnections)
			fmt.Fprintf(w, "Security:      %d enabled\n", st.SecurityEnabled)
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the project as json, markdown, yaml or dot",
		Long: `Export the project document.

Examples:
  # Markdown report to stdout
  archctl export --format markdown

  # JSON backup next to the data dir
  archctl export --format json -o backup.json

  # Render the diagram with Graphviz
  archctl export -f dot | dot -Tpng -o diagram.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _, err := export.Render(a.store.Get(), format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "json, markdown, yaml or dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the project with an exported JSON or YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			if format == "" {
				format = export.FormatJSON
				if strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml") {
					format = export.FormatYAML
				}
			}

			var p domain.Project
			switch format {
			case export.FormatJSON:
				err = json.Unmarshal(data, &p)
			case export.FormatYAML, "yml":
				err = yaml.Unmarshal(data, &p)
			default:
				return fmt.Errorf("unknown import format %q", format)
			}
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			imported, err := a.store.Replace(ctxOf(cmd), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %q\n", imported.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from file extension)")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the project with a fresh default project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards the current project; pass --yes to confirm")
			}
			_, err := a.store.Reset(ctxOf(cmd))
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Force a write with a refreshed timestamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.store.Save(ctxOf(cmd))
			return err
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	var title, description, dataNotes, cost string
	var steps, cloud []string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update top-level project fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u domain.ProjectUpdate
			f := cmd.Flags()
			if f.Changed("title") {
				u.Title = &title
			}
			if f.Changed("description") {
				u.Description = &description
			}
			if f.Changed("data-notes") {
				u.DataArchitectureNotes = &dataNotes
			}
			if f.Changed("cost-analysis") {
				u.CostAnalysis = &cost
			}
			if f.Changed("flow-step") {
				u.SequenceFlowSteps = &steps
			}
			if f.Changed("cloud-component") {
				u.CloudComponents = &cloud
			}
			if u.Empty() {
				return fmt.Errorf("nothing to set")
			}
			_, err := a.store.Update(ctxOf(cmd), u)
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "project title")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&dataNotes, "data-notes", "", "data architecture notes")
	cmd.Flags().StringVar(&cost, "cost-analysis", "", "cost analysis notes")
	cmd.Flags().StringArrayVar(&steps, "flow-step", nil, "sequence flow step (repeatable, replaces the list)")
	cmd.Flags().StringArrayVar(&cloud, "cloud-component", nil, "cloud component (repeatable, replaces the list)")
	return cmd
}

func (a *app) sectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "List or toggle report sections A-I",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List sections with their completion state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p := a.store.Get()
				for _, sec := range domain.Sections {
					mark := " "
					if p.IsSectionComplete(sec.ID) {
						mark = "x"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s  %s\n", mark, sec.ID, sec.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Mark a section complete, or incomplete if it already is",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id := strings.ToUpper(args[0])
				p, err := a.store.ToggleSectionComplete(ctxOf(cmd), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "section %s complete: %t\n", id, p.IsSectionComplete(id))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) securityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "List or toggle security measures",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List security measures",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m := a.store.Get().SecurityMeasures
				ids := make([]string, 0, len(m))
				for id := range m {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s %t\n", id, m[id])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Flip a security measure",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := a.store.ToggleSecurityMeasure(ctxOf(cmd), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %t\n", args[0], enabled)
				return nil
			},
		},
	)
	return cmd
}
