package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

func (a *app) serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"svc"},
		Short:   "Manage microservice definitions",
	}

	var svc domain.Microservice
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a microservice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if svc.Name == "" {
				return fmt.Errorf("--name is required")
			}
			out, err := a.store.AddMicroservice(ctxOf(cmd), svc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ID)
			return nil
		},
	}
	bindMicroservice(add, &svc)
	add.Flags().StringVar(&svc.ID, "id", "", "id (generated when empty)")

	var fields domain.Microservice
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a microservice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u domain.MicroserviceUpdate
			if f.Changed("name") {
				u.Name = &fields.Name
			}
			if f.Changed("responsibilities") {
				u.Responsibilities = &fields.Responsibilities
			}
			if f.Changed("entities") {
				u.Entities = &fields.Entities
			}
			if f.Changed("endpoints") {
				u.Endpoints = &fields.Endpoints
			}
			if f.Changed("dependencies") {
				u.Dependencies = &fields.Dependencies
			}
			if f.Changed("database") {
				u.DatabaseType = &fields.DatabaseType
			}
			found, err := a.store.UpdateMicroservice(ctxOf(cmd), args[0], u)
			return reportFound(cmd, found, err, "microservice", args[0])
		},
	}
	bindMicroservice(update, &fields)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a microservice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.store.RemoveMicroservice(ctxOf(cmd), args[0])
			return reportFound(cmd, found, err, "microservice", args[0])
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List microservices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDATABASE\tDEPENDENCIES")
			for _, s := range a.store.Get().Microservices {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.DatabaseType, s.Dependencies)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, update, rm, ls)
	return cmd
}

func bindMicroservice(cmd *cobra.Command, s *domain.Microservice) {
	cmd.Flags().StringVar(&s.Name, "name", "", "service name")
	cmd.Flags().StringVar(&s.Responsibilities, "responsibilities", "", "responsibilities")
	cmd.Flags().StringVar(&s.Entities, "entities", "", "owned entities")
	cmd.Flags().StringVar(&s.Endpoints, "endpoints", "", "API endpoints")
	cmd.Flags().StringVar(&s.Dependencies, "dependencies", "", "dependencies on other services")
	cmd.Flags().StringVar(&s.DatabaseType, "database", "", "database type")
}

func (a *app) nodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage diagram components",
	}

	var n domain.DiagramNode
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a diagram component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.store.AddDiagramNode(ctxOf(cmd), n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&n.ID, "id", "", "id (generated when empty)")
	add.Flags().StringVar(&n.Type, "type", domain.NodeService, "client, gateway, service, database, cache or external")
	add.Flags().StringVar(&n.Label, "label", "", "label")
	add.Flags().Float64Var(&n.X, "x", 0, "x position")
	add.Flags().Float64Var(&n.Y, "y", 0, "y position")

	var fields domain.DiagramNode
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a diagram component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u domain.DiagramNodeUpdate
			if f.Changed("type") {
				u.Type = &fields.Type
			}
			if f.Changed("label") {
				u.Label = &fields.Label
			}
			if f.Changed("x") {
				u.X = &fields.X
			}
			if f.Changed("y") {
				u.Y = &fields.Y
			}
			found, err := a.store.UpdateDiagramNode(ctxOf(cmd), args[0], u)
			return reportFound(cmd, found, err, "node", args[0])
		},
	}
	update.Flags().StringVar(&fields.Type, "type", "", "node type")
	update.Flags().StringVar(&fields.Label, "label", "", "label")
	update.Flags().Float64Var(&fields.X, "x", 0, "x position")
	update.Flags().Float64Var(&fields.Y, "y", 0, "y position")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a diagram component; its connections are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.store.RemoveDiagramNode(ctxOf(cmd), args[0])
			return reportFound(cmd, found, err, "node", args[0])
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List diagram components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tLABEL\tX\tY")
			for _, n := range a.store.Get().DiagramNodes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\n", n.ID, n.Type, n.Label, n.X, n.Y)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, update, rm, ls)
	return cmd
}

func (a *app) connCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conn",
		Short: "Manage diagram connections",
	}

	var c domain.DiagramConnection
	add := &cobra.Command{
		Use:   "add",
		Short: "Connect two components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.From == "" || c.To == "" {
				return fmt.Errorf("--from and --to are required")
			}
			out, err := a.store.AddConnection(ctxOf(cmd), c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&c.ID, "id", "", "id (generated when empty)")
	add.Flags().StringVar(&c.From, "from", "", "source node id")
	add.Flags().StringVar(&c.To, "to", "", "target node id")
	add.Flags().StringVar(&c.Protocol, "protocol", domain.Protocols[0], "protocol")
	add.Flags().StringVar(&c.Label, "label", "", "label")

	var fields domain.DiagramConnection
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u domain.DiagramConnectionUpdate
			if f.Changed("from") {
				u.From = &fields.From
			}
			if f.Changed("to") {
				u.To = &fields.To
			}
			if f.Changed("protocol") {
				u.Protocol = &fields.Protocol
			}
			if f.Changed("label") {
				u.Label = &fields.Label
			}
			found, err := a.store.UpdateConnection(ctxOf(cmd), args[0], u)
			return reportFound(cmd, found, err, "connection", args[0])
		},
	}
	update.Flags().StringVar(&fields.From, "from", "", "source node id")
	update.Flags().StringVar(&fields.To, "to", "", "target node id")
	update.Flags().StringVar(&fields.Protocol, "protocol", "", "protocol")
	update.Flags().StringVar(&fields.Label, "label", "", "label")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.store.RemoveConnection(ctxOf(cmd), args[0])
			return reportFound(cmd, found, err, "connection", args[0])
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.store.Get()
			dangling := map[string]bool{}
			for _, d := range p.DanglingConnections() {
				dangling[d.ID] = true
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFROM\tTO\tPROTOCOL\tLABEL\tDANGLING")
			for _, c := range p.DiagramConnections {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", c.ID, c.From, c.To, c.Protocol, c.Label, dangling[c.ID])
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, update, rm, ls)
	return cmd
}

// reportFound prints a note when id was absent. An absent id is not an
// error: nothing was changed.
func reportFound(cmd *cobra.Command, found bool, err error, kind, id string) error {
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %q not found, nothing changed\n", kind, id)
	}
	return nil
}
