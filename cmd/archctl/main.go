// Package main implements archctl, a command-line front end to the project
// store. It works directly against the configured storage backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/config"
	"github.com/GoSim-25-26J-441/archdesign/internal/bootstrap"
	"github.com/GoSim-25-26J-441/archdesign/internal/logging"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/store"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

var version = "dev"

// app carries what every subcommand needs once the root has run its
// pre-run hook.
type app struct {
	backendFlag string
	dataDirFlag string
	keyFlag     string

	cfg     *config.Config
	log     *zap.Logger
	backend storage.Backend
	store   *store.Store
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "archctl",
		Short: "Manage the architecture design project document",
		Long: `archctl reads and edits the architecture design project stored by the
archdesign service: sections, security measures, microservices and the
diagram, plus JSON, YAML and Markdown export.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.backendFlag, "backend", "", "storage backend (memory, file, sqlite, redis, postgres)")
	root.PersistentFlags().StringVar(&a.dataDirFlag, "data-dir", "", "data directory for the file backend")
	root.PersistentFlags().StringVar(&a.keyFlag, "key", "", "storage key of the project document")

	root.AddCommand(
		a.showCmd(),
		a.statusCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.resetCmd(),
		a.saveCmd(),
		a.setCmd(),
		a.sectionCmd(),
		a.securityCmd(),
		a.serviceCmd(),
		a.nodeCmd(),
		a.connCmd(),
		a.backupCmd(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.backendFlag != "" {
		cfg.Store.Backend = a.backendFlag
	}
	if a.dataDirFlag != "" {
		cfg.SetDataDir(a.dataDirFlag)
	}
	if a.keyFlag != "" {
		cfg.Store.Key = a.keyFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.backend, err = bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Store.Backend, err)
	}
	a.store, err = store.Open(ctx, a.backend, store.WithKey(cfg.Store.Key), store.WithLogger(a.log))
	if err != nil {
		_ = a.backend.Close()
		a.backend = nil
		return err
	}
	return nil
}

func (a *app) close() error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
