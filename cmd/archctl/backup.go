package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/archdesign/internal/backup"
)

func (a *app) backupCmd() *cobra.Command {
	var dir string
	var retain int
	var list bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped JSON snapshot of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Backup.Dir
			}
			if !cmd.Flags().Changed("retain") {
				retain = a.cfg.Backup.Retain
			}
			sched := backup.NewScheduler(a.store, dir, retain, a.log)

			if list {
				files, err := sched.List()
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			path, err := sched.RunOnce(ctxOf(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default BACKUP_DIR)")
	cmd.Flags().IntVar(&retain, "retain", 0, "snapshots to keep (default BACKUP_RETAIN)")
	cmd.Flags().BoolVar(&list, "list", false, "list existing snapshots instead of writing one")
	return cmd
}
