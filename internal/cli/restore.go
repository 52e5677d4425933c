package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeroglass/aerotint/internal/backup"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [archive]",
		Short: "Restore the generated xfwm4 dir from a snapshot",
		Long: `Restore replaces the generated xfwm4 directory with a snapshot taken by
apply --backup. Without an argument the newest snapshot is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRestore,
	}
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	root := themeRoot(cmd)
	backupsDir := filepath.Join(root, "xfwm4-backups")

	archive := ""
	if len(args) == 1 {
		archive = args[0]
	} else {
		latest, err := backup.Latest(backupsDir)
		if err != nil {
			return err
		}
		if latest == "" {
			return fmt.Errorf("no snapshots found under %s", backupsDir)
		}
		archive = latest
	}

	workDir := filepath.Join(root, "xfwm4")
	if err := backup.Restore(archive, workDir); err != nil {
		return err
	}
	log.Info("decorations restored", "archive", filepath.Base(archive), "dir", workDir)
	return nil
}
