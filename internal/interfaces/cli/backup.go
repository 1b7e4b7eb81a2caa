package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/application/backup"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

type backupOptions struct {
	connectionOptions
	Out string `flag:"out" validate:"required"`
}

type restoreOptions struct {
	connectionOptions
	In string `flag:"in" validate:"required"`
}

// BackupCommand builds the rtdb-backup tool
func (a *App) BackupCommand() *cobra.Command {
	var opts backupOptions

	cmd, common := newCommand(
		"rtdb-backup",
		"Back up /data to a JSON file",
		`Reads the whole /data subtree and writes it as indented JSON to a local
file or to an S3-compatible bucket (s3://bucket/key).`,
	)
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output JSON file or s3://bucket/key")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rt, err := a.setup(cmd, common, "rtdb-backup")
		if err != nil {
			return err
		}
		defer rt.close()

		opts.connectionOptions = rt.connection()
		if err := validateOptions(opts); err != nil {
			return err
		}

		svc := a.backupService(rt)
		if _, err := svc.Backup(cmd.Context(), opts.Out); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK: backup saved to %s\n", opts.Out)
		return nil
	}

	return cmd
}

// RestoreCommand builds the rtdb-restore tool
func (a *App) RestoreCommand() *cobra.Command {
	var opts restoreOptions
	var force bool

	cmd, common := newCommand(
		"rtdb-restore",
		"Replace /data with the contents of a JSON file",
		`Reads a JSON object from a local file or s3://bucket/key and replaces the
whole /data subtree with it. Refuses to run without --force.`,
	)
	cmd.Flags().StringVar(&opts.In, "in", "", "Input JSON file or s3://bucket/key")
	cmd.Flags().BoolVar(&force, "force", false, "Required to overwrite /data")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !force {
			return shared.ErrForceRequired
		}

		rt, err := a.setup(cmd, common, "rtdb-restore")
		if err != nil {
			return err
		}
		defer rt.close()

		opts.connectionOptions = rt.connection()
		if err := validateOptions(opts); err != nil {
			return err
		}

		svc := a.backupService(rt)
		if _, err := svc.Restore(cmd.Context(), opts.In, force); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "OK: restore completed")
		return nil
	}

	return cmd
}

func (a *App) backupService(rt *runtime) *backup.Service {
	return backup.NewService(
		a.newStore(rt.cfg.RTDB, rt.logger),
		a.newDocuments(rt.cfg, rt.logger),
		rt.logger,
		backup.WithDataRoot(rt.cfg.RTDB.DataPath),
	)
}
