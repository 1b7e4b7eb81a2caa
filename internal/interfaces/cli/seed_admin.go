package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	identityapp "github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/application/identity"
)

type seedAdminOptions struct {
	connectionOptions
	Username    string `flag:"username" validate:"required"`
	Password    string `flag:"password" validate:"required"`
	DisplayName string `flag:"display-name" validate:"required"`
	Role        string `flag:"role" validate:"required,oneof=admin gestor tecnico administrator manager technician"`
}

// SeedAdminCommand builds the seed-admin tool
func (a *App) SeedAdminCommand() *cobra.Command {
	var opts seedAdminOptions

	cmd, common := newCommand(
		"seed-admin",
		"Create the base /data structure and one user account",
		`Initialises /data/diversey_settings and the application collections where
they are absent, then creates or replaces the user document keyed by the
lowercase username. Prints a JSON summary of the account.`,
	)
	cmd.Flags().StringVar(&opts.Username, "username", "", "Login name")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&opts.DisplayName, "display-name", "", "Name shown in the application")
	cmd.Flags().StringVar(&opts.Role, "role", "", "admin, gestor or tecnico (administrator, manager, technician also accepted)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rt, err := a.setup(cmd, common, "seed-admin")
		if err != nil {
			return err
		}
		defer rt.close()

		opts.connectionOptions = rt.connection()
		opts.Username = strings.TrimSpace(opts.Username)
		opts.Role = strings.ToLower(strings.TrimSpace(opts.Role))
		if err := validateOptions(opts); err != nil {
			return err
		}

		svc := identityapp.NewSeedService(
			a.newStore(rt.cfg.RTDB, rt.logger),
			rt.logger,
			identityapp.WithDataRoot(rt.cfg.RTDB.DataPath),
		)
		result, err := svc.Seed(cmd.Context(), identityapp.SeedInput{
			Username:    opts.Username,
			Password:    opts.Password,
			DisplayName: opts.DisplayName,
			Role:        opts.Role,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "OK: admin seed completed")
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	return cmd
}
