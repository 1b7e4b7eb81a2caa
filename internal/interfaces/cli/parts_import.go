package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	importapp "github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/application/import"
)

type partsImportOptions struct {
	connectionOptions
	File   string `flag:"file" validate:"required"`
	Sheet  string `flag:"sheet"`
	DryRun bool   `flag:"dry-run"`
}

// PartsImportCommand builds the parts-import tool
func (a *App) PartsImportCommand() *cobra.Command {
	var opts partsImportOptions

	cmd, common := newCommand(
		"parts-import",
		"Import the parts catalog from a spreadsheet or CSV file",
		`Reads a workbook (.xlsx) or CSV file with the columns codigo, descricao
and unidade (plus the optional ativo, precoRefOpcional and
fornecedorIdOpcional), validates every row and upserts the accepted parts
into /data/diversey_pecas, keyed by an id derived from the code.

Example:
  parts-import --service-account sa.json --database-url https://demo.firebaseio.com \
    --file pecas.xlsx --sheet Pecas --dry-run`,
	)
	cmd.Flags().StringVar(&opts.File, "file", "", "Spreadsheet (.xlsx) or CSV file to import")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name (workbooks only, default the first sheet)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate only, write nothing")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rt, err := a.setup(cmd, common, "parts-import")
		if err != nil {
			return err
		}
		defer rt.close()

		opts.connectionOptions = rt.connection()
		if err := validateOptions(opts); err != nil {
			return err
		}

		svc := importapp.NewPartImportService(
			a.newStore(rt.cfg.RTDB, rt.logger),
			rt.logger,
			importapp.WithDataRoot(rt.cfg.RTDB.DataPath),
		)
		result, err := svc.Import(cmd.Context(), importapp.ImportRequest{
			File:   opts.File,
			Sheet:  opts.Sheet,
			DryRun: opts.DryRun,
		})
		out := cmd.OutOrStdout()
		if result != nil {
			fmt.Fprintf(out, "Valid rows: %d\n", result.ValidRows)
		}
		if err != nil {
			return err
		}
		if result.DryRun {
			fmt.Fprintln(out, "DRY RUN: nothing written.")
			return nil
		}
		fmt.Fprintf(out, "OK: import completed, %d parts written.\n", result.WrittenRows)
		return nil
	}

	return cmd
}
