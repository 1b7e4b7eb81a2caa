// Command parts-import imports the parts catalog from a spreadsheet or CSV file.
package main

import (
	"os"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/interfaces/cli"
)

func main() {
	app := cli.NewApp()
	os.Exit(app.Run(app.PartsImportCommand(), os.Args[1:]))
}
