// Command rtdb-backup writes the /data subtree of the Realtime Database to a JSON document.
package main

import (
	"os"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/interfaces/cli"
)

func main() {
	app := cli.NewApp()
	os.Exit(app.Run(app.BackupCommand(), os.Args[1:]))
}
