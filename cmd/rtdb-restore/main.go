// Command rtdb-restore replaces the /data subtree of the Realtime Database with a JSON document.
package main

import (
	"os"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/interfaces/cli"
)

func main() {
	app := cli.NewApp()
	os.Exit(app.Run(app.RestoreCommand(), os.Args[1:]))
}
