// Command seed-admin prepares a Realtime Database for the web application and creates one user.
package main

import (
	"os"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/interfaces/cli"
)

func main() {
	app := cli.NewApp()
	os.Exit(app.Run(app.SeedAdminCommand(), os.Args[1:]))
}
