package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "finds-backend"
	app.Usage = "Backend of the found-objects community"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the TOML configuration file",
			Value: "config.toml",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Apply database migrations",
			Category:    "Database",
			Description: `Applies the embedded SQL migrations to the configured database.`,
		},
		{
			Action:      server.startSeed,
			Name:        "seed",
			Usage:       "Seed the initial moderator account",
			Category:    "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Value: "moderator@example.com"},
				&cli.StringFlag{Name: "password", Required: true},
			},
			Description: `Creates the first moderator account if it does not exist yet.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
