package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "AgriChain"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Serves the ledger, registry, and bounty market APIs.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs periodic jobs, currently the bounty expiry sweeper.`,
		},
		{
			Action:      server.startIndexer,
			Name:        "indexer",
			Usage:       "Start event indexer",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Consumes domain events from the broker and persists them.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Creates or updates all database tables.`,
		},
	}

	s.app = app
}
