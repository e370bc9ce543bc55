package main

import "github.com/urfave/cli/v2"

const (
	appName = "replicationworker"
	version = "0.1.0"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    appName,
		Usage:   "pull-based anti-entropy replication worker for a blob store",
		Version: version,
		Commands: []*cli.Command{
			newStartCommand(),
		},
	}
}

func newStartCommand() *cli.Command {
	return &cli.Command{
		Name:   "start",
		Action: start,
		Flags:  appFlags(),
	}
}
