package main

import (
	"fmt"
	"os"

	"github.com/BoltzExchange/broadcaster/internal/build"
	"github.com/BoltzExchange/broadcaster/internal/config"
	"github.com/BoltzExchange/broadcaster/pkg/client"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "broadcastercli"
	app.Usage = "A command line interface for broadcasterd"
	app.Version = build.GetVersion()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Value: config.DefaultApiHost,
			Usage: "REST host of broadcasterd",
		},
		&cli.IntFlag{
			Name:  "port",
			Value: config.DefaultApiPort,
			Usage: "REST port of broadcasterd",
		},
	}
	app.Commands = []*cli.Command{
		getInfoCommand,
		providersCommand,
		feeCommand,

		broadcastCommand,
		statusCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func getClient(ctx *cli.Context) *client.Client {
	return client.NewClient(fmt.Sprintf("http://%s:%d", ctx.String("host"), ctx.Int("port")))
}
