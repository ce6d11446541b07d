package main

import (
	"github.com/urfave/cli/v2"

	proposalpdf "github.com/porticus-lab/go-proposal-pdf"
	"github.com/porticus-lab/go-proposal-pdf/internal/normalize"
	"github.com/porticus-lab/go-proposal-pdf/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the rendering HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address (default: server.addr)",
				EnvVars: []string{"PROPOSALPDF_ADDR"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	e := envFrom(c)
	if addr := c.String("addr"); addr != "" {
		e.cfg.Server.Addr = addr
	}

	opts, err := e.cfg.GeneratorOptions(e.log)
	if err != nil {
		return err
	}
	n := normalize.New(
		normalize.WithLogger(e.log),
		normalize.WithDefaultTexts(e.cfg.Texts.Policy, e.cfg.Texts.Conditions),
	)
	srv := server.New(proposalpdf.New(opts...), n, e.cfg.Server, e.log)
	return srv.ListenAndServe(c.Context)
}
