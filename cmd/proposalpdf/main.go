// proposalpdf renders commercial proposals to PDF and inspects the result.
//
// Usage:
//
//	proposalpdf render [options] <record.json>
//	proposalpdf inspect [-text] [-p range] <file.pdf>
//	proposalpdf serve [-addr :8080]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/config"
)

// appKey is the App.Metadata key holding the loaded environment.
const appKey = "env"

// env is what every command needs after flags are parsed.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "proposalpdf",
		Usage: "render commercial proposals to paginated PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				Value:   "config.yaml",
				EnvVars: []string{"PROPOSALPDF_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log.level from the configuration",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadOrDefault(c.String("config"))
			if err != nil {
				return err
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.Log.Level = lvl
			}
			logger, err := cfg.Log.Logger()
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]any{appKey: &env{cfg: cfg, log: logger}}
			return nil
		},
		After: func(c *cli.Context) error {
			if e, ok := c.App.Metadata[appKey].(*env); ok {
				e.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			renderCommand(),
			inspectCommand(),
			serveCommand(),
		},
	}
}

func envFrom(c *cli.Context) *env {
	return c.App.Metadata[appKey].(*env)
}
