package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"gazette/feed"
	"gazette/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the announcements page",
		Description: `Starts the gazette HTTP server.

Serves the announcements page on /, the feed documents under /data and
Prometheus metrics on /metrics. The page loads the feed document once per
page load and filters it by the q and source query parameters.

By default the local data directory written by the fetch command is used.
Pass --data-url to load latest.json from a remote host instead.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Port to listen on",
				EnvVars: []string{"GAZETTE_PORT"},
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Value:   "data",
				Usage:   "Local data directory with the feed documents",
				EnvVars: []string{"GAZETTE_DATA"},
			},
			&cli.StringFlag{
				Name:    "data-url",
				Usage:   "Base URL to load data/latest.json from instead of the local directory",
				EnvVars: []string{"GAZETTE_DATA_URL"},
			},
			&cli.StringFlag{
				Name:    "title",
				Value:   "Gov Announcements (Daily)",
				Usage:   "Title shown on the announcements page",
				EnvVars: []string{"GAZETTE_TITLE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			var loader feed.Loader
			dataDir := ctx.String("data")

			if baseURL := ctx.String("data-url"); baseURL != "" {
				loader = feed.NewHTTPLoader(baseURL)
				dataDir = ""
			} else {
				loader = feed.NewFileLoader(dataDir)
			}

			app := server.Server(&server.ServerConfig{
				SiteTitle: ctx.String("title"),
				Loader:    loader,
				DataDir:   dataDir,
			})

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)

			go func() {
				<-c
				log.Info("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					log.Error("Error shutting down server", err)
				}
			}()

			log.WithFields(log.Fields{
				"port": ctx.Int("port"),
			}).Info("Starting server")

			return app.Listen(fmt.Sprintf(":%d", ctx.Int("port")))
		},
	}
}
