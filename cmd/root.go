package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "gazette",
		Usage: "A daily feed of government announcements",
		Description: `Gazette collects announcements from a configured list of
		government sources and serves them as a single searchable daily feed.

		The fetch command discovers each source's RSS or Atom feed (falling
		back to scraping the homepage), normalizes the result and writes the
		feed document to the data directory. The serve command hosts the
		announcements page with free-text search and per-source filtering,
		plus the raw data files.

		Flags can generally be set via environment variables, e.g.:

		--data => GAZETTE_DATA=data
		--port => GAZETTE_PORT=8080
		`,
		Commands: []*cli.Command{
			fetchCmd(),
			serveCmd(),
			sourcesCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
