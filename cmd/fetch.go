package cmd

import (
	"fmt"
	"time"

	"gazette/config"
	"gazette/fetcher"
	"gazette/models"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Collect today's announcements and write the feed document",
		Description: `Fetches every configured source, preferring advertised RSS/Atom
feeds and falling back to scraping the homepage with the source's CSS
selector.

Items are deduplicated by URL and filtered to the current day in the
configured timezone, then written to data/<date>.json, data/latest.json and
a unified RSS rendition in data/unified.xml. Failed sources are recorded in
the document's errors list and do not abort the run.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "sources",
				Aliases: []string{"s"},
				Value:   "config/sources.toml",
				Usage:   "Path to sources configuration file",
				EnvVars: []string{"GAZETTE_SOURCES"},
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Value:   "data",
				Usage:   "Directory to write feed documents to",
				EnvVars: []string{"GAZETTE_DATA"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Value:   4,
				Usage:   "Number of concurrent source fetches",
				EnvVars: []string{"GAZETTE_WORKERS"},
			},
			&cli.StringFlag{
				Name:    "title",
				Value:   "Gov Announcements (Daily)",
				Usage:   "Title used for the unified RSS feed",
				EnvVars: []string{"GAZETTE_TITLE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadSources(ctx.String("sources"))
			if err != nil {
				return err
			}

			tz, err := time.LoadLocation(cfg.Timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
			}

			log.WithFields(log.Fields{
				"sources":  len(cfg.Sources),
				"timezone": cfg.Timezone,
			}).Info("Fetching sources")

			f := fetcher.New(tz)
			collected, errors := f.FetchAll(ctx.Context, cfg.Sources, ctx.Int("workers"))

			now := time.Now().In(tz)
			items := fetcher.Normalize(collected, now, tz)

			doc := &models.FeedDocument{
				Date:        now.Format("2006-01-02"),
				Timezone:    cfg.Timezone,
				GeneratedAt: now.Format(time.RFC3339),
				Count:       len(items),
				Items:       items,
				Errors:      errors,
			}

			if err := fetcher.WriteOutputs(ctx.String("data"), doc, now, ctx.String("title")); err != nil {
				return err
			}

			fmt.Printf("Wrote %d items to %s\n", len(items), ctx.String("data"))
			if len(errors) > 0 {
				fmt.Println("Some sources failed or partially parsed:")
				for _, record := range errors {
					fmt.Printf(" - %v => %v\n", record["source"], record["error"])
				}
			}

			return nil
		},
	}
}
