package cmd

import (
	"errors"
	"fmt"
	"os"

	"gazette/config"
	"gazette/models"

	"github.com/cqroot/prompt"
	"github.com/urfave/cli/v2"
)

func sourcesCmd() *cli.Command {
	sourcesFlag := &cli.StringFlag{
		Name:    "sources",
		Aliases: []string{"s"},
		Value:   "config/sources.toml",
		Usage:   "Path to sources configuration file",
		EnvVars: []string{"GAZETTE_SOURCES"},
	}

	return &cli.Command{
		Name:  "sources",
		Usage: "Manage the configured announcement sources",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a source interactively",
				Flags: []cli.Flag{sourcesFlag},
				Action: func(ctx *cli.Context) error {
					path := ctx.String("sources")

					cfg, err := config.LoadSources(path)
					if err != nil {
						if !errors.Is(err, os.ErrNotExist) {
							return err
						}
						cfg = &config.SourcesConfig{Timezone: config.DefaultTimezone}
					}

					name, err := prompt.New().Ask("Source name:").Input("Department of Example")
					if err != nil {
						return err
					}

					homepage, err := prompt.New().Ask("Homepage:").Input("https://www.example.gov.au/newsroom")
					if err != nil {
						return err
					}

					selector, err := prompt.New().Ask("CSS selector (used when no feed is found):").Input("a")
					if err != nil {
						return err
					}

					cfg.Sources = append(cfg.Sources, models.Source{
						Name:     name,
						Homepage: homepage,
						Selector: selector,
					})

					if err := config.SaveSources(path, cfg); err != nil {
						return err
					}

					fmt.Println("Added source...", name)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the configured sources",
				Flags: []cli.Flag{sourcesFlag},
				Action: func(ctx *cli.Context) error {
					cfg, err := config.LoadSources(ctx.String("sources"))
					if err != nil {
						return err
					}

					fmt.Printf("Timezone: %s\n", cfg.Timezone)
					for _, src := range cfg.Sources {
						fmt.Printf(" - %s => %s", src.Name, src.Homepage)
						if src.Selector != "" {
							fmt.Printf(" (selector: %s)", src.Selector)
						}
						fmt.Println()
					}
					return nil
				},
			},
		},
	}
}
