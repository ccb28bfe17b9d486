package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mail-unquote/internal/batch"
	"github.com/dtnitsch/mail-unquote/internal/inspect"
	"github.com/dtnitsch/mail-unquote/internal/strip"
	"github.com/dtnitsch/mail-unquote/pkg/db"
)

func main() {
	app := &cli.App{
		Name:  "mail-unquote",
		Usage: "detect and fold quoted content in email bodies",
		Commands: []*cli.Command{
			{
				Name:      "strip",
				Usage:     "Strip quoted content from a single message and print the result",
				ArgsUsage: "<message file | ->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "stdin format: text, html or eml",
						Value: "text",
					},
					&cli.BoolFlag{
						Name:  "text",
						Usage: "prefer the text/plain representation even when HTML is present",
					},
					&cli.BoolFlag{
						Name:  "quoted",
						Usage: "print the quoted region instead of the authored content",
					},
					&cli.BoolFlag{
						Name:  "ignore-first-forward",
						Usage: "keep a message that is entirely one forwarded thread unfolded",
					},
				},
				Action: strip.StripAction,
			},
			{
				Name:      "inspect",
				Usage:     "Report which detection rule matches each message, without rewriting",
				ArgsUsage: "<message files...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ignore-first-forward",
						Usage: "keep a message that is entirely one forwarded thread unfolded",
					},
				},
				Action: inspect.InspectAction,
			},
			{
				Name:  "batch",
				Usage: "Process a directory of messages through the unquote pipeline",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "yaml config file",
						Value: "unquote.yaml",
					},
					&cli.StringFlag{
						Name:  "input-dir",
						Usage: "directory of .eml/.html/.txt message files",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for per-message yaml results",
						Value: "results",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of concurrent workers",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "ignore-first-forward",
						Usage: "keep messages that are entirely one forwarded thread unfolded",
					},
					&cli.StringFlag{
						Name:  "stats-db",
						Usage: "sqlite database for detection stats",
						Value: db.DefaultDBName,
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "directory for the content-hash result cache (empty disables caching)",
					},
					&cli.StringFlag{
						Name:  "cache-ttl",
						Usage: "cache entry lifetime, as a Go duration",
						Value: "24h",
					},
					&cli.BoolFlag{
						Name:  "derive-text",
						Usage: "derive a text/plain representation for HTML-only messages",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: batch.BatchAction,
			},
			{
				Name:  "db",
				Usage: "Stats database utilities",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Create the stats database schema",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "stats-db",
								Usage: "sqlite database path",
								Value: db.DefaultDBName,
							},
						},
						Action: dbInitAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("mail-unquote: %v", err)
	}
}

func dbInitAction(c *cli.Context) error {
	database, err := db.Open(c.String("stats-db"))
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.InitSchema(); err != nil {
		return err
	}
	log.Printf("Initialized stats database at %s", database.Path())
	return nil
}
