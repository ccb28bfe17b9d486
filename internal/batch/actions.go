package batch

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/caching"
	"github.com/dtnitsch/mail-unquote/pkg/db"
	"github.com/dtnitsch/mail-unquote/pkg/mailbody"
	"github.com/dtnitsch/mail-unquote/pkg/storage"
)

// BatchAction processes a directory of message files through the unquote
// pipeline, writing one yaml result per message and recording detection
// stats.
func BatchAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	applyFlags(c, config)

	if config.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: No input directory provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  mail-unquote batch --input-dir ./messages --output-dir ./results`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: mail-unquote batch --help")
		os.Exit(1)
	}
	if config.OutputDir == "" {
		config.OutputDir = "results"
	}
	if config.StatsDB == "" {
		config.StatsDB = c.String("stats-db")
	}

	store := &storage.Storage{}
	paths, err := store.ListMessages(config.InputDir)
	if err != nil {
		logger.Error("failed to list messages", "error", err, "input_dir", config.InputDir)
		os.Exit(2)
	}
	if len(paths) == 0 {
		fmt.Printf("No message files (.eml, .html, .txt) found under %s\n", config.InputDir)
		return nil
	}

	var cache *caching.Cache
	if config.CacheDir != "" {
		ttl := 24 * time.Hour
		if config.CacheTTL != "" {
			ttl, err = time.ParseDuration(config.CacheTTL)
			if err != nil {
				logger.Error("invalid cache-ttl duration", "error", err)
				os.Exit(2)
			}
		}
		cache, err = caching.NewCache(config.CacheDir, ttl)
		if err != nil {
			logger.Error("failed to initialize cache", "error", err)
			os.Exit(2)
		}
	}

	var database *db.DB
	if config.StatsDB != "" {
		database, err = db.Open(config.StatsDB)
		if err != nil {
			logger.Error("failed to open stats database", "error", err)
			os.Exit(2)
		}
		defer database.Close()
	}

	p := &pipeline{
		store:      store,
		cache:      cache,
		database:   database,
		detector:   NewDetector(),
		policy:     mailbody.Policy(),
		opts:       models.Options{Mode: models.ModeWrap, IgnoreFirstForward: config.IgnoreFirstForward},
		outputDir:  config.OutputDir,
		deriveText: config.DeriveText,
	}

	workerCount := 4
	if config.WorkerCount > 0 {
		workerCount = config.WorkerCount
	}
	allResults := run(logger, paths, p, workerCount)

	var failed, cached, htmlHits, textHits int
	for _, r := range allResults {
		if r.Error != nil {
			failed++
			logger.Warn("message failed", "path", r.Path, "error_type", r.ErrorType, "error", r.Error)
			continue
		}
		if r.Cached {
			cached++
		}
		if r.HTMLRule != "" {
			htmlHits++
		}
		if r.TextRule != "" {
			textHits++
		}
	}

	fmt.Printf("Processed %d/%d messages in %.1fs (%d cached)\n",
		len(allResults)-failed, len(allResults), time.Since(startTime).Seconds(), cached)
	fmt.Printf("Quotes detected: %d html, %d text\nResults: %s\n", htmlHits, textHits, config.OutputDir)

	if database != nil {
		printStats(database)
	}

	if failed == len(allResults) {
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// applyFlags overrides config values with any explicitly set CLI flags.
func applyFlags(c *cli.Context, config *models.BatchConfig) {
	if c.IsSet("input-dir") {
		config.InputDir = c.String("input-dir")
	}
	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("ignore-first-forward") {
		config.IgnoreFirstForward = c.Bool("ignore-first-forward")
	}
	if c.IsSet("stats-db") {
		config.StatsDB = c.String("stats-db")
	}
	if c.IsSet("cache-dir") {
		config.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		config.CacheTTL = c.String("cache-ttl")
	}
	if c.IsSet("derive-text") {
		config.DeriveText = c.Bool("derive-text")
	}
}

func printStats(database *db.DB) {
	counts, err := database.RuleCounts()
	if err != nil || len(counts) == 0 {
		return
	}
	fmt.Println("\nRule hits:")
	for _, rc := range counts {
		fmt.Printf("  %-28s %d\n", rc.Rule, rc.Count)
	}
	languages, err := database.LanguageCounts()
	if err == nil && len(languages) > 0 {
		fmt.Println("\nLanguages:")
		for lang, n := range languages {
			fmt.Printf("  %-28s %d\n", lang, n)
		}
	}
}
