package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tokscout/internal/config"
	"tokscout/internal/discover"
	"tokscout/internal/lib/logger"
	"tokscout/internal/store"
)

func main() {

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keywords := flag.String("keywords", "", "search keywords (comma-separated)")
	target := flag.Int("target", cfg.Finder.TargetCount, "target number of channels to find")
	country := flag.String("country", cfg.Finder.Country, "country for search targeting")
	flag.Parse()

	log := logger.Setup(cfg.Env)

	if *keywords == "" {
		log.Error("no keywords provided, use -keywords to specify search terms")
		os.Exit(1)
	}

	ctx := context.Background()

	finder, err := discover.NewFinder(ctx, cfg.Gemini.APIKey, cfg.Finder.Model, log)
	if err != nil {
		log.Error("failed to initialize finder", "error", err.Error())
		os.Exit(1)
	}

	usernames, err := finder.FindChannels(ctx, discover.Search{
		Keywords:    *keywords,
		TargetCount: *target,
		Country:     *country,
	})
	if err != nil {
		log.Error("channel search failed", "error", err.Error())
		os.Exit(1)
	}

	channels := store.NewChannelStore(cfg.Finder.ChannelFile)
	existing, err := channels.Load()
	if err != nil {
		log.Error("failed to load channel file", "error", err.Error())
		os.Exit(1)
	}

	now := time.Now()
	runID := discover.NewRunID(now)
	all, added, updated := discover.UpsertChannels(existing, usernames, *keywords, *country, runID, now)

	if err := channels.Save(all); err != nil {
		log.Error("failed to save channel file", "error", err.Error())
		os.Exit(1)
	}

	log.Info("discovery complete",
		"found", len(usernames),
		"added", added,
		"updated", updated,
		"total", len(all),
		"run", runID,
		"file", cfg.Finder.ChannelFile,
	)
}
