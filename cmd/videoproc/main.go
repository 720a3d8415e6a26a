package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tokscout/internal/config"
	"tokscout/internal/domain"
	"tokscout/internal/lib/logger"
	"tokscout/internal/store"
	"tokscout/internal/videoproc"
)

func main() {

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	linksFile := flag.String("links-file", cfg.Video.LinksFile, "file containing video URLs")
	outputDir := flag.String("output-dir", cfg.Video.OutputDir, "output directory for videos")
	singleLink := flag.String("single-link", "", "process a single video URL instead of the links file")
	flag.Parse()

	log := logger.Setup(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	downloader := videoproc.NewDownloader(*outputDir, log)
	if err := downloader.CheckBinary(ctx); err != nil {
		log.Error("dependency check failed", "error", err.Error())
		os.Exit(1)
	}

	analyzer, err := videoproc.NewAnalyzer(ctx, cfg.Gemini.APIKey, cfg.Video.Model, log)
	if err != nil {
		log.Error("failed to initialize analyzer", "error", err.Error())
		os.Exit(1)
	}

	pipeline := videoproc.NewPipeline(downloader, analyzer, log)

	if *singleLink != "" {
		meta, err := pipeline.ProcessLink(ctx, *singleLink)
		if err != nil {
			log.Error("failed to process video", "url", *singleLink, "error", err.Error())
			os.Exit(1)
		}

		if err := store.SaveMetadata("single_video_metadata.json", []domain.VideoMetadata{*meta}); err != nil {
			log.Error("failed to save metadata", "error", err.Error())
			os.Exit(1)
		}

		log.Info("single video processing complete", "video", meta.VideoName)
		return
	}

	links, err := store.LoadLinks(*linksFile)
	if err != nil {
		log.Error("failed to load links", "error", err.Error())
		os.Exit(1)
	}
	if len(links) == 0 {
		log.Error("no links found to process", "file", *linksFile)
		os.Exit(1)
	}

	log.Info("links loaded", "count", len(links))

	metadata := pipeline.ProcessAll(ctx, links)

	if err := store.SaveMetadata(cfg.Video.MetadataFile, metadata); err != nil {
		log.Error("failed to save metadata", "error", err.Error())
		os.Exit(1)
	}

	log.Info("processing complete",
		"processed", len(metadata),
		"total", len(links),
		"metadata", cfg.Video.MetadataFile,
	)
}
