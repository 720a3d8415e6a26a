package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tokscout/internal/browser"
	"tokscout/internal/config"
	"tokscout/internal/events"
	"tokscout/internal/lib/logger"
	"tokscout/internal/probe"
	"tokscout/internal/store"
	"tokscout/internal/validate"
)

func main() {

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	input := flag.String("input", cfg.Validator.InputFile, "input channel CSV")
	output := flag.String("output", cfg.Validator.OutputFile, "output result CSV")
	attempts := flag.Int("attempts", cfg.Validator.MaxAttempts, "max validation attempts per channel")
	timeout := flag.Int("timeout", cfg.Validator.MainTimeout, "per-attempt timeout in seconds")
	flag.Parse()

	log := logger.Setup(cfg.Env)

	log.Info("starting channel validator",
		"input", *input,
		"output", *output,
		"attempts", *attempts,
		"timeout", *timeout,
	)

	targets, err := store.NewChannelStore(*input).Load()
	if err != nil {
		log.Error("failed to load channels", "error", err.Error())
		os.Exit(1)
	}
	log.Info("channels loaded", "count", len(targets))

	mainTimeout := time.Duration(*timeout) * time.Second

	bcfg := browser.Config{
		Headless:          cfg.Validator.Headless,
		NavigationTimeout: mainTimeout,
	}
	opener := func(ctx context.Context) (probe.Session, error) {
		return browser.Open(ctx, bcfg)
	}

	prober := probe.NewProber(opener, cfg.GetShortTimeout(), mainTimeout)
	classifier := probe.NewClassifier(prober)
	controller := validate.NewController(classifier, *attempts, cfg.GetRetryDelay(), log)

	var publisher validate.Publisher
	if cfg.Kafka.Enabled() {
		log.Info("resolution publishing enabled",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.Topic,
		)
		kp := events.NewKafkaPublisher(events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
		defer kp.Close()
		publisher = kp
	}

	results := store.NewResolutionStore(*output)
	orchestrator := validate.NewOrchestrator(controller, results, publisher, cfg.GetTargetDelay(), log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	summary, err := orchestrator.Run(ctx, targets)
	if err != nil {
		log.Error("validation failed", "error", err.Error())
		os.Exit(1)
	}

	log.Info("validation complete",
		"total", summary.Total,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"valid", summary.Valid,
		"invalid", summary.Invalid,
		"undefined", summary.Undefined,
		"elapsed", summary.Elapsed,
		"output", *output,
	)
}
