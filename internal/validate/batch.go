package validate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tokscout/internal/domain"
)

// Store is the persistence adapter for resolutions. Load is called once
// before the batch, Save once after; the write is a full rewrite.
type Store interface {
	LoadResolutions() (map[string]domain.Resolution, error)
	SaveResolutions(resolutions []domain.Resolution) error
}

// Resolver is satisfied by *Controller.
type Resolver interface {
	Resolve(ctx context.Context, target domain.Target) domain.Resolution
}

// Publisher forwards freshly computed resolutions to an event sink.
type Publisher interface {
	PublishResolution(ctx context.Context, res domain.Resolution) error
}

// Orchestrator validates a batch of targets sequentially, reusing stored
// results from earlier runs and throttling between live checks.
type Orchestrator struct {
	resolver    Resolver
	store       Store
	publisher   Publisher // optional
	targetDelay time.Duration
	log         *slog.Logger
}

func NewOrchestrator(resolver Resolver, store Store, publisher Publisher, targetDelay time.Duration, log *slog.Logger) *Orchestrator {
	if targetDelay <= 0 {
		targetDelay = 2 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &Orchestrator{
		resolver:    resolver,
		store:       store,
		publisher:   publisher,
		targetDelay: targetDelay,
		log:         log,
	}
}

type Summary struct {
	Total     int
	Skipped   int
	Processed int
	Valid     int
	Invalid   int
	Undefined int
	Elapsed   time.Duration
}

// Run resolves every target not already present in the store, merges the
// fresh results with the stored ones and persists a status-ordered report.
// Only store failures and an empty batch abort the run.
func (o *Orchestrator) Run(ctx context.Context, targets []domain.Target) (Summary, error) {
	if len(targets) == 0 {
		return Summary{}, fmt.Errorf("no targets to validate")
	}

	prior, err := o.store.LoadResolutions()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load prior results: %w", err)
	}

	if len(prior) > 0 {
		o.log.Info("found previously processed channels", "count", len(prior))
	}

	start := time.Now()
	fresh := make(map[string]domain.Resolution)
	summary := Summary{Total: len(targets)}

	for _, target := range targets {
		key := storeKey(target.Username)

		if stored, ok := prior[key]; ok && stored.Status != "" {
			o.log.Info("skipping already processed channel",
				"username", target.Username,
				"status", string(stored.Status),
			)
			summary.Skipped++
			continue
		}

		// Throttle between consecutive live checks.
		if summary.Processed > 0 {
			o.pause(ctx)
		}

		res := o.resolver.Resolve(ctx, target)
		fresh[key] = res
		summary.Processed++

		o.publish(ctx, res)
	}

	report := buildReport(targets, Merge(prior, fresh))
	SortByStatus(report)

	for _, r := range report {
		switch r.Status {
		case domain.StatusValid:
			summary.Valid++
		case domain.StatusInvalid:
			summary.Invalid++
		default:
			summary.Undefined++
		}
	}

	if err := o.store.SaveResolutions(report); err != nil {
		return Summary{}, fmt.Errorf("failed to save results: %w", err)
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

// Merge overlays fresh resolutions onto prior ones. Fresh entries win on
// conflict. Pure; neither input map is mutated.
func Merge(prior, fresh map[string]domain.Resolution) map[string]domain.Resolution {
	merged := make(map[string]domain.Resolution, len(prior)+len(fresh))
	for k, v := range prior {
		merged[k] = v
	}
	for k, v := range fresh {
		merged[k] = v
	}
	return merged
}

// buildReport orders merged resolutions: batch targets first, in input
// order, then records surviving from earlier runs sorted by username.
func buildReport(targets []domain.Target, merged map[string]domain.Resolution) []domain.Resolution {
	report := make([]domain.Resolution, 0, len(merged))
	seen := make(map[string]bool, len(targets))

	for _, t := range targets {
		key := storeKey(t.Username)
		if seen[key] {
			continue
		}
		if res, ok := merged[key]; ok {
			report = append(report, res)
			seen[key] = true
		}
	}

	leftovers := make([]domain.Resolution, 0)
	for key, res := range merged {
		if !seen[key] {
			leftovers = append(leftovers, res)
		}
	}
	sort.Slice(leftovers, func(i, j int) bool {
		return leftovers[i].Username < leftovers[j].Username
	})

	return append(report, leftovers...)
}

// SortByStatus orders the report valid, undefined, invalid, keeping the
// relative order within each status group.
func SortByStatus(report []domain.Resolution) {
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Status.SortRank() < report[j].Status.SortRank()
	})
}

func storeKey(username string) string {
	return strings.ToLower(username)
}

func (o *Orchestrator) publish(ctx context.Context, res domain.Resolution) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishResolution(ctx, res); err != nil {
		o.log.Error("failed to publish resolution",
			"username", res.Username,
			"error", err.Error(),
		)
	}
}

func (o *Orchestrator) pause(ctx context.Context) {
	t := time.NewTimer(o.targetDelay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
