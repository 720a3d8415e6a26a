// Package validate holds the channel validation core: the per-target retry
// controller and the batch orchestrator with its merge and skip logic.
package validate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tokscout/internal/domain"
)

// Classifier yields one classified probe attempt per call.
type Classifier interface {
	Classify(ctx context.Context, profileURL string) domain.AttemptOutcome
}

// Controller drives attempts for a single target. A definitive outcome ends
// the sequence immediately; indefinite and faulted attempts are retried
// alike until the attempt budget runs out. Resolve never returns an error —
// every invocation yields a Resolution.
type Controller struct {
	classifier  Classifier
	maxAttempts int
	retryDelay  time.Duration
	log         *slog.Logger
}

func NewController(classifier Classifier, maxAttempts int, retryDelay time.Duration, log *slog.Logger) *Controller {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if retryDelay <= 0 {
		retryDelay = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		classifier:  classifier,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		log:         log,
	}
}

func (c *Controller) Resolve(ctx context.Context, target domain.Target) domain.Resolution {
	c.log.Info("checking channel", "username", target.Username)

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		out := c.classifier.Classify(ctx, target.ProfileURL)

		if out.Definitive() {
			res := resolutionFor(target, out)
			c.log.Info("channel resolved",
				"username", target.Username,
				"status", string(res.Status),
				"attempt", attempt,
				"took", out.Duration,
			)
			return res
		}

		c.log.Debug("attempt not definitive",
			"username", target.Username,
			"attempt", attempt,
			"kind", string(out.Kind),
			"error", out.Error,
		)

		if attempt < c.maxAttempts {
			c.pause(ctx)
		}
	}

	c.log.Info("channel undefined",
		"username", target.Username,
		"attempts", c.maxAttempts,
	)

	return domain.Resolution{
		Username:   target.Username,
		ProfileURL: target.ProfileURL,
		Status:     domain.StatusUndefined,
		Message:    fmt.Sprintf("No definitive result after %d attempts", c.maxAttempts),
		CheckedAt:  time.Now(),
	}
}

func resolutionFor(target domain.Target, out domain.AttemptOutcome) domain.Resolution {
	res := domain.Resolution{
		Username:   target.Username,
		ProfileURL: target.ProfileURL,
		TimeTaken:  out.Duration,
		CheckedAt:  time.Now(),
	}

	switch out.Kind {
	case domain.OutcomePresent:
		res.Status = domain.StatusValid
		res.Message = fmt.Sprintf("Username title found: '%s'", out.Observed)
	case domain.OutcomeAbsent:
		res.Status = domain.StatusInvalid
		res.Message = fmt.Sprintf("Account not found: '%s'", out.Observed)
	}

	return res
}

func (c *Controller) pause(ctx context.Context) {
	t := time.NewTimer(c.retryDelay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
