package probe

import (
	"context"
	"fmt"
	"time"

	"tokscout/internal/domain"
)

type prober interface {
	probe(ctx context.Context, profileURL string) finding
}

// Classifier runs a single probe and maps its finding 1:1 onto an
// AttemptOutcome, recording the wall-clock duration of the attempt.
// It knows nothing about retries.
type Classifier struct {
	p prober
}

func NewClassifier(p *Prober) *Classifier {
	return &Classifier{p: p}
}

func (c *Classifier) Classify(ctx context.Context, profileURL string) domain.AttemptOutcome {
	start := time.Now()
	f := c.p.probe(ctx, profileURL)
	elapsed := time.Since(start)

	out := domain.AttemptOutcome{Duration: elapsed}

	switch f.kind {
	case findingAbsent:
		out.Kind = domain.OutcomeAbsent
		out.Observed = f.text
	case findingPresent:
		out.Kind = domain.OutcomePresent
		out.Observed = f.text
	case findingNone:
		out.Kind = domain.OutcomeIndefinite
	default:
		out.Kind = domain.OutcomeFaulted
		if f.err != nil {
			out.Error = f.err.Error()
		} else {
			out.Error = fmt.Sprintf("probe failed for %s", profileURL)
		}
	}

	return out
}
