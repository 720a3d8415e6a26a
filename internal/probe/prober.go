// Package probe inspects a rendered profile page for the two competing
// signals that decide whether a channel exists.
package probe

import (
	"context"
	"errors"
	"strings"
	"time"

	"tokscout/internal/browser"
)

const (
	// absenceSelector renders when the account does not exist. It is checked
	// first with the short budget because it appears fast on dead profiles.
	absenceSelector = "div[class*='DivErrorContainer']"
	// presenceSelector carries the canonical account title on live profiles.
	presenceSelector = `[data-e2e="user-title"]`

	absencePhrase = "couldn't find this account"
)

// Session is the slice of browser.Session the prober needs.
type Session interface {
	Navigate(url string) error
	WaitText(selector string, timeout time.Duration) (string, error)
	Close()
}

// OpenFunc acquires a fresh browser session for one attempt.
type OpenFunc func(ctx context.Context) (Session, error)

type findingKind int

const (
	findingAbsent findingKind = iota
	findingPresent
	findingNone
	findingFault
)

type finding struct {
	kind findingKind
	text string
	err  error
}

type Prober struct {
	open         OpenFunc
	shortTimeout time.Duration
	mainTimeout  time.Duration
}

func NewProber(open OpenFunc, shortTimeout, mainTimeout time.Duration) *Prober {
	if shortTimeout <= 0 {
		shortTimeout = 5 * time.Second
	}
	if mainTimeout <= 0 {
		mainTimeout = 30 * time.Second
	}

	return &Prober{
		open:         open,
		shortTimeout: shortTimeout,
		mainTimeout:  mainTimeout,
	}
}

// probe opens one browser session, applies the two rules in order and
// returns exactly one finding. The session is released on every exit path.
func (p *Prober) probe(ctx context.Context, profileURL string) finding {
	sess, err := p.open(ctx)
	if err != nil {
		return finding{kind: findingFault, err: err}
	}
	defer sess.Close()

	if err := sess.Navigate(profileURL); err != nil {
		return finding{kind: findingFault, err: err}
	}

	// Rule 1: error container
	text, err := sess.WaitText(absenceSelector, p.shortTimeout)
	switch {
	case err == nil:
		if matchesAbsencePhrase(text) {
			return finding{kind: findingAbsent, text: text}
		}
		// Marker rendered but without the phrase: fall through to rule 2.
	case !errors.Is(err, browser.ErrWaitTimeout):
		return finding{kind: findingFault, err: err}
	}

	// Rule 2: account title
	title, err := sess.WaitText(presenceSelector, p.mainTimeout)
	switch {
	case err == nil:
		return finding{kind: findingPresent, text: title}
	case errors.Is(err, browser.ErrWaitTimeout):
		return finding{kind: findingNone}
	default:
		return finding{kind: findingFault, err: err}
	}
}

func matchesAbsencePhrase(text string) bool {
	return strings.Contains(strings.ToLower(text), absencePhrase)
}
