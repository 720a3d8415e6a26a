// Package browser drives a headless Chrome instance through go-rod.
// One Session maps to one launched browser; sessions are never pooled or
// shared between validation attempts.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrWaitTimeout is returned by WaitText when the selector did not appear
// within its budget. Callers treat it as an indefinite signal, not a fault.
var ErrWaitTimeout = errors.New("wait timed out")

type Config struct {
	Headless          bool
	NavigationTimeout time.Duration
}

func (c Config) navigationTimeout() time.Duration {
	if c.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return c.NavigationTimeout
}

// Session owns a launched Chrome and a single page. Close releases both;
// it is safe to call on every exit path.
type Session struct {
	cfg      Config
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Open launches a fresh browser and opens a blank page.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	l := launcher.New().Headless(cfg.Headless)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{
		cfg:      cfg,
		launcher: l,
		browser:  b,
		page:     page,
	}, nil
}

// Navigate loads the URL, bounded by the configured navigation timeout.
func (s *Session) Navigate(url string) error {
	if err := s.page.Timeout(s.cfg.navigationTimeout()).Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitText waits up to timeout for the selector to appear and returns its
// text content. A missed deadline maps to ErrWaitTimeout; any other error
// is a genuine fault (driver crash, detached page, malformed DOM).
func (s *Session) WaitText(selector string, timeout time.Duration) (string, error) {
	el, err := s.page.Timeout(timeout).Element(selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: %w", selector, ErrWaitTimeout)
		}
		return "", fmt.Errorf("failed to locate %s: %w", selector, err)
	}

	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}

	return text, nil
}

// Close tears down the page, the browser and the launcher's temp state.
func (s *Session) Close() {
	_ = s.browser.Close()
	s.launcher.Cleanup()
}
