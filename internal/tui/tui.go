// Package tui provides a terminal dashboard for the agent snapshot using bubbletea.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/npratt/clawdash/internal/poller"
	"github.com/npratt/clawdash/internal/render"
	"github.com/npratt/clawdash/internal/snapshot"
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = poller.DefaultInterval

// TUI is the terminal dashboard.
type TUI struct {
	fetcher         snapshot.Fetcher
	renderer        *render.Renderer
	interval        time.Duration
	defaultCategory string
	tabs            []string
	trigger         <-chan struct{}
	watchPath       string
	markdown        bool
	onQuit          func()
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI that polls fetcher.
func New(fetcher snapshot.Fetcher, opts ...Option) *TUI {
	t := &TUI{
		fetcher:         fetcher,
		renderer:        render.New(),
		interval:        DefaultInterval,
		defaultCategory: render.DefaultCategory,
		markdown:        true,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithInterval sets the refresh period.
func WithInterval(d time.Duration) Option {
	return func(t *TUI) {
		t.interval = d
	}
}

// WithRenderer sets the renderer used for every poll.
func WithRenderer(r *render.Renderer) Option {
	return func(t *TUI) {
		t.renderer = r
	}
}

// WithDefaultCategory sets the files category rendered by full refreshes.
func WithDefaultCategory(category string) Option {
	return func(t *TUI) {
		if category != "" {
			t.defaultCategory = category
		}
	}
}

// WithTabs sets the files categories offered as tabs.
func WithTabs(categories []string) Option {
	return func(t *TUI) {
		t.tabs = categories
	}
}

// WithTrigger sets a channel whose sends request an immediate full refresh.
func WithTrigger(ch <-chan struct{}) Option {
	return func(t *TUI) {
		t.trigger = ch
	}
}

// WithWatch refreshes whenever the file at path changes. It is ignored when
// a trigger channel is also set.
func WithWatch(path string) Option {
	return func(t *TUI) {
		t.watchPath = path
	}
}

// WithMarkdown enables or disables markdown rendering of the briefing.
func WithMarkdown(enabled bool) Option {
	return func(t *TUI) {
		t.markdown = enabled
	}
}

// WithOnQuit sets the callback invoked when the user presses 'q'.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// Run starts the dashboard and blocks until the user quits or ctx is
// cancelled. Without an interactive terminal of sufficient size it falls
// back to printing the dashboard after every refresh.
func (t *TUI) Run(ctx context.Context) error {
	if !isTerminal() || terminalTooSmall() {
		return t.runSimple(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	trigger := t.trigger
	if trigger == nil && t.watchPath != "" {
		ch := make(chan struct{}, 1)
		trigger = ch
		g.Go(func() error {
			// The dashboard keeps its timer refresh if the watcher cannot start.
			if err := poller.Watch(gctx, t.watchPath, ch); err != nil {
				slog.Warn("source watch disabled", "path", t.watchPath, "error", err)
			}
			return nil
		})
	}

	m := newModel(gctx, t.fetcher, t.renderer, t.interval, t.defaultCategory,
		t.tabs, trigger, t.markdown, t.onQuit)

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gctx))
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})

	return g.Wait()
}
