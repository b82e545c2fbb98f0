// Package poller runs the refresh loop for non-interactive output.
//
// A Poller fetches a Snapshot once at startup and then on every interval,
// renders it onto a Board and prints the board after each successful
// refresh. Failed fetches are logged and leave the board untouched.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/npratt/clawdash/internal/render"
	"github.com/npratt/clawdash/internal/snapshot"
)

// Poller drives the fetch-and-render cycle.
type Poller struct {
	fetcher   snapshot.Fetcher
	renderer  *render.Renderer
	board     *render.Board
	printer   *Printer
	interval  time.Duration
	category  string
	watchPath string

	mu        sync.Mutex
	refreshes int
	failures  int
}

// Option configures a Poller.
type Option func(*Poller)

// WithRenderer sets the renderer used for every refresh.
func WithRenderer(r *render.Renderer) Option {
	return func(p *Poller) {
		p.renderer = r
	}
}

// WithPrinter sets where the board is printed after each refresh.
// Without a printer the board is only updated in memory.
func WithPrinter(pr *Printer) Option {
	return func(p *Poller) {
		p.printer = pr
	}
}

// WithCategory sets the files category rendered by a full refresh.
func WithCategory(category string) Option {
	return func(p *Poller) {
		if category != "" {
			p.category = category
		}
	}
}

// WithWatch triggers an extra refresh whenever the file at path changes.
func WithWatch(path string) Option {
	return func(p *Poller) {
		p.watchPath = path
	}
}

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = time.Minute

// New creates a Poller that refreshes every interval.
func New(fetcher snapshot.Fetcher, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		fetcher:  fetcher,
		renderer: render.New(),
		board:    render.NewBoard(),
		interval: interval,
		category: render.DefaultCategory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Board returns the board the poller renders onto.
func (p *Poller) Board() *render.Board {
	return p.board
}

// Refresh runs a single poll: fetch, and on success render every section in
// order and print the board. It reports whether a snapshot was rendered.
func (p *Poller) Refresh(ctx context.Context) bool {
	snap := snapshot.Load(ctx, p.fetcher)
	if snap == nil {
		p.mu.Lock()
		p.failures++
		p.mu.Unlock()
		return false
	}

	p.renderer.All(p.board, snap, p.category)

	p.mu.Lock()
	p.refreshes++
	p.mu.Unlock()

	if p.printer != nil {
		if err := p.printer.Print(p.board, p.category); err != nil {
			slog.Warn("failed to print dashboard", "error", err)
		}
	}
	return true
}

// Stats returns the number of successful and failed refreshes so far.
func (p *Poller) Stats() (refreshes, failures int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshes, p.failures
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
// Refreshes run one at a time, so timer- and watch-triggered polls never
// overlap.
func (p *Poller) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	var trigger chan struct{}
	if p.watchPath != "" {
		trigger = make(chan struct{}, 1)
		g.Go(func() error {
			// Polling carries on without the watcher if it cannot start.
			if err := Watch(gctx, p.watchPath, trigger); err != nil {
				slog.Warn("source watch disabled", "path", p.watchPath, "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return p.loop(gctx, trigger)
	})

	return g.Wait()
}

func (p *Poller) loop(ctx context.Context, trigger <-chan struct{}) error {
	slog.Info("poller started", "interval", p.interval, "category", p.category)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller stopped")
			return nil
		case <-ticker.C:
			p.Refresh(ctx)
		case _, ok := <-trigger:
			if !ok {
				trigger = nil
				continue
			}
			p.Refresh(ctx)
		}
	}
}
