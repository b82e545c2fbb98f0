package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/npratt/clawdash/internal/poller"
)

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// terminalTooSmall returns true if the terminal is below the minimum size.
func terminalTooSmall() bool {
	width, height := terminalSize()
	return width < minWidth || height < minHeight
}

// runSimple provides plain output for non-interactive environments.
// It prints the dashboard to stdout after every successful refresh.
// Exits on interrupt signal or when ctx is cancelled.
func (t *TUI) runSimple(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []poller.Option{
		poller.WithRenderer(t.renderer),
		poller.WithCategory(t.defaultCategory),
		poller.WithPrinter(poller.NewPrinter(os.Stdout, !term.IsTerminal(int(os.Stdout.Fd())))),
	}
	if t.watchPath != "" {
		opts = append(opts, poller.WithWatch(t.watchPath))
	}

	return poller.New(t.fetcher, t.interval, opts...).Run(ctx)
}
