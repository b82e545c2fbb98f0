// Package shutdown runs a blocking component until it returns or the
// process receives SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Signals are the signals that start a graceful shutdown.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// RunWithGracefulShutdown starts runner and blocks until it returns or a
// shutdown signal arrives. On a signal the runner's context is cancelled
// and it is given up to timeout to return.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, Signals...)
	defer signal.Stop(sigChan)

	return runUntil(ctx, logger, timeout, sigChan, runner)
}

// runUntil is RunWithGracefulShutdown with the signal source injected.
func runUntil(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	sigChan <-chan os.Signal,
	runner func(ctx context.Context) error,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-timer.C:
			logger.Warn("shutdown timeout exceeded", "timeout", timeout)
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
}
