package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/clawdash/internal/config"
	"github.com/npratt/clawdash/internal/poller"
	"github.com/npratt/clawdash/internal/render"
	"github.com/npratt/clawdash/internal/shutdown"
	"github.com/npratt/clawdash/internal/snapshot"
	"github.com/npratt/clawdash/internal/tui"
)

var version = "dev"

// shutdownTimeout bounds how long plain mode waits for an in-flight poll
// after SIGINT/SIGTERM.
const shutdownTimeout = 5 * time.Second

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	rootCmd := newRootCmd(logLevel)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand behaves like watch.
func newRootCmd(logLevel *slog.LevelVar) *cobra.Command {
	config.SetupEnv(viper.GetViper())

	watchRun := func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args, logLevel)
	}

	rootCmd := &cobra.Command{
		Use:   "clawdash [source]",
		Short: "Terminal dashboard for an autonomous agent's data.json",
		Long: `clawdash polls an agent's data.json snapshot and shows its current thought,
last action, counters, recent activity, files and daily briefing.

The source may be an http(s) URL, a file:// URL or a local path. Remote
sources are fetched with a cache-busting query parameter; local files are
also watched for changes.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         watchRun,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .clawdash/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Debug log path used in TUI mode")
	rootCmd.PersistentFlags().String(FlagURL, "", "data.json location: http(s) URL, file:// URL or path")
	rootCmd.PersistentFlags().Duration(FlagTimeout, 0, "Per-request timeout (0 = none)")
	rootCmd.PersistentFlags().Duration(FlagInterval, 0, "Refresh interval (default 1m)")
	rootCmd.PersistentFlags().Bool(FlagWatch, true, "Refresh when a local source file changes")
	rootCmd.PersistentFlags().String(FlagCategory, "", "Files category rendered by each refresh (default research)")
	rootCmd.PersistentFlags().StringSlice(FlagTabs, nil, "Files categories offered as tabs")
	rootCmd.PersistentFlags().String(FlagTimeLayout, "", "Go time layout for the last-updated time")
	rootCmd.PersistentFlags().Bool(FlagMarkdown, true, "Render the briefing as markdown in the TUI")
	rootCmd.PersistentFlags().Bool(FlagTUI, false, "Enable the terminal UI (default: auto-detect TTY)")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "clawdash %s\n", version)
		},
	}

	// Watch command
	watchCmd := &cobra.Command{
		Use:   "watch [source]",
		Short: "Show the dashboard and refresh it periodically",
		Long: `Show the dashboard and refresh it every interval until interrupted.

With a TTY the dashboard runs as a full-screen terminal UI; tab, the arrow
keys and 1-9 switch the files category, r refreshes and q quits. Without a
TTY the dashboard is printed after every successful refresh.`,
		Args: cobra.MaximumNArgs(1),
		RunE: watchRun,
	}

	// Once command
	onceCmd := &cobra.Command{
		Use:   "once [source]",
		Short: "Fetch data.json once and print the dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, args, logLevel)
		},
	}
	onceCmd.Flags().Bool(FlagJSON, false, "Print the parsed snapshot as JSON")
	onceCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Register all commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(onceCmd)

	return rootCmd
}

// loadConfig loads config files and applies CLI flag overrides (only if
// set on the command line or through the flag's CLAWDASH_* variable).
// A positional source argument wins over --url.
func loadConfig(cmd *cobra.Command, args []string, logLevel *slog.LevelVar) (*config.Config, error) {
	if viper.GetBool(FlagVerbose) {
		logLevel.Set(slog.LevelDebug)
		slog.Debug("verbose logging enabled")
	}

	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if overridden(flags, FlagURL) {
		cfg.Source.URL = viper.GetString(FlagURL)
	}
	if len(args) == 1 {
		cfg.Source.URL = args[0]
	}
	if overridden(flags, FlagTimeout) {
		cfg.Source.Timeout = viper.GetDuration(FlagTimeout)
	}
	if overridden(flags, FlagWatch) {
		cfg.Source.Watch = viper.GetBool(FlagWatch)
	}
	if overridden(flags, FlagInterval) {
		cfg.Refresh.Interval = viper.GetDuration(FlagInterval)
	}
	if overridden(flags, FlagCategory) {
		cfg.Files.DefaultCategory = viper.GetString(FlagCategory)
	}
	if overridden(flags, FlagTabs) {
		cfg.Files.Tabs = splitList(viper.GetStringSlice(FlagTabs))
	}
	if overridden(flags, FlagTimeLayout) {
		cfg.Display.TimeLayout = viper.GetString(FlagTimeLayout)
	}
	if overridden(flags, FlagMarkdown) {
		cfg.Display.Markdown = viper.GetBool(FlagMarkdown)
	}
	if overridden(flags, FlagLogFile) {
		cfg.Paths.Log = viper.GetString(FlagLogFile)
	}

	// Flags bypass the file-level validation in LoadConfig.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// overridden reports whether a flag was given on the command line or via
// its environment variable, e.g. CLAWDASH_URL for --url.
func overridden(flags *pflag.FlagSet, name string) bool {
	return flags.Changed(name) || viper.IsSet(name)
}

// splitList splits comma-separated entries, which is how a list arrives
// from an environment variable.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// newRenderer builds the renderer for cfg.
func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(render.WithTimeLayout(cfg.Display.TimeLayout))
}

// runWatch runs the periodic dashboard in TUI or plain mode.
func runWatch(cmd *cobra.Command, args []string, logLevel *slog.LevelVar) error {
	cfg, err := loadConfig(cmd, args, logLevel)
	if err != nil {
		return err
	}

	// Determine TUI mode: explicit flag > auto-detect from TTY
	tuiEnabled := viper.GetBool(FlagTUI)
	if !overridden(cmd.Flags(), FlagTUI) {
		tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
	}

	fetcher, err := snapshot.NewFetcher(cfg.Source.URL, cfg.Source.Timeout)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}

	var watchPath string
	if cfg.Source.Watch {
		if path, ok := snapshot.LocalPath(fetcher); ok {
			watchPath = path
		}
	}

	slog.Info("clawdash starting",
		"version", version,
		"source", cfg.Source.URL,
		"interval", cfg.Refresh.Interval,
		"category", cfg.Files.DefaultCategory,
		"watch", watchPath,
		"tui", tuiEnabled,
	)

	renderer := newRenderer(cfg)
	ctx := cmd.Context()

	// TUI mode: redirect logger to file before anything logs to the terminal
	if tuiEnabled {
		tuiLogResult, err := SetupTUILogger(cfg.Paths.Log, logLevel, cfg.LogRotation)
		if err != nil {
			return err
		}
		defer func() { _ = tuiLogResult.Close() }()
		slog.SetDefault(tuiLogResult.Logger)

		tuiApp := tui.New(fetcher,
			tui.WithInterval(cfg.Refresh.Interval),
			tui.WithRenderer(renderer),
			tui.WithDefaultCategory(cfg.Files.DefaultCategory),
			tui.WithTabs(cfg.Files.Tabs),
			tui.WithWatch(watchPath),
			tui.WithMarkdown(cfg.Display.Markdown),
			tui.WithOnQuit(func() { slog.Info("quit requested") }),
		)
		return tuiApp.Run(ctx)
	}

	opts := []poller.Option{
		poller.WithRenderer(renderer),
		poller.WithCategory(cfg.Files.DefaultCategory),
		poller.WithPrinter(poller.NewPrinter(cmd.OutOrStdout(), !term.IsTerminal(int(os.Stdout.Fd())))),
	}
	if watchPath != "" {
		opts = append(opts, poller.WithWatch(watchPath))
	}
	p := poller.New(fetcher, cfg.Refresh.Interval, opts...)

	// Run with graceful shutdown handling
	return shutdown.RunWithGracefulShutdown(ctx, slog.Default(), shutdownTimeout, p.Run)
}

// runOnce fetches a single snapshot and prints it. Unlike the periodic
// modes a failed fetch is returned as an error.
func runOnce(cmd *cobra.Command, args []string, logLevel *slog.LevelVar) error {
	cfg, err := loadConfig(cmd, args, logLevel)
	if err != nil {
		return err
	}

	fetcher, err := snapshot.NewFetcher(cfg.Source.URL, cfg.Source.Timeout)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}

	snap, err := fetcher.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if viper.GetBool(FlagJSON) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	board := render.NewBoard()
	newRenderer(cfg).All(board, snap, cfg.Files.DefaultCategory)
	return poller.NewPrinter(out, !term.IsTerminal(int(os.Stdout.Fd()))).Print(board, cfg.Files.DefaultCategory)
}
