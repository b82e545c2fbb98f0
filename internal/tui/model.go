package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/clawdash/internal/render"
	"github.com/npratt/clawdash/internal/snapshot"
)

// pollKind distinguishes the two poll triggers.
type pollKind int

const (
	// pollFull is a timer- or watch-driven refresh that renders every section.
	pollFull pollKind = iota
	// pollTab is a tab switch that renders only the files list.
	pollTab
)

func (k pollKind) String() string {
	if k == pollTab {
		return "tab"
	}
	return "full"
}

// model is the bubbletea model for the dashboard.
type model struct {
	ctx      context.Context
	fetcher  snapshot.Fetcher
	renderer *render.Renderer
	interval time.Duration
	trigger  <-chan struct{}

	// Rendered state
	board           *render.Board
	tabs            render.Tabs
	defaultCategory string

	// Poll bookkeeping. Every poll takes the next sequence number; results
	// older than the last applied one for the same targets are dropped.
	lastIssued   uint64
	fullApplied  uint64
	filesApplied uint64
	inFlight     int
	lastSuccess  time.Time
	lastFailure  time.Time
	failures     int

	// Briefing panel
	markdown      bool
	briefingView  string
	briefingText  string
	briefingWidth int

	// UI state
	width   int
	height  int
	spinner spinner.Model

	// Callbacks
	onQuit func()
}

// newModel creates a model with the first full poll already issued.
// Init returns the command that performs it.
func newModel(
	ctx context.Context,
	fetcher snapshot.Fetcher,
	renderer *render.Renderer,
	interval time.Duration,
	defaultCategory string,
	tabs []string,
	trigger <-chan struct{},
	markdown bool,
	onQuit func(),
) model {
	if ctx == nil {
		ctx = context.Background()
	}
	if renderer == nil {
		renderer = render.New()
	}
	if defaultCategory == "" {
		defaultCategory = render.DefaultCategory
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return model{
		ctx:             ctx,
		fetcher:         fetcher,
		renderer:        renderer,
		interval:        interval,
		trigger:         trigger,
		board:           render.NewBoard(),
		tabs:            render.NewTabs(tabs, defaultCategory),
		defaultCategory: defaultCategory,
		lastIssued:      1,
		inFlight:        1,
		markdown:        markdown,
		spinner:         sp,
		onQuit:          onQuit,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		fetchSnapshot(m.ctx, m.fetcher, 1, pollFull, m.defaultCategory),
		doRefreshTick(m.interval),
		waitForTrigger(m.trigger),
		m.spinner.Tick,
	)
}

// Update, handleKey and handleSnapshot are implemented in update.go
// View is implemented in view.go

// issuePoll starts a fetch tagged with the next sequence number.
func (m *model) issuePoll(kind pollKind, category string) tea.Cmd {
	m.lastIssued++
	m.inFlight++
	return fetchSnapshot(m.ctx, m.fetcher, m.lastIssued, kind, category)
}

// selectTab activates the tab at i and starts an independent files-only
// poll for its category. Out-of-range indexes do nothing.
func (m *model) selectTab(i int) tea.Cmd {
	category, ok := m.tabs.Activate(i)
	if !ok {
		return nil
	}
	return m.issuePoll(pollTab, category)
}

// loading reports whether any poll is outstanding.
func (m model) loading() bool {
	return m.inFlight > 0
}
