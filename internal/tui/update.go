package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/npratt/clawdash/internal/render"
	"github.com/npratt/clawdash/internal/snapshot"
)

// refreshTickMsg signals that the refresh interval elapsed.
type refreshTickMsg time.Time

// snapshotMsg carries the result of a poll. snap is nil when the fetch failed.
type snapshotMsg struct {
	seq      uint64
	kind     pollKind
	category string
	snap     *snapshot.Snapshot
}

// triggerMsg signals that the watched source changed.
type triggerMsg struct{}

// triggerClosedMsg signals that the trigger channel was closed.
type triggerClosedMsg struct{}

// fetchSnapshot creates a command that loads a snapshot and reports it back.
func fetchSnapshot(ctx context.Context, f snapshot.Fetcher, seq uint64, kind pollKind, category string) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{
			seq:      seq,
			kind:     kind,
			category: category,
			snap:     snapshot.Load(ctx, f),
		}
	}
}

// doRefreshTick creates a command that fires after the refresh interval.
func doRefreshTick(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// waitForTrigger creates a command that waits for the next source change.
// Returns triggerClosedMsg if the channel is closed.
func waitForTrigger(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return triggerClosedMsg{}
		}
		return triggerMsg{}
	}
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateBriefing()
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(
			m.issuePoll(pollFull, m.defaultCategory),
			doRefreshTick(m.interval),
		)

	case triggerMsg:
		return m, tea.Batch(
			m.issuePoll(pollFull, m.defaultCategory),
			waitForTrigger(m.trigger),
		)

	case triggerClosedMsg:
		slog.Debug("source trigger closed")
		m.trigger = nil
		return m, nil

	case snapshotMsg:
		m.handleSnapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case "r":
		return m, m.issuePoll(pollFull, m.defaultCategory)

	case "tab", "right", "l":
		return m, m.issuePoll(pollTab, m.tabs.Next())

	case "shift+tab", "left", "h":
		return m, m.issuePoll(pollTab, m.tabs.Prev())

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.selectTab(int(key[0] - '1'))

	default:
		return m, nil
	}
}

// handleSnapshot applies a poll result to the board.
//
// A full poll renders status, stats, activity, the default files category
// and the briefing, in that order. A tab poll renders only the files list.
// The files list is shared by both kinds, so a result is applied to it only
// if no later-issued poll has already written it.
func (m *model) handleSnapshot(msg snapshotMsg) {
	m.inFlight = max(0, m.inFlight-1)

	if msg.snap == nil {
		m.failures++
		m.lastFailure = time.Now()
		return
	}
	m.lastSuccess = time.Now()

	switch msg.kind {
	case pollFull:
		if msg.seq < m.fullApplied {
			slog.Debug("dropping stale refresh", "seq", msg.seq, "applied", m.fullApplied)
			return
		}
		m.fullApplied = msg.seq

		m.renderer.Status(m.board, msg.snap)
		m.renderer.Stats(m.board, msg.snap)
		m.renderer.Activity(m.board, msg.snap)
		if msg.seq >= m.filesApplied {
			m.renderer.Files(m.board, msg.snap, msg.category)
			m.filesApplied = msg.seq
		}
		m.renderer.Briefing(m.board, msg.snap)
		m.updateBriefing()

	case pollTab:
		if msg.seq < m.filesApplied {
			slog.Debug("dropping stale tab result", "seq", msg.seq, "applied", m.filesApplied, "category", msg.category)
			return
		}
		m.filesApplied = msg.seq
		m.renderer.Files(m.board, msg.snap, msg.category)
	}
}

// updateBriefing re-renders the briefing panel when its text or the
// terminal width changed.
func (m *model) updateBriefing() {
	text := m.board.Text(render.BriefingContent)
	width := m.contentWidth()

	if text == m.briefingText && width == m.briefingWidth && m.briefingView != "" {
		return
	}
	m.briefingText = text
	m.briefingWidth = width
	m.briefingView = text

	if !m.markdown || text == "" || text == render.NoBriefing || width < minBriefingWrap {
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Warn("briefing renderer unavailable", "error", err)
		return
	}
	out, err := r.Render(text)
	if err != nil {
		slog.Warn("failed to render briefing markdown", "error", err)
		return
	}
	m.briefingView = strings.Trim(out, "\n")
}
