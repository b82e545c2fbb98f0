package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/npratt/clawdash/internal/render"
)

const (
	minWidth  = 60
	minHeight = 20

	// minBriefingWrap is the narrowest width glamour is asked to wrap to.
	minBriefingWrap = 20

	// columnGap separates the activity and files columns.
	columnGap = 2

	timeOnly = "15:04:05"
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Handle too small terminal
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	w := m.contentWidth()

	var sections []string
	sections = append(sections, m.renderHeader(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderStatus(w))
	sections = append(sections, m.renderStats(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderLists(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderBriefing())
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderFooter(w))

	content := strings.Join(sections, "\n")

	// Render content in container without setting Height
	// Height() can cause clipping issues; let content determine size
	rendered := styles.Container.
		Width(safeWidth(m.width - 2)).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, rendered)
}

// contentWidth is the usable width inside the container border and padding.
func (m model) contentWidth() int {
	return safeWidth(m.width - 4)
}

// renderTooSmall renders a minimal message for terminals that are too small.
func (m model) renderTooSmall() string {
	return fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
}

// renderHeader renders the title with the loading spinner on the left and
// the refresh interval on the right.
func (m model) renderHeader(w int) string {
	title := styles.Title.Render("clawdash")
	if m.loading() {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", m.spinner.View())
	}

	right := styles.Footer.Render(fmt.Sprintf("every %s", m.interval))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(1, w-lipgloss.Width(title)-lipgloss.Width(right))),
		right,
	)
}

// renderDivider renders a horizontal divider line.
func (m model) renderDivider(w int) string {
	return styles.Divider.Render(strings.Repeat("─", w))
}

// renderStatus renders the current thought and last action lines.
func (m model) renderStatus(w int) string {
	thoughtLabel := "thought: "
	actionLabel := "action:  "
	timeLabel := "at: "

	thought := m.textOrPending(render.CurrentThought)
	thoughtLine := styles.Label.Render(thoughtLabel) +
		styles.Thought.Render(truncate(thought, w-len(thoughtLabel)))

	when := m.textOrPending(render.LastUpdated)
	whenText := styles.Label.Render(timeLabel) + styles.Time.Render(when)
	action := truncate(m.textOrPending(render.LastAction),
		w-len(actionLabel)-lipgloss.Width(whenText)-2)
	actionText := styles.Label.Render(actionLabel) + styles.Action.Render(action)

	actionLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		actionText,
		strings.Repeat(" ", max(1, w-lipgloss.Width(actionText)-lipgloss.Width(whenText))),
		whenText,
	)

	return strings.Join([]string{thoughtLine, actionLine}, "\n")
}

// renderStats renders the four counters evenly spaced on one row.
func (m model) renderStats(w int) string {
	counters := []struct {
		id    string
		label string
	}{
		{render.TasksCompleted, "tasks"},
		{render.QueueSize, "queue"},
		{render.ResearchFiles, "research"},
		{render.ToolsBuilt, "tools"},
	}

	cell := max(1, w/len(counters))
	cells := make([]string, 0, len(counters))
	for _, c := range counters {
		text := styles.CounterValue.Render(m.textOrPending(c.id)) + " " +
			styles.CounterLabel.Render(c.label)
		cells = append(cells, lipgloss.NewStyle().Width(cell).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderLists renders recent activity and the files tabs side by side.
func (m model) renderLists(w int) string {
	colWidth := max(1, (w-columnGap)/2)

	activity := []string{styles.Heading.Render("Recent activity")}
	activity = append(activity, m.renderEntries(render.RecentActivity, colWidth)...)

	files := []string{m.renderTabs(colWidth)}
	files = append(files, m.renderEntries(render.FilesList, colWidth)...)

	left := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(activity, "\n"))
	right := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(files, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", columnGap), right)
}

// renderEntries renders every entry of a list target as a bullet line.
func (m model) renderEntries(id string, w int) []string {
	items := m.board.List(id)
	if len(items) == 0 {
		return []string{styles.Placeholder.Render("…")}
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		text := truncate(item, w-2)
		if isPlaceholder(item) {
			lines = append(lines, styles.Placeholder.Render(text))
			continue
		}
		lines = append(lines, styles.Entry.Render("• "+text))
	}
	return lines
}

// renderTabs renders the files category tab bar, highlighting the active tab.
func (m model) renderTabs(w int) string {
	var tabs []string
	for i, category := range m.tabs.Categories() {
		label := category
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, category)
		}
		if m.tabs.IsActive(i) {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(bar) > w {
		return styles.TabActive.Render(truncate(m.tabs.Active(), w-2))
	}
	return bar
}

// renderBriefing renders the briefing panel.
func (m model) renderBriefing() string {
	heading := styles.Heading.Render("Briefing")
	if m.briefingView == "" {
		return heading + "\n" + styles.Placeholder.Render("…")
	}
	if m.briefingText == render.NoBriefing {
		return heading + "\n" + styles.Placeholder.Render(m.briefingView)
	}
	return heading + "\n" + m.briefingView
}

// renderFooter renders poll status on the left and keyboard shortcuts on the right.
func (m model) renderFooter(w int) string {
	var status string
	switch {
	case m.lastSuccess.IsZero() && m.lastFailure.IsZero():
		status = styles.Footer.Render("waiting for first poll")
	case m.lastFailure.After(m.lastSuccess):
		status = styles.Stale.Render(fmt.Sprintf("poll failed %s (%d failures)",
			m.lastFailure.Format(timeOnly), m.failures))
	default:
		status = styles.Footer.Render("polled " + m.lastSuccess.Format(timeOnly))
	}

	help := styles.Footer.Render("tab/1-9: files  r: refresh  q: quit")
	if lipgloss.Width(status)+lipgloss.Width(help)+1 > w {
		return help
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		status,
		strings.Repeat(" ", max(1, w-lipgloss.Width(status)-lipgloss.Width(help))),
		help,
	)
}

// textOrPending returns the board text for id, or an ellipsis before the
// target has been written.
func (m model) textOrPending(id string) string {
	if !m.board.HasText(id) {
		return "…"
	}
	return m.board.Text(id)
}

// isPlaceholder reports whether a list entry is one of the renderer's
// empty-list placeholders.
func isPlaceholder(item string) bool {
	if item == render.NoActivity {
		return true
	}
	return strings.HasPrefix(item, "No ") && strings.HasSuffix(item, " files yet")
}

// truncate shortens s to fit within w terminal cells.
func truncate(s string, w int) string {
	if w < 1 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
