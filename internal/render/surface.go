// Package render writes Snapshot contents onto a display surface.
//
// A Surface is a flat set of named targets: text targets hold a single
// string and list targets hold an ordered list of entries. Renderers only
// ever overwrite targets, so applying the same Snapshot twice leaves the
// surface unchanged.
package render

// Target identifiers.
const (
	CurrentThought  = "currentThought"
	LastAction      = "lastAction"
	LastUpdated     = "lastUpdated"
	TasksCompleted  = "tasksCompleted"
	QueueSize       = "queueSize"
	ResearchFiles   = "researchFiles"
	ToolsBuilt      = "toolsBuilt"
	RecentActivity  = "recentActivity"
	FilesList       = "filesList"
	BriefingContent = "briefingContent"
)

// Surface receives rendered output.
type Surface interface {
	// SetText replaces the content of a text target.
	SetText(id, text string)
	// SetList replaces every entry of a list target.
	SetList(id string, items []string)
}
