package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/npratt/clawdash/internal/snapshot"
)

// MaxFileEntries is the most entries the files list ever shows.
const MaxFileEntries = 10

// DefaultCategory is the files category shown by a full refresh.
const DefaultCategory = "research"

// DefaultTimeLayout matches the en-US locale date/time rendering.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// Placeholder and default texts.
const (
	NoThought    = "No current thought"
	NoAction     = "None"
	UnknownTime  = "Unknown"
	InvalidTime  = "Invalid Date"
	NoActivity   = "No recent activity"
	NoBriefing   = "No briefing available"
	noFilesFmt   = "No %s files yet"
	fileEntryFmt = "%s (%s)"
)

// Renderer writes Snapshot sections onto a Surface.
// The zero value is not usable; construct with New.
type Renderer struct {
	timeLayout string
	location   *time.Location
	policy     *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeLayout sets the layout used for the last-updated timestamp.
func WithTimeLayout(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.timeLayout = layout
		}
	}
}

// WithLocation sets the time zone timestamps are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		timeLayout: DefaultTimeLayout,
		location:   time.Local,
		policy:     bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// All applies every renderer in the fixed refresh order:
// status, stats, activity, files for category, briefing.
func (r *Renderer) All(s Surface, snap *snapshot.Snapshot, category string) {
	if snap == nil {
		return
	}
	r.Status(s, snap)
	r.Stats(s, snap)
	r.Activity(s, snap)
	r.Files(s, snap, category)
	r.Briefing(s, snap)
}

// Status writes the current thought, last action and last-updated time.
// It does nothing when the snapshot has no status section.
func (r *Renderer) Status(s Surface, snap *snapshot.Snapshot) {
	if snap == nil || snap.Status == nil {
		return
	}
	st := snap.Status

	s.SetText(CurrentThought, orDefault(string(st.CurrentThought), NoThought))
	s.SetText(LastAction, orDefault(string(st.LastAction), NoAction))
	s.SetText(LastUpdated, r.FormatTime(st.LastActionTime))
}

// FormatTime renders ts for display, or the unknown placeholder when absent.
func (r *Renderer) FormatTime(ts *snapshot.Timestamp) string {
	if ts.IsZero() {
		return UnknownTime
	}
	if !ts.Valid {
		return InvalidTime
	}
	return ts.Time.In(r.location).Format(r.timeLayout)
}

// Stats writes the four counters, each defaulting to 0.
// It does nothing when the snapshot has no stats section.
func (r *Renderer) Stats(s Surface, snap *snapshot.Snapshot) {
	if snap == nil || snap.Stats == nil {
		return
	}
	st := snap.Stats

	s.SetText(TasksCompleted, formatCount(st.TasksCompleted))
	s.SetText(QueueSize, formatCount(st.QueueSize))
	s.SetText(ResearchFiles, formatCount(st.ResearchFiles))
	s.SetText(ToolsBuilt, formatCount(st.ToolsBuilt))
}

// Activity writes one entry per recent activity string, or a single
// placeholder entry when the list is empty. It does nothing when the
// activity list is absent.
func (r *Renderer) Activity(s Surface, snap *snapshot.Snapshot) {
	if snap == nil || snap.Status == nil || snap.Status.RecentActivity == nil {
		return
	}

	activities := snap.Status.RecentActivity
	if len(activities) == 0 {
		s.SetList(RecentActivity, []string{NoActivity})
		return
	}

	items := make([]string, 0, len(activities))
	for _, a := range activities {
		items = append(items, r.plain(string(a)))
	}
	s.SetList(RecentActivity, items)
}

// Files writes up to MaxFileEntries entries of the named category, or a
// single placeholder entry when the category is missing or empty. It does
// nothing when the snapshot has no files section.
func (r *Renderer) Files(s Surface, snap *snapshot.Snapshot, category string) {
	if snap == nil || snap.Files == nil {
		return
	}

	files := snap.Files[category]
	if len(files) == 0 {
		s.SetList(FilesList, []string{NoFiles(category)})
		return
	}

	n := min(len(files), MaxFileEntries)
	items := make([]string, 0, n)
	for _, f := range files[:n] {
		items = append(items, fmt.Sprintf(fileEntryFmt, r.plain(string(f.Name)), r.plain(string(f.Date))))
	}
	s.SetList(FilesList, items)
}

// Briefing writes the briefing text, or a placeholder when absent.
// Unlike the other renderers it always writes, even for a nil snapshot.
func (r *Renderer) Briefing(s Surface, snap *snapshot.Snapshot) {
	if snap == nil || snap.Briefing == "" {
		s.SetText(BriefingContent, NoBriefing)
		return
	}
	s.SetText(BriefingContent, string(snap.Briefing))
}

// NoFiles returns the placeholder for an empty category.
func NoFiles(category string) string {
	return fmt.Sprintf(noFilesFmt, category)
}

// plain strips inline markup from a list entry. Entries in data.json are
// written for an HTML list and may carry tags or entities.
func (r *Renderer) plain(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(r.policy.Sanitize(s))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// formatCount renders a counter, treating absent and falsy values as 0.
func formatCount(c *snapshot.Count) string {
	return orDefault(c.String(), "0")
}
