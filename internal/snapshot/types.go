// Package snapshot defines the dashboard document and the fetchers that load it.
// A Snapshot is replaced wholesale on every poll; nothing here merges or caches.
package snapshot

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Snapshot is the full JSON document fetched per poll.
// Every field is optional; absent fields render as defaults.
type Snapshot struct {
	Status   *Status           `json:"status,omitempty"`
	Stats    *Stats            `json:"stats,omitempty"`
	Files    map[string][]File `json:"files,omitempty"`
	Briefing Text              `json:"briefing,omitempty"`
}

// Status describes what the agent is doing right now.
type Status struct {
	CurrentThought Text       `json:"currentThought,omitempty"`
	LastAction     Text       `json:"lastAction,omitempty"`
	LastActionTime *Timestamp `json:"lastActionTime,omitempty"`
	// RecentActivity is nil when the field is absent and empty when the
	// document carries an empty array. Renderers treat the two differently.
	RecentActivity []Text `json:"recentActivity,omitempty"`
}

// Stats holds the four dashboard counters. Nil means absent.
type Stats struct {
	TasksCompleted *Count `json:"tasksCompleted,omitempty"`
	QueueSize      *Count `json:"queueSize,omitempty"`
	ResearchFiles  *Count `json:"researchFiles,omitempty"`
	ToolsBuilt     *Count `json:"toolsBuilt,omitempty"`
}

// File is a single entry in a files category.
type File struct {
	Name Text `json:"name"`
	Date Text `json:"date"`
}

// Text is a display string decoded from any JSON scalar. Numbers and
// booleans keep their literal form; zero, false and null decode empty so
// they fall back to the default text like an absent field.
type Text string

// UnmarshalJSON never fails.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(scalarText(data))
	return nil
}

// Count is a counter value. The raw encoding is kept so a document
// written back out looks like the one that was read.
type Count struct {
	raw json.RawMessage
}

// NewCount returns a Count holding v.
func NewCount(v float64) *Count {
	return &Count{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// UnmarshalJSON never fails.
func (c *Count) UnmarshalJSON(data []byte) error {
	c.raw = append(c.raw[:0], bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON writes the raw encoding back out.
func (c Count) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.raw, nil
}

// String returns the counter as display text, empty when the value is
// zero or otherwise falsy.
func (c *Count) String() string {
	if c == nil {
		return ""
	}
	return scalarText(c.raw)
}

// scalarText renders a raw JSON value as display text. Objects and
// arrays are shown as compact JSON.
func scalarText(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	switch data[0] {
	case 'n', 'f':
		return ""
	case 't':
		return "true"
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return string(data)
		}
		return s
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return string(data)
		}
		return buf.String()
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return string(data)
	}
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// timestampLayouts are tried in order when a timestamp arrives as a string.
// Layouts without a zone and a clock time are read as local time; a bare
// date is read as UTC midnight.
var timestampLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", false},
}

// Timestamp is a point in time that may be encoded as a date string or as
// epoch milliseconds. Raw keeps the original encoding so an unparsable value
// can still be told apart from an absent one.
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// UnmarshalJSON accepts a JSON string or epoch milliseconds. Falsy values
// decode as absent and any other value as an invalid timestamp; it never
// fails.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	text := scalarText(data)

	switch {
	case text == "":
		*t = Timestamp{}
	case data[0] == '"':
		*t = ParseTimestamp(text)
	default:
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			*t = Timestamp{Raw: text}
			return nil
		}
		*t = Timestamp{
			Time:  time.UnixMilli(int64(ms)),
			Raw:   string(data),
			Valid: true,
		}
	}
	return nil
}

// MarshalJSON writes the raw encoding back out, or an RFC 3339 string when
// the timestamp was built in code.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		if _, err := strconv.ParseFloat(t.Raw, 64); err == nil && t.Valid {
			return []byte(t.Raw), nil
		}
		return json.Marshal(t.Raw)
	}
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ParseTimestamp parses s in any of the supported layouts.
// An empty or unparsable string yields a Timestamp with Valid unset.
func ParseTimestamp(s string) Timestamp {
	return parseTimestampIn(s, time.Local)
}

func parseTimestampIn(s string, local *time.Location) Timestamp {
	ts := Timestamp{Raw: s}
	if s == "" {
		return ts
	}
	for _, l := range timestampLayouts {
		loc := time.UTC
		if l.local {
			loc = local
		}
		if parsed, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			ts.Time = parsed
			ts.Valid = true
			return ts
		}
	}
	return ts
}

// IsZero reports whether the timestamp carries no value at all.
func (t *Timestamp) IsZero() bool {
	return t == nil || (t.Raw == "" && !t.Valid)
}
