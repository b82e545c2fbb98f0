package testutil

import (
	"fmt"
	"strings"
)

// Sample data.json documents

// FullSnapshotJSON is a data.json with every section populated.
var FullSnapshotJSON = `{
  "status": {
    "currentThought": "Reading the queue",
    "lastAction": "Wrote research notes",
    "lastActionTime": "2024-01-15T10:30:00Z",
    "recentActivity": ["Synced data", "Built <b>tool</b>", "Closed task 12"]
  },
  "stats": {"tasksCompleted": 12, "queueSize": 3, "researchFiles": 7, "toolsBuilt": 2},
  "files": {
    "research": [
      {"name": "a.txt", "date": "2024-01-01"},
      {"name": "b.txt", "date": "2024-01-02"}
    ],
    "tools": [
      {"name": "sync.sh", "date": "2024-01-03"}
    ]
  },
  "briefing": "Morning briefing: all systems nominal."
}`

// StatsOnlyJSON carries a single counter and nothing else.
var StatsOnlyJSON = `{"stats": {"tasksCompleted": 5}}`

// ResearchOnlyJSON carries one research file and nothing else.
var ResearchOnlyJSON = `{"files": {"research": [{"name": "a.txt", "date": "2024-01-01"}]}}`

// EmptyActivityJSON has an explicitly empty activity list.
var EmptyActivityJSON = `{"status": {"recentActivity": []}}`

// EmptyObjectJSON is a document with no sections.
var EmptyObjectJSON = `{}`

// MalformedJSON is not valid JSON.
var MalformedJSON = `{"status": {"currentThought": "unterminated`

// ManyFilesJSON returns a document whose category holds n files.
func ManyFilesJSON(category string, n int) string {
	entries := make([]string, 0, n)
	for i := range n {
		entries = append(entries, fmt.Sprintf(`{"name": "file-%d.md", "date": "2024-02-%02d"}`, i, i%28+1))
	}
	return fmt.Sprintf(`{"files": {%q: [%s]}}`, category, strings.Join(entries, ","))
}
