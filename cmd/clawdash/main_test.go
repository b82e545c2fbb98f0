package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/npratt/clawdash/internal/testutil"
)

// execute runs the command tree with args from an empty project directory
// and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, testutil.SetupTestDir(t), args...)
}

// executeIn runs the command tree with dir as the working directory.
func executeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd(&slog.LevelVar{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "clawdash dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestOnceCommand_Plain(t *testing.T) {
	srv := testutil.NewSnapshotServer(t, testutil.FullSnapshotJSON)

	out, err := execute(t, "once", "--url", srv.DataURL(), "--category", "tools")
	if err != nil {
		t.Fatalf("once failed: %v", err)
	}

	for _, want := range []string{
		"Thought: Reading the queue",
		"Tasks completed: 12",
		"Files [tools]",
		"• sync.sh (2024-01-03)",
		"Morning briefing: all systems nominal.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0].Query().Get("t") == "" {
		t.Error("request should carry a cache-busting parameter")
	}
}

func TestOnceCommand_JSON(t *testing.T) {
	srv := testutil.NewSnapshotServer(t, testutil.FullSnapshotJSON)

	out, err := execute(t, "once", "--json", srv.DataURL())
	if err != nil {
		t.Fatalf("once failed: %v", err)
	}

	var doc struct {
		Status struct {
			CurrentThought string `json:"currentThought"`
			LastActionTime string `json:"lastActionTime"`
		} `json:"status"`
		Stats struct {
			TasksCompleted float64 `json:"tasksCompleted"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Status.CurrentThought != "Reading the queue" {
		t.Errorf("currentThought = %q", doc.Status.CurrentThought)
	}
	if doc.Status.LastActionTime != "2024-01-15T10:30:00Z" {
		t.Errorf("lastActionTime = %q", doc.Status.LastActionTime)
	}
	if doc.Stats.TasksCompleted != 12 {
		t.Errorf("tasksCompleted = %v", doc.Stats.TasksCompleted)
	}
}

func TestOnceCommand_PositionalSourceWins(t *testing.T) {
	good := testutil.NewSnapshotServer(t, testutil.StatsOnlyJSON)
	bad := testutil.NewSnapshotServer(t, testutil.StatsOnlyJSON)
	bad.Respond(http.StatusInternalServerError, "")

	out, err := execute(t, "once", "--url", bad.DataURL(), good.DataURL())
	if err != nil {
		t.Fatalf("once failed: %v", err)
	}
	if !strings.Contains(out, "Tasks completed: 5") {
		t.Errorf("output missing counter:\n%s", out)
	}
	if len(bad.Requests()) != 0 {
		t.Error("--url source should not be fetched when a positional source is given")
	}
}

func TestOnceCommand_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "data.json", testutil.ResearchOnlyJSON)

	out, err := execute(t, "once", path)
	if err != nil {
		t.Fatalf("once failed: %v", err)
	}
	if !strings.Contains(out, "• a.txt (2024-01-01)") {
		t.Errorf("output missing file entry:\n%s", out)
	}
}

func TestOnceCommand_ProjectConfig(t *testing.T) {
	srv := testutil.NewSnapshotServer(t, testutil.FullSnapshotJSON)

	dir := testutil.SetupTestDir(t)
	testutil.WriteFile(t, dir, ".clawdash/config.yaml", `source:
  url: `+srv.DataURL()+`
files:
  default_category: tools
`)

	out, err := executeIn(t, dir, "once")
	if err != nil {
		t.Fatalf("once failed: %v", err)
	}
	if !strings.Contains(out, "• sync.sh (2024-01-03)") {
		t.Errorf("config file source and category not applied:\n%s", out)
	}
}

func TestOnceCommand_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"flag variable", map[string]string{"CLAWDASH_URL": "{url}", "CLAWDASH_CATEGORY": "tools"}, nil},
		{"config key variable", map[string]string{"CLAWDASH_SOURCE_URL": "{url}", "CLAWDASH_FILES_DEFAULT_CATEGORY": "tools"}, nil},
		{"flag beats config variable", map[string]string{"CLAWDASH_SOURCE_URL": "{url}", "CLAWDASH_FILES_DEFAULT_CATEGORY": "research"}, []string{"--category", "tools"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewSnapshotServer(t, testutil.FullSnapshotJSON)
			for k, v := range tt.env {
				t.Setenv(k, strings.ReplaceAll(v, "{url}", srv.DataURL()))
			}

			out, err := execute(t, append([]string{"once"}, tt.args...)...)
			if err != nil {
				t.Fatalf("once failed: %v", err)
			}
			if !strings.Contains(out, "Files [tools]") {
				t.Errorf("category override not applied:\n%s", out)
			}
			if len(srv.Requests()) != 1 {
				t.Errorf("requests = %d, want 1", len(srv.Requests()))
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"research, tools", "logs", ""})
	want := []string{"research", "tools", "logs"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOnceCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		extra   []string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "", nil, "unexpected status"},
		{"malformed body", http.StatusOK, testutil.MalformedJSON, nil, "load snapshot"},
		{"interval too short", http.StatusOK, testutil.StatsOnlyJSON, []string{"--interval", "10ms"}, "invalid flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewSnapshotServer(t, tt.body)
			srv.Respond(tt.status, tt.body)

			args := append([]string{"once", "--url", srv.DataURL()}, tt.extra...)
			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
