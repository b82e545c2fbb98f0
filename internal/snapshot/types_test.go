package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npratt/clawdash/internal/testutil"
)

func TestParse_AbsentVersusEmpty(t *testing.T) {
	absent, err := Parse([]byte(`{"status": {"currentThought": "x"}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if absent.Status.RecentActivity != nil {
		t.Errorf("absent recentActivity should be nil, got %#v", absent.Status.RecentActivity)
	}
	if absent.Files != nil {
		t.Errorf("absent files should be nil, got %#v", absent.Files)
	}

	empty, err := Parse([]byte(testutil.EmptyActivityJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if empty.Status.RecentActivity == nil || len(empty.Status.RecentActivity) != 0 {
		t.Errorf("empty recentActivity should be non-nil and empty, got %#v", empty.Status.RecentActivity)
	}
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	snap, err := Parse([]byte(`{"version": 3, "stats": {"queueSize": 4, "extra": true}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := snap.Stats.QueueSize.String(); got != "4" {
		t.Errorf("QueueSize = %q, want 4", got)
	}
}

func TestParse_FullDocument(t *testing.T) {
	snap, err := Parse([]byte(testutil.FullSnapshotJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string][]File{
		"research": {{Name: "a.txt", Date: "2024-01-01"}, {Name: "b.txt", Date: "2024-01-02"}},
		"tools":    {{Name: "sync.sh", Date: "2024-01-03"}},
	}
	if diff := cmp.Diff(want, snap.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNil   bool
		wantValid bool
		wantTime  time.Time
	}{
		{"rfc3339", `"2024-01-15T10:30:00Z"`, false, true, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2024-01-01"`, false, true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"epoch ms", `1705314600000`, false, true, time.UnixMilli(1705314600000)},
		{"garbage", `"yesterday-ish"`, false, false, time.Time{}},
		{"null", `null`, true, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Status
			if err := json.Unmarshal([]byte(`{"lastActionTime": `+tt.input+`}`), &st); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if tt.wantNil {
				if st.LastActionTime != nil {
					t.Errorf("expected nil timestamp, got %+v", st.LastActionTime)
				}
				return
			}
			if st.LastActionTime == nil {
				t.Fatal("expected timestamp to be set")
			}
			if st.LastActionTime.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", st.LastActionTime.Valid, tt.wantValid)
			}
			if tt.wantValid && !st.LastActionTime.Time.Equal(tt.wantTime) {
				t.Errorf("Time = %v, want %v", st.LastActionTime.Time, tt.wantTime)
			}
		})
	}
}

func TestTimestamp_LenientValues(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantZero  bool
		wantValid bool
	}{
		{"object", `{"at": 1}`, false, false},
		{"array", `[1, 2]`, false, false},
		{"true", `true`, false, false},
		{"false", `false`, true, false},
		{"zero", `0`, true, false},
		{"empty string", `""`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Status
			if err := json.Unmarshal([]byte(`{"lastActionTime": `+tt.input+`}`), &st); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := st.LastActionTime.IsZero(); got != tt.wantZero {
				t.Errorf("IsZero = %v, want %v", got, tt.wantZero)
			}
			if st.LastActionTime != nil && st.LastActionTime.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", st.LastActionTime.Valid, tt.wantValid)
			}
		})
	}
}

func TestParseTimestamp_ZonelessIsLocal(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"zoneless T", "2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, loc)},
		{"zoneless space", "2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, loc)},
		{"explicit zone", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date only is UTC", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := parseTimestampIn(tt.input, loc)
			if !ts.Valid {
				t.Fatalf("parseTimestampIn(%q) should be valid", tt.input)
			}
			if !ts.Time.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestParse_KeepsDocumentWhenFieldTypeIsWrong(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, snap *Snapshot)
	}{
		{"string counter", `{"status": {"currentThought": "hi"}, "stats": {"tasksCompleted": "5"}}`, func(t *testing.T, snap *Snapshot) {
			if got := snap.Stats.TasksCompleted.String(); got != "5" {
				t.Errorf("tasksCompleted = %q, want 5", got)
			}
			if snap.Status.CurrentThought != "hi" {
				t.Errorf("currentThought = %q, want hi", snap.Status.CurrentThought)
			}
		}},
		{"numeric briefing", `{"briefing": 42}`, func(t *testing.T, snap *Snapshot) {
			if snap.Briefing != "42" {
				t.Errorf("briefing = %q, want 42", snap.Briefing)
			}
		}},
		{"boolean timestamp", `{"status": {"currentThought": "hi", "lastActionTime": true}}`, func(t *testing.T, snap *Snapshot) {
			if snap.Status.LastActionTime.Valid {
				t.Error("boolean timestamp should be invalid")
			}
			if snap.Status.CurrentThought != "hi" {
				t.Errorf("currentThought = %q, want hi", snap.Status.CurrentThought)
			}
		}},
		{"non-string activity entries", `{"status": {"recentActivity": ["a", 7, true]}}`, func(t *testing.T, snap *Snapshot) {
			if diff := cmp.Diff([]Text{"a", "7", "true"}, snap.Status.RecentActivity); diff != "" {
				t.Errorf("activity mismatch (-want +got):\n%s", diff)
			}
		}},
		{"status is a string", `{"status": "busy", "briefing": "still here"}`, func(t *testing.T, snap *Snapshot) {
			if snap.Status != nil && snap.Status.CurrentThought != "" {
				t.Errorf("status should carry no fields, got %+v", snap.Status)
			}
			if snap.Briefing != "still here" {
				t.Errorf("briefing = %q", snap.Briefing)
			}
		}},
		{"activity is not a list", `{"status": {"currentThought": "hi", "recentActivity": "x"}}`, func(t *testing.T, snap *Snapshot) {
			if snap.Status.RecentActivity != nil {
				t.Errorf("activity should be absent, got %v", snap.Status.RecentActivity)
			}
			if snap.Status.CurrentThought != "hi" {
				t.Errorf("currentThought = %q, want hi", snap.Status.CurrentThought)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			tt.check(t, snap)
		})
	}
}

func TestText_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  Text
	}{
		{`"hello"`, "hello"},
		{`42`, "42"},
		{`2.5`, "2.5"},
		{`0`, ""},
		{`true`, "true"},
		{`false`, ""},
		{`null`, ""},
		{`{"a": 1}`, `{"a":1}`},
		{`[1, 2]`, `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCount_MarshalKeepsEncoding(t *testing.T) {
	var st Stats
	if err := json.Unmarshal([]byte(`{"tasksCompleted": 12, "queueSize": "3"}`), &st); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	out, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if want := `{"tasksCompleted":12,"queueSize":"3"}`; string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
	if got := NewCount(7).String(); got != "7" {
		t.Errorf("NewCount(7) = %q", got)
	}
}

func TestTimestamp_IsZero(t *testing.T) {
	var nilTS *Timestamp
	if !nilTS.IsZero() {
		t.Error("nil timestamp should be zero")
	}
	empty := ParseTimestamp("")
	if !empty.IsZero() {
		t.Error("empty timestamp should be zero")
	}
	bad := ParseTimestamp("nope")
	if bad.IsZero() {
		t.Error("unparsable timestamp still carries a value")
	}
}

func TestTimestamp_MarshalKeepsEncoding(t *testing.T) {
	tests := []struct {
		input string
	}{
		{`"2024-01-15T10:30:00Z"`},
		{`1705314600000`},
	}

	for _, tt := range tests {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
		}
		out, err := json.Marshal(ts)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(out) != tt.input {
			t.Errorf("Marshal = %s, want %s", out, tt.input)
		}
	}
}
