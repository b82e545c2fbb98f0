package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTabs(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		active     string
		wantCats   []string
		wantActive string
	}{
		{"named active", []string{"research", "tools"}, "tools", []string{"research", "tools"}, "tools"},
		{"unknown active falls back", []string{"research", "tools"}, "notes", []string{"research", "tools"}, "research"},
		{"duplicates dropped", []string{"research", "tools", "research", ""}, "", []string{"research", "tools"}, "research"},
		{"empty seeds default", nil, "", []string{DefaultCategory}, DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs := NewTabs(tt.categories, tt.active)
			if diff := cmp.Diff(tt.wantCats, tabs.Categories()); diff != "" {
				t.Errorf("categories mismatch (-want +got):\n%s", diff)
			}
			if tabs.Active() != tt.wantActive {
				t.Errorf("Active = %q, want %q", tabs.Active(), tt.wantActive)
			}
		})
	}
}

func TestTabs_ActivateMarksOnlyOneActive(t *testing.T) {
	tabs := NewTabs([]string{"research", "tools", "notes"}, "research")

	cat, ok := tabs.Activate(2)
	if !ok || cat != "notes" {
		t.Fatalf("Activate(2) = %q, %v", cat, ok)
	}

	active := 0
	for i := range tabs.Len() {
		if tabs.IsActive(i) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active tab, got %d", active)
	}
	if tabs.ActiveIndex() != 2 {
		t.Errorf("ActiveIndex = %d, want 2", tabs.ActiveIndex())
	}
}

func TestTabs_ActivateOutOfRange(t *testing.T) {
	tabs := NewTabs([]string{"research", "tools"}, "tools")

	for _, i := range []int{-1, 2, 9} {
		if _, ok := tabs.Activate(i); ok {
			t.Errorf("Activate(%d) should fail", i)
		}
	}
	if tabs.Active() != "tools" {
		t.Errorf("failed activation changed active tab to %q", tabs.Active())
	}
}

func TestTabs_NextPrevWrap(t *testing.T) {
	tabs := NewTabs([]string{"research", "tools"}, "research")

	if got := tabs.Next(); got != "tools" {
		t.Errorf("Next = %q, want tools", got)
	}
	if got := tabs.Next(); got != "research" {
		t.Errorf("Next should wrap to research, got %q", got)
	}
	if got := tabs.Prev(); got != "tools" {
		t.Errorf("Prev should wrap to tools, got %q", got)
	}
}
