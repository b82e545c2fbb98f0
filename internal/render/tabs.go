package render

// Tabs is the ordered set of files categories a user can switch between.
// Exactly one tab is active at a time.
type Tabs struct {
	categories []string
	active     int
}

// NewTabs creates a tab set over categories with the named one active.
// An unknown active name, or an empty set, falls back to the first tab;
// an empty set is seeded with DefaultCategory.
func NewTabs(categories []string, active string) Tabs {
	var cats []string
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	if len(cats) == 0 {
		cats = []string{DefaultCategory}
	}

	t := Tabs{categories: cats}
	for i, c := range cats {
		if c == active {
			t.active = i
			break
		}
	}
	return t
}

// Categories returns the tab names in display order.
func (t Tabs) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// Active returns the active category.
func (t Tabs) Active() string {
	return t.categories[t.active]
}

// ActiveIndex returns the position of the active tab.
func (t Tabs) ActiveIndex() int {
	return t.active
}

// IsActive reports whether the tab at i is the active one.
func (t Tabs) IsActive(i int) bool {
	return i == t.active
}

// Len returns the number of tabs.
func (t Tabs) Len() int {
	return len(t.categories)
}

// Activate marks the tab at i active and every other tab inactive.
// It returns the category and false when i is out of range.
func (t *Tabs) Activate(i int) (string, bool) {
	if i < 0 || i >= len(t.categories) {
		return "", false
	}
	t.active = i
	return t.categories[i], true
}

// Next activates the following tab, wrapping around.
func (t *Tabs) Next() string {
	cat, _ := t.Activate((t.active + 1) % len(t.categories))
	return cat
}

// Prev activates the preceding tab, wrapping around.
func (t *Tabs) Prev() string {
	cat, _ := t.Activate((t.active - 1 + len(t.categories)) % len(t.categories))
	return cat
}
