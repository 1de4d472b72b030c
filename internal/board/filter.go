package board

import (
	"fmt"
	"slices"
	"strings"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortOriginal SortMode = "original"
	SortDue      SortMode = "due"
	SortUpdated  SortMode = "updated"
	SortName     SortMode = "name"
)

var sortModes = []SortMode{SortOriginal, SortDue, SortUpdated, SortName}

// ParseSortMode accepts the mode names plus "trello" as an alias for original.
// An empty string is the original order.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "original", "trello":
		return SortOriginal, nil
	case "due":
		return SortDue, nil
	case "updated":
		return SortUpdated, nil
	case "name":
		return SortName, nil
	}
	return SortOriginal, fmt.Errorf("unknown sort mode %q", s)
}

// Next cycles through the modes in display order.
func (m SortMode) Next() SortMode {
	i := slices.Index(sortModes, m)
	return sortModes[(i+1)%len(sortModes)]
}

func (m SortMode) Label() string {
	switch m {
	case SortDue:
		return "Due date"
	case SortUpdated:
		return "Last updated"
	case SortName:
		return "Name"
	}
	return "Board order"
}

// FilterConfig is the user-controlled view state. The string slices are
// treated as sets: an empty set applies no constraint.
type FilterConfig struct {
	SortMode    SortMode `json:"sort_mode"`
	SearchText  string   `json:"search_text"`
	SystemTypes []string `json:"system_types"`
	Assignees   []string `json:"assignees"`
	Labels      []string `json:"labels"`
	Lists       []string `json:"lists"`
	PinnedOnly  bool     `json:"pinned_only"`
}

// IsActive reports whether any constraint narrows the card set.
func (f FilterConfig) IsActive() bool {
	return strings.TrimSpace(f.SearchText) != "" ||
		len(f.SystemTypes) > 0 ||
		len(f.Assignees) > 0 ||
		len(f.Labels) > 0 ||
		len(f.Lists) > 0 ||
		f.PinnedOnly
}

// Reset clears every constraint and restores the original order.
func (f *FilterConfig) Reset() { *f = FilterConfig{SortMode: SortOriginal} }

func (f *FilterConfig) ToggleSystemType(v string) { f.SystemTypes = toggle(f.SystemTypes, v) }
func (f *FilterConfig) ToggleAssignee(v string)   { f.Assignees = toggle(f.Assignees, v) }
func (f *FilterConfig) ToggleLabel(id string)     { f.Labels = toggle(f.Labels, id) }
func (f *FilterConfig) ToggleList(id string)      { f.Lists = toggle(f.Lists, id) }

// Summary is a short human description used in status lines.
func (f FilterConfig) Summary() string {
	var parts []string
	if s := strings.TrimSpace(f.SearchText); s != "" {
		parts = append(parts, fmt.Sprintf("search %q", s))
	}
	if n := len(f.SystemTypes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d types", n))
	}
	if n := len(f.Assignees); n > 0 {
		parts = append(parts, fmt.Sprintf("%d staff", n))
	}
	if n := len(f.Labels); n > 0 {
		parts = append(parts, fmt.Sprintf("%d labels", n))
	}
	if n := len(f.Lists); n > 0 {
		parts = append(parts, fmt.Sprintf("%d lists", n))
	}
	if f.PinnedOnly {
		parts = append(parts, "pinned")
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, ", ")
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
