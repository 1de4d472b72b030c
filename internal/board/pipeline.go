package board

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SelectAndOrder filters cards by f, sorts them by f.SortMode and moves pinned
// cards to the front. The input slice is left untouched.
func SelectAndOrder(cards []Card, f FilterConfig) []Card {
	out := make([]Card, 0, len(cards))
	query := strings.ToLower(strings.TrimSpace(f.SearchText))
	for _, c := range cards {
		if query != "" && !matchesText(c, query) {
			continue
		}
		if !matchesCategories(c, f) {
			continue
		}
		if len(f.Assignees) > 0 && !matchesAssignee(c, f.Assignees) {
			continue
		}
		out = append(out, c)
	}

	sortCards(out, f.SortMode)

	// Stable partition: pinned first, each group keeps the sorted order.
	slices.SortStableFunc(out, func(a, b Card) int {
		switch {
		case a.Pinned() == b.Pinned():
			return 0
		case a.Pinned():
			return -1
		}
		return 1
	})
	return out
}

func matchesText(c Card, query string) bool {
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Description), query)
}

func matchesCategories(c Card, f FilterConfig) bool {
	if len(f.SystemTypes) > 0 {
		st := c.Assignment.systemType()
		if st == nil || !slices.Contains(f.SystemTypes, *st) {
			return false
		}
	}
	if len(f.Labels) > 0 && !slices.ContainsFunc(c.Labels, func(l Label) bool {
		return slices.Contains(f.Labels, l.ID)
	}) {
		return false
	}
	if len(f.Lists) > 0 && !slices.Contains(f.Lists, c.ListID) {
		return false
	}
	if f.PinnedOnly && !c.Pinned() {
		return false
	}
	return true
}

// matchesAssignee reports whether any role holds a wanted name. Cards without
// an assignment, and empty role values, never match.
func matchesAssignee(c Card, wanted []string) bool {
	if c.Assignment == nil {
		return false
	}
	for _, r := range Roles {
		if v := c.Assignment.Staff(r); v != nil && *v != "" && slices.Contains(wanted, *v) {
			return true
		}
	}
	return false
}

func (a *Assignment) systemType() *string {
	if a == nil {
		return nil
	}
	return a.SystemType
}

func sortCards(cards []Card, mode SortMode) {
	switch mode {
	case SortDue:
		slices.SortStableFunc(cards, func(a, b Card) int {
			switch {
			case a.Due == nil && b.Due == nil:
				return 0
			case a.Due == nil:
				return 1
			case b.Due == nil:
				return -1
			}
			return a.Due.Compare(*b.Due)
		})
	case SortUpdated:
		slices.SortStableFunc(cards, func(a, b Card) int {
			return b.LastActivity.Compare(a.LastActivity)
		})
	case SortName:
		col := collate.New(language.Japanese)
		slices.SortStableFunc(cards, func(a, b Card) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}

// GroupByList buckets ordered cards by list. Every open list gets a key, even
// when empty; cards on closed or unknown lists are dropped.
func GroupByList(cards []Card, lists []List) map[string][]Card {
	out := make(map[string][]Card, len(lists))
	for _, l := range lists {
		if !l.Closed {
			out[l.ID] = []Card{}
		}
	}
	for _, c := range cards {
		if bucket, ok := out[c.ListID]; ok {
			out[c.ListID] = append(bucket, c)
		}
	}
	return out
}

// Columns is GroupByList ordered by list position for rendering.
func Columns(cards []Card, lists []List) []Column {
	groups := GroupByList(cards, lists)
	open := make([]List, 0, len(groups))
	for _, l := range lists {
		if !l.Closed {
			open = append(open, l)
		}
	}
	slices.SortStableFunc(open, func(a, b List) int { return cmp.Compare(a.Pos, b.Pos) })

	cols := make([]Column, len(open))
	for i, l := range open {
		cols[i] = Column{List: l, Cards: groups[l.ID]}
	}
	return cols
}

// View runs the whole pipeline: select, order, group. When f.Lists is set,
// only those lists are kept as columns.
func View(cards []Card, lists []List, f FilterConfig) []Column {
	cols := Columns(SelectAndOrder(cards, f), lists)
	if len(f.Lists) > 0 {
		cols = slices.DeleteFunc(cols, func(c Column) bool {
			return !slices.Contains(f.Lists, c.List.ID)
		})
	}
	return cols
}
