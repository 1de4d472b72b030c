package board

import (
	"slices"
	"strings"
)

// Facets lists the distinct filter values present on a card set, for
// building pickers.
type Facets struct {
	SystemTypes []string
	Assignees   []string
	Labels      []Label
}

// CollectFacets gathers facets from cards. Values are sorted; labels by name
// then id.
func CollectFacets(cards []Card) Facets {
	types := map[string]bool{}
	staff := map[string]bool{}
	labels := map[string]Label{}
	for _, c := range cards {
		if st := c.SystemType(); st != "" {
			types[st] = true
		}
		for _, r := range Roles {
			if v := c.Assignment.Staff(r); v != nil && *v != "" {
				staff[*v] = true
			}
		}
		for _, l := range c.Labels {
			labels[l.ID] = l
		}
	}

	f := Facets{
		SystemTypes: sortedKeys(types),
		Assignees:   sortedKeys(staff),
		Labels:      make([]Label, 0, len(labels)),
	}
	for _, l := range labels {
		f.Labels = append(f.Labels, l)
	}
	slices.SortFunc(f.Labels, func(a, b Label) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return f
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
