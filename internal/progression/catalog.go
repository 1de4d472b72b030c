package progression

import "fmt"

// EffectKind says which income stream an upgrade boosts.
type EffectKind string

const (
	EffectClick EffectKind = "click"
	EffectAuto  EffectKind = "auto"
)

// Effect is the permanent, additive bonus granted per purchase.
type Effect struct {
	Kind   EffectKind
	Amount float64
}

// Upgrade is one shop entry.
type Upgrade struct {
	ID          string
	Name        string
	Description string
	BaseCost    int64
	Effect      Effect
	Unique      bool // purchasable at most once per state
}

// Catalog is an ordered, immutable set of upgrades.
type Catalog struct {
	items []Upgrade
	byID  map[string]int
}

// NewCatalog indexes items by id. Duplicate ids are rejected.
func NewCatalog(items []Upgrade) (Catalog, error) {
	c := Catalog{
		items: make([]Upgrade, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		if it.ID == "" {
			return Catalog{}, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.byID[it.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate catalog id %q", it.ID)
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

// DefaultCatalog returns the reference shop.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds an upgrade by id.
func (c Catalog) Lookup(id string) (Upgrade, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Upgrade{}, false
	}
	return c.items[i], true
}

func (c Catalog) Len() int { return len(c.items) }

// Items returns the upgrades in display order.
func (c Catalog) Items() []Upgrade {
	cp := make([]Upgrade, len(c.items))
	copy(cp, c.items)
	return cp
}
