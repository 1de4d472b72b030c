package progression

import (
	"fmt"
	"sort"
)

// Rank is one named tier of the progression ladder.
type Rank struct {
	Name  string
	MinXP int64
}

// RankTable is an ordered, immutable list of tiers. The first tier starts at
// zero and thresholds are strictly increasing, so every non-negative XP value
// resolves to exactly one tier.
type RankTable struct {
	ranks []Rank
}

// NewRankTable validates and copies ranks.
func NewRankTable(ranks []Rank) (RankTable, error) {
	if len(ranks) == 0 {
		return RankTable{}, fmt.Errorf("%w: empty table", ErrInvalidRankTable)
	}
	if ranks[0].MinXP != 0 {
		return RankTable{}, fmt.Errorf("%w: first tier %q starts at %d, want 0", ErrInvalidRankTable, ranks[0].Name, ranks[0].MinXP)
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i].MinXP <= ranks[i-1].MinXP {
			return RankTable{}, fmt.Errorf("%w: tier %d (%q) threshold %d not above %d",
				ErrInvalidRankTable, i, ranks[i].Name, ranks[i].MinXP, ranks[i-1].MinXP)
		}
	}
	cp := make([]Rank, len(ranks))
	copy(cp, ranks)
	return RankTable{ranks: cp}, nil
}

// DefaultRanks returns the reference tier table.
func DefaultRanks() RankTable {
	t, err := NewRankTable(defaultRanks)
	if err != nil {
		panic(err)
	}
	return t
}

func (t RankTable) Len() int { return len(t.ranks) }

// At returns the tier at index i.
func (t RankTable) At(i int) Rank { return t.ranks[i] }

// All returns a copy of the tiers.
func (t RankTable) All() []Rank {
	cp := make([]Rank, len(t.ranks))
	copy(cp, t.ranks)
	return cp
}

// Index returns the position of the highest tier whose threshold does not
// exceed totalXP. Negative XP maps to the first tier.
func (t RankTable) Index(totalXP float64) int {
	for i := len(t.ranks) - 1; i > 0; i-- {
		if totalXP >= float64(t.ranks[i].MinXP) {
			return i
		}
	}
	return 0
}

// Of returns the tier for totalXP.
func (t RankTable) Of(totalXP float64) Rank {
	return t.ranks[t.Index(totalXP)]
}

// ToNext returns the XP still missing to reach the next tier, or 0 once the
// last tier has been reached.
func (t RankTable) ToNext(totalXP float64) float64 {
	i := sort.Search(len(t.ranks), func(i int) bool {
		return float64(t.ranks[i].MinXP) > totalXP
	})
	if i == len(t.ranks) {
		return 0
	}
	return float64(t.ranks[i].MinXP) - totalXP
}

// Progress returns how far totalXP sits between the current tier and the next
// one, in [0,1]. The last tier reports 1.
func (t RankTable) Progress(totalXP float64) float64 {
	i := t.Index(totalXP)
	if i == len(t.ranks)-1 {
		return 1
	}
	lo := float64(t.ranks[i].MinXP)
	hi := float64(t.ranks[i+1].MinXP)
	p := (totalXP - lo) / (hi - lo)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
