package progression

// State is the accumulated progression of one player. It holds only plain
// values so any store can round-trip it.
type State struct {
	XP                float64
	TotalXP           float64 // cumulative, never decreases; drives rank lookup
	Currency          int64
	ClickPower        int64
	AutoRatePerSecond float64
	Owned             map[string]int // upgrade id -> count
}

// OwnedCount returns how many of an upgrade the state holds.
func (s State) OwnedCount(id string) int {
	return s.Owned[id]
}

// Clone returns a deep copy.
func (s State) Clone() State {
	cp := s
	if s.Owned != nil {
		cp.Owned = make(map[string]int, len(s.Owned))
		for k, v := range s.Owned {
			cp.Owned[k] = v
		}
	}
	return cp
}

// Equal reports whether two states hold the same values. A nil and an empty
// owned map compare equal.
func (s State) Equal(o State) bool {
	if s.XP != o.XP || s.TotalXP != o.TotalXP || s.Currency != o.Currency ||
		s.ClickPower != o.ClickPower || s.AutoRatePerSecond != o.AutoRatePerSecond {
		return false
	}
	if len(s.Owned) != len(o.Owned) {
		return false
	}
	for k, v := range s.Owned {
		if ov, ok := o.Owned[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
