package progression

import (
	"errors"
	"math"
	"testing"
	"time"
)

func abcTable(t *testing.T) RankTable {
	t.Helper()
	rt, err := NewRankTable([]Rank{{"A", 0}, {"B", 100}, {"C", 500}})
	if err != nil {
		t.Fatal(err)
	}
	return rt
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := NewCatalog([]Upgrade{
		{ID: "mouse", Name: "Mouse", BaseCost: 500, Effect: Effect{Kind: EffectClick, Amount: 2}},
		{ID: "coffee", Name: "Coffee", BaseCost: 800, Effect: Effect{Kind: EffectAuto, Amount: 0.5}},
		{ID: "relic", Name: "Relic", BaseCost: 100, Effect: Effect{Kind: EffectAuto, Amount: 10}, Unique: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(DefaultConfig(), abcTable(t), cat)
}

// ============================================================
// Rank table
// ============================================================

func TestRankLookup(t *testing.T) {
	rt := abcTable(t)
	tests := []struct {
		xp     float64
		rank   string
		toNext float64
	}{
		{0, "A", 100},
		{99, "A", 1},
		{100, "B", 400},
		{450, "B", 50},
		{500, "C", 0},
		{1e18, "C", 0},
	}
	for _, tt := range tests {
		if got := rt.Of(tt.xp).Name; got != tt.rank {
			t.Errorf("Of(%v) = %q, want %q", tt.xp, got, tt.rank)
		}
		if got := rt.ToNext(tt.xp); got != tt.toNext {
			t.Errorf("ToNext(%v) = %v, want %v", tt.xp, got, tt.toNext)
		}
	}
}

func TestNewRankTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		ranks []Rank
	}{
		{"empty", nil},
		{"nonzero first", []Rank{{"A", 10}, {"B", 20}}},
		{"equal thresholds", []Rank{{"A", 0}, {"B", 10}, {"C", 10}}},
		{"descending", []Rank{{"A", 0}, {"B", 20}, {"C", 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRankTable(tt.ranks)
			if !errors.Is(err, ErrInvalidRankTable) {
				t.Fatalf("expected ErrInvalidRankTable, got %v", err)
			}
		})
	}
}

func TestDefaultRanksValid(t *testing.T) {
	rt := DefaultRanks()
	if rt.Len() < 2 {
		t.Fatalf("expected a populated table, got %d tiers", rt.Len())
	}
	last := rt.At(rt.Len() - 1)
	if last.MinXP != 9999999999999999 {
		t.Fatalf("last threshold = %d", last.MinXP)
	}
	if rt.ToNext(float64(last.MinXP)) != 0 {
		t.Fatal("maxed rank should have nothing to next")
	}
}

func TestRankMonotonic(t *testing.T) {
	rt := DefaultRanks()
	prev := 0
	for xp := 0.0; xp < 1e17; xp = xp*1.7 + 13 {
		idx := rt.Index(xp)
		if idx < prev {
			t.Fatalf("rank index dropped at %v: %d < %d", xp, idx, prev)
		}
		if rt.ToNext(xp) < 0 {
			t.Fatalf("negative ToNext at %v", xp)
		}
		prev = idx
	}
}

func TestRankProgress(t *testing.T) {
	rt := abcTable(t)
	if p := rt.Progress(300); p != 0.5 {
		t.Fatalf("Progress(300) = %v, want 0.5", p)
	}
	if p := rt.Progress(600); p != 1 {
		t.Fatalf("Progress at top = %v, want 1", p)
	}
}

// ============================================================
// Rewards
// ============================================================

func TestApplyRewardRankUp(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.TotalXP = 90
	s.XP = 90

	next, events, err := e.ApplyReward(s, 20, SourceBonus)
	if err != nil {
		t.Fatal(err)
	}
	if next.XP != 110 || next.TotalXP != 110 {
		t.Fatalf("xp = %v/%v, want 110/110", next.XP, next.TotalXP)
	}
	if len(events) != 2 {
		t.Fatalf("expected reward + rank-up, got %d events", len(events))
	}
	if events[1].Kind != EventRankUp || events[1].FromRank != "A" || events[1].ToRank != "B" {
		t.Fatalf("unexpected rank-up event %+v", events[1])
	}
	if s.TotalXP != 90 {
		t.Fatal("input state was mutated")
	}
}

func TestApplyRewardNoRankUp(t *testing.T) {
	e := testEngine(t)
	_, events, err := e.ApplyReward(e.NewState(), 5, SourceClick)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Kind != EventReward {
		t.Fatalf("expected single reward event, got %+v", events)
	}
}

func TestApplyRewardInvalid(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	for _, amt := range []float64{-1, math.NaN(), math.Inf(1)} {
		got, events, err := e.ApplyReward(s, amt, SourceBonus)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("amount %v: expected ErrInvalidInput, got %v", amt, err)
		}
		if !got.Equal(s) || events != nil {
			t.Errorf("amount %v: state changed", amt)
		}
	}
}

func TestClick(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.ClickPower = 3
	next, events, err := e.Click(s)
	if err != nil {
		t.Fatal(err)
	}
	if next.XP != 3 || next.Currency != s.Currency+3 {
		t.Fatalf("click gave xp=%v currency=%d", next.XP, next.Currency)
	}
	if events[0].Source != SourceClick || events[0].Currency != 3 {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

// ============================================================
// Tick
// ============================================================

func TestTickIdleIncome(t *testing.T) {
	e := testEngine(t)
	s := State{AutoRatePerSecond: 10}
	next, events, err := e.Tick(s, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if next.XP != 10 || next.TotalXP != 10 {
		t.Fatalf("xp = %v, want 10", next.XP)
	}
	if next.Currency != 1 {
		t.Fatalf("currency = %d, want 1", next.Currency)
	}
	if len(events) == 0 || events[0].Source != SourceAuto {
		t.Fatal("expected an auto reward event")
	}
}

func TestTickNoRateIsNoop(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.XP = 42
	s.Owned["mouse"] = 1
	next, events, err := e.Tick(s, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Equal(s) {
		t.Fatalf("tick with zero rate changed state: %+v", next)
	}
	if events != nil {
		t.Fatal("expected no events")
	}
}

func TestTickNegativeElapsed(t *testing.T) {
	e := testEngine(t)
	s := State{AutoRatePerSecond: 1}
	got, _, err := e.Tick(s, -time.Second)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !got.Equal(s) {
		t.Fatal("state changed on error")
	}
}

// ============================================================
// Purchases
// ============================================================

func TestCostCurve(t *testing.T) {
	e := testEngine(t)
	u, _ := e.Catalog().Lookup("mouse")
	tests := []struct {
		owned int
		want  int64
	}{
		{0, 500},
		{1, 575},
		{2, 661},
	}
	for _, tt := range tests {
		if got := e.Cost(u, tt.owned); got != tt.want {
			t.Errorf("Cost(owned=%d) = %d, want %d", tt.owned, got, tt.want)
		}
	}
	huge := Upgrade{BaseCost: math.MaxInt64}
	if got := e.Cost(huge, 500); got != math.MaxInt64 {
		t.Errorf("cost should clamp, got %d", got)
	}
}

func TestPurchaseConservation(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.Currency = 2000
	s.Owned["mouse"] = 2

	next, res, events, err := e.Purchase(s, "mouse")
	if err != nil {
		t.Fatal(err)
	}
	if res != Purchased {
		t.Fatalf("result = %v", res)
	}
	if next.Currency != 2000-661 {
		t.Fatalf("currency = %d, want %d", next.Currency, 2000-661)
	}
	if next.Owned["mouse"] != 3 {
		t.Fatalf("owned = %d, want 3", next.Owned["mouse"])
	}
	if next.ClickPower != s.ClickPower+2 {
		t.Fatalf("click power = %d", next.ClickPower)
	}
	if s.Owned["mouse"] != 2 {
		t.Fatal("input owned map was mutated")
	}
	if len(events) != 1 || events[0].Kind != EventPurchase || events[0].Currency != 661 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestPurchaseAuto(t *testing.T) {
	e := testEngine(t)
	next, res, _, err := e.Purchase(e.NewState(), "coffee")
	if err != nil || res != Purchased {
		t.Fatalf("purchase: %v %v", res, err)
	}
	if next.AutoRatePerSecond != 0.5 {
		t.Fatalf("auto rate = %v", next.AutoRatePerSecond)
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.Currency = 499
	next, res, events, err := e.Purchase(s, "mouse")
	if err != nil {
		t.Fatal(err)
	}
	if res != InsufficientFunds {
		t.Fatalf("result = %v", res)
	}
	if !next.Equal(s) || events != nil {
		t.Fatal("state changed on failed purchase")
	}
}

func TestPurchaseUniqueOnce(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.Currency = 1 << 40

	s, res, _, err := e.Purchase(s, "relic")
	if err != nil || res != Purchased {
		t.Fatalf("first purchase: %v %v", res, err)
	}
	again, res, _, err := e.Purchase(s, "relic")
	if err != nil {
		t.Fatal(err)
	}
	if res != AlreadyOwnedUnique {
		t.Fatalf("second purchase = %v, want AlreadyOwnedUnique", res)
	}
	if !again.Equal(s) {
		t.Fatal("state changed on rejected unique purchase")
	}
}

func TestPurchaseUniqueCheckedBeforeFunds(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	s.Currency = 0
	s.Owned["relic"] = 1
	_, res, _, _ := e.Purchase(s, "relic")
	if res != AlreadyOwnedUnique {
		t.Fatalf("result = %v, want AlreadyOwnedUnique", res)
	}
}

func TestPurchaseUnknown(t *testing.T) {
	e := testEngine(t)
	s := e.NewState()
	got, res, _, err := e.Purchase(s, "nope")
	if !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got %v", err)
	}
	if res != InvalidUpgrade {
		t.Fatalf("result = %v", res)
	}
	if !got.Equal(s) {
		t.Fatal("state changed")
	}
}

// ============================================================
// Currency and actions
// ============================================================

func TestSpendEarn(t *testing.T) {
	e := testEngine(t)
	s := State{Currency: 100}

	next, ok, err := e.Spend(s, 150)
	if err != nil || ok || next.Currency != 100 {
		t.Fatalf("overspend: ok=%v currency=%d err=%v", ok, next.Currency, err)
	}
	next, ok, err = e.Spend(s, 40)
	if err != nil || !ok || next.Currency != 60 {
		t.Fatalf("spend: ok=%v currency=%d err=%v", ok, next.Currency, err)
	}
	if _, _, err := e.Spend(s, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative spend: %v", err)
	}

	next, err = e.Earn(State{Currency: math.MaxInt64 - 1}, 10)
	if err != nil || next.Currency != math.MaxInt64 {
		t.Fatalf("earn should saturate, got %d %v", next.Currency, err)
	}
}

func TestActionReward(t *testing.T) {
	if xp, ok := ActionReward(ActionComplete); !ok || xp != 100 {
		t.Fatalf("complete = %v %v", xp, ok)
	}
	if _, ok := ActionReward("dance"); ok {
		t.Fatal("unknown action should not be rewarded")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() == 0 {
		t.Fatal("empty catalog")
	}
	if _, err := NewCatalog(append(c.Items(), c.Items()[0])); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
