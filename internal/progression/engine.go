package progression

import (
	"fmt"
	"math"
	"time"
)

// Source tags where a reward came from.
type Source string

const (
	SourceClick  Source = "click"
	SourceAuto   Source = "auto"
	SourceBonus  Source = "bonus"
	SourceAction Source = "action"
	SourceArcade Source = "arcade"
)

// Sources lists every reward source in display order.
var Sources = []Source{SourceClick, SourceAuto, SourceBonus, SourceAction, SourceArcade}

// EventKind classifies an Event.
type EventKind string

const (
	EventReward   EventKind = "reward"
	EventRankUp   EventKind = "rank_up"
	EventPurchase EventKind = "purchase"
)

// Event describes something a presentation layer may want to react to. The
// engine only reports events; it never renders anything.
type Event struct {
	Kind      EventKind
	Source    Source
	Amount    float64
	Currency  int64
	FromRank  string
	ToRank    string
	UpgradeID string
}

// PurchaseResult is the outcome of a well-formed purchase attempt.
type PurchaseResult int

const (
	Purchased PurchaseResult = iota
	InsufficientFunds
	AlreadyOwnedUnique
	InvalidUpgrade
)

func (r PurchaseResult) String() string {
	switch r {
	case Purchased:
		return "purchased"
	case InsufficientFunds:
		return "insufficient funds"
	case AlreadyOwnedUnique:
		return "already owned"
	case InvalidUpgrade:
		return "invalid upgrade"
	}
	return fmt.Sprintf("PurchaseResult(%d)", int(r))
}

// Config holds the tuning constants. They are product decisions, so they are
// parameters rather than hard-coded values.
type Config struct {
	StartingCurrency int64
	BaseClickPower   int64
	PriceGrowth      float64 // cost multiplier per owned copy
	IdleCurrencyRate float64 // currency granted per idle XP
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		StartingCurrency: 1000,
		BaseClickPower:   1,
		PriceGrowth:      1.15,
		IdleCurrencyRate: 0.1,
	}
}

// Engine computes progression transitions. It is immutable and safe for
// concurrent use; the states it is handed are never modified in place.
type Engine struct {
	cfg     Config
	ranks   RankTable
	catalog Catalog
}

// NewEngine builds an engine from explicit tables.
func NewEngine(cfg Config, ranks RankTable, catalog Catalog) *Engine {
	return &Engine{cfg: cfg, ranks: ranks, catalog: catalog}
}

// NewDefaultEngine uses the reference rank table and catalog.
func NewDefaultEngine(cfg Config) *Engine {
	return NewEngine(cfg, DefaultRanks(), DefaultCatalog())
}

func (e *Engine) Config() Config   { return e.cfg }
func (e *Engine) Ranks() RankTable { return e.ranks }
func (e *Engine) Catalog() Catalog { return e.catalog }

// NewState returns the state a fresh player starts with.
func (e *Engine) NewState() State {
	return State{
		Currency:   e.cfg.StartingCurrency,
		ClickPower: e.cfg.BaseClickPower,
		Owned:      map[string]int{},
	}
}

// RankOf returns the tier for totalXP.
func (e *Engine) RankOf(totalXP float64) Rank { return e.ranks.Of(totalXP) }

// RankIndex returns the tier position for totalXP.
func (e *Engine) RankIndex(totalXP float64) int { return e.ranks.Index(totalXP) }

// XPToNextRank returns the XP missing to the next tier, 0 when maxed.
func (e *Engine) XPToNextRank(totalXP float64) float64 { return e.ranks.ToNext(totalXP) }

// ApplyReward adds amount to XP and TotalXP. A rank-up event is emitted
// whenever the tier changes; it never gates the reward itself.
func (e *Engine) ApplyReward(s State, amount float64, src Source) (State, []Event, error) {
	if !validAmount(amount) {
		return s, nil, fmt.Errorf("%w: reward amount %v", ErrInvalidInput, amount)
	}
	before := e.ranks.Index(s.TotalXP)

	next := s
	next.XP += amount
	next.TotalXP += amount

	events := []Event{{Kind: EventReward, Source: src, Amount: amount}}
	if after := e.ranks.Index(next.TotalXP); after != before {
		events = append(events, Event{
			Kind:     EventRankUp,
			Source:   src,
			FromRank: e.ranks.At(before).Name,
			ToRank:   e.ranks.At(after).Name,
		})
	}
	return next, events, nil
}

// Click applies one manual action: ClickPower XP and the same in currency.
func (e *Engine) Click(s State) (State, []Event, error) {
	next, events, err := e.ApplyReward(s, float64(s.ClickPower), SourceClick)
	if err != nil {
		return s, nil, err
	}
	next.Currency = addCurrency(next.Currency, s.ClickPower)
	events[0].Currency = s.ClickPower
	return next, events, nil
}

// Tick accrues idle income for elapsed wall-clock time. With no auto rate it
// returns the state unchanged and no events.
func (e *Engine) Tick(s State, elapsed time.Duration) (State, []Event, error) {
	if elapsed < 0 {
		return s, nil, fmt.Errorf("%w: negative elapsed %v", ErrInvalidInput, elapsed)
	}
	if s.AutoRatePerSecond <= 0 || elapsed == 0 {
		return s, nil, nil
	}
	xp := s.AutoRatePerSecond * elapsed.Seconds()
	next, events, err := e.ApplyReward(s, xp, SourceAuto)
	if err != nil {
		return s, nil, err
	}
	gold := floorToInt64(xp * e.cfg.IdleCurrencyRate)
	next.Currency = addCurrency(next.Currency, gold)
	events[0].Currency = gold
	return next, events, nil
}

// Cost is the price of the next copy of an upgrade when owned copies are
// already held: floor(BaseCost * PriceGrowth^owned).
func (e *Engine) Cost(u Upgrade, owned int) int64 {
	return floorToInt64(float64(u.BaseCost) * math.Pow(e.cfg.PriceGrowth, float64(owned)))
}

// NextCost looks up an upgrade and prices it for s.
func (e *Engine) NextCost(s State, id string) (int64, error) {
	u, ok := e.catalog.Lookup(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}
	return e.Cost(u, s.OwnedCount(id)), nil
}

// Purchase buys one copy of an upgrade. Rejections leave s untouched and are
// reported through the result; only an unknown id is an error.
func (e *Engine) Purchase(s State, id string) (State, PurchaseResult, []Event, error) {
	u, ok := e.catalog.Lookup(id)
	if !ok {
		return s, InvalidUpgrade, nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}
	owned := s.OwnedCount(id)
	if u.Unique && owned > 0 {
		return s, AlreadyOwnedUnique, nil, nil
	}
	cost := e.Cost(u, owned)
	if s.Currency < cost {
		return s, InsufficientFunds, nil, nil
	}

	next := s.Clone()
	if next.Owned == nil {
		next.Owned = map[string]int{}
	}
	next.Currency -= cost
	next.Owned[id] = owned + 1
	switch u.Effect.Kind {
	case EffectClick:
		next.ClickPower += int64(math.Round(u.Effect.Amount))
	case EffectAuto:
		next.AutoRatePerSecond += u.Effect.Amount
	}
	ev := Event{Kind: EventPurchase, UpgradeID: id, Currency: cost, Amount: u.Effect.Amount}
	return next, Purchased, []Event{ev}, nil
}

// Spend deducts currency if the state can afford it.
func (e *Engine) Spend(s State, amount int64) (State, bool, error) {
	if amount < 0 {
		return s, false, fmt.Errorf("%w: spend %d", ErrInvalidInput, amount)
	}
	if s.Currency < amount {
		return s, false, nil
	}
	next := s
	next.Currency -= amount
	return next, true, nil
}

// Earn credits currency.
func (e *Engine) Earn(s State, amount int64) (State, error) {
	if amount < 0 {
		return s, fmt.Errorf("%w: earn %d", ErrInvalidInput, amount)
	}
	next := s
	next.Currency = addCurrency(next.Currency, amount)
	return next, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func floorToInt64(v float64) int64 {
	f := math.Floor(v)
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= 0 {
		return 0
	}
	return int64(f)
}

// addCurrency saturates instead of wrapping.
func addCurrency(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
