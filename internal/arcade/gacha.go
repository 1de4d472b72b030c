package arcade

import (
	"fmt"

	"github.com/sadopc/wakutore/internal/progression"
)

type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

func (r Rarity) Label() string {
	switch r {
	case Uncommon:
		return "アンコモン"
	case Rare:
		return "レア"
	case Epic:
		return "エピック"
	case Legendary:
		return "レジェンダリー"
	}
	return "コモン"
}

// RewardKind says what a prize pays out in.
type RewardKind string

const (
	RewardCurrency RewardKind = "currency"
	RewardXP       RewardKind = "xp"
)

type Prize struct {
	ID     string
	Name   string
	Rarity Rarity
	Kind   RewardKind
	Amount int64
}

// DefaultGachaCost is the price of one draw.
const DefaultGachaCost = 100

var defaultPrizes = []Prize{
	{ID: "c1", Name: "コイン +100", Rarity: Common, Kind: RewardCurrency, Amount: 100},
	{ID: "c2", Name: "XP +50", Rarity: Common, Kind: RewardXP, Amount: 50},
	{ID: "c3", Name: "コイン +200", Rarity: Common, Kind: RewardCurrency, Amount: 200},
	{ID: "u1", Name: "コイン +500", Rarity: Uncommon, Kind: RewardCurrency, Amount: 500},
	{ID: "u2", Name: "XP +200", Rarity: Uncommon, Kind: RewardXP, Amount: 200},
	{ID: "r1", Name: "コイン +1000", Rarity: Rare, Kind: RewardCurrency, Amount: 1000},
	{ID: "r2", Name: "XP +500", Rarity: Rare, Kind: RewardXP, Amount: 500},
	{ID: "e1", Name: "コイン +3000", Rarity: Epic, Kind: RewardCurrency, Amount: 3000},
	{ID: "l1", Name: "大当たり！コイン +10000", Rarity: Legendary, Kind: RewardCurrency, Amount: 10000},
}

// Gacha is a paid lottery over a fixed prize pool.
type Gacha struct {
	Cost   int64
	prizes map[Rarity][]Prize
	rng    Roller
}

func NewGacha(cost int64, rng Roller) *Gacha {
	g := &Gacha{Cost: cost, prizes: map[Rarity][]Prize{}, rng: rng}
	for _, p := range defaultPrizes {
		g.prizes[p.Rarity] = append(g.prizes[p.Rarity], p)
	}
	return g
}

// rarityFor maps a roll in [0,100) onto a tier: 1% legendary, 4% epic,
// 10% rare, 25% uncommon, the rest common.
func rarityFor(roll float64) Rarity {
	switch {
	case roll < 1:
		return Legendary
	case roll < 5:
		return Epic
	case roll < 15:
		return Rare
	case roll < 40:
		return Uncommon
	}
	return Common
}

// Draw picks a prize without touching any state.
func (g *Gacha) Draw() Prize {
	pool := g.prizes[rarityFor(g.rng.Float64()*100)]
	return pool[g.rng.IntN(len(pool))]
}

// Roll charges the draw cost and pays out the prize in one session update.
// It fails with progression.ErrInsufficientFunds when the player is broke.
func (g *Gacha) Roll(sess *progression.Session) (Prize, error) {
	var prize Prize
	eng := sess.Engine()
	err := sess.Update(func(s progression.State) (progression.State, []progression.Event, error) {
		next, ok, err := eng.Spend(s, g.Cost)
		if err != nil {
			return s, nil, err
		}
		if !ok {
			return s, nil, fmt.Errorf("gacha costs %d: %w", g.Cost, progression.ErrInsufficientFunds)
		}
		prize = g.Draw()
		return payout(eng, next, prize.Kind, prize.Amount)
	})
	return prize, err
}

func payout(eng *progression.Engine, s progression.State, kind RewardKind, amount int64) (progression.State, []progression.Event, error) {
	switch kind {
	case RewardXP:
		return eng.ApplyReward(s, float64(amount), progression.SourceArcade)
	default:
		next, err := eng.Earn(s, amount)
		if err != nil {
			return s, nil, err
		}
		return next, []progression.Event{{
			Kind:     progression.EventReward,
			Source:   progression.SourceArcade,
			Currency: amount,
		}}, nil
	}
}
