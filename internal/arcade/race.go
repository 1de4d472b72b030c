package arcade

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/wakutore/internal/progression"
)

type Horse struct {
	Number int
	Name   string
	Icon   string
}

var Horses = []Horse{
	{1, "サンダーボルト", "🏇"},
	{2, "ゴールドラッシュ", "🐴"},
	{3, "スターダスト", "🌟"},
	{4, "ブレイズウィンド", "🔥"},
	{5, "アクアマリン", "💎"},
	{6, "シャドウナイト", "🌙"},
}

// HorseByNumber returns the horse wearing number n.
func HorseByNumber(n int) (Horse, bool) {
	for _, h := range Horses {
		if h.Number == n {
			return h, true
		}
	}
	return Horse{}, false
}

type BetType string

const (
	BetWin    BetType = "win"
	BetPlace  BetType = "place"
	BetExacta BetType = "exacta"
)

var BetTypes = []BetType{BetWin, BetPlace, BetExacta}

func (t BetType) Label() string {
	switch t {
	case BetPlace:
		return "複勝"
	case BetExacta:
		return "馬単"
	}
	return "単勝"
}

// Multiplier is the payout factor on a winning stake.
func (t BetType) Multiplier() int64 {
	switch t {
	case BetWin:
		return 6
	case BetPlace:
		return 2
	case BetExacta:
		return 30
	}
	return 0
}

// Picks is how many horses the bet type needs.
func (t BetType) Picks() int {
	if t == BetExacta {
		return 2
	}
	return 1
}

const (
	MinStake  = 10
	raceSteps = 60
)

var ErrInvalidBet = errors.New("invalid bet")

type Bet struct {
	ID       string
	RaceID   string
	Type     BetType
	Picks    []int
	Stake    int64
	PlacedAt time.Time
}

// RaceResult carries the finishing order and the per-step positions so a
// view can replay the race.
type RaceResult struct {
	Order  []int
	Frames [][]float64
}

type Race struct {
	rng Roller
	now func() time.Time
}

func NewRace(rng Roller) *Race {
	return &Race{rng: rng, now: time.Now}
}

// Validate checks a bet's shape without touching any state.
func (b Bet) Validate() error {
	if b.Type.Multiplier() == 0 {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidBet, b.Type)
	}
	if len(b.Picks) != b.Type.Picks() {
		return fmt.Errorf("%w: %s needs %d horses, got %d", ErrInvalidBet, b.Type, b.Type.Picks(), len(b.Picks))
	}
	for _, n := range b.Picks {
		if _, ok := HorseByNumber(n); !ok {
			return fmt.Errorf("%w: no horse %d", ErrInvalidBet, n)
		}
	}
	if b.Type == BetExacta && b.Picks[0] == b.Picks[1] {
		return fmt.Errorf("%w: exacta needs two different horses", ErrInvalidBet)
	}
	if b.Stake < MinStake {
		return fmt.Errorf("%w: stake %d below minimum %d", ErrInvalidBet, b.Stake, MinStake)
	}
	return nil
}

// PlaceBet validates the bet and takes the stake from the session.
func (r *Race) PlaceBet(sess *progression.Session, raceID string, t BetType, picks []int, stake int64) (Bet, error) {
	b := Bet{
		ID:       uuid.NewString(),
		RaceID:   raceID,
		Type:     t,
		Picks:    slices.Clone(picks),
		Stake:    stake,
		PlacedAt: r.now(),
	}
	if err := b.Validate(); err != nil {
		return Bet{}, err
	}
	eng := sess.Engine()
	err := sess.Update(func(s progression.State) (progression.State, []progression.Event, error) {
		next, ok, err := eng.Spend(s, stake)
		if err != nil {
			return s, nil, err
		}
		if !ok {
			return s, nil, fmt.Errorf("stake %d: %w", stake, progression.ErrInsufficientFunds)
		}
		return next, nil, nil
	})
	if err != nil {
		return Bet{}, err
	}
	return b, nil
}

// Run simulates one race. Each horse gets a base speed in [0.5,1) and gains
// speed plus a [0,2) burst on every step; the furthest horse wins.
func (r *Race) Run() RaceResult {
	n := len(Horses)
	speed := make([]float64, n)
	for i := range speed {
		speed[i] = 0.5 + r.rng.Float64()*0.5
	}
	pos := make([]float64, n)
	frames := make([][]float64, 0, raceSteps)
	for step := 0; step < raceSteps; step++ {
		for i := range pos {
			pos[i] += speed[i] + r.rng.Float64()*2
		}
		frames = append(frames, slices.Clone(pos))
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case pos[a] > pos[b]:
			return -1
		case pos[a] < pos[b]:
			return 1
		}
		return 0
	})
	order := make([]int, n)
	for i, j := range idx {
		order[i] = Horses[j].Number
	}
	return RaceResult{Order: order, Frames: frames}
}

// Payout is what a bet returns for a finishing order; zero on a loss.
func Payout(b Bet, order []int) int64 {
	if len(order) == 0 || len(b.Picks) == 0 {
		return 0
	}
	won := false
	switch b.Type {
	case BetWin:
		won = order[0] == b.Picks[0]
	case BetPlace:
		won = slices.Contains(order[:min(3, len(order))], b.Picks[0])
	case BetExacta:
		won = len(order) >= 2 && len(b.Picks) == 2 && order[0] == b.Picks[0] && order[1] == b.Picks[1]
	}
	if !won {
		return 0
	}
	return b.Stake * b.Type.Multiplier()
}

// Settle credits the payout for b to the session and returns it.
func (r *Race) Settle(sess *progression.Session, b Bet, order []int) (int64, error) {
	amount := Payout(b, order)
	if amount == 0 {
		return 0, nil
	}
	eng := sess.Engine()
	err := sess.Update(func(s progression.State) (progression.State, []progression.Event, error) {
		return payout(eng, s, RewardCurrency, amount)
	})
	return amount, err
}
