package arcade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sadopc/wakutore/internal/progression"
)

// seqRoller replays fixed values. Float64 and IntN draw from separate queues
// and repeat the last value once exhausted.
type seqRoller struct {
	floats []float64
	ints   []int
}

func (r *seqRoller) Float64() float64 {
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *seqRoller) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

func newSession(currency int64) *progression.Session {
	eng := progression.NewDefaultEngine(progression.DefaultConfig())
	st := eng.NewState()
	st.Currency = currency
	return progression.NewSession(eng, st, nil)
}

// ============================================================
// Gacha
// ============================================================

func TestRarityThresholds(t *testing.T) {
	tests := []struct {
		roll float64
		want Rarity
	}{
		{0, Legendary},
		{0.99, Legendary},
		{1, Epic},
		{4.99, Epic},
		{5, Rare},
		{14.99, Rare},
		{15, Uncommon},
		{39.99, Uncommon},
		{40, Common},
		{99.99, Common},
	}
	for _, tt := range tests {
		if got := rarityFor(tt.roll); got != tt.want {
			t.Errorf("rarityFor(%v) = %s, want %s", tt.roll, got, tt.want)
		}
	}
}

func TestGachaRollCurrencyPrize(t *testing.T) {
	sess := newSession(500)
	g := NewGacha(DefaultGachaCost, &seqRoller{floats: []float64{0.005}})

	prize, err := g.Roll(sess)
	if err != nil {
		t.Fatal(err)
	}
	if prize.ID != "l1" {
		t.Fatalf("prize = %s, want l1", prize.ID)
	}
	if got := sess.Snapshot().Currency; got != 500-100+10000 {
		t.Fatalf("currency = %d", got)
	}
}

func TestGachaRollXPPrize(t *testing.T) {
	sess := newSession(100)
	g := NewGacha(DefaultGachaCost, &seqRoller{floats: []float64{0.5}, ints: []int{1}})

	prize, err := g.Roll(sess)
	if err != nil {
		t.Fatal(err)
	}
	if prize.ID != "c2" {
		t.Fatalf("prize = %s, want c2", prize.ID)
	}
	st := sess.Snapshot()
	if st.Currency != 0 || st.TotalXP != 50 {
		t.Fatalf("state = %+v", st)
	}
	if earned := sess.DrainEarnings()[progression.SourceArcade]; earned != 50 {
		t.Fatalf("arcade earnings = %v", earned)
	}
}

func TestGachaRollBroke(t *testing.T) {
	sess := newSession(99)
	before := sess.Snapshot()
	g := NewGacha(DefaultGachaCost, &seqRoller{floats: []float64{0.5}})

	if _, err := g.Roll(sess); !errors.Is(err, progression.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !sess.Snapshot().Equal(before) {
		t.Fatal("failed roll changed state")
	}
}

// ============================================================
// Omikuji
// ============================================================

func TestOmikujiRoll(t *testing.T) {
	tests := []struct {
		roll     float64
		rank     int
		label    string
		xp, gold int64
	}{
		{0, 0, "大吉", 300, 600},
		{0.15, 2, "中吉", 600, 1200},
		{0.995, 0, "大凶", 10, 20},
	}
	for _, tt := range tests {
		o := NewOmikuji(&seqRoller{floats: []float64{tt.roll}})
		d := o.Roll(tt.rank)
		if d.Fortune.Label != tt.label || d.XP != tt.xp || d.Currency != tt.gold {
			t.Errorf("roll %v rank %d: got %s %d/%d, want %s %d/%d",
				tt.roll, tt.rank, d.Fortune.Label, d.XP, d.Currency, tt.label, tt.xp, tt.gold)
		}
		if d.LuckyItem == "" || d.LuckyColor == "" {
			t.Error("lucky item and color should be set")
		}
	}
}

func TestOmikujiDrawCredits(t *testing.T) {
	sess := newSession(0)
	o := NewOmikuji(&seqRoller{floats: []float64{0}})
	d, err := o.Draw(sess)
	if err != nil {
		t.Fatal(err)
	}
	st := sess.Snapshot()
	if st.TotalXP != float64(d.XP) || st.Currency != d.Currency {
		t.Fatalf("state = %+v, draw = %+v", st, d)
	}
	if !d.Good() {
		t.Fatal("大吉 should be good")
	}
}

// ============================================================
// Race
// ============================================================

func TestBetValidate(t *testing.T) {
	tests := []struct {
		name string
		bet  Bet
		ok   bool
	}{
		{"win", Bet{Type: BetWin, Picks: []int{1}, Stake: 10}, true},
		{"exacta", Bet{Type: BetExacta, Picks: []int{2, 5}, Stake: 100}, true},
		{"low stake", Bet{Type: BetWin, Picks: []int{1}, Stake: 9}, false},
		{"no horse", Bet{Type: BetPlace, Picks: []int{7}, Stake: 10}, false},
		{"exacta one pick", Bet{Type: BetExacta, Picks: []int{1}, Stake: 10}, false},
		{"exacta same horse", Bet{Type: BetExacta, Picks: []int{3, 3}, Stake: 10}, false},
		{"unknown type", Bet{Type: "trifecta", Picks: []int{1}, Stake: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bet.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidBet) {
				t.Fatalf("expected ErrInvalidBet, got %v", err)
			}
		})
	}
}

func TestPayout(t *testing.T) {
	order := []int{3, 1, 6, 2, 5, 4}
	tests := []struct {
		name string
		bet  Bet
		want int64
	}{
		{"win hit", Bet{Type: BetWin, Picks: []int{3}, Stake: 100}, 600},
		{"win miss", Bet{Type: BetWin, Picks: []int{1}, Stake: 100}, 0},
		{"place third", Bet{Type: BetPlace, Picks: []int{6}, Stake: 100}, 200},
		{"place fourth", Bet{Type: BetPlace, Picks: []int{2}, Stake: 100}, 0},
		{"exacta hit", Bet{Type: BetExacta, Picks: []int{3, 1}, Stake: 10}, 300},
		{"exacta reversed", Bet{Type: BetExacta, Picks: []int{1, 3}, Stake: 10}, 0},
	}
	for _, tt := range tests {
		if got := Payout(tt.bet, order); got != tt.want {
			t.Errorf("%s: payout = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestRaceRunDeterministic(t *testing.T) {
	// Horse 4 gets the highest base speed and every burst is equal.
	floats := []float64{0.1, 0.2, 0.3, 0.9, 0.4, 0.0, 0.5}
	r := NewRace(&seqRoller{floats: floats})
	res := r.Run()

	if diff := cmp.Diff([]int{4, 5, 3, 2, 1, 6}, res.Order); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if len(res.Frames) != raceSteps {
		t.Fatalf("frames = %d, want %d", len(res.Frames), raceSteps)
	}
	for i := 1; i < len(res.Frames); i++ {
		for h := range Horses {
			if res.Frames[i][h] <= res.Frames[i-1][h] {
				t.Fatalf("horse %d moved backwards at step %d", h+1, i)
			}
		}
	}
}

func TestRaceRunIsPermutation(t *testing.T) {
	r := NewRace(NewRoller(42))
	res := r.Run()
	seen := map[int]bool{}
	for _, n := range res.Order {
		seen[n] = true
	}
	if len(res.Order) != len(Horses) || len(seen) != len(Horses) {
		t.Fatalf("order %v is not a permutation", res.Order)
	}
}

func TestPlaceBetAndSettle(t *testing.T) {
	sess := newSession(1000)
	r := NewRace(NewRoller(7))

	bet, err := r.PlaceBet(sess, "20240501_0955", BetWin, []int{2}, 100)
	if err != nil {
		t.Fatal(err)
	}
	if bet.ID == "" || bet.RaceID != "20240501_0955" {
		t.Fatalf("bet = %+v", bet)
	}
	if got := sess.Snapshot().Currency; got != 900 {
		t.Fatalf("currency after stake = %d", got)
	}

	won, err := r.Settle(sess, bet, []int{2, 1, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if won != 600 || sess.Snapshot().Currency != 1500 {
		t.Fatalf("won %d, currency %d", won, sess.Snapshot().Currency)
	}
}

func TestPlaceBetRejected(t *testing.T) {
	sess := newSession(50)
	r := NewRace(NewRoller(7))

	if _, err := r.PlaceBet(sess, "x", BetWin, []int{1}, 100); !errors.Is(err, progression.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := r.PlaceBet(sess, "x", BetWin, []int{1}, 5); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
	if got := sess.Snapshot().Currency; got != 50 {
		t.Fatalf("currency = %d, want 50", got)
	}
}

// ============================================================
// Schedule
// ============================================================

func TestScheduleStatus(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 5, 1, h, m, 0, 0, time.UTC) }
	tests := []struct {
		name   string
		now    time.Time
		status RaceStatus
		id     string
	}{
		{"early morning", at(7, 0), StatusClosed, "20240501_0955"},
		{"voting opens", at(8, 55), StatusOpen, "20240501_0955"},
		{"just before post", at(9, 54), StatusOpen, "20240501_0955"},
		{"running", at(9, 57), StatusRunning, "20240501_0955"},
		{"next race voting", at(10, 0), StatusOpen, "20240501_1055"},
		{"lunch race", at(12, 31), StatusRunning, "20240501_1230"},
		{"after last", at(18, 1), StatusClosed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, slot := ScheduleStatus(DefaultSchedule, tt.now)
			if status != tt.status {
				t.Fatalf("status = %s, want %s", status, tt.status)
			}
			id := ""
			if slot != nil {
				id = slot.ID
			}
			if id != tt.id {
				t.Fatalf("slot = %q, want %q", id, tt.id)
			}
		})
	}
}

func TestPostOf(t *testing.T) {
	post, err := PostOf("20240501_1230", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !post.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("post = %v", post)
	}
	if RaceID(post, PostTime{12, 30}) != "20240501_1230" {
		t.Fatal("RaceID and PostOf disagree")
	}
	if _, err := PostOf("tomorrow", time.UTC); err == nil {
		t.Fatal("expected parse error")
	}
}
