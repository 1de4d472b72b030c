package store

import "time"

type Setting struct {
	Key   string
	Value string
}

// OperationLog records one board action for the card history view.
type OperationLog struct {
	ID        string
	CardID    string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// DailyXP is XP earned on one day from one source.
type DailyXP struct {
	Date   string // YYYY-MM-DD, local time
	Source string
	XP     float64
}

type GachaRecord struct {
	ID        int64
	PrizeID   string
	Name      string
	Rarity    string
	Kind      string
	Amount    int64
	Cost      int64
	CreatedAt time.Time
}

type BetRecord struct {
	ID        string
	RaceID    string
	Type      string
	Picks     []int
	Stake     int64
	Payout    *int64 // nil until settled
	Finish    []int
	PlacedAt  time.Time
	SettledAt *time.Time
}

// Settled reports whether the bet has been paid out or lost.
func (b BetRecord) Settled() bool { return b.Payout != nil }
