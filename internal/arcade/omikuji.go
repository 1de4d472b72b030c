package arcade

import (
	"math"

	"github.com/sadopc/wakutore/internal/progression"
)

// Fortune is one omikuji outcome. Weight is relative; Bonus scales the payout.
type Fortune struct {
	Label  string
	Weight float64
	Bonus  float64
}

var defaultFortunes = []Fortune{
	{Label: "大吉", Weight: 10, Bonus: 3},
	{Label: "中吉", Weight: 20, Bonus: 2},
	{Label: "小吉", Weight: 25, Bonus: 1.5},
	{Label: "吉", Weight: 25, Bonus: 1.2},
	{Label: "末吉", Weight: 10, Bonus: 1},
	{Label: "凶", Weight: 7, Bonus: 0.5},
	{Label: "大凶", Weight: 3, Bonus: 0.1},
}

var luckyItems = []string{"ボールペン", "付箋", "缶コーヒー", "ホッチキス", "USBメモリ", "観葉植物", "名刺入れ", "ハンカチ"}

var luckyColors = []string{"赤", "青", "緑", "黄", "紫", "白", "黒", "金"}

// Reading is the outcome of one fortune draw.
type Reading struct {
	Fortune    Fortune
	LuckyItem  string
	LuckyColor string
	XP         int64
	Currency   int64
}

// Good reports whether the draw deserves a celebration.
func (d Reading) Good() bool { return d.Fortune.Bonus >= 2 }

// Omikuji is a free weighted fortune draw whose payout grows with rank.
type Omikuji struct {
	fortunes []Fortune
	rng      Roller
}

func NewOmikuji(rng Roller) *Omikuji {
	return &Omikuji{fortunes: defaultFortunes, rng: rng}
}

func (o *Omikuji) pick() Fortune {
	var total float64
	for _, f := range o.fortunes {
		total += f.Weight
	}
	r := o.rng.Float64() * total
	for _, f := range o.fortunes {
		if r < f.Weight {
			return f
		}
		r -= f.Weight
	}
	return o.fortunes[len(o.fortunes)-1]
}

// Roll draws a fortune for rankIndex without applying it. The base payout is
// (rankIndex+1)*100; XP is base*bonus and currency twice that, both floored.
func (o *Omikuji) Roll(rankIndex int) Reading {
	f := o.pick()
	base := float64(rankIndex+1) * 100
	return Reading{
		Fortune:    f,
		LuckyItem:  luckyItems[o.rng.IntN(len(luckyItems))],
		LuckyColor: luckyColors[o.rng.IntN(len(luckyColors))],
		XP:         int64(math.Floor(base * f.Bonus)),
		Currency:   int64(math.Floor(base * f.Bonus * 2)),
	}
}

// Draw rolls against the session's current rank and credits the result.
func (o *Omikuji) Draw(sess *progression.Session) (Reading, error) {
	var d Reading
	eng := sess.Engine()
	err := sess.Update(func(s progression.State) (progression.State, []progression.Event, error) {
		d = o.Roll(eng.RankIndex(s.TotalXP))
		next, events, err := eng.ApplyReward(s, float64(d.XP), progression.SourceBonus)
		if err != nil {
			return s, nil, err
		}
		if next, err = eng.Earn(next, d.Currency); err != nil {
			return s, nil, err
		}
		events[0].Currency = d.Currency
		return next, events, nil
	})
	return d, err
}
