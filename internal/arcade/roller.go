// Package arcade holds the mini-games that trade currency for rewards. Every
// game settles through a progression.Session so a spend and its payout are
// applied together or not at all.
package arcade

import (
	"math/rand/v2"
	"time"
)

// Roller is the randomness source. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
	IntN(n int) int
}

// NewRoller returns a PCG-backed roller. A zero seed uses the clock.
func NewRoller(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
