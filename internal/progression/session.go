package progression

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Notifier receives events produced by a Session. It is called outside the
// session lock, in the order the events were produced.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Session owns one player's State and serialises every mutation. The engine
// stays pure; the session is the single place that reads, transforms and
// writes back the state.
type Session struct {
	engine   *Engine
	notifier Notifier

	mu       sync.Mutex
	state    State
	dirty    bool
	earnings map[Source]float64
	lastTick time.Time
	now      func() time.Time
}

// NewSession wraps s. A nil notifier drops events.
func NewSession(e *Engine, s State, n Notifier) *Session {
	if s.Owned == nil {
		s.Owned = map[string]int{}
	}
	return &Session{
		engine:   e,
		notifier: n,
		state:    s,
		earnings: map[Source]float64{},
		now:      time.Now,
	}
}

func (s *Session) Engine() *Engine { return s.engine }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dirty reports whether the state changed since the last MarkClean.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkClean clears the dirty flag after a successful save.
func (s *Session) MarkClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Checkout returns a copy of the state and whether it changed since the last
// checkout, clearing the dirty flag. Call MarkDirty if persisting it fails.
func (s *Session) Checkout() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty := s.dirty
	s.dirty = false
	return s.state.Clone(), dirty
}

func (s *Session) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// DrainEarnings returns XP earned per source since the previous drain.
func (s *Session) DrainEarnings() map[Source]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.earnings
	s.earnings = map[Source]float64{}
	return out
}

// Update runs fn against the current state under the session lock. The
// returned state replaces the current one only when fn returns a nil error,
// which makes multi-step operations (spend then reward) all-or-nothing.
func (s *Session) Update(fn func(State) (State, []Event, error)) error {
	s.mu.Lock()
	next, events, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.commit(next, events)
	s.mu.Unlock()
	s.emit(events)
	return nil
}

// commit must be called with mu held.
func (s *Session) commit(next State, events []Event) {
	if len(events) > 0 || !next.Equal(s.state) {
		s.dirty = true
	}
	s.state = next
	for _, ev := range events {
		if ev.Kind == EventReward {
			s.earnings[ev.Source] += ev.Amount
		}
	}
}

func (s *Session) emit(events []Event) {
	if s.notifier == nil {
		return
	}
	for _, ev := range events {
		s.notifier.Notify(ev)
	}
}

// Click applies one manual click.
func (s *Session) Click() error {
	return s.Update(s.engine.Click)
}

// Reward grants amount XP from src.
func (s *Session) Reward(amount float64, src Source) error {
	return s.Update(func(st State) (State, []Event, error) {
		return s.engine.ApplyReward(st, amount, src)
	})
}

// RewardAction grants the XP for a board action.
func (s *Session) RewardAction(a Action) error {
	xp, ok := ActionReward(a)
	if !ok {
		return fmt.Errorf("%w: action %q", ErrInvalidInput, a)
	}
	return s.Reward(xp, SourceAction)
}

// Tick accrues idle income for elapsed.
func (s *Session) Tick(elapsed time.Duration) error {
	return s.Update(func(st State) (State, []Event, error) {
		return s.engine.Tick(st, elapsed)
	})
}

// Purchase buys one copy of an upgrade.
func (s *Session) Purchase(id string) (PurchaseResult, error) {
	var res PurchaseResult
	err := s.Update(func(st State) (State, []Event, error) {
		next, r, events, err := s.engine.Purchase(st, id)
		res = r
		return next, events, err
	})
	return res, err
}

// Reset replaces the state with a fresh one.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = s.engine.NewState()
	s.dirty = true
	s.mu.Unlock()
}

// Run ticks the session every interval until ctx is cancelled. Each tick is
// credited with the wall-clock time since the previous one, so a delayed
// tick does not lose income. No tick fires after Run returns.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: tick interval %v", ErrInvalidInput, interval)
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	s.mu.Lock()
	s.lastTick = s.now()
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.Tick(s.sinceLastTick()); err != nil {
				return err
			}
		}
	}
}

// TickNow credits the time elapsed since the previous TickNow or Run tick.
// The first call only starts the clock.
func (s *Session) TickNow() error {
	return s.Tick(s.sinceLastTick())
}

func (s *Session) sinceLastTick() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.lastTick.IsZero() {
		s.lastTick = now
		return 0
	}
	d := now.Sub(s.lastTick)
	s.lastTick = now
	if d < 0 {
		return 0
	}
	return d
}
