package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/sadopc/wakutore/internal/progression"
)

// viewState represents the currently active view.
type viewState int

const (
	viewBoard viewState = iota
	viewClicker
	viewArcade
	viewReports
	viewSettings
)

var viewNames = []string{"Board", "Clicker", "Arcade", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type savedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
}

// --- Events ---

// EventFeed buffers session events until the UI drains them on its next
// update. It is the Notifier the TUI hands to the session.
type EventFeed struct {
	mu     sync.Mutex
	events []progression.Event
}

func NewEventFeed() *EventFeed { return &EventFeed{} }

func (f *EventFeed) Notify(e progression.Event) {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
}

// Drain returns and clears the buffered events.
func (f *EventFeed) Drain() []progression.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.events
	f.events = nil
	return out
}

// --- Helpers ---

// formatXP renders large XP totals with a Japanese unit suffix.
func formatXP(v float64) string {
	units := []struct {
		div  float64
		name string
	}{
		{1e16, "京"}, {1e12, "兆"}, {1e8, "億"}, {1e4, "万"},
	}
	for _, u := range units {
		if v >= u.div {
			return fmt.Sprintf("%.2f%s", v/u.div, u.name)
		}
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatCoins groups digits in threes.
func formatCoins(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// progressBar draws a fixed-width bar for frac in [0,1].
func progressBar(frac float64, width int) string {
	if width < 1 {
		return ""
	}
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// truncate shortens s to w terminal cells; CJK runes count double.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
