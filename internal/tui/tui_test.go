package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/arcade"
	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession() *progression.Session {
	e := progression.NewDefaultEngine(progression.DefaultConfig())
	return progression.NewSession(e, e.NewState(), nil)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedBoard(t *testing.T, s *store.Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	snap := board.Snapshot{
		Lists: []board.List{
			{ID: "todo", Name: "Todo", Pos: 1},
			{ID: "done", Name: "Done", Pos: 2},
			{ID: "old", Name: "Archive", Pos: 3, Closed: true},
		},
		Cards: []board.Card{
			{ID: "c1", Name: "Alpha install", ListID: "todo", Pos: 2, LastActivity: base},
			{ID: "c2", Name: "Beta rollout", ListID: "todo", Pos: 1, LastActivity: base.Add(time.Hour)},
			{ID: "c3", Name: "Gamma review", ListID: "done", Pos: 1, LastActivity: base.Add(2 * time.Hour)},
		},
	}
	if err := s.ReplaceBoard(snap); err != nil {
		t.Fatal(err)
	}
}

func loadedBoard(t *testing.T) (boardModel, *store.Store, *progression.Session) {
	t.Helper()
	s := newTestStore(t)
	seedBoard(t, s)
	sess := newTestSession()
	b := newBoardModel(s, sess, zap.NewNop(), board.FilterConfig{SortMode: board.SortOriginal})
	b.setSize(120, 40)
	b, _ = b.update(b.loadData()())
	return b, s, sess
}

func cardCount(cols []board.Column) int {
	n := 0
	for _, c := range cols {
		n += len(c.Cards)
	}
	return n
}

// ============================================================
// Helpers
// ============================================================

func TestEventFeed(t *testing.T) {
	f := NewEventFeed()
	if got := f.Drain(); len(got) != 0 {
		t.Fatalf("empty feed drained %d events", len(got))
	}
	f.Notify(progression.Event{Kind: progression.EventReward})
	f.Notify(progression.Event{Kind: progression.EventRankUp, ToRank: "村人Lv.1"})

	got := f.Drain()
	if len(got) != 2 || got[1].Kind != progression.EventRankUp {
		t.Fatalf("drain = %+v", got)
	}
	if len(f.Drain()) != 0 {
		t.Fatal("drain should clear the feed")
	}
}

func TestFormatXP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{12.5, "12.5"},
		{9999, "9999"},
		{15000, "1.50万"},
		{230000000, "2.30億"},
		{3e12, "3.00兆"},
		{1e16, "1.00京"},
	}
	for _, tt := range tests {
		if got := formatXP(tt.in); got != tt.want {
			t.Errorf("formatXP(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCoins(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := formatCoins(tt.in); got != tt.want {
			t.Errorf("formatCoins(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		frac  float64
		width int
		want  string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{2, 3, "███"},
		{-1, 3, "░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := progressBar(tt.frac, tt.width); got != tt.want {
			t.Errorf("progressBar(%v, %d) = %q, want %q", tt.frac, tt.width, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("got %q", got)
	}
	// wide runes take two cells each
	if got := truncate("転生者です", 5); got != "転生…" {
		t.Errorf("got %q", got)
	}
	if got := truncate("x", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		in      string
		wantErr bool
	}{
		{"stake ok", validateStake, "100", false},
		{"stake min", validateStake, "10", false},
		{"stake low", validateStake, "9", true},
		{"stake text", validateStake, "ten", true},
		{"int ok", intAtLeast(1), " 3 ", false},
		{"int low", intAtLeast(1), "0", true},
		{"int float", intAtLeast(0), "1.5", true},
		{"float ok", floatAtLeast(1), "1.15", false},
		{"float low", floatAtLeast(1), "0.9", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ============================================================
// Board
// ============================================================

func TestBoardLoadSkipsClosedLists(t *testing.T) {
	b, _, _ := loadedBoard(t)
	if len(b.columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(b.columns))
	}
	if b.columns[0].List.ID != "todo" || b.columns[1].List.ID != "done" {
		t.Fatalf("column order = %s, %s", b.columns[0].List.ID, b.columns[1].List.ID)
	}
	// original order is import order
	if got := b.columns[0].Cards[0].ID; got != "c1" {
		t.Fatalf("first todo card = %s, want c1", got)
	}
}

func TestBoardSortCycles(t *testing.T) {
	b, _, _ := loadedBoard(t)
	b, cmd := b.update(runes("o"))
	if b.filter.SortMode != board.SortOriginal.Next() {
		t.Fatalf("sort = %s", b.filter.SortMode)
	}
	if cmd == nil {
		t.Fatal("sort change should save the filter")
	}
}

func TestBoardPinnedOnlyAndReset(t *testing.T) {
	b, _, _ := loadedBoard(t)
	b, _ = b.update(runes("P"))
	if !b.filter.PinnedOnly {
		t.Fatal("pinned-only should be on")
	}
	if n := cardCount(b.columns); n != 0 {
		t.Fatalf("visible cards = %d, want 0", n)
	}

	b, _ = b.update(runes("r"))
	if b.filter.IsActive() {
		t.Fatalf("filter still active: %+v", b.filter)
	}
	if n := cardCount(b.columns); n != 3 {
		t.Fatalf("visible cards = %d, want 3", n)
	}
}

func TestBoardSearchLiveAndCancel(t *testing.T) {
	b, _, _ := loadedBoard(t)
	b, _ = b.update(runes("/"))
	if !b.capturing() {
		t.Fatal("search should capture input")
	}
	b, _ = b.update(runes("gamma"))
	if n := cardCount(b.columns); n != 1 {
		t.Fatalf("visible cards = %d, want 1", n)
	}

	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEsc})
	if b.capturing() {
		t.Fatal("esc should end search")
	}
	if b.filter.SearchText != "" || cardCount(b.columns) != 3 {
		t.Fatalf("cancel should restore the previous query, got %q", b.filter.SearchText)
	}
}

func TestBoardListFilter(t *testing.T) {
	b, _, _ := loadedBoard(t)
	b.filter.Lists = []string{"done"}
	b.recompute()
	if len(b.columns) != 1 || b.columns[0].List.ID != "done" {
		t.Fatalf("columns = %+v", b.columns)
	}
}

func TestBoardTogglePinRewards(t *testing.T) {
	b, s, sess := loadedBoard(t)
	c, ok := b.selected()
	if !ok {
		t.Fatal("no card selected")
	}

	msg := b.togglePin(c)()
	if _, ok := msg.(boardChangedMsg); !ok {
		t.Fatalf("msg = %#v", msg)
	}
	if sess.Snapshot().TotalXP <= 0 {
		t.Fatal("pinning should reward XP")
	}
	ops, err := s.ListOperations(c.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Action != "pin" {
		t.Fatalf("ops = %+v", ops)
	}

	b, _ = b.update(b.loadData()())
	c, _ = b.selected()
	if !c.Pinned() {
		t.Fatal("selected card should be pinned after reload")
	}
	xp := sess.Snapshot().TotalXP
	b.togglePin(c)()
	if sess.Snapshot().TotalXP != xp {
		t.Fatal("unpinning should not reward")
	}
}

// ============================================================
// Clicker
// ============================================================

func TestClickerClickAndBuy(t *testing.T) {
	sess := newTestSession()
	c := newClickerModel(sess)
	c.setSize(100, 40)

	c, _ = c.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if got := sess.Snapshot().TotalXP; got != 1 {
		t.Fatalf("TotalXP = %v, want 1", got)
	}

	first := sess.Engine().Catalog().Items()[0]
	before := sess.Snapshot().Currency
	_, cmd := c.update(runes("b"))
	if cmd == nil {
		t.Fatal("buy should report status")
	}
	st := sess.Snapshot()
	if st.OwnedCount(first.ID) != 1 {
		t.Fatalf("owned %s = %d", first.ID, st.OwnedCount(first.ID))
	}
	if st.Currency != before-first.BaseCost {
		t.Fatalf("currency = %d, want %d", st.Currency, before-first.BaseCost)
	}
	if msg, ok := cmd().(statusMsg); !ok || msg.isError {
		t.Fatalf("status = %#v", cmd())
	}
}

func TestClickerBuyWithoutFunds(t *testing.T) {
	sess := newTestSession()
	c := newClickerModel(sess)
	c.setSize(100, 40)
	items := sess.Engine().Catalog().Items()
	c.cursor = len(items) - 1

	_, cmd := c.update(runes("b"))
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError || msg.text != "Not enough coins" {
		t.Fatalf("status = %#v", msg)
	}
	if sess.Snapshot().OwnedCount(items[len(items)-1].ID) != 0 {
		t.Fatal("failed purchase must not change ownership")
	}
}

// ============================================================
// Arcade
// ============================================================

func placeTestBet(t *testing.T, s *store.Store, sess *progression.Session, race *arcade.Race, raceID string) arcade.Bet {
	t.Helper()
	bet, err := race.PlaceBet(sess, raceID, arcade.BetPlace, []int{1}, 100)
	if err != nil {
		t.Fatal(err)
	}
	err = s.RecordBet(store.BetRecord{
		ID: bet.ID, RaceID: bet.RaceID, Type: string(bet.Type),
		Picks: bet.Picks, Stake: bet.Stake, PlacedAt: bet.PlacedAt,
	})
	if err != nil {
		t.Fatal(err)
	}
	return bet
}

func TestSettleDueRaces(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession()
	race := arcade.NewRace(arcade.NewRoller(7))
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	placeTestBet(t, s, sess, race, "20260102_1055")
	placeTestBet(t, s, sess, race, "20260102_1055")
	placeTestBet(t, s, sess, race, "20260102_1555")

	msg := settleDueRaces(s, sess, race, now)
	if msg.err != nil {
		t.Fatal(msg.err)
	}
	if msg.raceID != "20260102_1055" || msg.bets != 2 {
		t.Fatalf("settled %s with %d bets", msg.raceID, msg.bets)
	}
	if len(msg.result.Order) == 0 {
		t.Fatal("missing finishing order")
	}

	pending, err := s.RecentBets(0, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].RaceID != "20260102_1555" {
		t.Fatalf("pending = %+v", pending)
	}

	// nothing else is due
	again := settleDueRaces(s, sess, race, now)
	if again.err != nil || again.bets != 0 {
		t.Fatalf("second settle = %+v", again)
	}
}

func TestSettleDueRacesSharesOrder(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession()
	race := arcade.NewRace(arcade.NewRoller(3))
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	placeTestBet(t, s, sess, race, "20260102_0955")
	placeTestBet(t, s, sess, race, "20260102_0955")
	settleDueRaces(s, sess, race, now)

	bets, err := s.RecentBets(0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(bets) != 2 {
		t.Fatalf("bets = %d", len(bets))
	}
	a, b := bets[0].Finish, bets[1].Finish
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("finish orders = %v, %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bets on one race saw different orders: %v vs %v", a, b)
		}
	}
}

func TestArcadeHasDueBets(t *testing.T) {
	m := newArcadeModel(newTestStore(t), newTestSession(), zap.NewNop(), 100, 1)
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.bets = []store.BetRecord{{ID: "x", RaceID: "20260102_1555"}}
	if m.hasDueBets() {
		t.Fatal("future race should not be due")
	}
	m.bets = append(m.bets, store.BetRecord{ID: "y", RaceID: "20260102_1055"})
	if !m.hasDueBets() {
		t.Fatal("past race should be due")
	}
	paid := int64(0)
	m.bets[1].Payout = &paid
	if m.hasDueBets() {
		t.Fatal("settled bets are never due")
	}
}

func TestOmikujiOncePerDay(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession()
	m := newArcadeModel(s, sess, zap.NewNop(), 100, 1)
	day := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return day }

	m, _ = m.update(runes("o"))
	if m.lastReading == nil {
		t.Fatal("first draw should produce a reading")
	}
	after := sess.Snapshot()

	m, cmd := m.update(runes("o"))
	if msg := cmd().(statusMsg); !strings.Contains(msg.text, "Already") {
		t.Fatalf("second draw status = %q", msg.text)
	}
	if !sess.Snapshot().Equal(after) {
		t.Fatal("second draw must not change state")
	}

	day = day.AddDate(0, 0, 1)
	m.lastReading = nil
	m, _ = m.update(runes("o"))
	if m.lastReading == nil {
		t.Fatal("next day should allow a draw")
	}
}

// ============================================================
// Reports
// ============================================================

func TestReportsDateRange(t *testing.T) {
	r := newReportsModel(newTestStore(t))
	r.now = func() time.Time { return time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC) }

	from, to := r.dateRange()
	if from.Format("2006-01-02") != "2026-03-09" || to.Format("2006-01-02") != "2026-03-15" {
		t.Fatalf("range = %s..%s", from, to)
	}

	r.offset = 1
	from, to = r.dateRange()
	if from.Format("2006-01-02") != "2026-03-02" || to.Format("2006-01-02") != "2026-03-08" {
		t.Fatalf("range = %s..%s", from, to)
	}
}

func TestReportsBars(t *testing.T) {
	r := newReportsModel(newTestStore(t))
	r.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	r.buckets = []store.DailyXP{
		{Date: "2026-03-10", Source: "click", XP: 5},
		{Date: "2026-03-10", Source: "auto", XP: 7},
		{Date: "2026-03-15", Source: "arcade", XP: 2},
	}

	bars := r.bars()
	if len(bars) != reportDays {
		t.Fatalf("bars = %d, want %d", len(bars), reportDays)
	}
	if got := len(bars[1].Values); got != 2 {
		t.Fatalf("2026-03-10 segments = %d, want 2", got)
	}
	// segments follow source order: click before auto
	if bars[1].Values[0].Name != "click" || bars[1].Values[0].Value != 5 {
		t.Fatalf("first segment = %+v", bars[1].Values[0])
	}
	if bars[0].Values[0].Value != 0 {
		t.Fatal("empty day should have a zero bar")
	}
	if bars[6].Values[0].Name != "arcade" {
		t.Fatalf("last day = %+v", bars[6].Values)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsResetProgression(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession()
	if err := sess.Click(); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveProgression(sess.Snapshot()); err != nil {
		t.Fatal(err)
	}

	m := newSettingsModel(s, sess, store.Tunables{Engine: progression.DefaultConfig()})
	msg := m.resetProgression()()
	if st, ok := msg.(statusMsg); !ok || st.isError {
		t.Fatalf("msg = %#v", msg)
	}
	if got := sess.Snapshot().TotalXP; got != 0 {
		t.Fatalf("session XP after reset = %v", got)
	}
	if !sess.Dirty() {
		t.Fatal("reset session should be dirty")
	}
	if _, ok, err := s.LoadProgression(); err != nil || ok {
		t.Fatalf("saved state after reset: ok=%v err=%v", ok, err)
	}
}

// ============================================================
// App
// ============================================================

func newTestApp(t *testing.T, autosave time.Duration) (App, *store.Store, *progression.Session, *EventFeed) {
	t.Helper()
	s := newTestStore(t)
	feed := NewEventFeed()
	e := progression.NewDefaultEngine(progression.DefaultConfig())
	sess := progression.NewSession(e, e.NewState(), feed)
	app := NewApp(Options{
		Store:            s,
		Session:          sess,
		Feed:             feed,
		Tunables:         store.Tunables{Engine: progression.DefaultConfig(), GachaCost: 100, DefaultSort: board.SortOriginal},
		Filter:           board.FilterConfig{SortMode: board.SortOriginal},
		Seed:             1,
		TickInterval:     time.Second,
		AutosaveInterval: autosave,
		ExportDir:        t.TempDir(),
	})
	return app, s, sess, feed
}

func send(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func TestAppTabSwitching(t *testing.T) {
	app, _, _, _ := newTestApp(t, time.Minute)
	if app.activeView != viewBoard {
		t.Fatal("should start on the board")
	}

	app = send(app, runes("2"))
	if app.activeView != viewClicker {
		t.Fatalf("view = %d, want clicker", app.activeView)
	}
	app = send(app, runes("5"))
	if app.activeView != viewSettings {
		t.Fatalf("view = %d, want settings", app.activeView)
	}
	app = send(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewBoard {
		t.Fatalf("tab should wrap to board, got %d", app.activeView)
	}
}

func TestAppClickRoutesToClicker(t *testing.T) {
	app, _, sess, _ := newTestApp(t, time.Minute)
	app = send(app, runes("2"))
	app = send(app, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if sess.Snapshot().TotalXP != 1 {
		t.Fatalf("TotalXP = %v", sess.Snapshot().TotalXP)
	}
}

func TestAppAutosaveInterval(t *testing.T) {
	app, _, _, _ := newTestApp(t, 3*time.Second)
	app = send(app, tickMsg(time.Now()))
	app = send(app, tickMsg(time.Now()))
	if app.sinceSave != 2*time.Second {
		t.Fatalf("sinceSave = %v", app.sinceSave)
	}
	app = send(app, tickMsg(time.Now()))
	if app.sinceSave != 0 {
		t.Fatalf("autosave should reset the counter, got %v", app.sinceSave)
	}
}

func TestAppSaveCheckpoints(t *testing.T) {
	app, s, sess, _ := newTestApp(t, time.Minute)
	for i := 0; i < 3; i++ {
		if err := sess.Click(); err != nil {
			t.Fatal(err)
		}
	}

	msg := app.saveCmd()()
	if saved, ok := msg.(savedMsg); !ok || saved.err != nil {
		t.Fatalf("save = %#v", msg)
	}
	st, ok, err := s.LoadProgression()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if st.TotalXP != 3 {
		t.Fatalf("TotalXP = %v, want 3", st.TotalXP)
	}
}

func TestAppRankUpStatus(t *testing.T) {
	app, _, _, feed := newTestApp(t, time.Minute)
	feed.Notify(progression.Event{Kind: progression.EventReward, Amount: 100})
	feed.Notify(progression.Event{Kind: progression.EventRankUp, FromRank: "転生者", ToRank: "村人Lv.1"})

	app = send(app, tickMsg(time.Now()))
	if app.status != "ランクアップ！ 転生者 → 村人Lv.1" {
		t.Fatalf("status = %q", app.status)
	}
	if len(feed.Drain()) != 0 {
		t.Fatal("app should drain the feed")
	}
}

func TestAppExport(t *testing.T) {
	app, s, _, _ := newTestApp(t, time.Minute)
	seedBoard(t, s)
	app = send(app, app.board.loadData()())

	app = send(app, runes("e"))
	if !app.exportPicking {
		t.Fatal("export picker should open on the board")
	}
	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = m.(App)
	if app.exportPicking || cmd == nil {
		t.Fatal("enter should start the export")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("export msg = %#v", cmd())
	}
	if !strings.HasSuffix(done.path, ".csv") {
		t.Fatalf("path = %s", done.path)
	}
}

func TestAppView(t *testing.T) {
	app, _, _, _ := newTestApp(t, time.Minute)
	if app.View() != "Loading..." {
		t.Fatal("view before size should be a placeholder")
	}
	app = send(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	v := app.View()
	if !strings.Contains(v, "wakutore") || !strings.Contains(v, "転生者") {
		t.Fatalf("header missing:\n%s", v)
	}
}
