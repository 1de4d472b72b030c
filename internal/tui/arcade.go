package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/arcade"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

const lastOmikujiKey = "last_omikuji"

// replay frames advanced per UI tick
const replayStride = 10

type arcadeModel struct {
	store  *store.Store
	sess   *progression.Session
	log    *zap.Logger
	width  int
	height int
	now    func() time.Time

	gacha   *arcade.Gacha
	omikuji *arcade.Omikuji
	race    *arcade.Race

	lastPrize   *arcade.Prize
	lastReading *arcade.Reading
	history     []store.GachaRecord
	bets        []store.BetRecord

	settling bool
	replay   *raceReplay

	formActive bool
	form       *huh.Form
	betType    *string
	betFirst   *int
	betSecond  *int
	betStake   *string
}

type raceReplay struct {
	raceID string
	result arcade.RaceResult
	frame  int
	won    int64
	bets   int
}

func newArcadeModel(s *store.Store, sess *progression.Session, log *zap.Logger, gachaCost int64, seed uint64) arcadeModel {
	bt, stake := string(arcade.BetWin), strconv.Itoa(arcade.MinStake*10)
	first, second := 1, 2
	return arcadeModel{
		store:     s,
		sess:      sess,
		log:       log,
		now:       time.Now,
		gacha:     arcade.NewGacha(gachaCost, arcade.NewRoller(seed)),
		omikuji:   arcade.NewOmikuji(arcade.NewRoller(seed + 1)),
		race:      arcade.NewRace(arcade.NewRoller(seed + 2)),
		betType:   &bt,
		betFirst:  &first,
		betSecond: &second,
		betStake:  &stake,
	}
}

func (m *arcadeModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type arcadeDataMsg struct {
	history []store.GachaRecord
	bets    []store.BetRecord
}

type raceSettledMsg struct {
	raceID string
	result arcade.RaceResult
	won    int64
	bets   int
	err    error
}

func (m arcadeModel) refresh() tea.Cmd {
	return func() tea.Msg {
		history, err := m.store.RecentGacha(5)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load gacha history: %v", err), isError: true}
		}
		bets, err := m.store.RecentBets(8, false)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load bets: %v", err), isError: true}
		}
		return arcadeDataMsg{history: history, bets: bets}
	}
}

func (m arcadeModel) update(msg tea.Msg) (arcadeModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case arcadeDataMsg:
		m.history = msg.history
		m.bets = msg.bets
		return m, nil

	case tickMsg:
		if m.replay != nil && m.replay.frame < len(m.replay.result.Frames)-1 {
			m.replay.frame = min(m.replay.frame+replayStride, len(m.replay.result.Frames)-1)
		}
		if m.settling || !m.hasDueBets() {
			return m, nil
		}
		m.settling = true
		return m, m.settleDue()

	case raceSettledMsg:
		m.settling = false
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settle race: %v", msg.err), isError: true}
			}
		}
		if msg.bets == 0 {
			return m, nil
		}
		m.replay = &raceReplay{raceID: msg.raceID, result: msg.result, won: msg.won, bets: msg.bets}
		text := fmt.Sprintf("Race %s settled: no payout", msg.raceID)
		if msg.won > 0 {
			text = fmt.Sprintf("Race %s settled: won ¥%s", msg.raceID, formatCoins(msg.won))
		}
		return m, tea.Batch(m.refresh(), statusCmd(text))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Gacha):
			return m.rollGacha()
		case key.Matches(msg, keys.Omikuji):
			return m.drawOmikuji()
		case key.Matches(msg, keys.Bet):
			return m.showBetForm()
		}
	}
	return m, nil
}

// --- Gacha and omikuji ---

func (m arcadeModel) rollGacha() (arcadeModel, tea.Cmd) {
	prize, err := m.gacha.Roll(m.sess)
	if err != nil {
		return m, errStatus(err)
	}
	m.lastPrize = &prize
	cost := m.gacha.Cost
	rec := store.GachaRecord{
		PrizeID: prize.ID,
		Name:    prize.Name,
		Rarity:  string(prize.Rarity),
		Kind:    string(prize.Kind),
		Amount:  prize.Amount,
		Cost:    cost,
	}
	return m, func() tea.Msg {
		if _, err := m.store.RecordGacha(rec); err != nil {
			m.log.Warn("record gacha", zap.Error(err))
		}
		return m.refresh()()
	}
}

func (m arcadeModel) drawOmikuji() (arcadeModel, tea.Cmd) {
	today := m.now().Format("2006-01-02")
	if last, err := m.store.GetSetting(lastOmikujiKey); err == nil && last == today {
		return m, statusCmd("Already drew today's fortune")
	}
	reading, err := m.omikuji.Draw(m.sess)
	if err != nil {
		return m, errStatus(err)
	}
	m.lastReading = &reading
	if err := m.store.SetSetting(lastOmikujiKey, today); err != nil {
		m.log.Warn("save omikuji day", zap.Error(err))
	}
	return m, statusCmd(fmt.Sprintf("%s! +%d XP ¥%s", reading.Fortune.Label, reading.XP, formatCoins(reading.Currency)))
}

// --- Race ---

func (m arcadeModel) hasDueBets() bool {
	now := m.now()
	for _, b := range m.bets {
		if b.Settled() {
			continue
		}
		if post, err := arcade.PostOf(b.RaceID, now.Location()); err == nil && !now.Before(post) {
			return true
		}
	}
	return false
}

func (m arcadeModel) settleDue() tea.Cmd {
	now := m.now()
	return func() tea.Msg {
		return settleDueRaces(m.store, m.sess, m.race, now)
	}
}

// settleDueRaces runs every race whose post time has passed and still has
// pending bets. Each race is run once; all its bets share the finishing
// order. Only the most recent race is reported back.
func settleDueRaces(st *store.Store, sess *progression.Session, race *arcade.Race, now time.Time) raceSettledMsg {
	pending, err := st.RecentBets(0, true)
	if err != nil {
		return raceSettledMsg{err: err}
	}
	byRace := map[string][]store.BetRecord{}
	var order []string
	for _, b := range pending {
		post, err := arcade.PostOf(b.RaceID, now.Location())
		if err != nil || now.Before(post) {
			continue
		}
		if _, seen := byRace[b.RaceID]; !seen {
			order = append(order, b.RaceID)
		}
		byRace[b.RaceID] = append(byRace[b.RaceID], b)
	}

	var last raceSettledMsg
	for _, raceID := range order {
		result := race.Run()
		msg := raceSettledMsg{raceID: raceID, result: result}
		for _, rec := range byRace[raceID] {
			bet := arcade.Bet{ID: rec.ID, RaceID: rec.RaceID, Type: arcade.BetType(rec.Type), Picks: rec.Picks, Stake: rec.Stake}
			if err := st.SettleBet(rec.ID, arcade.Payout(bet, result.Order), result.Order); err != nil {
				return raceSettledMsg{err: err}
			}
			won, err := race.Settle(sess, bet, result.Order)
			if err != nil {
				return raceSettledMsg{err: err}
			}
			msg.won += won
			msg.bets++
		}
		last = msg
	}
	return last
}

func (m arcadeModel) showBetForm() (arcadeModel, tea.Cmd) {
	status, slot := arcade.ScheduleStatus(arcade.DefaultSchedule, m.now())
	if status != arcade.StatusOpen || slot == nil {
		return m, statusCmd("Betting is closed")
	}

	typeOpts := make([]huh.Option[string], len(arcade.BetTypes))
	for i, t := range arcade.BetTypes {
		typeOpts[i] = huh.NewOption(fmt.Sprintf("%s ×%d", t.Label(), t.Multiplier()), string(t))
	}
	horseOpts := make([]huh.Option[int], len(arcade.Horses))
	for i, h := range arcade.Horses {
		horseOpts[i] = huh.NewOption(fmt.Sprintf("%d %s %s", h.Number, h.Icon, h.Name), h.Number)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Bet type").Options(typeOpts...).Value(m.betType),
			huh.NewSelect[int]().Title("Horse").Options(horseOpts...).Value(m.betFirst),
		).Title("Race "+slot.Post.Format("15:04")),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Second place").Options(horseOpts...).Value(m.betSecond),
		).WithHideFunc(func() bool { return *m.betType != string(arcade.BetExacta) }),
		huh.NewGroup(
			huh.NewInput().Title("Stake").Value(m.betStake).Validate(validateStake),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func validateStake(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < arcade.MinStake {
		return fmt.Errorf("minimum stake is %d", arcade.MinStake)
	}
	return nil
}

func (m arcadeModel) updateForm(msg tea.Msg) (arcadeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.formActive = false
		m.form = nil
		return m.placeBet()
	case huh.StateAborted:
		m.formActive = false
		m.form = nil
	}
	return m, cmd
}

func (m arcadeModel) placeBet() (arcadeModel, tea.Cmd) {
	status, slot := arcade.ScheduleStatus(arcade.DefaultSchedule, m.now())
	if status != arcade.StatusOpen || slot == nil {
		return m, statusCmd("Betting closed before the bet was placed")
	}
	t := arcade.BetType(*m.betType)
	picks := []int{*m.betFirst}
	if t == arcade.BetExacta {
		picks = append(picks, *m.betSecond)
	}
	stake, _ := strconv.ParseInt(strings.TrimSpace(*m.betStake), 10, 64)

	bet, err := m.race.PlaceBet(m.sess, slot.ID, t, picks, stake)
	if err != nil {
		return m, errStatus(err)
	}
	rec := store.BetRecord{
		ID:       bet.ID,
		RaceID:   bet.RaceID,
		Type:     string(bet.Type),
		Picks:    bet.Picks,
		Stake:    bet.Stake,
		PlacedAt: bet.PlacedAt,
	}
	return m, func() tea.Msg {
		if err := m.store.RecordBet(rec); err != nil {
			return statusMsg{text: fmt.Sprintf("Record bet: %v", err), isError: true}
		}
		return m.refresh()()
	}
}

// --- View ---

func (m arcadeModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	half := max(20, w/2-1)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(half).Render(m.renderGacha(half-6)),
		panelStyle.Width(half).Render(m.renderOmikuji()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, panelStyle.Width(w).Render(m.renderRace(w-6)))
}

func (m arcadeModel) renderGacha(w int) string {
	rows := []string{
		titleStyle.Render("Gacha") + mutedStyle.Render(fmt.Sprintf("  ¥%s / draw  (g)", formatCoins(m.gacha.Cost))),
	}
	if p := m.lastPrize; p != nil {
		style := lipgloss.NewStyle().Bold(true).Foreground(rarityColors[string(p.Rarity)])
		rows = append(rows, "", style.Render(fmt.Sprintf("【%s】%s", p.Rarity.Label(), p.Name)))
	}
	if len(m.history) > 0 {
		rows = append(rows, "", subtitleStyle.Render("Recent"))
		for _, h := range m.history {
			dot := lipgloss.NewStyle().Foreground(rarityColors[h.Rarity]).Render("●")
			rows = append(rows, fmt.Sprintf(" %s %s", dot, truncate(h.Name, w-4)))
		}
	}
	return strings.Join(rows, "\n")
}

func (m arcadeModel) renderOmikuji() string {
	rows := []string{titleStyle.Render("Omikuji") + mutedStyle.Render("  once a day  (o)")}
	if r := m.lastReading; r != nil {
		style := highlightStyle
		if r.Good() {
			style = coinStyle
		}
		rows = append(rows, "",
			style.Render(r.Fortune.Label),
			fmt.Sprintf("Lucky item: %s", r.LuckyItem),
			fmt.Sprintf("Lucky colour: %s", r.LuckyColor),
			successStyle.Render(fmt.Sprintf("+%d XP  ¥%s", r.XP, formatCoins(r.Currency))),
		)
	}
	return strings.Join(rows, "\n")
}

func (m arcadeModel) renderRace(w int) string {
	status, slot := arcade.ScheduleStatus(arcade.DefaultSchedule, m.now())
	head := titleStyle.Render("Horse race") + "  "
	switch {
	case status == arcade.StatusOpen:
		head += successStyle.Render("OPEN") + mutedStyle.Render(fmt.Sprintf("  post %s  (b: bet)", slot.Post.Format("15:04")))
	case status == arcade.StatusRunning:
		head += warningStyle.Render("RUNNING") + mutedStyle.Render("  post "+slot.Post.Format("15:04"))
	case slot != nil:
		head += mutedStyle.Render("CLOSED  next " + slot.Post.Format("15:04"))
	default:
		head += mutedStyle.Render("CLOSED for today")
	}
	rows := []string{head}

	if r := m.replay; r != nil && len(r.result.Frames) > 0 {
		rows = append(rows, "", subtitleStyle.Render("Race "+r.raceID))
		frame := r.result.Frames[r.frame]
		finish := r.result.Frames[len(r.result.Frames)-1]
		lead := 0.0
		for _, p := range finish {
			lead = max(lead, p)
		}
		track := max(10, w-24)
		for i, h := range arcade.Horses {
			pos := 0
			if lead > 0 {
				pos = int(frame[i] / lead * float64(track-1))
			}
			lane := strings.Repeat("·", pos) + h.Icon + strings.Repeat(" ", max(0, track-1-pos))
			rows = append(rows, fmt.Sprintf("%d %s|", h.Number, lane))
		}
		if r.frame == len(r.result.Frames)-1 {
			rows = append(rows, highlightStyle.Render(fmt.Sprintf("Result %s", joinOrder(r.result.Order))))
		}
	}

	if len(m.bets) > 0 {
		rows = append(rows, "", subtitleStyle.Render("Bets"))
		for _, b := range m.bets {
			outcome := mutedStyle.Render("pending")
			if b.Settled() {
				if *b.Payout > 0 {
					outcome = successStyle.Render("+¥" + formatCoins(*b.Payout))
				} else {
					outcome = errorStyle.Render("lost")
				}
			}
			rows = append(rows, fmt.Sprintf("  %s  %s %-5s ¥%-7s %s",
				b.RaceID, arcade.BetType(b.Type).Label(), joinOrder(b.Picks), formatCoins(b.Stake), outcome))
		}
	}
	return strings.Join(rows, "\n")
}

func joinOrder(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
