package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

type settingsModel struct {
	store  *store.Store
	sess   *progression.Session
	width  int
	height int

	tunables   store.Tunables
	formActive bool
	form       *huh.Form
	formKind   string // "tunables", "reset"

	// Form values as pointers (survive value copies)
	startingCurrency *string
	baseClickPower   *string
	priceGrowth      *string
	idleRate         *string
	gachaCost        *string
	defaultSort      *string
	confirmReset     *bool
}

func newSettingsModel(s *store.Store, sess *progression.Session, t store.Tunables) settingsModel {
	sc, bc, pg, ir, gc, ds := "", "", "", "", "", ""
	confirm := false
	return settingsModel{
		store:            s,
		sess:             sess,
		tunables:         t,
		startingCurrency: &sc,
		baseClickPower:   &bc,
		priceGrowth:      &pg,
		idleRate:         &ir,
		gachaCost:        &gc,
		defaultSort:      &ds,
		confirmReset:     &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	tunables store.Tunables
	saved    bool
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		t, err := s.store.LoadTunables()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load settings: %v", err), isError: true}
		}
		return settingsDataMsg{tunables: t}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.tunables = msg.tunables
		if msg.saved {
			return s, statusCmd("Saved. Changes apply on next start")
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		case key.Matches(msg, keys.Reset):
			return s.showResetForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	t := s.tunables
	*s.startingCurrency = strconv.FormatInt(t.Engine.StartingCurrency, 10)
	*s.baseClickPower = strconv.FormatInt(t.Engine.BaseClickPower, 10)
	*s.priceGrowth = strconv.FormatFloat(t.Engine.PriceGrowth, 'g', -1, 64)
	*s.idleRate = strconv.FormatFloat(t.Engine.IdleCurrencyRate, 'g', -1, 64)
	*s.gachaCost = strconv.FormatInt(t.GachaCost, 10)
	*s.defaultSort = string(t.DefaultSort)

	sortOpts := make([]huh.Option[string], 0, 4)
	for _, m := range []board.SortMode{board.SortOriginal, board.SortDue, board.SortUpdated, board.SortName} {
		sortOpts = append(sortOpts, huh.NewOption(m.Label(), string(m)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Starting coins").Value(s.startingCurrency).Validate(intAtLeast(0)),
			huh.NewInput().Title("Base click power").Value(s.baseClickPower).Validate(intAtLeast(1)),
			huh.NewInput().Title("Price growth per copy").Value(s.priceGrowth).Validate(floatAtLeast(1)),
			huh.NewInput().Title("Idle coins per XP").Value(s.idleRate).Validate(floatAtLeast(0)),
		).Title("Progression"),
		huh.NewGroup(
			huh.NewInput().Title("Gacha cost").Value(s.gachaCost).Validate(intAtLeast(1)),
			huh.NewSelect[string]().Title("Default sort").Options(sortOpts...).Value(s.defaultSort),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formKind = "tunables"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*s.confirmReset = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset progression?").
				Description("XP, rank, coins and upgrades go back to a fresh start.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(s.confirmReset),
		),
	)
	s.formKind = "reset"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if s.formKind == "reset" {
			if !*s.confirmReset {
				return s, nil
			}
			return s, s.resetProgression()
		}
		return s, s.saveTunables()
	}
	if s.form.State == huh.StateAborted {
		s.formActive = false
		s.form = nil
	}

	return s, cmd
}

// resetProgression starts the session over and drops the saved state.
func (s settingsModel) resetProgression() tea.Cmd {
	s.sess.Reset()
	st := s.store
	return func() tea.Msg {
		if err := st.ResetProgression(); err != nil {
			return statusMsg{text: fmt.Sprintf("Reset: %v", err), isError: true}
		}
		return statusMsg{text: "Progression reset"}
	}
}

func (s settingsModel) saveTunables() tea.Cmd {
	t := s.tunables
	t.Engine.StartingCurrency, _ = strconv.ParseInt(strings.TrimSpace(*s.startingCurrency), 10, 64)
	t.Engine.BaseClickPower, _ = strconv.ParseInt(strings.TrimSpace(*s.baseClickPower), 10, 64)
	t.Engine.PriceGrowth, _ = strconv.ParseFloat(strings.TrimSpace(*s.priceGrowth), 64)
	t.Engine.IdleCurrencyRate, _ = strconv.ParseFloat(strings.TrimSpace(*s.idleRate), 64)
	t.GachaCost, _ = strconv.ParseInt(strings.TrimSpace(*s.gachaCost), 10, 64)
	t.DefaultSort = board.SortMode(*s.defaultSort)

	return func() tea.Msg {
		if err := s.store.SaveTunables(t); err != nil {
			return statusMsg{text: fmt.Sprintf("Save settings: %v", err), isError: true}
		}
		return settingsDataMsg{tunables: t, saved: true}
	}
}

func intAtLeast(lo int64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return errors.New("enter a whole number")
		}
		if v < lo {
			return fmt.Errorf("must be at least %d", lo)
		}
		return nil
	}
}

func floatAtLeast(lo float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if v < lo {
			return fmt.Errorf("must be at least %g", lo)
		}
		return nil
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	t := s.tunables
	values := [][2]string{
		{"Starting coins", formatCoins(t.Engine.StartingCurrency)},
		{"Base click power", strconv.FormatInt(t.Engine.BaseClickPower, 10)},
		{"Price growth", fmt.Sprintf("×%g per copy", t.Engine.PriceGrowth)},
		{"Idle coins per XP", fmt.Sprintf("%g", t.Engine.IdleCurrencyRate)},
		{"Gacha cost", "¥" + formatCoins(t.GachaCost)},
		{"Default sort", t.DefaultSort.Label()},
	}

	rows := []string{title, ""}
	for _, kv := range values {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}
	rows = append(rows, "", mutedStyle.Render("enter: edit  r: reset progression"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
