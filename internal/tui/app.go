package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/export"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

// Options wires the app to its collaborators. Store, Session and Feed are
// required; the rest have defaults.
type Options struct {
	Store    *store.Store
	Session  *progression.Session
	Feed     *EventFeed
	Log      *zap.Logger
	Tunables store.Tunables
	Filter   board.FilterConfig
	Seed     uint64

	TickInterval     time.Duration
	AutosaveInterval time.Duration
	ExportDir        string
}

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	sess  *progression.Session
	feed  *EventFeed
	log   *zap.Logger

	tickInterval     time.Duration
	autosaveInterval time.Duration
	sinceSave        time.Duration
	exportDir        string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	board    boardModel
	clicker  clickerModel
	arcade   arcadeModel
	reports  reportsModel
	settings settingsModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(o Options) App {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.AutosaveInterval <= 0 {
		o.AutosaveInterval = 30 * time.Second
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.ExportDir == "" {
		o.ExportDir, _ = os.UserHomeDir()
	}
	gachaCost := o.Tunables.GachaCost
	if gachaCost <= 0 {
		gachaCost = 100
	}

	h := help.New()
	h.ShowAll = false

	return App{
		store:            o.Store,
		sess:             o.Session,
		feed:             o.Feed,
		log:              o.Log,
		tickInterval:     o.TickInterval,
		autosaveInterval: o.AutosaveInterval,
		exportDir:        o.ExportDir,
		activeView:       viewBoard,
		board:            newBoardModel(o.Store, o.Session, o.Log, o.Filter),
		clicker:          newClickerModel(o.Session),
		arcade:           newArcadeModel(o.Store, o.Session, o.Log, gachaCost, o.Seed),
		reports:          newReportsModel(o.Store),
		settings:         newSettingsModel(o.Store, o.Session, o.Tunables),
		help:             h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.board.loadData(),
		a.arcade.refresh(),
		a.tickCmd(),
	)
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.board.setSize(a.width, contentHeight)
		a.clicker.setSize(a.width, contentHeight)
		a.arcade.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}
		a.status = ""

		switch {
		case key.Matches(msg, keys.Export) && a.activeView == viewBoard:
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Sequence(a.saveCmd(), tea.Quit)
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewBoard
			return a, a.board.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewClicker
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewArcade
			return a, a.arcade.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			return a, a.reportsRefresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, a.tickCmd())
		if err := a.sess.TickNow(); err != nil {
			a.log.Warn("idle tick", zap.Error(err))
		}
		a.sinceSave += a.tickInterval
		if a.sinceSave >= a.autosaveInterval {
			a.sinceSave = 0
			cmds = append(cmds, a.saveCmd())
		}
		a.applyEvents()

		// The arcade settles races in the background, whichever view is open.
		var cmd tea.Cmd
		a.arcade, cmd = a.arcade.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case savedMsg:
		if msg.err != nil {
			a.log.Error("autosave", zap.Error(msg.err))
			a.status, a.isError = "Save failed: "+msg.err.Error(), true
		}
		return a, nil

	case statusMsg:
		a.status, a.isError = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.isError = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil

	case boardDataMsg, boardChangedMsg, cardOpsMsg:
		var cmd tea.Cmd
		a.board, cmd = a.board.update(msg)
		return a, cmd

	case arcadeDataMsg, raceSettledMsg:
		var cmd tea.Cmd
		a.arcade, cmd = a.arcade.update(msg)
		return a, cmd

	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	m, cmd := a.updateActiveView(msg)
	if app, ok := m.(App); ok {
		app.applyEvents()
		return app, cmd
	}
	return m, cmd
}

// applyEvents turns session events into status lines. Rank-ups win over
// everything else produced in the same batch.
func (a *App) applyEvents() {
	if a.feed == nil {
		return
	}
	for _, ev := range a.feed.Drain() {
		if ev.Kind == progression.EventRankUp {
			a.status, a.isError = fmt.Sprintf("ランクアップ！ %s → %s", ev.FromRank, ev.ToRank), false
			return
		}
	}
}

func (a App) saveCmd() tea.Cmd {
	st, sess := a.store, a.sess
	return func() tea.Msg {
		return savedMsg{err: st.Checkpoint(sess, time.Now())}
	}
}

func (a App) reportsRefresh() tea.Cmd {
	// flush pending earnings first so today's bar is current
	return tea.Sequence(a.saveCmd(), a.reports.refresh())
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewBoard:
		a.board, cmd = a.board.update(msg)
	case viewClicker:
		a.clicker, cmd = a.clicker.update(msg)
	case viewArcade:
		a.arcade, cmd = a.arcade.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBoard:
		return a.board.capturing()
	case viewArcade:
		return a.arcade.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewBoard:
		return a.board.loadData()
	case viewArcade:
		return a.arcade.refresh()
	case viewReports:
		return a.reportsRefresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewBoard:
		content = a.board.view()
	case viewClicker:
		content = a.clicker.view()
	case viewArcade:
		content = a.arcade.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	st := a.sess.Snapshot()
	rank := a.sess.Engine().RankOf(st.TotalXP)
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("wakutore")
	badge := mutedStyle.Render(fmt.Sprintf("  %s  ", rank.Name)) + coinStyle.Render("¥"+formatCoins(st.Currency))

	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(badge)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, badge, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export board")
	formats := []string{"CSV", "JSON"}
	rows := []string{title, ""}
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the board exactly as currently filtered and sorted.
func (a App) doExport(format int) tea.Cmd {
	columns := a.board.columns
	dir := a.exportDir
	return func() tea.Msg {
		dateStr := time.Now().Format("2006-01-02")
		if format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("wakutore-board-%s.csv", dateStr))
			if err := export.ToCSV(columns, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}
		path := filepath.Join(dir, fmt.Sprintf("wakutore-board-%s.json", dateStr))
		if err := export.ToJSON(columns, path); err != nil {
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
