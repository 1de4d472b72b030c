package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

const minColumnWidth = 26

type boardModel struct {
	store  *store.Store
	sess   *progression.Session
	log    *zap.Logger
	width  int
	height int

	lists   []board.List
	cards   []board.Card
	filter  board.FilterConfig
	columns []board.Column

	col, row int
	offset   int // first visible column

	search    textinput.Model
	searching bool
	prevQuery string

	formActive bool
	form       *huh.Form
	formKind   string // "filter", "assign"
	editingID  string

	// Form values as pointers (survive value copies)
	fTypes  *[]string
	fStaff  *[]string
	fLabels *[]string
	fLists  *[]string
	aStaff  map[board.Role]*string
	aType   *string
	aMemo   *string

	detail bool
	ops    []store.OperationLog
}

func newBoardModel(s *store.Store, sess *progression.Session, log *zap.Logger, f board.FilterConfig) boardModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search cards"
	ti.CharLimit = 80

	var types, staff, labels, lists []string
	typ, memo := "", ""
	aStaff := make(map[board.Role]*string, len(board.Roles))
	for _, r := range board.Roles {
		v := ""
		aStaff[r] = &v
	}
	return boardModel{
		store:   s,
		sess:    sess,
		log:     log,
		filter:  f,
		search:  ti,
		fTypes:  &types,
		fStaff:  &staff,
		fLabels: &labels,
		fLists:  &lists,
		aStaff:  aStaff,
		aType:   &typ,
		aMemo:   &memo,
	}
}

func (b *boardModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

type boardDataMsg struct {
	lists []board.List
	cards []board.Card
	err   error
}

// boardChangedMsg is sent after a card mutation has been written.
type boardChangedMsg struct {
	text string
}

type cardOpsMsg struct {
	cardID string
	ops    []store.OperationLog
}

func (b boardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		lists, err := b.store.ListLists()
		if err != nil {
			return boardDataMsg{err: err}
		}
		cards, err := b.store.ListCards()
		return boardDataMsg{lists: lists, cards: cards, err: err}
	}
}

func (b boardModel) saveFilter() tea.Cmd {
	f := b.filter
	return func() tea.Msg {
		if err := b.store.SaveFilter(f); err != nil {
			return statusMsg{text: fmt.Sprintf("Save filter: %v", err), isError: true}
		}
		return nil
	}
}

// recompute rebuilds the visible columns from the raw cards and filter.
func (b *boardModel) recompute() {
	b.columns = board.View(b.cards, b.lists, b.filter)
	b.col = clamp(b.col, 0, max(0, len(b.columns)-1))
	b.clampRow()
}

func (b *boardModel) clampRow() {
	if len(b.columns) == 0 {
		b.row = 0
		return
	}
	b.row = clamp(b.row, 0, max(0, len(b.columns[b.col].Cards)-1))
}

func (b boardModel) selected() (board.Card, bool) {
	if b.col >= len(b.columns) {
		return board.Card{}, false
	}
	cards := b.columns[b.col].Cards
	if b.row >= len(cards) {
		return board.Card{}, false
	}
	return cards[b.row], true
}

func (b boardModel) capturing() bool { return b.formActive || b.searching }

func (b boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}
	if b.searching {
		return b.updateSearch(msg)
	}

	switch msg := msg.(type) {
	case boardDataMsg:
		if msg.err != nil {
			return b, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Load board: %v", msg.err), isError: true}
			}
		}
		b.lists = msg.lists
		b.cards = msg.cards
		b.recompute()
		return b, nil

	case boardChangedMsg:
		text := msg.text
		return b, tea.Batch(b.loadData(), func() tea.Msg { return statusMsg{text: text} })

	case cardOpsMsg:
		if c, ok := b.selected(); ok && c.ID == msg.cardID {
			b.ops = msg.ops
		}
		return b, nil

	case tea.KeyMsg:
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b boardModel) updateKeys(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		if b.col > 0 {
			b.col--
			b.clampRow()
			b.detail = false
		}
	case key.Matches(msg, keys.Right):
		if b.col < len(b.columns)-1 {
			b.col++
			b.clampRow()
			b.detail = false
		}
	case key.Matches(msg, keys.Up):
		if b.row > 0 {
			b.row--
			b.detail = false
		}
	case key.Matches(msg, keys.Down):
		if b.col < len(b.columns) && b.row < len(b.columns[b.col].Cards)-1 {
			b.row++
			b.detail = false
		}
	case key.Matches(msg, keys.Enter):
		c, ok := b.selected()
		if !ok {
			return b, nil
		}
		b.detail = !b.detail
		if b.detail {
			b.ops = nil
			return b, b.loadOps(c.ID)
		}
	case key.Matches(msg, keys.Back):
		b.detail = false
	case key.Matches(msg, keys.Search):
		b.searching = true
		b.prevQuery = b.filter.SearchText
		b.search.SetValue(b.filter.SearchText)
		b.search.CursorEnd()
		return b, b.search.Focus()
	case key.Matches(msg, keys.Sort):
		b.filter.SortMode = b.filter.SortMode.Next()
		b.recompute()
		return b, tea.Batch(b.saveFilter(), statusCmd("Sort: "+b.filter.SortMode.Label()))
	case key.Matches(msg, keys.PinnedOnly):
		b.filter.PinnedOnly = !b.filter.PinnedOnly
		b.recompute()
		return b, b.saveFilter()
	case key.Matches(msg, keys.Reset):
		b.filter.Reset()
		b.recompute()
		return b, tea.Batch(b.saveFilter(), statusCmd("Filters cleared"))
	case key.Matches(msg, keys.Filter):
		return b.showFilterForm()
	case key.Matches(msg, keys.Pin):
		if c, ok := b.selected(); ok {
			return b, b.togglePin(c)
		}
	case key.Matches(msg, keys.Assign):
		if c, ok := b.selected(); ok {
			return b.showAssignForm(c)
		}
	}
	b.keepColumnVisible()
	return b, nil
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func (b *boardModel) keepColumnVisible() {
	n := b.visibleColumns()
	if b.col < b.offset {
		b.offset = b.col
	}
	if b.col >= b.offset+n {
		b.offset = b.col - n + 1
	}
}

func (b boardModel) visibleColumns() int {
	return max(1, (b.width-2)/minColumnWidth)
}

func (b boardModel) loadOps(cardID string) tea.Cmd {
	return func() tea.Msg {
		ops, err := b.store.ListOperations(cardID, 5)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load history: %v", err), isError: true}
		}
		return cardOpsMsg{cardID: cardID, ops: ops}
	}
}

// --- Search ---

func (b boardModel) updateSearch(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			b.searching = false
			b.search.Blur()
			b.filter.SearchText = b.prevQuery
			b.recompute()
			return b, nil
		case "enter":
			b.searching = false
			b.search.Blur()
			return b, b.saveFilter()
		}
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.filter.SearchText = b.search.Value()
	b.recompute()
	return b, cmd
}

// --- Card mutations ---

func (b boardModel) togglePin(c board.Card) tea.Cmd {
	pinned := !c.Pinned()
	return func() tea.Msg {
		if err := b.store.SetPinned(c.ID, pinned); err != nil {
			return statusMsg{text: fmt.Sprintf("Pin: %v", err), isError: true}
		}
		action, text := "unpin", "Unpinned "+c.Name
		if pinned {
			action, text = "pin", "Pinned "+c.Name
			if err := b.sess.RewardAction(progression.ActionPin); err != nil {
				b.log.Warn("pin reward", zap.Error(err))
			}
		}
		if _, err := b.store.LogOperation(c.ID, action, c.Name); err != nil {
			b.log.Warn("log operation", zap.String("card", c.ID), zap.Error(err))
		}
		return boardChangedMsg{text: text}
	}
}

func (b boardModel) saveAssignment(cardID string) tea.Cmd {
	var prev *board.Assignment
	for _, c := range b.cards {
		if c.ID == cardID {
			prev = c.Assignment
			break
		}
	}
	next := board.Assignment{}
	if prev != nil {
		next = *prev
	}
	var changed []string
	for _, r := range board.Roles {
		v := strings.TrimSpace(*b.aStaff[r])
		if board.StringOr(next.Staff(r), "") != v {
			changed = append(changed, r.Label())
		}
		next.SetStaff(r, v)
	}
	next.SystemType = optional(*b.aType)
	memoChanged := board.StringOr(next.Memo1, "") != strings.TrimSpace(*b.aMemo)
	next.Memo1 = optional(*b.aMemo)
	now := time.Now()
	next.UpdatedAt = &now

	return func() tea.Msg {
		if err := b.store.SetAssignment(cardID, next); err != nil {
			return statusMsg{text: fmt.Sprintf("Assign: %v", err), isError: true}
		}
		if len(changed) > 0 {
			b.reward(progression.ActionAssign)
			b.logOp(cardID, "assign", strings.Join(changed, ", "))
		}
		if memoChanged {
			b.reward(progression.ActionMemo)
			b.logOp(cardID, "memo", board.StringOr(next.Memo1, ""))
		}
		return boardChangedMsg{text: "Assignment saved"}
	}
}

func (b boardModel) reward(a progression.Action) {
	if err := b.sess.RewardAction(a); err != nil {
		b.log.Warn("action reward", zap.String("action", string(a)), zap.Error(err))
	}
}

func (b boardModel) logOp(cardID, action, detail string) {
	if _, err := b.store.LogOperation(cardID, action, detail); err != nil {
		b.log.Warn("log operation", zap.String("card", cardID), zap.Error(err))
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// --- Forms ---

func (b boardModel) showFilterForm() (boardModel, tea.Cmd) {
	facets := board.CollectFacets(b.cards)
	*b.fTypes = slices.Clone(b.filter.SystemTypes)
	*b.fStaff = slices.Clone(b.filter.Assignees)
	*b.fLabels = slices.Clone(b.filter.Labels)
	*b.fLists = slices.Clone(b.filter.Lists)

	var fields []huh.Field
	if len(facets.SystemTypes) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().Title("System type").
			Options(huh.NewOptions(facets.SystemTypes...)...).Value(b.fTypes))
	}
	if len(facets.Assignees) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().Title("Staff").
			Options(huh.NewOptions(facets.Assignees...)...).Value(b.fStaff))
	}
	if len(facets.Labels) > 0 {
		opts := make([]huh.Option[string], len(facets.Labels))
		for i, l := range facets.Labels {
			opts[i] = huh.NewOption(l.Name, l.ID)
		}
		fields = append(fields, huh.NewMultiSelect[string]().Title("Labels").Options(opts...).Value(b.fLabels))
	}
	if len(b.lists) > 0 {
		opts := make([]huh.Option[string], len(b.lists))
		for i, l := range b.lists {
			opts[i] = huh.NewOption(l.Name, l.ID)
		}
		fields = append(fields, huh.NewMultiSelect[string]().Title("Lists").Options(opts...).Value(b.fLists))
	}
	if len(fields) == 0 {
		return b, statusCmd("Nothing to filter by yet")
	}

	b.form = huh.NewForm(huh.NewGroup(fields...).Title("Filter")).
		WithShowHelp(true).WithShowErrors(true)
	b.formKind = "filter"
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) showAssignForm(c board.Card) (boardModel, tea.Cmd) {
	for _, r := range board.Roles {
		*b.aStaff[r] = board.StringOr(c.Assignment.Staff(r), "")
	}
	*b.aType = c.SystemType()
	*b.aMemo = ""
	if c.Assignment != nil {
		*b.aMemo = board.StringOr(c.Assignment.Memo1, "")
	}

	var staff []huh.Field
	for _, r := range board.Roles {
		staff = append(staff, huh.NewInput().Title(r.Label()).Value(b.aStaff[r]))
	}
	b.form = huh.NewForm(
		huh.NewGroup(staff...).Title(truncate(c.Name, 40)),
		huh.NewGroup(
			huh.NewInput().Title("System type").Value(b.aType),
			huh.NewText().Title("Memo").CharLimit(400).Value(b.aMemo),
		),
	).WithShowHelp(true).WithShowErrors(true)
	b.formKind = "assign"
	b.editingID = c.ID
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	switch b.form.State {
	case huh.StateCompleted:
		b.formActive = false
		b.form = nil
		if b.formKind == "filter" {
			b.filter.SystemTypes = slices.Clone(*b.fTypes)
			b.filter.Assignees = slices.Clone(*b.fStaff)
			b.filter.Labels = slices.Clone(*b.fLabels)
			b.filter.Lists = slices.Clone(*b.fLists)
			b.recompute()
			return b, tea.Batch(b.saveFilter(), statusCmd("Filter: "+b.filter.Summary()))
		}
		return b, b.saveAssignment(b.editingID)
	case huh.StateAborted:
		b.formActive = false
		b.form = nil
		return b, nil
	}
	return b, cmd
}

// --- View ---

func (b boardModel) view() string {
	if b.width < 20 {
		return "Terminal too small"
	}
	w := b.width - 4

	if b.formActive && b.form != nil {
		return activePanelStyle.Width(w).Render(b.form.View())
	}

	header := b.renderHeader()
	if len(b.lists) == 0 {
		hint := mutedStyle.Render("No board yet. Run `wakutore import <snapshot>` to load one.")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", hint))
	}

	bodyHeight := b.height - lipgloss.Height(header) - 2
	var detail string
	if b.detail {
		detail = b.renderDetail(w)
		bodyHeight -= lipgloss.Height(detail)
	}
	cols := b.renderColumns(max(bodyHeight, 3))

	parts := []string{header, cols}
	if detail != "" {
		parts = append(parts, detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b boardModel) renderHeader() string {
	total := 0
	for _, c := range b.columns {
		total += len(c.Cards)
	}
	left := titleStyle.Render("Board") + mutedStyle.Render(fmt.Sprintf("  %d cards", total))
	info := mutedStyle.Render("sort: ") + highlightStyle.Render(b.filter.SortMode.Label())
	if b.filter.IsActive() {
		info += mutedStyle.Render("  filter: ") + accentStyle.Render(b.filter.Summary())
	}
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, left, "   ", info)
	if b.searching {
		return lipgloss.JoinVertical(lipgloss.Left, line, b.search.View())
	}
	return line
}

func (b boardModel) renderColumns(height int) string {
	if len(b.columns) == 0 {
		return mutedStyle.Render("  No lists match the current filter")
	}
	n := b.visibleColumns()
	end := min(len(b.columns), b.offset+n)
	colWidth := max(minColumnWidth, (b.width-2)/n)

	var rendered []string
	for i := b.offset; i < end; i++ {
		rendered = append(rendered, b.renderColumn(i, colWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (b boardModel) renderColumn(i, width, height int) string {
	col := b.columns[i]
	inner := width - 4
	title := columnTitleStyle.Width(inner).Render(
		truncate(fmt.Sprintf("%s (%d)", col.List.Name, len(col.Cards)), inner))

	// two lines per card
	perPage := max(1, (height-4)/2)
	start := 0
	if i == b.col && b.row >= perPage {
		start = b.row - perPage + 1
	}
	now := time.Now()

	rows := []string{title}
	for j := start; j < len(col.Cards) && j < start+perPage; j++ {
		rows = append(rows, b.renderCard(col.Cards[j], inner, now, i == b.col && j == b.row)...)
	}
	if len(col.Cards) == 0 {
		rows = append(rows, mutedStyle.Render("(empty)"))
	}

	style := panelStyle.Padding(0, 1)
	if i == b.col {
		style = activePanelStyle.Padding(0, 1)
	}
	return style.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func (b boardModel) renderCard(c board.Card, w int, now time.Time, selected bool) []string {
	marker := "  "
	if c.Pinned() {
		marker = pinStyle.Render("★ ")
	}
	nameStyle := normalItemStyle
	if selected {
		nameStyle = selectedItemStyle
	}
	line1 := marker + nameStyle.Render(truncate(c.Name, w-2))

	var meta []string
	if c.Due != nil {
		due := c.Due.Local().Format("01/02")
		switch {
		case c.DueComplete:
			meta = append(meta, successStyle.Render("✓"+due))
		case c.Overdue(now):
			meta = append(meta, overdueStyle.Render("!"+due))
		default:
			meta = append(meta, due)
		}
	}
	if t := c.SystemType(); t != "" {
		meta = append(meta, t)
	}
	for _, r := range board.Roles {
		if v := board.StringOr(c.Assignment.Staff(r), ""); v != "" {
			meta = append(meta, v)
		}
	}
	line2 := "  " + mutedStyle.Render(truncate(strings.Join(meta, " · "), w-2))
	return []string{line1, line2}
}

func (b boardModel) renderDetail(w int) string {
	c, ok := b.selected()
	if !ok {
		return ""
	}
	rows := []string{titleStyle.Render(c.Name)}
	if c.Description != "" {
		rows = append(rows, mutedStyle.Render(truncate(strings.ReplaceAll(c.Description, "\n", " "), w-6)))
	}
	due := "-"
	if c.Due != nil {
		due = c.Due.Local().Format("2006-01-02 15:04")
	}
	var labels []string
	for _, l := range c.Labels {
		labels = append(labels, l.Name)
	}
	rows = append(rows, fmt.Sprintf("Due %s   Labels %s", highlightStyle.Render(due), strings.Join(labels, ", ")))

	var staff []string
	for _, r := range board.Roles {
		staff = append(staff, fmt.Sprintf("%s: %s", r.Label(), board.StringOr(c.Assignment.Staff(r), "-")))
	}
	rows = append(rows, strings.Join(staff, "  "))
	if c.Assignment != nil && c.Assignment.Memo1 != nil {
		rows = append(rows, "Memo: "+*c.Assignment.Memo1)
	}
	if c.URL != "" {
		rows = append(rows, mutedStyle.Render(c.URL))
	}
	if len(b.ops) > 0 {
		rows = append(rows, "", subtitleStyle.Render("History"))
		for _, op := range b.ops {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s  %-6s %s",
				op.CreatedAt.Local().Format("01/02 15:04"), op.Action, truncate(op.Detail, w-30))))
		}
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
