package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wakutore/internal/progression"
)

type clickerModel struct {
	sess   *progression.Session
	width  int
	height int

	cursor int
	offset int
}

func newClickerModel(sess *progression.Session) clickerModel {
	return clickerModel{sess: sess}
}

func (c *clickerModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c clickerModel) shopRows() int {
	return max(3, c.height-14)
}

func (c clickerModel) update(msg tea.Msg) (clickerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	items := c.sess.Engine().Catalog().Items()

	switch {
	case key.Matches(km, keys.Click):
		if err := c.sess.Click(); err != nil {
			return c, errStatus(err)
		}
	case key.Matches(km, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(km, keys.Down):
		if c.cursor < len(items)-1 {
			c.cursor++
		}
	case key.Matches(km, keys.Buy):
		if c.cursor >= len(items) {
			return c, nil
		}
		u := items[c.cursor]
		res, err := c.sess.Purchase(u.ID)
		if err != nil {
			return c, errStatus(err)
		}
		switch res {
		case progression.Purchased:
			return c, statusCmd("Bought " + u.Name)
		default:
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("%s: %s", u.Name, res), isError: true}
			}
		}
	}

	rows := c.shopRows()
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+rows {
		c.offset = c.cursor - rows + 1
	}
	return c, nil
}

func errStatus(err error) tea.Cmd {
	text := err.Error()
	if errors.Is(err, progression.ErrInsufficientFunds) {
		text = "Not enough coins"
	}
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func (c clickerModel) view() string {
	w := c.width - 4
	st := c.sess.Snapshot()
	return lipgloss.JoinVertical(lipgloss.Left,
		c.renderRank(st, w),
		c.renderShop(st, w),
	)
}

func (c clickerModel) renderRank(st progression.State, w int) string {
	eng := c.sess.Engine()
	ranks := eng.Ranks()
	idx := eng.RankIndex(st.TotalXP)

	rank := rankStyle.Width(w - 6).Render(fmt.Sprintf("%s  (%d/%d)", ranks.At(idx).Name, idx+1, ranks.Len()))
	barWidth := max(10, w-16)
	bar := xpBarStyle.Render(progressBar(ranks.Progress(st.TotalXP), barWidth))

	next := successStyle.Render("MAX")
	if toNext := eng.XPToNextRank(st.TotalXP); toNext > 0 {
		next = fmt.Sprintf("next %s in %s XP", ranks.At(idx+1).Name, formatXP(toNext))
	}

	stats := fmt.Sprintf("XP %s   %s   click +%d   idle %s/s",
		highlightStyle.Render(formatXP(st.TotalXP)),
		coinStyle.Render("¥"+formatCoins(st.Currency)),
		st.ClickPower,
		formatXP(st.AutoRatePerSecond),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		rank,
		bar,
		mutedStyle.Render(next),
		"",
		stats,
		mutedStyle.Render("space: work  b: buy"),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (c clickerModel) renderShop(st progression.State, w int) string {
	eng := c.sess.Engine()
	items := eng.Catalog().Items()

	rows := []string{titleStyle.Render("Shop")}
	end := min(len(items), c.offset+c.shopRows())
	for i := c.offset; i < end; i++ {
		u := items[i]
		owned := st.OwnedCount(u.ID)

		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		price := "sold out"
		if !u.Unique || owned == 0 {
			cost, _ := eng.NextCost(st, u.ID)
			price = "¥" + formatCoins(cost)
			if cost > st.Currency {
				price = mutedStyle.Render(price)
			} else {
				price = coinStyle.Render(price)
			}
		}

		effect := fmt.Sprintf("+%s/click", formatXP(u.Effect.Amount))
		if u.Effect.Kind == progression.EffectAuto {
			effect = fmt.Sprintf("+%s/s", formatXP(u.Effect.Amount))
		}
		name := u.Name
		if u.Unique {
			name += " ◆"
		}
		rows = append(rows, fmt.Sprintf("%s %s %s  %s",
			style.Render(cursor+padRight(truncate(name, 22), 22)),
			mutedStyle.Render(padRight(effect, 12)),
			mutedStyle.Render(fmt.Sprintf("x%-3d", owned)),
			price,
		))
	}
	if len(items) > end {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(items)-end)))
	}
	if c.cursor < len(items) {
		if d := items[c.cursor].Description; d != "" {
			rows = append(rows, "", mutedStyle.Render(truncate(d, w-6)))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// padRight pads s with spaces to w terminal cells.
func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
