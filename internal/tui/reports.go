package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

const reportDays = 7

type reportsModel struct {
	store  *store.Store
	width  int
	height int
	now    func() time.Time

	buckets []store.DailyXP
	offset  int // 7-day blocks back from today

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		now:   time.Now,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	buckets []store.DailyXP
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		buckets, err := r.store.DailyXPRange(from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load report: %v", err), isError: true}
		}
		return reportsDataMsg{buckets: buckets}
	}
}

// dateRange returns the first and last day shown, both inclusive.
func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, -reportDays*r.offset)
	return end.AddDate(0, 0, 1-reportDays), end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.buckets = msg.buckets
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := max(20, r.width-8)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}
	r.chart = barchart.New(chartWidth, chartHeight)
	r.chart.PushAll(r.bars())
	r.chart.Draw()
}

// bars builds one stacked bar per day, one segment per source.
func (r reportsModel) bars() []barchart.BarData {
	from, to := r.dateRange()
	var bars []barchart.BarData
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		var values []barchart.BarValue
		for _, src := range progression.Sources {
			for _, b := range r.buckets {
				if b.Date == date && b.Source == string(src) {
					values = append(values, barchart.BarValue{
						Name:  b.Source,
						Value: b.XP,
						Style: lipgloss.NewStyle().Foreground(sourceColors[b.Source]),
					})
				}
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{Label: d.Format("Mon 02"), Values: values})
	}
	return bars
}

func (r reportsModel) view() string {
	w := r.width - 4
	from, to := r.dateRange()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("XP by day"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.Format("Jan 02, 2006"))),
	)
	nav := mutedStyle.Render("  ←/→: navigate")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderTotals(w), "", nav,
		),
	)
}

func (r reportsModel) renderLegend() string {
	var items []string
	for _, src := range progression.Sources {
		dot := lipgloss.NewStyle().Foreground(sourceColors[string(src)]).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, src))
	}
	return "  " + strings.Join(items, "  ")
}

// renderTotals lists per-source totals for the period.
func (r reportsModel) renderTotals(w int) string {
	if len(r.buckets) == 0 {
		return mutedStyle.Render("  No XP earned in this period")
	}
	totals := map[string]float64{}
	var sum float64
	for _, b := range r.buckets {
		totals[b.Source] += b.XP
		sum += b.XP
	}
	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-10s %14s", "Source", "XP")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 26))),
	}
	for _, src := range progression.Sources {
		if v, ok := totals[string(src)]; ok {
			rows = append(rows, fmt.Sprintf("  %-10s %14s", src, formatXP(v)))
		}
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-10s %14s", "total", formatXP(sum))))
	return strings.Join(rows, "\n")
}
