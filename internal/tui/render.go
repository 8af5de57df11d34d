package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
)

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenDetail:
		body = a.renderDetail()
	case screenSearch:
		body = a.renderSearch()
	default:
		body = a.renderList(a.feedView, "No transactions yet. Run `listkit seed` to add some.", a.bodyHeight())
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), body, a.renderFooter())
}

func (a *App) bodyHeight() int {
	// header, status and help lines
	return a.height - 3
}

func (a *App) renderHeader() string {
	title := "Transactions"
	var s collection.State[repository.Transaction]
	switch a.screen {
	case screenSearch:
		title = "Search"
		s = a.searchView.state
	case screenDetail:
		title = "Transaction"
	default:
		s = a.feedView.state
	}

	out := headerStyle.Render(title)
	if s.Refreshing() {
		out += " " + a.spinner.View() + mutedStyle.Render(" refreshing")
	}
	if !s.LastLoadedAt.IsZero() {
		out += mutedStyle.Render("  updated " + s.LastLoadedAt.In(a.loc).Format("15:04"))
	}
	return out
}

func (a *App) renderFooter() string {
	status := statusStyle.Render(" ")
	if a.status != "" {
		status = errorStyle.Render(a.status)
	}
	return status + "\n" + a.help.View(a.keys)
}

func (a *App) renderSearch() string {
	input := a.query.View()
	if a.search == nil && !a.typing {
		return input + "\n" + mutedStyle.Render("Press / to search.")
	}
	return input + "\n" + a.renderList(a.searchView, "No matches.", a.bodyHeight()-1)
}

func (a *App) renderList(v listView, empty string, height int) string {
	s := v.state
	switch {
	case s.FirstLoading() && len(v.rows) == 0:
		return a.spinner.View() + " Loading..."
	case s.Data.Kind == collection.DataEmpty:
		return mutedStyle.Render(empty)
	}

	var lines []string
	if s.Data.Kind == collection.DataError {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Load failed: %v", s.Data.Err)))
	}
	focus := 0
	section := -1
	for i, p := range v.rows {
		if p.At.Section != section {
			section = p.At.Section
			if title := monthTitle(s.Sections[section].ID); title != "" {
				lines = append(lines, sectionStyle.Render(title))
			}
		}
		if i == v.cursor {
			focus = len(lines)
		}
		lines = append(lines, a.renderRow(p.Item, i == v.cursor))
	}
	switch {
	case s.LoadingMore:
		lines = append(lines, a.spinner.View()+mutedStyle.Render(" loading more"))
	case s.EndOfData:
		lines = append(lines, mutedStyle.Render("end of list"))
	}
	return strings.Join(window(lines, focus, height), "\n")
}

func (a *App) renderRow(tx repository.Transaction, selected bool) string {
	date := tx.Date.In(a.loc).Format(a.ui.DateFormat)
	line := fmt.Sprintf("%-6s %-28s %-20s", date, truncate(tx.Label(), 28), truncate(a.categoryName(tx), 20))
	amount := fmt.Sprintf("%12s", formatAmount(tx.AmountCents, a.ui.CurrencySymbol))
	if tx.Status == "pending" {
		line += "*"
	} else {
		line += " "
	}
	if selected {
		return cursorStyle.Render("> " + line + amount)
	}
	style := debitStyle
	if tx.AmountCents > 0 {
		style = creditStyle
	}
	return rowStyle.Render("  "+line) + style.Render(amount)
}

func (a *App) renderDetail() string {
	if a.detail == nil {
		return ""
	}
	tx := a.detail.tx
	merchant := "-"
	if tx.MerchantName != nil {
		merchant = *tx.MerchantName
	}
	category := a.categoryName(tx)
	if category == "" {
		category = "Uncategorised"
	}
	rows := [][2]string{
		{"Date", tx.Date.In(a.loc).Format("Mon 2 Jan 2006")},
		{"Amount", formatAmount(tx.AmountCents, a.ui.CurrencySymbol)},
		{"Merchant", merchant},
		{"Raw", tx.Description},
		{"Category", category},
		{"Status", tx.Status},
		{"Position", fmt.Sprintf("section %d, row %d", a.detail.at.Section+1, a.detail.at.Row+1)},
		{"ID", tx.ID},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, detailKeyStyle.Render(r[0])+rowStyle.Render(r[1]))
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) categoryName(tx repository.Transaction) string {
	if tx.CategoryID == nil {
		return ""
	}
	return a.categories[*tx.CategoryID]
}

// monthTitle turns a "2006-01" section id into "January 2006". Other ids
// are returned as is.
func monthTitle(id string) string {
	t, err := time.Parse("2006-01", id)
	if err != nil {
		return id
	}
	return t.Format("January 2006")
}

func formatAmount(cents int64, symbol string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// window keeps at most height lines, centred on focus where possible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := min(max(focus-height/2, 0), len(lines)-height)
	return lines[start : start+height]
}
