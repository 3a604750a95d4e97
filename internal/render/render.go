// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render formats a grade report for people: a styled terminal view
// and a Markdown view for posting alongside grades.
package render

import (
	"fmt"
	"strings"

	"github.com/bartekus/autograde/internal/projection"
	"github.com/bartekus/autograde/internal/report"
)

// split separates leaf items from the hidden roll-up summaries.
func split(r *report.Report) (items, totals []report.Item) {
	for _, it := range r.Tests {
		if it.Visibility == report.Hidden {
			totals = append(totals, it)
		} else {
			items = append(items, it)
		}
	}
	return items, totals
}

func formatScore(it report.Item) string {
	return fmt.Sprintf("%g/%g", it.Score, it.MaxScore)
}

// Terminal renders reports with lipgloss styles.
type Terminal struct {
	theme Theme
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme) *Terminal {
	return &Terminal{theme: theme}
}

// Render formats the report. Nil reports render as an empty string.
func (t *Terminal) Render(r *report.Report) string {
	if r == nil {
		return ""
	}
	items, totals := split(r)

	var sb strings.Builder
	if len(items) > 0 {
		sb.WriteString(t.theme.Bold.Render("Items"))
		sb.WriteString("\n")
		t.renderRows(&sb, items, true)
	}
	if len(totals) > 0 {
		if len(items) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t.theme.Bold.Render("Totals"))
		sb.WriteString("\n")
		t.renderRows(&sb, totals, false)
	}
	return sb.String()
}

func (t *Terminal) renderRows(sb *strings.Builder, rows []report.Item, withOutput bool) {
	width := 0
	for _, it := range rows {
		if n := len([]rune(it.Name)); n > width {
			width = n
		}
	}

	for _, it := range rows {
		icon, style := t.theme.Pass, t.theme.Success
		if !it.Passed() {
			icon, style = t.theme.Fail, t.theme.Error
		}
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(it.Name)
		sb.WriteString(strings.Repeat(" ", width-len([]rune(it.Name))))
		sb.WriteString("  ")
		sb.WriteString(formatScore(it))
		if withOutput && it.Output != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(it.Output))
		}
		sb.WriteString("\n")
	}
}

// Markdown renders the report as Markdown tables.
func Markdown(r *report.Report) string {
	if r == nil {
		return ""
	}
	items, totals := split(r)

	var b strings.Builder
	b.WriteString(projection.RenderHeader(1, "Grade report"))
	if len(items) > 0 {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.Name, formatScore(it), it.Output, string(it.Visibility)})
		}
		b.WriteString(projection.RenderHeader(2, "Items"))
		b.WriteString(projection.RenderTable([]string{"Item", "Score", "Output", "Visibility"}, rows))
		b.WriteString("\n")
	}
	if len(totals) > 0 {
		rows := make([][]string, 0, len(totals))
		for _, it := range totals {
			rows = append(rows, []string{it.Name, formatScore(it)})
		}
		b.WriteString(projection.RenderHeader(2, "Totals"))
		b.WriteString(projection.RenderTable([]string{"Summary", "Score"}, rows))
	}
	return b.String()
}
