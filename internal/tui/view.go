package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nizram/ping-monitor/internal/domain"
)

var (
	colorAccent  = lipgloss.Color("45")
	colorOnline  = lipgloss.Color("40")
	colorOffline = lipgloss.Color("160")
	colorPending = lipgloss.Color("220")
	colorPaused  = lipgloss.Color("246")
	colorMuted   = lipgloss.Color("240")
	colorBorder  = lipgloss.Color("238")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	onlineStyle  = lipgloss.NewStyle().Foreground(colorOnline)
	offlineStyle = lipgloss.NewStyle().Foreground(colorOffline)
	pendingStyle = lipgloss.NewStyle().Foreground(colorPending)
	pausedStyle  = lipgloss.NewStyle().Foreground(colorPaused)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)

	tableHeadStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errStyle = lipgloss.NewStyle().Foreground(colorOffline)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

// Table column widths. Name and host get the lion's share; the rest are
// fixed-width numerics.
const (
	colName  = 22
	colHost  = 24
	colProto = 6
	colState = 11
	colLat   = 9
	colUp    = 8
	colSeen  = 14
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showForm && m.form != nil {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			formStyle.Render(m.form.View()),
		)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.showDetail && len(m.rows) > 0 {
		b.WriteString(m.renderDetail(m.rows[m.selected]))
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	online, offline, pending, paused := 0, 0, 0, 0
	for _, st := range m.rows {
		switch {
		case !st.Target.Enabled:
			paused++
		case st.TotalChecks == 0:
			pending++
		case st.IsOnline:
			online++
		default:
			offline++
		}
	}

	stats := fmt.Sprintf("%s %d up   %s %d down   %s %d paused",
		onlineStyle.Render("●"), online,
		offlineStyle.Render("●"), offline,
		pausedStyle.Render("●"), paused,
	)
	if pending > 0 {
		stats += fmt.Sprintf("   %s %d waiting", m.spin.View(), pending)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" ping-monitor "))
	b.WriteString("  ")
	b.WriteString(stats)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", width)))
	return b.String()
}

func (m Model) renderTable() string {
	if len(m.rows) == 0 {
		return mutedStyle.Render("  No targets yet. Press a to add one.")
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(tableHeadStyle.Render(
		pad("NAME", colName) +
			pad("HOST", colHost) +
			pad("PROTO", colProto) +
			pad("STATE", colState) +
			pad("LATENCY", colLat) +
			pad("UPTIME", colUp) +
			pad("LAST SEEN UP", colSeen),
	))
	b.WriteString("\n")

	for i, st := range m.rows {
		b.WriteString(m.renderRow(i, st))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRow(i int, st domain.Status) string {
	cursor := "  "
	name := truncate(st.Target.Name, colName-2)
	if i == m.selected {
		cursor = cursorStyle.Render("▸ ")
		name = selectedStyle.Render(name)
	}

	return cursor +
		pad(name, colName) +
		pad(truncate(st.Target.Addr(), colHost-2), colHost) +
		pad(mutedStyle.Render(string(st.Target.Protocol)), colProto) +
		pad(m.stateCell(st), colState) +
		pad(fmtLatency(st.ResponseTimeMS), colLat) +
		pad(fmtUptime(st), colUp) +
		pad(mutedStyle.Render(fmtAgoPtr(st.LastOnline)), colSeen)
}

func (m Model) stateCell(st domain.Status) string {
	switch {
	case !st.Target.Enabled:
		return pausedStyle.Render("∙ paused")
	case st.TotalChecks == 0:
		return m.spin.View() + pendingStyle.Render(" waiting")
	case st.IsOnline:
		return onlineStyle.Render("✓ online")
	default:
		return offlineStyle.Render("✗ offline")
	}
}

func (m Model) renderDetail(st domain.Status) string {
	fields := [][2]string{
		{"Name", st.Target.Name},
		{"Address", st.Target.Addr()},
		{"Protocol", string(st.Target.Protocol)},
		{"Enabled", yesNo(st.Target.Enabled)},
		{"State", plainState(st)},
		{"Uptime", fmtUptime(st)},
		{"Checks", fmt.Sprintf("%d total, %d ok", st.TotalChecks, st.SuccessfulChecks)},
		{"Latency", fmtLatency(st.ResponseTimeMS)},
		{"Last check", fmtAgo(st.LastCheck)},
		{"Last online", fmtAgoPtr(st.LastOnline)},
		{"Last offline", fmtAgoPtr(st.LastOffline)},
	}
	if st.LastError != "" {
		fields = append(fields, [2]string{"Last error", st.LastError})
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%12s  ", f[0])))
		b.WriteString(f[1])
		b.WriteString("\n")
	}
	return detailStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	help := "↑/↓ move · enter details · a add · d delete · q quit"
	if m.showDetail {
		help = "esc back · q quit"
	}

	out := mutedStyle.Render(fmt.Sprintf("  %s  │  %s", time.Now().Format("15:04:05"), help))
	if m.errMsg != "" {
		out += "\n" + errStyle.Render("  "+m.errMsg)
	}
	return out
}

// pad right-pads s with spaces to the given printable width. lipgloss.Width
// ignores color codes, so styled cells line up.
func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	return s + strings.Repeat(" ", gap)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func plainState(st domain.Status) string {
	switch {
	case !st.Target.Enabled:
		return "paused"
	case st.TotalChecks == 0:
		return "waiting for first check"
	case st.IsOnline:
		return "online"
	default:
		return "offline"
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fmtLatency(ms *uint64) string {
	if ms == nil {
		return "—"
	}
	return fmt.Sprintf("%dms", *ms)
}

func fmtUptime(st domain.Status) string {
	if st.TotalChecks == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", st.UptimePercentage)
}

func fmtAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < 2*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return t.Format("Jan 2 15:04")
}

func fmtAgoPtr(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return fmtAgo(*t)
}
