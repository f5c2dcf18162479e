package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/rgehrsitz/mawc/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{m.renderInputs()}

	switch {
	case m.err != nil:
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	case m.calcErr != nil:
		sections = append(sections, WarningStyle.Render(m.calcErr.Error()))
	case m.report != nil:
		sections = append(sections, m.renderRates(), m.renderEntitlements())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(max(0, m.height-4)).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and the loaded claim, if any
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("MAWC - Massachusetts Workers' Compensation Calculator")

	subtitle := "No claim loaded; ledger is empty"
	if m.claimPath != "" {
		subtitle = fmt.Sprintf("Claim: %s (%d ledger entries)", m.claimPath, len(m.base.Ledger))
		if m.base.Claimant != "" {
			subtitle = fmt.Sprintf("%s - %s", m.base.Claimant, subtitle)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

func (m Model) renderInputs() string {
	var b strings.Builder
	for i := range m.inputs {
		f := Field(i)
		label := LabelStyle.Render(f.String())
		if f == m.focus {
			label = ActiveLabelStyle.Render(f.String())
		}
		b.WriteString(label + m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return ActiveBorderStyle.Render(b.String())
}

func (m Model) renderRates() string {
	r := m.report
	var b strings.Builder

	b.WriteString(SectionTitleStyle.Render(fmt.Sprintf("Weekly Rates (%s to %s, min %s, max %s)",
		r.RatePeriod.EffectiveFrom, r.RatePeriod.EffectiveTo,
		output.FormatCurrency(r.RatePeriod.StateMin), output.FormatCurrency(r.RatePeriod.StateMax))))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-6s %-10s %12s %12s  %-24s", "Sec.", "Name", "Raw", "Final", "Rule")))
	b.WriteString("\n")

	for _, rate := range r.Rates {
		line := fmt.Sprintf("%-6s %-10s %12s %12s  %-24s",
			rate.Type, rate.Type.Name(),
			output.FormatCurrency(rate.RawWeekly), output.FormatCurrency(rate.FinalWeekly),
			rate.AppliedRule)
		b.WriteString(ruleStyle(rate.AppliedRule != domain.RuleUnchanged).Render(line))
		b.WriteString("\n")
	}
	for _, s := range r.Skipped {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%-6s %-10s skipped: %s", s.Type, s.Type.Name(), s.Reason)))
		b.WriteString("\n")
	}

	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderEntitlements() string {
	s := m.report.Entitlements
	var b strings.Builder

	b.WriteString(SectionTitleStyle.Render(fmt.Sprintf("Entitlements as of %s", m.report.AsOf)))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-6s %8s %10s %12s %16s", "Sec.", "Max", "Used", "Remaining", "$ Remaining")))
	b.WriteString("\n")

	for _, e := range s.PerType {
		maxWeeks, remaining, dollars := "life", "life", "-"
		if e.StatutoryMaxWeeks != nil {
			maxWeeks = fmt.Sprintf("%d", *e.StatutoryMaxWeeks)
		}
		if e.WeeksRemaining != nil {
			remaining = output.FormatWeeks(*e.WeeksRemaining)
		}
		if e.DollarsRemaining != nil {
			dollars = output.FormatCurrency(*e.DollarsRemaining)
		}
		b.WriteString(fmt.Sprintf("%-6s %8s %10s %12s %16s\n",
			e.Type, maxWeeks, output.FormatWeeks(e.WeeksUsed), remaining, dollars))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Section 35 pool:  %s of %d weeks used\n",
		output.FormatWeeks(s.Combined35Usage.WeeksUsed), s.Combined35Usage.MaxWeeks))
	b.WriteString(fmt.Sprintf("7-year limit:     %s of %d weeks used\n",
		output.FormatWeeks(s.CombinedUsage.WeeksUsed), calculation.GetCombinedMaxWeeks()))
	b.WriteString(fmt.Sprintf("Paid to date:     %s\n", ValueStyle.Render(output.FormatCurrency(s.TotalDollarsPaid))))
	b.WriteString(fmt.Sprintf("Remaining:        %s", ValueStyle.Render(output.FormatCurrency(s.TotalDollarsRemaining))))

	if s.CombinedUsage.WeeksRemaining.IsZero() {
		b.WriteString("\n" + WarningStyle.Render("Combined 7-year limit exhausted"))
	}

	return BorderStyle.Render(b.String())
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next field"),
		formatShortcut("shift+tab", "previous"),
		formatShortcut("esc", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}
