package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staffdesk/internal/staff"
)

// chartsView renders the analytics page inside a scrollable viewport.
type chartsView struct {
	viewport viewport.Model
	bins     int
	barWidth int
}

func newChartsView(width, height, bins, barWidth int) chartsView {
	return chartsView{
		viewport: viewport.New(max(20, width), max(5, height)),
		bins:     bins,
		barWidth: barWidth,
	}
}

func (c *chartsView) setSize(width, height int) {
	c.viewport.Width = max(20, width)
	c.viewport.Height = max(5, height)
}

func (c *chartsView) setShape(bins, barWidth int) {
	c.bins = max(1, bins)
	c.barWidth = max(5, barWidth)
}

func (c *chartsView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// refresh re-renders every chart from records.
func (c *chartsView) refresh(records []staff.Record, st styles) {
	if len(records) == 0 {
		c.viewport.SetContent(st.Muted.Render("No data yet. Charts appear once staff records are added."))
		c.viewport.GotoTop()
		return
	}
	sections := []string{
		renderSummary(staff.Summarize(records), st, c.viewport.Width),
		renderTaskFrequency(staff.TaskFrequency(records), st, c.barWidth),
		renderBreakdown(staff.ProductivityBreakdown(records), st, c.barWidth),
		renderHistogram(staff.ScoreHistogram(records, c.bins), st, c.barWidth),
	}
	c.viewport.SetContent(strings.Join(sections, "\n\n"))
}

func (c *chartsView) view() string {
	return c.viewport.View()
}

// summaryMarkdown lays the headline numbers out as a markdown table.
func summaryMarkdown(s staff.Summary) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Staff recorded | %d |\n", s.Count)
	fmt.Fprintf(&b, "| Mean score | %.1f |\n", s.MeanScore)
	fmt.Fprintf(&b, "| Score range | %.1f to %.1f |\n", s.MinScore, s.MaxScore)
	fmt.Fprintf(&b, "| Research papers | %d |\n", s.ResearchPapers)
	fmt.Fprintf(&b, "| Grants (lakh) | %d |\n", s.GrantsLakh)
	fmt.Fprintf(&b, "| Training hours | %d |\n", s.TrainingHours)
	b.WriteString("\n### By role\n\n")
	for _, role := range staff.Roles {
		fmt.Fprintf(&b, "- **%s**: %d\n", role, s.ByRole[role])
	}
	return b.String()
}

func renderSummary(s staff.Summary, st styles, width int) string {
	md := summaryMarkdown(s)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(st.theme),
		glamour.WithWordWrap(max(20, width-4)),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderTaskFrequency(counts []staff.TaskCount, st styles, barWidth int) string {
	peak := 0
	for _, tc := range counts {
		peak = max(peak, tc.Count)
	}
	labelWidth := 0
	for _, tc := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(string(tc.Task)))
	}
	lines := []string{st.Title.Render("Productive Task Frequency")}
	for _, tc := range counts {
		lines = append(lines, barLine(string(tc.Task), labelWidth, tc.Count, peak, barWidth, st.colors.Bar, st))
	}
	return strings.Join(lines, "\n")
}

func renderBreakdown(b staff.Breakdown, st styles, barWidth int) string {
	peak := max(b.Productive, b.NonProductive)
	const labelWidth = len("Non-productive")
	lines := []string{
		st.Title.Render("Productive vs Non-Productive"),
		barLine("Productive", labelWidth, b.Productive, peak, barWidth, st.colors.Bar, st),
		barLine("Non-productive", labelWidth, b.NonProductive, peak, barWidth, st.colors.BarAlt, st),
		st.Muted.Render(fmt.Sprintf("Productive share: %.0f%%", b.Ratio()*100)),
	}
	return strings.Join(lines, "\n")
}

func renderHistogram(bins []staff.Bin, st styles, barWidth int) string {
	lines := []string{st.Title.Render("Productive Score Distribution")}
	labels := make([]string, len(bins))
	labelWidth := 0
	peak := 0
	for i, bin := range bins {
		labels[i] = fmt.Sprintf("%.1f-%.1f", bin.Lo, bin.Hi)
		labelWidth = max(labelWidth, len(labels[i]))
		peak = max(peak, bin.Count)
	}
	for i, bin := range bins {
		lines = append(lines, barLine(labels[i], labelWidth, bin.Count, peak, barWidth, st.colors.Accent, st))
	}
	return strings.Join(lines, "\n")
}

// barLine draws one labelled bar scaled so peak fills barWidth cells. Any
// non-zero value gets at least one cell.
func barLine(label string, labelWidth, value, peak, barWidth int, color lipgloss.Color, st styles) string {
	cells := 0
	if peak > 0 {
		cells = value * barWidth / peak
		if value > 0 && cells == 0 {
			cells = 1
		}
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", cells))
	pad := strings.Repeat(" ", max(0, labelWidth-lipgloss.Width(label)))
	return fmt.Sprintf("%s%s │ %s %s", st.Label.UnsetWidth().Render(label), pad, bar, st.Muted.Render(fmt.Sprint(value)))
}
