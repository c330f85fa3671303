package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staffdesk/internal/export"
	"github.com/kingrea/staffdesk/internal/staff"
)

// recordsView is the records table with a live name search.
type recordsView struct {
	table     table.Model
	search    textinput.Model
	searching bool
	shown     int
	total     int
}

var recordColumns = []table.Column{
	{Title: "Staff ID", Width: 8},
	{Title: "Name", Width: 18},
	{Title: "Role", Width: 19},
	{Title: "Papers", Width: 6},
	{Title: "Grants", Width: 6},
	{Title: "Extra Activities", Width: 18},
	{Title: "Hours", Width: 5},
	{Title: "Productive Tasks", Width: 24},
	{Title: "Non-Productive", Width: 18},
	{Title: "Score", Width: 6},
}

func newRecordsView(height int) recordsView {
	t := table.New(
		table.WithColumns(recordColumns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	si := textinput.New()
	si.Prompt = "🔍 "
	si.Placeholder = "Search by name..."
	si.CharLimit = 80
	si.Width = 40
	return recordsView{table: t, search: si}
}

// refresh rebuilds the table rows from the store using the current search.
func (v *recordsView) refresh(store *staff.Store) {
	records := store.FilterByName(v.search.Value())
	rows := make([]table.Row, len(records))
	for i, record := range records {
		cells := export.Row(record)
		for j, cell := range cells {
			cells[j] = strings.Join(strings.Fields(cell), " ")
		}
		rows[i] = table.Row(cells)
	}
	v.table.SetRows(rows)
	if cursor := v.table.Cursor(); cursor >= len(rows) {
		v.table.SetCursor(max(0, len(rows)-1))
	}
	v.shown = len(records)
	v.total = store.Len()
}

func (v *recordsView) focusSearch() tea.Cmd {
	v.searching = true
	v.table.Blur()
	return v.search.Focus()
}

func (v *recordsView) blurSearch() {
	v.searching = false
	v.search.Blur()
	v.table.Focus()
}

func (v *recordsView) setSize(width, height int) {
	v.table.SetWidth(max(20, width))
	v.table.SetHeight(max(3, height))
}

// update routes a message to the search box or the table. It reports whether
// the search text changed so the caller can refresh rows.
func (v *recordsView) update(msg tea.Msg) (tea.Cmd, bool) {
	var cmd tea.Cmd
	if v.searching {
		before := v.search.Value()
		v.search, cmd = v.search.Update(msg)
		return cmd, v.search.Value() != before
	}
	v.table, cmd = v.table.Update(msg)
	return cmd, false
}

func (v *recordsView) view(st styles) string {
	searchBox := st.Box
	if v.searching {
		searchBox = searchBox.BorderForeground(st.colors.Accent)
	}
	lines := []string{
		st.Title.Render("Staff Records"),
		searchBox.Render(v.search.View()),
	}
	if v.total == 0 {
		lines = append(lines, st.Muted.Render("No staff records yet. Add one from the entry page (F1)."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, v.table.View())
	count := fmt.Sprintf("Showing %d of %d", v.shown, v.total)
	lines = append(lines, lipgloss.NewStyle().Foreground(st.colors.Muted).Render(count))
	return strings.Join(lines, "\n")
}
