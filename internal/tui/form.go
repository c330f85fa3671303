package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staffdesk/internal/staff"
)

// formField indexes the entry form's focusable fields in display order.
type formField int

const (
	fieldStaffID formField = iota
	fieldName
	fieldRole
	fieldPapers
	fieldGrants
	fieldExtra
	fieldHours
	fieldTasks
	fieldNonProductive
	fieldSubmit
	fieldCount
)

var fieldLabels = map[formField]string{
	fieldStaffID:       "Staff ID",
	fieldName:          "Name",
	fieldRole:          "Role",
	fieldPapers:        "Research Papers",
	fieldGrants:        "Grants/Funding (Lakh)",
	fieldExtra:         "Extra Activities",
	fieldHours:         "Training Hours Attended",
	fieldTasks:         "Productive Tasks",
	fieldNonProductive: "Non-Productive Task",
}

// numericField describes a whole-number input and its bounds.
type numericField struct {
	field formField
	min   int
	max   int
}

var numericFields = []numericField{
	{fieldStaffID, staff.StaffIDMin, staff.StaffIDMax},
	{fieldPapers, staff.ResearchPapersMin, staff.ResearchPapersMax},
	{fieldGrants, staff.GrantsMin, staff.GrantsMax},
	{fieldHours, staff.TrainingHoursMin, staff.TrainingHoursMax},
}

// staffForm is the entry form. Numeric inputs start at their minimum, the
// role cycles through staff.Roles and tasks keep the order they were ticked.
type staffForm struct {
	inputs        map[formField]*textinput.Model
	extra         textarea.Model
	nonProductive textarea.Model
	roleIdx       int
	tasks         []staff.Task
	taskCursor    int
	focus         formField
	width         int
}

func newStaffForm() staffForm {
	f := staffForm{inputs: make(map[formField]*textinput.Model)}
	for _, nf := range numericFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = len(strconv.Itoa(nf.max))
		in.Width = 10
		in.Placeholder = fmt.Sprintf("%d-%d", nf.min, nf.max)
		f.inputs[nf.field] = &in
	}
	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 80
	name.Width = 40
	name.Placeholder = "Full name"
	f.inputs[fieldName] = &name

	f.extra = newNoteArea("Clubs, committees, outreach...")
	f.nonProductive = newNoteArea("Time sinks worth noting")
	f.reset()
	return f
}

func newNoteArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	ta.SetWidth(48)
	ta.SetHeight(2)
	ta.Blur()
	return ta
}

// reset restores the defaults and puts focus back on Staff ID.
func (f *staffForm) reset() tea.Cmd {
	for _, nf := range numericFields {
		f.inputs[nf.field].SetValue(strconv.Itoa(nf.min))
	}
	f.inputs[fieldName].SetValue("")
	f.extra.Reset()
	f.nonProductive.Reset()
	f.roleIdx = 0
	f.tasks = nil
	f.taskCursor = 0
	return f.setFocus(fieldStaffID)
}

func (f *staffForm) setFocus(field formField) tea.Cmd {
	for id, in := range f.inputs {
		if id != field {
			in.Blur()
		}
	}
	f.extra.Blur()
	f.nonProductive.Blur()
	f.focus = field
	switch field {
	case fieldExtra:
		return f.extra.Focus()
	case fieldNonProductive:
		return f.nonProductive.Focus()
	}
	if in, ok := f.inputs[field]; ok {
		return in.Focus()
	}
	return nil
}

func (f *staffForm) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *staffForm) prev() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *staffForm) setWidth(width int) {
	f.width = width
	noteWidth := max(20, min(60, width-30))
	f.extra.SetWidth(noteWidth)
	f.nonProductive.SetWidth(noteWidth)
	f.inputs[fieldName].Width = max(10, min(50, width-30))
}

func (f *staffForm) role() staff.Role {
	return staff.Roles[f.roleIdx]
}

// update routes a message to the focused field.
func (f *staffForm) update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	switch f.focus {
	case fieldRole:
		if isKey {
			switch keyMsg.String() {
			case "left", "h":
				f.roleIdx = (f.roleIdx + len(staff.Roles) - 1) % len(staff.Roles)
			case "right", "l", " ":
				f.roleIdx = (f.roleIdx + 1) % len(staff.Roles)
			}
		}
		return nil
	case fieldTasks:
		if isKey {
			switch keyMsg.String() {
			case "up", "k":
				if f.taskCursor > 0 {
					f.taskCursor--
				}
			case "down", "j":
				if f.taskCursor < len(staff.Tasks)-1 {
					f.taskCursor++
				}
			case " ", "x":
				f.tasks = staff.ToggleTask(f.tasks, staff.Tasks[f.taskCursor])
			}
		}
		return nil
	case fieldExtra:
		var cmd tea.Cmd
		f.extra, cmd = f.extra.Update(msg)
		return cmd
	case fieldNonProductive:
		var cmd tea.Cmd
		f.nonProductive, cmd = f.nonProductive.Update(msg)
		return cmd
	case fieldSubmit:
		return nil
	}
	in, ok := f.inputs[f.focus]
	if !ok {
		return nil
	}
	if isKey && f.isNumeric(f.focus) && len(keyMsg.Runes) > 0 && !allDigits(keyMsg.Runes) {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *staffForm) isNumeric(field formField) bool {
	for _, nf := range numericFields {
		if nf.field == field {
			return true
		}
	}
	return false
}

// record parses and range-checks every field. Nothing is returned unless
// all of them pass.
func (f *staffForm) record() (staff.Record, error) {
	values := make(map[formField]int, len(numericFields))
	for _, nf := range numericFields {
		v, err := staff.ParseWhole(fieldLabels[nf.field], f.inputs[nf.field].Value())
		if err != nil {
			return staff.Record{}, err
		}
		values[nf.field] = v
	}
	rec := staff.Record{
		StaffID:           values[fieldStaffID],
		Name:              strings.TrimSpace(f.inputs[fieldName].Value()),
		Role:              f.role(),
		ResearchPapers:    values[fieldPapers],
		GrantsLakh:        values[fieldGrants],
		ExtraActivities:   strings.TrimSpace(f.extra.Value()),
		TrainingHours:     values[fieldHours],
		ProductiveTasks:   append([]staff.Task(nil), f.tasks...),
		NonProductiveTask: strings.TrimSpace(f.nonProductive.Value()),
	}
	if err := rec.Validate(); err != nil {
		return staff.Record{}, err
	}
	return rec, nil
}

// preview computes the score for the values currently typed in, when they parse.
func (f *staffForm) preview() (float64, bool) {
	papers, err1 := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPapers].Value()))
	grants, err2 := strconv.Atoi(strings.TrimSpace(f.inputs[fieldGrants].Value()))
	hours, err3 := strconv.Atoi(strings.TrimSpace(f.inputs[fieldHours].Value()))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return staff.ProductiveScore(papers, grants, hours), true
}

func (f *staffForm) view(st styles) string {
	rows := make([]string, 0, int(fieldCount)+2)
	rows = append(rows, st.Title.Render("Enter Staff Details"), "")
	for field := fieldStaffID; field < fieldSubmit; field++ {
		label := st.Label
		marker := "  "
		if f.focus == field {
			label = st.LabelOn
			marker = "▸ "
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			label.Render(fieldLabels[field]),
			f.fieldView(field, st),
		))
	}
	button := st.Button.Render("➕ Add Staff")
	if f.focus == fieldSubmit {
		button = st.ButtonOn.Render("➕ Add Staff")
	}
	rows = append(rows, button)
	if score, ok := f.preview(); ok {
		rows = append(rows, st.Muted.Render(fmt.Sprintf("Productive score preview: %.1f", score)))
	}
	return strings.Join(rows, "\n")
}

func (f *staffForm) fieldView(field formField, st styles) string {
	switch field {
	case fieldRole:
		parts := make([]string, len(staff.Roles))
		for i, r := range staff.Roles {
			if i == f.roleIdx {
				parts[i] = st.TabOn.Render(string(r))
			} else {
				parts[i] = st.Tab.Render(string(r))
			}
		}
		return strings.Join(parts, "")
	case fieldTasks:
		lines := make([]string, len(staff.Tasks))
		for i, task := range staff.Tasks {
			box := "[ ]"
			if pos := taskPosition(f.tasks, task); pos > 0 {
				box = fmt.Sprintf("[%d]", pos)
			}
			line := fmt.Sprintf("%s %s", box, task)
			if f.focus == fieldTasks && i == f.taskCursor {
				line = st.Title.Render(line)
			}
			lines[i] = line
		}
		return strings.Join(lines, "\n")
	case fieldExtra:
		return f.extra.View()
	case fieldNonProductive:
		return f.nonProductive.View()
	}
	if in, ok := f.inputs[field]; ok {
		return in.View()
	}
	return ""
}

// taskPosition is the 1-based selection order of task, or 0 when unselected.
func taskPosition(tasks []staff.Task, task staff.Task) int {
	for i, t := range tasks {
		if t == task {
			return i + 1
		}
	}
	return 0
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
