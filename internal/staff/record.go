// Package staff holds the staff productivity record, its derived score and
// the session-scoped store the TUI appends to.
package staff

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Role is the academic position of a staff member.
type Role string

const (
	RoleProfessor          Role = "Professor"
	RoleAssociateProfessor Role = "Associate Professor"
	RoleAssistantProfessor Role = "Assistant Professor"
	RoleResearcher         Role = "Researcher"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleProfessor,
	RoleAssociateProfessor,
	RoleAssistantProfessor,
	RoleResearcher,
}

// Task is a productive task category.
type Task string

const (
	TaskResearch         Task = "Research"
	TaskTeaching         Task = "Teaching"
	TaskAdministration   Task = "Administration"
	TaskCommunityService Task = "Community Service"
)

// Tasks lists every productive task in display order.
var Tasks = []Task{
	TaskResearch,
	TaskTeaching,
	TaskAdministration,
	TaskCommunityService,
}

// Input bounds enforced by the entry form.
const (
	StaffIDMin        = 10000
	StaffIDMax        = 99999
	ResearchPapersMin = 0
	ResearchPapersMax = 50
	GrantsMin         = 1
	GrantsMax         = 50
	TrainingHoursMin  = 0
	TrainingHoursMax  = 200
)

var (
	// ErrOutOfRange reports a numeric field outside its allowed bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrNotNumber reports a numeric field that does not parse as an integer.
	ErrNotNumber = errors.New("not a whole number")
	// ErrUnknownRole reports a role outside Roles.
	ErrUnknownRole = errors.New("unknown role")
	// ErrUnknownTask reports a task outside Tasks.
	ErrUnknownTask = errors.New("unknown task")
)

// Record is one staff member's submitted data plus the derived score. The
// label tag names a field in validation errors.
type Record struct {
	StaffID           int     `label:"Staff ID" validate:"min=10000,max=99999"`
	Name              string  `label:"Name"`
	Role              Role    `label:"Role" validate:"oneof=Professor 'Associate Professor' 'Assistant Professor' Researcher"`
	ResearchPapers    int     `label:"Research Papers" validate:"min=0,max=50"`
	GrantsLakh        int     `label:"Grants/Funding (Lakh)" validate:"min=1,max=50"`
	ExtraActivities   string  `label:"Extra Activities"`
	TrainingHours     int     `label:"Training Hours Attended" validate:"min=0,max=200"`
	ProductiveTasks   []Task  `label:"Productive Tasks" validate:"dive,oneof=Research Teaching Administration 'Community Service'"`
	NonProductiveTask string  `label:"Non-Productive Task"`
	ProductiveScore   float64 `label:"Productive Score"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

// ProductiveScore weighs papers double, grants once and training hours by half.
func ProductiveScore(researchPapers, grantsLakh, trainingHours int) float64 {
	return float64(researchPapers*2+grantsLakh) + float64(trainingHours)*0.5
}

// WithScore returns a copy of r whose ProductiveScore is recomputed from its
// papers, grants and training hours.
func (r Record) WithScore() Record {
	r.ProductiveTasks = append([]Task(nil), r.ProductiveTasks...)
	r.ProductiveScore = ProductiveScore(r.ResearchPapers, r.GrantsLakh, r.TrainingHours)
	return r
}

// Validate checks the bounds the entry form promises. The store never calls
// it. Only the first failing field is reported, in field order.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate record: %w", err)
	}
	return fieldError(fieldErrs[0])
}

// fieldError maps a validator failure onto the package sentinels.
func fieldError(fe validator.FieldError) error {
	label, _, _ := strings.Cut(fe.Field(), "[")
	switch fe.Tag() {
	case "min":
		return fmt.Errorf("%s: %w: %v is below %s", label, ErrOutOfRange, fe.Value(), fe.Param())
	case "max":
		return fmt.Errorf("%s: %w: %v is above %s", label, ErrOutOfRange, fe.Value(), fe.Param())
	case "oneof":
		if strings.HasPrefix(fe.StructField(), "ProductiveTasks") {
			return fmt.Errorf("%s: %w: %q", label, ErrUnknownTask, fe.Value())
		}
		return fmt.Errorf("%s: %w: %q", label, ErrUnknownRole, fe.Value())
	default:
		return fmt.Errorf("%s: failed %s validation", label, fe.Tag())
	}
}

// TaskLabels joins the productive tasks in selection order.
func (r Record) TaskLabels(sep string) string {
	parts := make([]string, len(r.ProductiveTasks))
	for i, task := range r.ProductiveTasks {
		parts[i] = string(task)
	}
	return strings.Join(parts, sep)
}

// ToggleTask adds task to the end of tasks, or removes it when already present.
func ToggleTask(tasks []Task, task Task) []Task {
	for i, existing := range tasks {
		if existing == task {
			out := make([]Task, 0, len(tasks)-1)
			out = append(out, tasks[:i]...)
			return append(out, tasks[i+1:]...)
		}
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, task)
}

// ParseWhole parses a form field holding a whole number.
func ParseWhole(label, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", label, ErrNotNumber, strings.TrimSpace(raw))
	}
	return value, nil
}
