package staff

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProductiveScore(t *testing.T) {
	cases := []struct {
		papers, grants, hours int
		want                  float64
	}{
		{3, 5, 10, 16},
		{0, 1, 0, 1},
		{0, 1, 1, 1.5},
		{50, 50, 200, 250},
		{7, 12, 33, 42.5},
	}
	for _, tc := range cases {
		if got := ProductiveScore(tc.papers, tc.grants, tc.hours); got != tc.want {
			t.Fatalf("ProductiveScore(%d, %d, %d) = %v, want %v", tc.papers, tc.grants, tc.hours, got, tc.want)
		}
	}
}

func TestAppendRecomputesScore(t *testing.T) {
	store := NewStore()
	stored := store.Append(Record{StaffID: 10001, ResearchPapers: 3, GrantsLakh: 5, TrainingHours: 10, ProductiveScore: 999})
	if stored.ProductiveScore != 16 {
		t.Fatalf("stored score = %v, want 16", stored.ProductiveScore)
	}
	if got := store.All()[0].ProductiveScore; got != 16 {
		t.Fatalf("All()[0] score = %v, want 16", got)
	}
}

func TestAllPreservesSubmissionOrder(t *testing.T) {
	store := NewStore()
	var want []Record
	for i := 0; i < 5; i++ {
		want = append(want, store.Append(Record{StaffID: 10000 + i, Name: "staff", GrantsLakh: 1}))
	}
	if diff := cmp.Diff(want, store.All()); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}
	if store.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", store.Len())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append(Record{Name: "Alice", ProductiveTasks: []Task{TaskResearch}})
	view := store.All()
	view[0].Name = "mutated"
	if got := store.All()[0].Name; got != "Alice" {
		t.Fatalf("store leaked its backing slice, name = %q", got)
	}
}

func TestAppendCopiesTasks(t *testing.T) {
	store := NewStore()
	tasks := []Task{TaskTeaching}
	store.Append(Record{Name: "Alice", ProductiveTasks: tasks})
	tasks[0] = TaskAdministration
	if got := store.All()[0].ProductiveTasks[0]; got != TaskTeaching {
		t.Fatalf("stored task = %q, want %q", got, TaskTeaching)
	}
}

func TestFilterByName(t *testing.T) {
	store := NewStore()
	alice := store.Append(Record{StaffID: 10001, Name: "Alice"})
	aliceB := store.Append(Record{StaffID: 10002, Name: "alice B"})
	store.Append(Record{StaffID: 10003, Name: "Bob"})

	if diff := cmp.Diff([]Record{alice, aliceB}, store.FilterByName("alice")); diff != "" {
		t.Fatalf("FilterByName(alice) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(store.All(), store.FilterByName("")); diff != "" {
		t.Fatalf("FilterByName(\"\") should equal All() (-want +got):\n%s", diff)
	}
	if got := store.FilterByName("ALICE b"); len(got) != 1 || got[0].StaffID != 10002 {
		t.Fatalf("FilterByName(ALICE b) = %+v", got)
	}
	if got := store.FilterByName("zed"); len(got) != 0 {
		t.Fatalf("FilterByName(zed) returned %d records", len(got))
	}
}

func TestFilterByNameFoldsUnicode(t *testing.T) {
	store := NewStore()
	store.Append(Record{Name: "ÄRZTE TEAM"})
	store.Append(Record{Name: "Bob"})
	if got := store.FilterByName("ärzte"); len(got) != 1 {
		t.Fatalf("expected folded match for ärzte, got %d", len(got))
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Append(Record{Name: "Alice"})
	store.Append(Record{Name: "Bob"})
	if n := store.Clear(); n != 2 {
		t.Fatalf("Clear() = %d, want 2", n)
	}
	if got := store.All(); len(got) != 0 {
		t.Fatalf("All() after Clear = %d records", len(got))
	}
	if n := store.Clear(); n != 0 {
		t.Fatalf("second Clear() = %d, want 0", n)
	}
}

func TestDuplicateStaffIDsAccepted(t *testing.T) {
	store := NewStore()
	store.Append(Record{StaffID: 10001, Name: "Alice"})
	store.Append(Record{StaffID: 10001, Name: "Alice again"})
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
}

func TestValidate(t *testing.T) {
	valid := Record{StaffID: 10001, Role: RoleProfessor, GrantsLakh: 1, ProductiveTasks: []Task{TaskResearch}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	cases := map[string]struct {
		mutate func(*Record)
		want   error
	}{
		"staff id low":   {func(r *Record) { r.StaffID = 9999 }, ErrOutOfRange},
		"staff id high":  {func(r *Record) { r.StaffID = 100000 }, ErrOutOfRange},
		"papers high":    {func(r *Record) { r.ResearchPapers = 51 }, ErrOutOfRange},
		"grants zero":    {func(r *Record) { r.GrantsLakh = 0 }, ErrOutOfRange},
		"hours negative": {func(r *Record) { r.TrainingHours = -1 }, ErrOutOfRange},
		"hours high":     {func(r *Record) { r.TrainingHours = 201 }, ErrOutOfRange},
		"role":           {func(r *Record) { r.Role = "Dean" }, ErrUnknownRole},
		"task":           {func(r *Record) { r.ProductiveTasks = []Task{"Napping"} }, ErrUnknownTask},
	}
	for name, tc := range cases {
		r := valid
		tc.mutate(&r)
		if err := r.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: Validate() = %v, want %v", name, err, tc.want)
		}
	}
}

func TestValidateBoundsMatchConstants(t *testing.T) {
	edges := []Record{
		{StaffID: StaffIDMin, Role: RoleResearcher, ResearchPapers: ResearchPapersMin, GrantsLakh: GrantsMin, TrainingHours: TrainingHoursMin},
		{StaffID: StaffIDMax, Role: RoleAssociateProfessor, ResearchPapers: ResearchPapersMax, GrantsLakh: GrantsMax, TrainingHours: TrainingHoursMax,
			ProductiveTasks: []Task{TaskCommunityService, TaskAdministration, TaskTeaching, TaskResearch}},
	}
	for _, r := range edges {
		if err := r.Validate(); err != nil {
			t.Fatalf("edge record %+v rejected: %v", r, err)
		}
	}
}

func TestValidateNamesFieldByLabel(t *testing.T) {
	r := Record{StaffID: 10001, Role: RoleAssistantProfessor, ResearchPapers: 51, GrantsLakh: 0}
	err := r.Validate()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Research Papers: ") {
		t.Fatalf("first failing field should lead the message, got %q", err.Error())
	}

	r = Record{StaffID: 10001, Role: RoleProfessor, GrantsLakh: 1, ProductiveTasks: []Task{TaskTeaching, "Napping"}}
	err = r.Validate()
	if !errors.Is(err, ErrUnknownTask) || !strings.HasPrefix(err.Error(), "Productive Tasks: ") {
		t.Fatalf("unexpected task error %v", err)
	}
}

func TestParseWhole(t *testing.T) {
	if v, err := ParseWhole("Staff ID", " 10001 "); err != nil || v != 10001 {
		t.Fatalf("ParseWhole = %d, %v", v, err)
	}
	if _, err := ParseWhole("Staff ID", "12.5"); !errors.Is(err, ErrNotNumber) {
		t.Fatalf("expected ErrNotNumber, got %v", err)
	}
}

func TestToggleTaskKeepsSelectionOrder(t *testing.T) {
	var tasks []Task
	tasks = ToggleTask(tasks, TaskTeaching)
	tasks = ToggleTask(tasks, TaskResearch)
	tasks = ToggleTask(tasks, TaskCommunityService)
	tasks = ToggleTask(tasks, TaskResearch)
	want := []Task{TaskTeaching, TaskCommunityService}
	if diff := cmp.Diff(want, tasks); diff != "" {
		t.Fatalf("ToggleTask mismatch (-want +got):\n%s", diff)
	}
}
