package project

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kazi/core"
)

// Statuses shared by projects and tasks
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	LeadID      string    `json:"lead_id"`
	LeadName    string    `json:"lead_name"`
	StartDate   core.Date `json:"start_date"`
	Deadline    core.Date `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

var _ core.Record = Project{}
var _ core.Ranged = Project{}

func (p Project) Key() string { return p.ID }

func (p Project) StartsAt() time.Time { return p.StartDate.Time }
func (p Project) EndsAt() time.Time   { return p.Deadline.Time }

type Task struct {
	ID           string      `json:"id"`
	ProjectID    string      `json:"project_id"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	AssigneeID   null.String `json:"assignee_id"`
	AssigneeName null.String `json:"assignee_name"`
	DueDate      core.Date   `json:"due_date"`
}

var _ core.Record = Task{}

func (t Task) Key() string { return t.ID }

// Overdue reports whether the task misses its due date as of today.
func (t Task) Overdue() bool {
	return t.Status != StatusDone && !t.DueDate.IsZero() && t.DueDate.Before(core.Today())
}

// NewProject contains information needed to create a Project.
type NewProject struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	LeadID      string    `json:"lead_id" validate:"required"`
	StartDate   core.Date `json:"start_date" validate:"required"`
	Deadline    core.Date `json:"deadline"`
}

func (np *NewProject) Validate() error {
	np.Name = core.CleanString(np.Name)
	np.Description = core.CleanString(np.Description)

	if err := core.Validate.Struct(np); err != nil {
		return core.TranslateValidationErrors(err)
	}
	if !np.Deadline.IsZero() && np.Deadline.Before(np.StartDate.Time) {
		return core.NewValidationError(nil,
			core.FieldError{Field: "deadline", Error: "deadline must not be before the start date"})
	}
	return nil
}

// NewTask contains information needed to add a Task to a project.
type NewTask struct {
	Title      string    `json:"title" validate:"required"`
	AssigneeID string    `json:"assignee_id"`
	DueDate    core.Date `json:"due_date"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)

	if err := core.Validate.Struct(nt); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// Panel filters

func SearchFilter(query string) core.Predicate[Project] {
	q := core.CleanString(query, true /* lower */)
	return func(p Project) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}
}

func StatusFilter(status string) core.Predicate[Project] {
	return func(p Project) bool { return status == "" || p.Status == status }
}

func TaskStatusFilter(status string) core.Predicate[Task] {
	return func(t Task) bool { return status == "" || t.Status == status }
}

func AssigneeFilter(employeeID string) core.Predicate[Task] {
	return func(t Task) bool { return employeeID == "" || t.AssigneeID.String == employeeID }
}

func OverdueFilter() core.Predicate[Task] {
	return func(t Task) bool { return t.Overdue() }
}

// Table projects projects into the shared display/export shape.
func Table(items []Project) core.Table {
	t := core.Table{
		Title:   "Projects",
		Headers: []string{"ID", "Name", "Lead", "Status", "Start", "Deadline"},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.ID, p.Name, p.LeadName, p.Status, p.StartDate.String(), p.Deadline.String(),
		})
	}
	return t
}

// TaskTable projects tasks into the shared display/export shape.
func TaskTable(items []Task) core.Table {
	t := core.Table{
		Title:   "Tasks",
		Headers: []string{"ID", "Title", "Assignee", "Status", "Due"},
	}
	for _, tsk := range items {
		t.Rows = append(t.Rows, []string{
			tsk.ID, tsk.Title, tsk.AssigneeName.String, tsk.Status, tsk.DueDate.String(),
		})
	}
	return t
}
