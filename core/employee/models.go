package employee

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kazi/core"
)

// Departments shown in registration forms; the backend is the authority and
// may know more.
var Departments = []string{"Engineering", "Finance", "Human Resources", "Marketing", "Operations", "Sales"}

type Employee struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Role       string      `json:"role"`
	Position   string      `json:"position"`
	Department string      `json:"department"`
	Phone      null.String `json:"phone"`
	PhotoURL   null.String `json:"photo_url"`
	IsActive   bool        `json:"is_active"`
	JoinedOn   core.Date   `json:"joined_on"`
	CreatedAt  time.Time   `json:"created_at"` // UTC
	UpdatedAt  time.Time   `json:"updated_at"` // UTC
}

var _ core.Record = Employee{}

func (e Employee) Key() string { return e.ID }

// NewEmployee contains information needed to register an Employee.
type NewEmployee struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=4,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Position        string `json:"position" validate:"required"`
	Department      string `json:"department" validate:"required"`
	Phone           string `json:"phone" validate:"omitempty,e164"`
}

func (ne *NewEmployee) Validate() error {
	ne.Name = core.CleanString(ne.Name)
	ne.Username = core.CleanString(ne.Username, true /* lower */)
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	ne.Position = core.CleanString(ne.Position)
	ne.Department = core.CleanString(ne.Department)

	if err := core.Validate.Struct(ne); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// UpdateEmployee defines what information may be provided to modify an
// existing Employee. Empty fields are left unchanged by the backend.
type UpdateEmployee struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,e164"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (ue *UpdateEmployee) Validate() error {
	ue.Name = core.CleanString(ue.Name)
	ue.Email = core.CleanString(ue.Email, true /* lower */)

	if err := core.Validate.Struct(ue); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// Panel filters

// SearchFilter matches the query case-insensitively against name, username,
// email or position.
func SearchFilter(query string) core.Predicate[Employee] {
	q := core.CleanString(query, true /* lower */)
	return func(e Employee) bool {
		if q == "" {
			return true
		}
		for _, fld := range []string{e.Name, e.Username, e.Email, e.Position} {
			if strings.Contains(strings.ToLower(fld), q) {
				return true
			}
		}
		return false
	}
}

func DepartmentFilter(dept string) core.Predicate[Employee] {
	return func(e Employee) bool { return dept == "" || e.Department == dept }
}

func ActiveFilter(active bool) core.Predicate[Employee] {
	return func(e Employee) bool { return e.IsActive == active }
}

// Table projects employees into the shared display/export shape.
func Table(items []Employee) core.Table {
	t := core.Table{
		Title:   "Employees",
		Headers: []string{"ID", "Name", "Username", "Email", "Position", "Department", "Phone", "Active", "Joined"},
	}
	for _, e := range items {
		active := "no"
		if e.IsActive {
			active = "yes"
		}
		t.Rows = append(t.Rows, []string{
			e.ID, e.Name, e.Username, e.Email, e.Position, e.Department, e.Phone.String, active, e.JoinedOn.String(),
		})
	}
	return t
}
