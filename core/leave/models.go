package leave

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
)

// Statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Types
const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeUnpaid    = "unpaid"
	TypeMaternity = "maternity"
)

var errDatesOutOfOrder = errors.New("end date must not be before start date")

type Leave struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Type         string    `json:"type"`
	From         core.Date `json:"from"`
	To           core.Date `json:"to"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

var _ core.Record = Leave{}
var _ core.Ranged = Leave{}

func (l Leave) Key() string { return l.ID }

// StartsAt/EndsAt let leaves feed the calendar projection.
func (l Leave) StartsAt() time.Time { return l.From.Time }
func (l Leave) EndsAt() time.Time   { return l.To.Time }

// Days is the inclusive length of the leave in days.
func (l Leave) Days() int {
	if l.To.Before(l.From.Time) {
		return 0
	}
	return int(l.To.Sub(l.From.Time)/(24*time.Hour)) + 1
}

// NewLeave contains information needed to apply for leave.
type NewLeave struct {
	Type   string    `json:"type" validate:"required,oneof=annual sick unpaid maternity"`
	From   core.Date `json:"from" validate:"required"`
	To     core.Date `json:"to" validate:"required"`
	Reason string    `json:"reason" validate:"required"`
}

func (nl *NewLeave) Validate() error {
	nl.Reason = core.CleanString(nl.Reason)

	if err := core.Validate.Struct(nl); err != nil {
		return core.TranslateValidationErrors(err)
	}
	// date ordering is checked client-side; the request is never issued when
	// it fails
	if nl.To.Before(nl.From.Time) {
		return core.NewValidationError(errDatesOutOfOrder,
			core.FieldError{Field: "to", Error: errDatesOutOfOrder.Error()})
	}
	return nil
}

// Panel filters

func StatusFilter(status string) core.Predicate[Leave] {
	return func(l Leave) bool { return status == "" || l.Status == status }
}

func EmployeeFilter(employeeID string) core.Predicate[Leave] {
	return func(l Leave) bool { return employeeID == "" || l.EmployeeID == employeeID }
}

// RangeFilter keeps leaves overlapping the inclusive [from, to] window.
func RangeFilter(from, to core.Date) core.Predicate[Leave] {
	return func(l Leave) bool {
		if !from.IsZero() && l.To.Before(from.Time) {
			return false
		}
		if !to.IsZero() && l.From.After(to.Time) {
			return false
		}
		return true
	}
}

// Table projects leaves into the shared display/export shape.
func Table(items []Leave) core.Table {
	t := core.Table{
		Title:   "Leave Requests",
		Headers: []string{"ID", "Employee", "Type", "From", "To", "Days", "Reason", "Status"},
	}
	for _, l := range items {
		t.Rows = append(t.Rows, []string{
			l.ID, l.EmployeeName, l.Type, l.From.String(), l.To.String(), strconv.Itoa(l.Days()), l.Reason, l.Status,
		})
	}
	return t
}
