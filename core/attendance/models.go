package attendance

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kazi/core"
)

// Modes
const (
	ModeGPS    = "gps"
	ModeManual = "manual"
)

var errCoordinatesRequired = errors.New("latitude and longitude are required for gps check-in")

// Entry is one employee-day attendance record. CheckOut stays null until the
// employee checks out; Latitude/Longitude are only set for gps entries.
// Geofencing is enforced by the backend.
type Entry struct {
	ID           string       `json:"id"`
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Date         core.Date    `json:"date"`
	CheckIn      time.Time    `json:"check_in"`
	CheckOut     null.Time    `json:"check_out"`
	Mode         string       `json:"mode"`
	Latitude     null.Float64 `json:"latitude"`
	Longitude    null.Float64 `json:"longitude"`
}

var _ core.Record = Entry{}

func (e Entry) Key() string { return e.ID }

// Worked returns the recorded duration, zero while still checked in.
func (e Entry) Worked() time.Duration {
	if !e.CheckOut.Valid {
		return 0
	}
	return e.CheckOut.Time.Sub(e.CheckIn)
}

// CheckInRequest marks the start of a working day, either by GPS fix or
// manually.
type CheckInRequest struct {
	Mode      string       `json:"mode" validate:"required,oneof=gps manual"`
	Latitude  null.Float64 `json:"latitude"`
	Longitude null.Float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	if err := core.Validate.Struct(r); err != nil {
		return core.TranslateValidationErrors(err)
	}
	if r.Mode == ModeGPS && (!r.Latitude.Valid || !r.Longitude.Valid) {
		return core.NewValidationError(errCoordinatesRequired,
			core.FieldError{Field: "latitude", Error: errCoordinatesRequired.Error()})
	}
	return nil
}

// Panel filters

func EmployeeFilter(employeeID string) core.Predicate[Entry] {
	return func(e Entry) bool { return employeeID == "" || e.EmployeeID == employeeID }
}

func ModeFilter(mode string) core.Predicate[Entry] {
	return func(e Entry) bool { return mode == "" || e.Mode == mode }
}

// RangeFilter keeps entries dated within the inclusive [from, to] window.
func RangeFilter(from, to core.Date) core.Predicate[Entry] {
	return func(e Entry) bool {
		if !from.IsZero() && e.Date.Before(from.Time) {
			return false
		}
		if !to.IsZero() && e.Date.After(to.Time) {
			return false
		}
		return true
	}
}

// Table projects attendance entries into the shared display/export shape.
func Table(items []Entry) core.Table {
	t := core.Table{
		Title:   "Attendance",
		Headers: []string{"ID", "Employee", "Date", "Check In", "Check Out", "Mode", "Worked"},
	}
	for _, e := range items {
		out := ""
		if e.CheckOut.Valid {
			out = e.CheckOut.Time.Format("15:04")
		}
		worked := ""
		if d := e.Worked(); d > 0 {
			worked = d.Round(time.Minute).String()
		}
		t.Rows = append(t.Rows, []string{
			e.ID, e.EmployeeName, e.Date.String(), e.CheckIn.Format("15:04"), out, e.Mode, worked,
		})
	}
	return t
}
