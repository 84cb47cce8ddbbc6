package event

import (
	"strings"
	"time"

	"github.com/trezcool/kazi/core"
)

// Kinds
const (
	KindMeeting = "meeting"
	KindHoliday = "holiday"
	KindOther   = "other"
)

// Event is a company event or meeting. EndDate is zero for single-day events.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	StartDate   core.Date `json:"start_date"`
	EndDate     core.Date `json:"end_date"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

var _ core.Record = Event{}
var _ core.Ranged = Event{}

func (e Event) Key() string { return e.ID }

func (e Event) StartsAt() time.Time { return e.StartDate.Time }

// EndsAt falls back to the start date for single-day events.
func (e Event) EndsAt() time.Time {
	if e.EndDate.IsZero() {
		return e.StartDate.Time
	}
	return e.EndDate.Time
}

// NewEvent contains information needed to put an event on the calendar.
type NewEvent struct {
	Title       string    `json:"title" validate:"required"`
	Kind        string    `json:"kind" validate:"required,oneof=meeting holiday other"`
	Description string    `json:"description"`
	StartDate   core.Date `json:"start_date" validate:"required"`
	EndDate     core.Date `json:"end_date"`
	Location    string    `json:"location"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Location = core.CleanString(ne.Location)

	if err := core.Validate.Struct(ne); err != nil {
		return core.TranslateValidationErrors(err)
	}
	if !ne.EndDate.IsZero() && ne.EndDate.Before(ne.StartDate.Time) {
		return core.NewValidationError(nil,
			core.FieldError{Field: "end_date", Error: "end date must not be before start date"})
	}
	return nil
}

// Panel filters

func SearchFilter(query string) core.Predicate[Event] {
	q := core.CleanString(query, true /* lower */)
	return func(e Event) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q)
	}
}

func KindFilter(kind string) core.Predicate[Event] {
	return func(e Event) bool { return kind == "" || e.Kind == kind }
}

// RangeFilter keeps events overlapping the inclusive [from, to] window.
func RangeFilter(from, to core.Date) core.Predicate[Event] {
	return func(e Event) bool {
		if !from.IsZero() && core.DateOf(e.EndsAt()).Before(from.Time) {
			return false
		}
		if !to.IsZero() && e.StartDate.After(to.Time) {
			return false
		}
		return true
	}
}

// Table projects events into the shared display/export shape.
func Table(items []Event) core.Table {
	t := core.Table{
		Title:   "Events",
		Headers: []string{"ID", "Title", "Kind", "Start", "End", "Location"},
	}
	for _, e := range items {
		t.Rows = append(t.Rows, []string{
			e.ID, e.Title, e.Kind, e.StartDate.String(), e.EndDate.String(), e.Location,
		})
	}
	return t
}
