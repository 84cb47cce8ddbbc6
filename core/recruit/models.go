package recruit

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kazi/core"
)

// Job statuses
const (
	JobOpen   = "open"
	JobClosed = "closed"
)

// Application stages
const (
	StageApplied     = "applied"
	StageShortlisted = "shortlisted"
	StageInterview   = "interview"
	StageOffered     = "offered"
	StageRejected    = "rejected"
)

// Job is a posting on the public careers page. Listing jobs works without a
// session; everything else in this package is authenticated.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ClosesOn    core.Date `json:"closes_on"`
	PostedAt    time.Time `json:"posted_at"` // UTC
}

var _ core.Record = Job{}

func (j Job) Key() string { return j.ID }

// Application is one candidate's submission for a Job.
type Application struct {
	ID        string      `json:"id"`
	JobID     string      `json:"job_id"`
	JobTitle  string      `json:"job_title"`
	Candidate string      `json:"candidate"`
	Email     string      `json:"email"`
	Phone     null.String `json:"phone"`
	ResumeURL null.String `json:"resume_url"`
	Stage     string      `json:"stage"`
	AppliedAt time.Time   `json:"applied_at"` // UTC
}

var _ core.Record = Application{}

func (a Application) Key() string { return a.ID }

// Interview is one scheduled meeting with a candidate; it feeds the calendar
// projection alongside events.
type Interview struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Candidate     string    `json:"candidate"`
	JobTitle      string    `json:"job_title"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Panel         []string  `json:"panel"` // interviewer employee ids
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
}

var _ core.Record = Interview{}
var _ core.Ranged = Interview{}

func (i Interview) Key() string { return i.ID }

func (i Interview) StartsAt() time.Time { return i.ScheduledAt }
func (i Interview) EndsAt() time.Time   { return i.ScheduledAt }

// NewJob contains information needed to publish a posting.
type NewJob struct {
	Title       string    `json:"title" validate:"required"`
	Department  string    `json:"department" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Description string    `json:"description" validate:"required"`
	ClosesOn    core.Date `json:"closes_on"`
}

func (nj *NewJob) Validate() error {
	nj.Title = core.CleanString(nj.Title)
	nj.Location = core.CleanString(nj.Location)

	if err := core.Validate.Struct(nj); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// NewApplication contains a candidate's details; the resume file itself is
// submitted as a multipart part next to these fields.
type NewApplication struct {
	Candidate string `json:"candidate" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

func (na *NewApplication) Validate() error {
	na.Candidate = core.CleanString(na.Candidate)
	na.Email = core.CleanString(na.Email, true /* lower */)

	if err := core.Validate.Struct(na); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// NewInterview schedules a meeting for an application.
type NewInterview struct {
	ApplicationID string    `json:"application_id" validate:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
	Panel         []string  `json:"panel" validate:"required,min=1"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
}

func (ni *NewInterview) Validate() error {
	ni.Location = core.CleanString(ni.Location)

	if err := core.Validate.Struct(ni); err != nil {
		return core.TranslateValidationErrors(err)
	}
	if ni.ScheduledAt.Before(core.NowFunc()) {
		return core.NewValidationError(nil,
			core.FieldError{Field: "scheduled_at", Error: "interview must be scheduled in the future"})
	}
	return nil
}

// Panel filters

func JobStatusFilter(status string) core.Predicate[Job] {
	return func(j Job) bool { return status == "" || j.Status == status }
}

func JobSearchFilter(query string) core.Predicate[Job] {
	q := core.CleanString(query, true /* lower */)
	return func(j Job) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(j.Title), q) ||
			strings.Contains(strings.ToLower(j.Department), q) ||
			strings.Contains(strings.ToLower(j.Location), q)
	}
}

func StageFilter(stage string) core.Predicate[Application] {
	return func(a Application) bool { return stage == "" || a.Stage == stage }
}

func JobFilter(jobID string) core.Predicate[Application] {
	return func(a Application) bool { return jobID == "" || a.JobID == jobID }
}

// JobTable projects postings into the shared display/export shape.
func JobTable(items []Job) core.Table {
	t := core.Table{
		Title:   "Job Postings",
		Headers: []string{"ID", "Title", "Department", "Location", "Status", "Closes"},
	}
	for _, j := range items {
		t.Rows = append(t.Rows, []string{
			j.ID, j.Title, j.Department, j.Location, j.Status, j.ClosesOn.String(),
		})
	}
	return t
}

// ApplicationTable projects applications into the shared display/export shape.
func ApplicationTable(items []Application) core.Table {
	t := core.Table{
		Title:   "Applications",
		Headers: []string{"ID", "Candidate", "Email", "Job", "Stage", "Applied"},
	}
	for _, a := range items {
		t.Rows = append(t.Rows, []string{
			a.ID, a.Candidate, a.Email, a.JobTitle, a.Stage, a.AppliedAt.Local().Format("2006-01-02"),
		})
	}
	return t
}
