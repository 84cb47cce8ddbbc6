package mailbox

import (
	"strings"
	"time"

	"github.com/trezcool/kazi/core"
)

// Mail is one internal message between employees.
type Mail struct {
	ID       string    `json:"id"`
	FromID   string    `json:"from_id"`
	FromName string    `json:"from_name"`
	ToID     string    `json:"to_id"`
	ToName   string    `json:"to_name"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Read     bool      `json:"read"`
	SentAt   time.Time `json:"sent_at"` // UTC
}

var _ core.Record = Mail{}

func (m Mail) Key() string { return m.ID }

// Notification is one system-generated notice (leave approved, interview
// scheduled, ...).
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

var _ core.Record = Notification{}

func (n Notification) Key() string { return n.ID }

// NewMail contains information needed to send an internal message.
type NewMail struct {
	ToID    string `json:"to_id" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (nm *NewMail) Validate() error {
	nm.Subject = core.CleanString(nm.Subject)
	nm.Body = strings.TrimSpace(nm.Body)

	if err := core.Validate.Struct(nm); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// Panel filters

func UnreadFilter() core.Predicate[Mail] {
	return func(m Mail) bool { return !m.Read }
}

func SearchFilter(query string) core.Predicate[Mail] {
	q := core.CleanString(query, true /* lower */)
	return func(m Mail) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(m.Subject), q) ||
			strings.Contains(strings.ToLower(m.Body), q) ||
			strings.Contains(strings.ToLower(m.FromName), q)
	}
}

func UnreadNotifications() core.Predicate[Notification] {
	return func(n Notification) bool { return !n.Read }
}

// Table projects mail into the shared display/export shape.
func Table(items []Mail) core.Table {
	t := core.Table{
		Title:   "Mail",
		Headers: []string{"ID", "From", "To", "Subject", "Sent", "Read"},
	}
	for _, m := range items {
		read := "no"
		if m.Read {
			read = "yes"
		}
		t.Rows = append(t.Rows, []string{
			m.ID, m.FromName, m.ToName, m.Subject, m.SentAt.Local().Format("2006-01-02 15:04"), read,
		})
	}
	return t
}
