package payroll

import (
	"fmt"
	"time"

	"github.com/trezcool/kazi/core"
)

// Statuses
const (
	StatusDraft = "draft"
	StatusPaid  = "paid"
)

// Payroll is one employee-month pay record. Every amount, including Net, is
// computed by the backend; this layer never re-derives salary math.
type Payroll struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Period       string    `json:"period"` // "2006-01"
	Basic        float64   `json:"basic"`
	Allowances   float64   `json:"allowances"`
	Deductions   float64   `json:"deductions"`
	Net          float64   `json:"net"`
	Status       string    `json:"status"`
	PaidAt       time.Time `json:"paid_at"` // zero until paid
}

var _ core.Record = Payroll{}

func (p Payroll) Key() string { return p.ID }

// Payslip is the print-ready projection of one Payroll; the PDF exporter
// consumes it as-is.
type Payslip struct {
	Payroll
	CompanyName string     `json:"company_name"`
	Position    string     `json:"position"`
	Department  string     `json:"department"`
	Lines       []SlipLine `json:"lines"`
}

// SlipLine is one labelled amount on a payslip; deductions carry negative
// amounts.
type SlipLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// NewPayroll contains information needed to generate a pay record.
type NewPayroll struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Period     string  `json:"period" validate:"required,len=7"` // "2006-01"
	Basic      float64 `json:"basic" validate:"required,gt=0"`
	Allowances float64 `json:"allowances" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
}

func (np *NewPayroll) Validate() error {
	if err := core.Validate.Struct(np); err != nil {
		return core.TranslateValidationErrors(err)
	}
	if _, err := time.Parse("2006-01", np.Period); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "period", Error: "period must look like 2006-01"})
	}
	return nil
}

// Panel filters

func EmployeeFilter(employeeID string) core.Predicate[Payroll] {
	return func(p Payroll) bool { return employeeID == "" || p.EmployeeID == employeeID }
}

func PeriodFilter(period string) core.Predicate[Payroll] {
	return func(p Payroll) bool { return period == "" || p.Period == period }
}

func StatusFilter(status string) core.Predicate[Payroll] {
	return func(p Payroll) bool { return status == "" || p.Status == status }
}

// Table projects pay records into the shared display/export shape.
func Table(items []Payroll) core.Table {
	t := core.Table{
		Title:   "Payroll",
		Headers: []string{"ID", "Employee", "Period", "Basic", "Allowances", "Deductions", "Net", "Status"},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.ID, p.EmployeeName, p.Period,
			money(p.Basic), money(p.Allowances), money(p.Deductions), money(p.Net), p.Status,
		})
	}
	return t
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
