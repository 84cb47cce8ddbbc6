package apitest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/employee"
	"github.com/trezcool/kazi/core/event"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/payroll"
	"github.com/trezcool/kazi/core/recruit"
)

// SeedEmployee inserts an active account directly into the employee table.
func (s *Server) SeedEmployee(t *testing.T, name, uname, pwd, role string) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("SeedEmployee() failed: %v", err)
	}
	now := time.Now().UTC()
	row := &employeeRow{
		Employee: employee.Employee{
			ID:         uuid.NewString(),
			Name:       name,
			Username:   uname,
			Email:      uname + "@kazi.test",
			Role:       role,
			Position:   "Staff",
			Department: "Engineering",
			IsActive:   true,
			JoinedOn:   core.DateOf(now),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		passwordHash: hash,
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.employees[row.ID] = row
	return row.Employee
}

// Login seeds nothing; it authenticates an already-seeded employee and
// returns the resulting session.
func (s *Server) Login(t *testing.T, uname, pwd string) core.Session {
	t.Helper()
	sess, err := core.Login(context.Background(), s.Client(nil), core.Credentials{Username: uname, Password: pwd})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	return sess
}

// SeedLeave inserts a leave request directly into the leave table.
func (s *Server) SeedLeave(t *testing.T, emp employee.Employee, typ string, from, to core.Date, status string) leave.Leave {
	t.Helper()
	l := &leave.Leave{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         typ,
		From:         from,
		To:           to,
		Reason:       "seeded",
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.leaves[l.ID] = l
	return *l
}

// SeedPayroll inserts a pay record directly into the payroll table.
func (s *Server) SeedPayroll(t *testing.T, emp employee.Employee, period string, basic, allowances, deductions float64) payroll.Payroll {
	t.Helper()
	p := &payroll.Payroll{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Period:       period,
		Basic:        basic,
		Allowances:   allowances,
		Deductions:   deductions,
		Net:          basic + allowances - deductions,
		Status:       payroll.StatusDraft,
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.payrolls[p.ID] = p
	return *p
}

// SeedJob inserts an open posting directly into the job table.
func (s *Server) SeedJob(t *testing.T, title, department string) recruit.Job {
	t.Helper()
	j := &recruit.Job{
		ID:         uuid.NewString(),
		Title:      title,
		Department: department,
		Location:   "Remote",
		Status:     recruit.JobOpen,
		PostedAt:   time.Now().UTC(),
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.jobs[j.ID] = j
	return *j
}

// SeedEvent inserts an event directly into the event table.
func (s *Server) SeedEvent(t *testing.T, title string, start, end core.Date) event.Event {
	t.Helper()
	e := &event.Event{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      event.KindMeeting,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now().UTC(),
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.events[e.ID] = e
	return *e
}
