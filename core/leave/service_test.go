package leave_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/kazi/apitest"
	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/employee"
	"github.com/trezcool/kazi/core/leave"
)

func setup(t *testing.T) (*apitest.Server, *leave.Service, employee.Employee) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	emp := srv.SeedEmployee(t, "Amina Juma", "aminaj", "s3cr3tpwd", core.RoleEmployee)
	holder := core.NewSessionHolder()
	_ = holder.Set(srv.Login(t, "aminaj", "s3cr3tpwd"))
	return srv, leave.NewService(srv.Client(holder)), emp
}

func date(y int, m time.Month, d int) core.Date { return core.NewDate(y, m, d) }

func TestService_Apply(t *testing.T) {
	_, svc, emp := setup(t)
	ctx := context.Background()

	t.Run("valid request starts pending", func(t *testing.T) {
		l, err := svc.Apply(ctx, leave.NewLeave{
			Type:   leave.TypeAnnual,
			From:   date(2025, time.July, 10),
			To:     date(2025, time.July, 12),
			Reason: "family visit",
		})
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, leave.StatusPending, l.Status)
		assert.Equal(t, emp.ID, l.EmployeeID)
		assert.Equal(t, 3, l.Days())
	})

	t.Run("dates out of order rejected client-side", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.NewLeave{
			Type:   leave.TypeSick,
			From:   date(2025, time.July, 12),
			To:     date(2025, time.July, 10),
			Reason: "oops",
		})
		vErr, ok := core.IsValidationError(err)
		if assert.True(t, ok, "want a validation error, got %v", err) {
			assert.Equal(t, "to", vErr.Fields[0].Field)
		}
	})

	t.Run("unknown type rejected client-side", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.NewLeave{
			Type:   "sabbatical",
			From:   date(2025, time.July, 10),
			To:     date(2025, time.July, 12),
			Reason: "writing a book",
		})
		_, ok := core.IsValidationError(err)
		assert.True(t, ok, "want a validation error, got %v", err)
	})
}

func TestService_ApproveReject(t *testing.T) {
	srv, svc, emp := setup(t)
	ctx := context.Background()

	first := srv.SeedLeave(t, emp, leave.TypeAnnual, date(2025, time.July, 10), date(2025, time.July, 12), leave.StatusPending)
	second := srv.SeedLeave(t, emp, leave.TypeSick, date(2025, time.August, 1), date(2025, time.August, 1), leave.StatusPending)

	approved, err := svc.Approve(ctx, first.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, leave.StatusApproved, approved.Status)
	}
	rejected, err := svc.Reject(ctx, second.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, leave.StatusRejected, rejected.Status)
	}

	lc := core.NewListController(svc.Fetcher())
	if assert.NoError(t, lc.Refresh(ctx)) {
		lc.SetFilter("status", leave.StatusFilter(leave.StatusApproved))
		rows := lc.VisibleRows()
		if assert.Len(t, rows, 1) {
			assert.Equal(t, first.ID, rows[0].ID)
		}
	}
}

// A failed approval must leave the rendered collection exactly as it was.
func TestService_failedMutationKeepsPanel(t *testing.T) {
	srv, svc, emp := setup(t)
	ctx := context.Background()

	l := srv.SeedLeave(t, emp, leave.TypeAnnual, date(2025, time.July, 10), date(2025, time.July, 12), leave.StatusPending)

	lc := core.NewListController(svc.Fetcher())
	if !assert.NoError(t, lc.Refresh(ctx)) {
		return
	}
	before := lc.VisibleRows()

	notify := &captureNotifier{}
	m := core.NewMutator(lc, yes{}, notify, nil)

	srv.FailNext(http.StatusInternalServerError, "database on fire")
	err := m.Run(ctx, l.ID, "approve?", "leave approved", func(ctx context.Context) error {
		_, err := svc.Approve(ctx, l.ID)
		return err
	})
	aErr, ok := core.IsAPIError(err)
	if assert.True(t, ok, "want an api error, got %v", err) {
		assert.Equal(t, http.StatusInternalServerError, aErr.StatusCode)
	}

	after := lc.VisibleRows()
	if assert.Len(t, after, len(before)) {
		assert.Equal(t, before[0].Status, after[0].Status, "panel rows changed after a failed mutation")
	}
	assert.Equal(t, []string{"database on fire"}, notify.failures, "backend message shown verbatim")

	// the record itself was never touched server-side either
	got, err := svc.Get(ctx, l.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, leave.StatusPending, got.Status)
	}
}

// A successful mutation refetches; the panel reflects the backend's new truth.
func TestService_successfulMutationRefetches(t *testing.T) {
	srv, svc, emp := setup(t)
	ctx := context.Background()

	l := srv.SeedLeave(t, emp, leave.TypeAnnual, date(2025, time.July, 10), date(2025, time.July, 12), leave.StatusPending)

	lc := core.NewListController(svc.Fetcher())
	if !assert.NoError(t, lc.Refresh(ctx)) {
		return
	}

	notify := &captureNotifier{}
	m := core.NewMutator(lc, yes{}, notify, nil)
	err := m.Run(ctx, l.ID, "approve?", "leave approved", func(ctx context.Context) error {
		_, err := svc.Approve(ctx, l.ID)
		return err
	})
	if !assert.NoError(t, err) {
		return
	}

	rows := lc.VisibleRows()
	if assert.Len(t, rows, 1) {
		assert.Equal(t, leave.StatusApproved, rows[0].Status)
	}
	assert.Equal(t, []string{"leave approved"}, notify.successes)
}

func TestService_rangeFilter(t *testing.T) {
	srv, svc, emp := setup(t)
	ctx := context.Background()

	srv.SeedLeave(t, emp, leave.TypeAnnual, date(2025, time.July, 10), date(2025, time.July, 12), leave.StatusPending)
	srv.SeedLeave(t, emp, leave.TypeSick, date(2025, time.September, 1), date(2025, time.September, 2), leave.StatusPending)

	items, err := svc.List(ctx)
	if !assert.NoError(t, err) {
		return
	}
	overlapping := leave.RangeFilter(date(2025, time.July, 11), date(2025, time.July, 20))
	var hits int
	for _, l := range items {
		if overlapping(l) {
			hits++
		}
	}
	assert.Equal(t, 1, hits)
}

type yes struct{}

func (yes) Confirm(string) bool { return true }

type captureNotifier struct {
	successes []string
	failures  []string
}

func (n *captureNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *captureNotifier) Failure(msg string) { n.failures = append(n.failures, msg) }
