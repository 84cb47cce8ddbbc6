package recruit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/kazi/apitest"
	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/mailbox"
	"github.com/trezcool/kazi/core/recruit"
)

func setup(t *testing.T) (*apitest.Server, *recruit.Service) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	srv.SeedEmployee(t, "Admin", "admin", "s3cr3tpwd", core.RoleAdmin)
	holder := core.NewSessionHolder()
	_ = holder.Set(srv.Login(t, "admin", "s3cr3tpwd"))
	return srv, recruit.NewService(srv.Client(holder))
}

// Job listings and applications are the public surface: both must work with
// no session at all.
func TestService_publicSurface(t *testing.T) {
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	job := srv.SeedJob(t, "Go Developer", "Engineering")

	svc := recruit.NewService(srv.Client(nil)) // logged out
	ctx := context.Background()

	jobs, err := svc.Jobs(ctx)
	if !assert.NoError(t, err) {
		return
	}
	if assert.Len(t, jobs, 1) {
		assert.Equal(t, job.ID, jobs[0].ID)
	}

	app, err := svc.Apply(ctx, job.ID, recruit.NewApplication{
		Candidate: "Neema Said",
		Email:     "neema@example.test",
	}, "cv.pdf", strings.NewReader("fake pdf bytes"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, recruit.StageApplied, app.Stage)
	assert.Equal(t, job.Title, app.JobTitle)
	assert.True(t, app.ResumeURL.Valid)
	assert.Contains(t, app.ResumeURL.String, "cv.pdf")

	// everything else stays behind auth
	_, err = svc.Applications(ctx)
	aErr, ok := core.IsAPIError(err)
	if assert.True(t, ok, "want an api error, got %v", err) {
		assert.Equal(t, 401, aErr.StatusCode)
	}
}

func TestService_Apply_validation(t *testing.T) {
	srv, _ := setup(t)
	job := srv.SeedJob(t, "Go Developer", "Engineering")
	svc := recruit.NewService(srv.Client(nil))
	ctx := context.Background()

	_, err := svc.Apply(ctx, job.ID, recruit.NewApplication{
		Candidate: "Neema Said",
		Email:     "not-an-email",
	}, "cv.pdf", strings.NewReader("x"))
	vErr, ok := core.IsValidationError(err)
	if assert.True(t, ok, "want a validation error, got %v", err) {
		assert.Equal(t, "email", vErr.Fields[0].Field)
	}
}

func TestService_jobLifecycle(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	job, err := svc.PostJob(ctx, recruit.NewJob{
		Title:       "Go Developer",
		Department:  "Engineering",
		Location:    "Dar es Salaam",
		Description: "Build the things.",
	})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, recruit.JobOpen, job.Status)

	closed, err := svc.CloseJob(ctx, job.ID)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, recruit.JobClosed, closed.Status)

	// a closed job accepts no further applications
	_, err = svc.Apply(ctx, job.ID, recruit.NewApplication{
		Candidate: "Late Larry", Email: "larry@example.test",
	}, "cv.pdf", strings.NewReader("x"))
	aErr, ok := core.IsAPIError(err)
	if assert.True(t, ok) {
		assert.Equal(t, "job is closed", aErr.Message)
	}
}

func TestService_stagePipeline(t *testing.T) {
	srv, svc := setup(t)
	ctx := context.Background()
	job := srv.SeedJob(t, "Go Developer", "Engineering")

	app, err := svc.Apply(ctx, job.ID, recruit.NewApplication{
		Candidate: "Neema Said", Email: "neema@example.test",
	}, "cv.pdf", strings.NewReader("x"))
	if !assert.NoError(t, err) {
		return
	}

	shortlisted, err := svc.SetStage(ctx, app.ID, recruit.StageShortlisted)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, recruit.StageShortlisted, shortlisted.Stage)

	lc := core.NewListController(svc.ApplicationFetcher())
	if assert.NoError(t, lc.Refresh(ctx)) {
		lc.SetFilter("stage", recruit.StageFilter(recruit.StageShortlisted))
		assert.Len(t, lc.VisibleRows(), 1)
	}
}

func TestService_scheduleInterview(t *testing.T) {
	srv, svc := setup(t)
	ctx := context.Background()
	job := srv.SeedJob(t, "Go Developer", "Engineering")

	app, err := svc.Apply(ctx, job.ID, recruit.NewApplication{
		Candidate: "Neema Said", Email: "neema@example.test",
	}, "cv.pdf", strings.NewReader("x"))
	if !assert.NoError(t, err) {
		return
	}

	t.Run("past slot rejected client-side", func(t *testing.T) {
		_, err := svc.Schedule(ctx, recruit.NewInterview{
			ApplicationID: app.ID,
			ScheduledAt:   time.Now().Add(-time.Hour),
			Panel:         []string{"emp-1"},
		})
		vErr, ok := core.IsValidationError(err)
		if assert.True(t, ok, "want a validation error, got %v", err) {
			assert.Equal(t, "scheduled_at", vErr.Fields[0].Field)
		}
	})

	t.Run("scheduling advances the stage and notifies", func(t *testing.T) {
		iv, err := svc.Schedule(ctx, recruit.NewInterview{
			ApplicationID: app.ID,
			ScheduledAt:   time.Now().Add(48 * time.Hour),
			Panel:         []string{"emp-1"},
			Location:      "Room 2",
		})
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "Neema Said", iv.Candidate)

		apps, err := svc.Applications(ctx)
		if assert.NoError(t, err) && assert.Len(t, apps, 1) {
			assert.Equal(t, recruit.StageInterview, apps[0].Stage)
		}

		holder := core.NewSessionHolder()
		_ = holder.Set(srv.Login(t, "admin", "s3cr3tpwd"))
		inbox := mailbox.NewService(srv.Client(holder))
		notes, err := inbox.Notifications(ctx)
		if assert.NoError(t, err) && assert.Len(t, notes, 1) {
			assert.Contains(t, notes[0].Text, "Neema Said")
		}

		if assert.NoError(t, svc.CancelInterview(ctx, iv.ID)) {
			ivs, err := svc.Interviews(ctx)
			assert.NoError(t, err)
			assert.Empty(t, ivs)
		}
	})
}
