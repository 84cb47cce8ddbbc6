package recruit

import (
	"context"
	"io"
	"path"

	"github.com/trezcool/kazi/core"
)

const (
	jobsPath         = "/jobs"
	applicationsPath = "/applications"
	interviewsPath   = "/interviews"
)

// Service wraps the recruitment collections: postings, applications and
// interviews.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

// Jobs lists postings. This endpoint is public: with no session the request
// simply goes out without a bearer header.
func (svc *Service) Jobs(ctx context.Context) ([]Job, error) {
	return core.List[Job](ctx, svc.client, jobsPath, nil)
}

func (svc *Service) PostJob(ctx context.Context, nj NewJob) (Job, error) {
	if err := nj.Validate(); err != nil {
		return Job{}, err
	}
	return core.Create[Job](ctx, svc.client, jobsPath, nj)
}

func (svc *Service) CloseJob(ctx context.Context, id string) (Job, error) {
	payload := struct {
		Status string `json:"status"`
	}{JobClosed}
	return core.Update[Job](ctx, svc.client, path.Join(jobsPath, id), payload)
}

func (svc *Service) DeleteJob(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(jobsPath, id))
}

func (svc *Service) Applications(ctx context.Context) ([]Application, error) {
	return core.List[Application](ctx, svc.client, applicationsPath, nil)
}

// Apply submits a candidate's application with the resume as a multipart
// "resume" part.
func (svc *Service) Apply(ctx context.Context, jobID string, na NewApplication, resumeName string, resume io.Reader) (Application, error) {
	if err := na.Validate(); err != nil {
		return Application{}, err
	}
	fields := map[string]string{
		"candidate": na.Candidate,
		"email":     na.Email,
		"phone":     na.Phone,
	}
	var files []core.File
	if resume != nil {
		files = append(files, core.File{Field: "resume", Name: resumeName, Content: resume})
	}
	return core.Upload[Application](ctx, svc.client, path.Join(jobsPath, jobID, "apply"), fields, files...)
}

func (svc *Service) SetStage(ctx context.Context, applicationID, stage string) (Application, error) {
	payload := struct {
		Stage string `json:"stage"`
	}{stage}
	return core.Update[Application](ctx, svc.client, path.Join(applicationsPath, applicationID), payload)
}

func (svc *Service) Interviews(ctx context.Context) ([]Interview, error) {
	return core.List[Interview](ctx, svc.client, interviewsPath, nil)
}

func (svc *Service) Schedule(ctx context.Context, ni NewInterview) (Interview, error) {
	if err := ni.Validate(); err != nil {
		return Interview{}, err
	}
	return core.Create[Interview](ctx, svc.client, interviewsPath, ni)
}

func (svc *Service) CancelInterview(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(interviewsPath, id))
}

func (svc *Service) JobFetcher() core.Fetcher[Job] {
	return svc.Jobs
}

func (svc *Service) ApplicationFetcher() core.Fetcher[Application] {
	return svc.Applications
}

func (svc *Service) InterviewFetcher() core.Fetcher[Interview] {
	return svc.Interviews
}
