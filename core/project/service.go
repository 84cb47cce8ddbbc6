package project

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/projects"

// Service wraps the /projects collection and its nested task lists.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Project, error) {
	return core.List[Project](ctx, svc.client, basePath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Project, error) {
	return core.Retrieve[Project](ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Create(ctx context.Context, np NewProject) (Project, error) {
	if err := np.Validate(); err != nil {
		return Project{}, err
	}
	return core.Create[Project](ctx, svc.client, basePath, np)
}

func (svc *Service) SetStatus(ctx context.Context, id, status string) (Project, error) {
	payload := struct {
		Status string `json:"status"`
	}{status}
	return core.Update[Project](ctx, svc.client, path.Join(basePath, id), payload)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Tasks(ctx context.Context, projectID string) ([]Task, error) {
	return core.List[Task](ctx, svc.client, path.Join(basePath, projectID, "tasks"), nil)
}

func (svc *Service) AddTask(ctx context.Context, projectID string, nt NewTask) (Task, error) {
	if err := nt.Validate(); err != nil {
		return Task{}, err
	}
	return core.Create[Task](ctx, svc.client, path.Join(basePath, projectID, "tasks"), nt)
}

func (svc *Service) SetTaskStatus(ctx context.Context, projectID, taskID, status string) (Task, error) {
	payload := struct {
		Status string `json:"status"`
	}{status}
	return core.Update[Task](ctx, svc.client, path.Join(basePath, projectID, "tasks", taskID), payload)
}

func (svc *Service) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, projectID, "tasks", taskID))
}

func (svc *Service) Fetcher() core.Fetcher[Project] {
	return svc.List
}

// TaskFetcher plugs one project's task list into a ListController.
func (svc *Service) TaskFetcher(projectID string) core.Fetcher[Task] {
	return func(ctx context.Context) ([]Task, error) {
		return svc.Tasks(ctx, projectID)
	}
}
