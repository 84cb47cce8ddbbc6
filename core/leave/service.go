package leave

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/leaves"

// Service wraps the /leaves collection. Balance computation and approval
// authority are the backend's business; this layer only submits the status
// changes and lets the backend refuse them.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Leave, error) {
	return core.List[Leave](ctx, svc.client, basePath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Leave, error) {
	return core.Retrieve[Leave](ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Apply(ctx context.Context, nl NewLeave) (Leave, error) {
	if err := nl.Validate(); err != nil {
		return Leave{}, err
	}
	return core.Create[Leave](ctx, svc.client, basePath, nl)
}

func (svc *Service) Approve(ctx context.Context, id string) (Leave, error) {
	return svc.setStatus(ctx, id, StatusApproved)
}

func (svc *Service) Reject(ctx context.Context, id string) (Leave, error) {
	return svc.setStatus(ctx, id, StatusRejected)
}

func (svc *Service) setStatus(ctx context.Context, id, status string) (Leave, error) {
	payload := struct {
		Status string `json:"status"`
	}{status}
	return core.Update[Leave](ctx, svc.client, path.Join(basePath, id), payload)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Fetcher() core.Fetcher[Leave] {
	return svc.List
}
