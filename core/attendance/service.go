package attendance

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/attendance"

// Service wraps the /attendance collection.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Entry, error) {
	return core.List[Entry](ctx, svc.client, basePath, nil)
}

// CheckIn opens today's entry for the logged-in employee. The backend rejects
// a second check-in for the same day; callers may additionally consult their
// local marked-today flag to skip the round trip.
func (svc *Service) CheckIn(ctx context.Context, req CheckInRequest) (Entry, error) {
	if err := req.Validate(); err != nil {
		return Entry{}, err
	}
	return core.Create[Entry](ctx, svc.client, path.Join(basePath, "check-in"), req)
}

// CheckOut closes the given entry.
func (svc *Service) CheckOut(ctx context.Context, id string) (Entry, error) {
	return core.Update[Entry](ctx, svc.client, path.Join(basePath, id, "check-out"), nil)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Fetcher() core.Fetcher[Entry] {
	return svc.List
}
