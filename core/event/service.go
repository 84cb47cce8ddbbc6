package event

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/events"

// Service wraps the /events collection.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Event, error) {
	return core.List[Event](ctx, svc.client, basePath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Event, error) {
	return core.Retrieve[Event](ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	if err := ne.Validate(); err != nil {
		return Event{}, err
	}
	return core.Create[Event](ctx, svc.client, basePath, ne)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

func (svc *Service) Fetcher() core.Fetcher[Event] {
	return svc.List
}

// Upcoming lists events starting today or later, soonest first.
func (svc *Service) Upcoming(ctx context.Context) ([]Event, error) {
	items, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.Upcoming(items), nil
}
