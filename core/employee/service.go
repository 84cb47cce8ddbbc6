package employee

import (
	"context"
	"io"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/employees"

// Service wraps the /employees collection.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Employee, error) {
	return core.List[Employee](ctx, svc.client, basePath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Employee, error) {
	return core.Retrieve[Employee](ctx, svc.client, path.Join(basePath, id))
}

// Register creates an employee account. Validation failures never reach the
// network.
func (svc *Service) Register(ctx context.Context, ne NewEmployee) (Employee, error) {
	if err := ne.Validate(); err != nil {
		return Employee{}, err
	}
	return core.Create[Employee](ctx, svc.client, basePath, ne)
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEmployee) (Employee, error) {
	if err := ue.Validate(); err != nil {
		return Employee{}, err
	}
	return core.Update[Employee](ctx, svc.client, path.Join(basePath, id), ue)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

// UploadPhoto submits a profile picture as a multipart form under the
// backend's "profile_picture" field.
func (svc *Service) UploadPhoto(ctx context.Context, id, filename string, content io.Reader) (Employee, error) {
	return core.Upload[Employee](ctx, svc.client, path.Join(basePath, id, "photo"), nil,
		core.File{Field: "profile_picture", Name: filename, Content: content})
}

// Fetcher plugs this collection into a ListController.
func (svc *Service) Fetcher() core.Fetcher[Employee] {
	return svc.List
}
