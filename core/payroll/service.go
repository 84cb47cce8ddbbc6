package payroll

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const basePath = "/payrolls"

// Service wraps the /payrolls collection.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

func (svc *Service) List(ctx context.Context) ([]Payroll, error) {
	return core.List[Payroll](ctx, svc.client, basePath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Payroll, error) {
	return core.Retrieve[Payroll](ctx, svc.client, path.Join(basePath, id))
}

// Generate asks the backend to compute a pay record; net salary rules live
// server-side.
func (svc *Service) Generate(ctx context.Context, np NewPayroll) (Payroll, error) {
	if err := np.Validate(); err != nil {
		return Payroll{}, err
	}
	return core.Create[Payroll](ctx, svc.client, basePath, np)
}

func (svc *Service) MarkPaid(ctx context.Context, id string) (Payroll, error) {
	payload := struct {
		Status string `json:"status"`
	}{StatusPaid}
	return core.Update[Payroll](ctx, svc.client, path.Join(basePath, id), payload)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(basePath, id))
}

// Payslip fetches the print-ready projection of one pay record.
func (svc *Service) Payslip(ctx context.Context, id string) (Payslip, error) {
	return core.Retrieve[Payslip](ctx, svc.client, path.Join(basePath, id, "payslip"))
}

func (svc *Service) Fetcher() core.Fetcher[Payroll] {
	return svc.List
}
