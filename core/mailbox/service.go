package mailbox

import (
	"context"
	"path"

	"github.com/trezcool/kazi/core"
)

const (
	mailPath          = "/mails"
	notificationsPath = "/notifications"
)

// Service wraps the /mails and /notifications collections.
type Service struct {
	client *core.Client
}

func NewService(client *core.Client) *Service {
	return &Service{client: client}
}

// Inbox lists the logged-in employee's received mail.
func (svc *Service) Inbox(ctx context.Context) ([]Mail, error) {
	return core.List[Mail](ctx, svc.client, mailPath, nil)
}

func (svc *Service) Get(ctx context.Context, id string) (Mail, error) {
	return core.Retrieve[Mail](ctx, svc.client, path.Join(mailPath, id))
}

func (svc *Service) Send(ctx context.Context, nm NewMail) (Mail, error) {
	if err := nm.Validate(); err != nil {
		return Mail{}, err
	}
	return core.Create[Mail](ctx, svc.client, mailPath, nm)
}

func (svc *Service) MarkRead(ctx context.Context, id string) (Mail, error) {
	payload := struct {
		Read bool `json:"read"`
	}{true}
	return core.Update[Mail](ctx, svc.client, path.Join(mailPath, id), payload)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return core.Remove(ctx, svc.client, path.Join(mailPath, id))
}

func (svc *Service) Notifications(ctx context.Context) ([]Notification, error) {
	return core.List[Notification](ctx, svc.client, notificationsPath, nil)
}

func (svc *Service) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := core.Update[struct{}](ctx, svc.client, path.Join(notificationsPath, "read-all"), nil)
	return err
}

func (svc *Service) Fetcher() core.Fetcher[Mail] {
	return svc.Inbox
}

// NotificationFetcher plugs the notification list into a ListController.
func (svc *Service) NotificationFetcher() core.Fetcher[Notification] {
	return svc.Notifications
}
