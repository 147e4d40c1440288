// client/notification.go
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
	"github.com/vre-platform/portal-bff/model"
)

// INotificationClient talks to the notification/email service.
type INotificationClient interface {
	SendEmail(ctx context.Context, email model.EmailRequest) error
	ListAnnouncements(ctx context.Context, query url.Values) (*Response, error)
	CreateAnnouncement(ctx context.Context, body map[string]any) (*Response, error)
	ListNotifications(ctx context.Context, query url.Values) (*Response, error)
	CreateNotification(ctx context.Context, body map[string]any) (*Response, error)
	UpdateNotification(ctx context.Context, notificationID string, body map[string]any) (*Response, error)
	DeleteNotification(ctx context.Context, notificationID string) (*Response, error)
}

type NotificationClient struct {
	http *HTTPClient
	base string
}

var _ INotificationClient = &NotificationClient{}

func NewNotificationClient(http *HTTPClient) *NotificationClient {
	return &NotificationClient{http: http, base: config.GetString("services.notification")}
}

func (n *NotificationClient) SendEmail(ctx context.Context, email model.EmailRequest) error {
	return n.http.Post(ctx, n.base+"/email", email, nil)
}

func (n *NotificationClient) ListAnnouncements(ctx context.Context, query url.Values) (*Response, error) {
	return n.http.Do(ctx, http.MethodGet, n.base+"/announcements", query, nil)
}

func (n *NotificationClient) CreateAnnouncement(ctx context.Context, body map[string]any) (*Response, error) {
	return n.http.Do(ctx, http.MethodPost, n.base+"/announcements", nil, body)
}

func (n *NotificationClient) ListNotifications(ctx context.Context, query url.Values) (*Response, error) {
	return n.http.Do(ctx, http.MethodGet, n.base+"/notifications", query, nil)
}

func (n *NotificationClient) CreateNotification(ctx context.Context, body map[string]any) (*Response, error) {
	return n.http.Do(ctx, http.MethodPost, n.base+"/notification", nil, body)
}

func (n *NotificationClient) UpdateNotification(ctx context.Context, notificationID string, body map[string]any) (*Response, error) {
	return n.http.Do(ctx, http.MethodPut, n.base+"/notification/"+notificationID, nil, body)
}

func (n *NotificationClient) DeleteNotification(ctx context.Context, notificationID string) (*Response, error) {
	return n.http.Do(ctx, http.MethodDelete, n.base+"/notification/"+notificationID, nil, nil)
}
