// service/email_service.go
package service

import (
	"context"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	"github.com/vre-platform/portal-bff/model"
)

// IEmailService sends templated platform emails through the
// notification service.
type IEmailService interface {
	Send(ctx context.Context, subject string, receivers []string, template string, kwargs map[string]any) error
	ContactUs(ctx context.Context, req model.ContactUsRequest) error
}

type EmailService struct {
	notificationClient client.INotificationClient
}

var _ IEmailService = &EmailService{}

func NewEmailService(notificationClient client.INotificationClient) *EmailService {
	return &EmailService{notificationClient: notificationClient}
}

func (s *EmailService) Send(ctx context.Context, subject string, receivers []string, template string, kwargs map[string]any) error {
	return s.notificationClient.SendEmail(ctx, model.EmailRequest{
		Subject:        subject,
		Sender:         config.GetString("email.sender"),
		Receiver:       receivers,
		MsgType:        "html",
		Template:       template,
		TemplateKwargs: kwargs,
	})
}

// ContactUs forwards a portal contact form to the support address and
// sends a confirmation copy to the submitter.
func (s *EmailService) ContactUs(ctx context.Context, req model.ContactUsRequest) error {
	kwargs := map[string]any{
		"name":        req.Name,
		"email":       req.Email,
		"title":       req.Title,
		"description": req.Description,
	}
	err := s.Send(ctx, "Portal support request: "+req.Title,
		[]string{config.GetString("email.support")}, "contact_us/support.html", kwargs)
	if err != nil {
		return err
	}
	return s.Send(ctx, "Confirmation of your support request",
		[]string{req.Email}, "contact_us/confirmation.html", kwargs)
}
