package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"stayhub/internal/config"
)

// Mailer sends the password-recovery email. Callers treat delivery as
// fire-and-forget.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

type SendGridMailer struct {
	cfg config.SendGrid
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{cfg: cfg.SendGrid}
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	to := mail.NewEmail("", toEmail)
	subject := "Change your password on Stayhub"

	plainText := fmt.Sprintf("Please, click on the following link to change your password: %s", resetLink)
	htmlContent := fmt.Sprintf(`<p>Please, click on the following link to change your password: <a href="%s">%s</a></p>`, resetLink, resetLink)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.cfg.APIKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("could not send recovery email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("recovery email rejected: status %d", response.StatusCode)
	}

	return nil
}
