package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/snapgather/snapgather-backend/internal/config"
)

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
	logger      *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:      resend.NewClient(cfg.Email.APIKey),
		from:        cfg.Email.FromAddress,
		fromName:    cfg.Email.FromName,
		frontendURL: cfg.App.FrontendURL,
		logger:      logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	html, err := renderTemplate(welcomeTemplate, map[string]interface{}{
		"FullName": fullName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to SnapGather!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent welcome email", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendPasswordResetEmail(email, resetToken string) error {
	html, err := renderTemplate(resetPasswordTemplate, map[string]interface{}{
		"ResetLink": s.frontendURL + "/reset-password?token=" + resetToken,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Reset Your Password - SnapGather",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send reset password email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent reset password email", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func renderTemplate(tmpl string, data interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

const welcomeTemplate = `<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to SnapGather, {{.FullName}}!</h2>
    <p>Create your first event, share the QR code and let your guests fill the gallery.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} SnapGather</p>
  </body>
</html>`

const resetPasswordTemplate = `<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Reset your password</h2>
    <p>Click the link below to choose a new password. The link expires in 15 minutes.</p>
    <p><a href="{{.ResetLink}}">Reset password</a></p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} SnapGather</p>
  </body>
</html>`
