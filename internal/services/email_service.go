package services

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v3"
	"github.com/vanskyhawk/kanban/internal/config"
)

// EmailService sends transactional mail through Resend. When no API key is
// configured it logs a warning and reports success so auth flows keep
// working in development.
type EmailService struct {
	cfg    *config.Config
	client *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{cfg: cfg}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

func (s *EmailService) configured() bool {
	return s.client != nil
}

func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	if !s.configured() {
		slog.Warn("email not configured, skipping send", "subject", subject)
		return nil
	}

	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.cfg.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	})
	if err != nil {
		slog.Error("failed to send email", "error", err, "subject", subject)
		return err
	}
	return nil
}

func (s *EmailService) SendVerificationEmail(email, name, token string) error {
	safeName := html.EscapeString(name)
	url := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.AppURL, token)

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Verify your email</h2>
  <p>Hi %s,</p>
  <p>Please verify your email by clicking the button below:</p>
  <p style="margin: 30px 0;">
    <a href="%s" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Verify Email</a>
  </p>
  <p style="color: #666; font-size: 14px;">This link will expire in 24 hours.</p>
  <p style="color: #666; font-size: 14px;">If you didn't create an account, you can ignore this email.</p>
</div>`, safeName, url)

	text := fmt.Sprintf("Hi %s,\n\nPlease verify your email by clicking the link below:\n\n%s\n\nThis link will expire in 24 hours.\n\nIf you didn't create an account, you can ignore this email.", name, url)

	return s.send(email, "Verify your email - Kanban Board", htmlBody, text)
}

func (s *EmailService) SendPasswordResetEmail(email, name, token string) error {
	safeName := html.EscapeString(name)
	url := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.AppURL, token)

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>Hi %s,</p>
  <p>We received a request to reset your password. Click the button below to choose a new one:</p>
  <p style="margin: 30px 0;">
    <a href="%s" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset Password</a>
  </p>
  <p style="color: #666; font-size: 14px;">This link will expire in 1 hour.</p>
  <p style="color: #666; font-size: 14px;">If you didn't request this, you can ignore this email.</p>
</div>`, safeName, url)

	text := fmt.Sprintf("Hi %s,\n\nReset your password using the link below:\n\n%s\n\nThis link will expire in 1 hour.\n\nIf you didn't request this, you can ignore this email.", name, url)

	return s.send(email, "Reset your password - Kanban Board", htmlBody, text)
}

func (s *EmailService) SendMagicLinkEmail(email, token string) error {
	url := fmt.Sprintf("%s/auth/magic-link?token=%s", s.cfg.AppURL, token)

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your login link</h2>
  <p>Click the button below to sign in. No password needed.</p>
  <p style="margin: 30px 0;">
    <a href="%s" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Sign In</a>
  </p>
  <p style="color: #666; font-size: 14px;">This link will expire in 15 minutes and can only be used once.</p>
  <p style="color: #666; font-size: 14px;">If you didn't request this, you can ignore this email.</p>
</div>`, url)

	text := fmt.Sprintf("Sign in using the link below:\n\n%s\n\nThis link will expire in 15 minutes and can only be used once.", url)

	return s.send(email, "Your login link - Kanban Board", htmlBody, text)
}

// SendAdminApprovalEmail notifies the admin address about a new
// registration with signed approve/reject links.
func (s *EmailService) SendAdminApprovalEmail(userID, email, name, approveToken, rejectToken string) error {
	if s.cfg.AdminEmail == "" {
		slog.Warn("admin email not configured, skipping approval notification")
		return nil
	}

	safeName := html.EscapeString(name)
	safeEmail := html.EscapeString(email)
	approveURL := fmt.Sprintf("%s/api/auth/approve?userId=%s&action=approve&token=%s", s.cfg.AppURL, userID, approveToken)
	rejectURL := fmt.Sprintf("%s/api/auth/approve?userId=%s&action=reject&token=%s", s.cfg.AppURL, userID, rejectToken)

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New registration pending approval</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p style="margin: 30px 0;">
    <a href="%s" style="background-color: #10b981; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; margin-right: 12px;">Approve</a>
    <a href="%s" style="background-color: #ef4444; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reject</a>
  </p>
</div>`, safeName, safeEmail, approveURL, rejectURL)

	text := fmt.Sprintf("New registration pending approval.\n\nName: %s\nEmail: %s\n\nApprove: %s\nReject: %s", name, email, approveURL, rejectURL)

	return s.send(s.cfg.AdminEmail, "New registration pending approval - Kanban Board", htmlBody, text)
}

// SendApprovalNotificationEmail tells the user the admin's decision.
func (s *EmailService) SendApprovalNotificationEmail(email, name string, approved bool) error {
	safeName := html.EscapeString(name)

	if approved {
		htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your account has been approved</h2>
  <p>Hi %s,</p>
  <p>Your account has been approved. You can now log in and start using your board.</p>
  <p style="margin: 30px 0;">
    <a href="%s/login" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Log In</a>
  </p>
</div>`, safeName, s.cfg.AppURL)
		text := fmt.Sprintf("Hi %s,\n\nYour account has been approved. You can now log in at %s/login", name, s.cfg.AppURL)
		return s.send(email, "Account approved - Kanban Board", htmlBody, text)
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Account registration</h2>
  <p>Hi %s,</p>
  <p>Unfortunately your registration was not approved at this time.</p>
</div>`, safeName)
	text := fmt.Sprintf("Hi %s,\n\nUnfortunately your registration was not approved at this time.", name)
	return s.send(email, "Account registration - Kanban Board", htmlBody, text)
}
