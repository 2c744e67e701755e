package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type MFAVerifyRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type MFAEnableRequest struct {
	Secret string `json:"secret" validate:"required,max=255"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type MFADisableRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type MFASetupResponse struct {
	Secret        string `json:"secret"`
	OTPAuthURL    string `json:"otpauth_url"`
	QRCodeDataURL string `json:"qrCodeDataUrl"`
}

type MFAStatusResponse struct {
	Enabled bool `json:"enabled"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyMagicLinkRequest struct {
	Token string `json:"token" validate:"required,max=128"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// SessionResponse is returned by login, MFA verify and magic-link verify.
type SessionResponse struct {
	User UserResponse `json:"user"`
}

// MFAChallengeResponse signals the caller to collect a TOTP code; no
// session cookie is set alongside it.
type MFAChallengeResponse struct {
	RequiresMFA bool   `json:"requiresMFA"`
	Message     string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
