package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/vanskyhawk/kanban/internal/models"
)

var (
	ErrMFANotEnabled = errors.New("two-factor authentication is not enabled")
	ErrInvalidCode   = errors.New("invalid verification code")
)

// GenerateMFASecret produces a fresh TOTP secret with its provisioning URI
// and a QR code data URL. Nothing is persisted until EnableMFA confirms
// the user can produce valid codes.
func (s *AuthService) GenerateMFASecret(email string) (secret, otpauthURL, qrDataURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Kanban Board",
		AccountName: email,
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to render QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", "", "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return key.Secret(), key.URL(), dataURL, nil
}

// EnableMFA persists the secret only after the caller proves possession
// with a valid current code, preventing silent enablement.
func (s *AuthService) EnableMFA(userID uuid.UUID, secret, code string) error {
	if !totp.Validate(code, secret) {
		return ErrInvalidCode
	}

	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"mfa_enabled": true,
			"mfa_secret":  secret,
		}).Error
}

// DisableMFA requires a valid current code. Calling it when MFA is off
// returns ErrMFANotEnabled rather than success.
func (s *AuthService) DisableMFA(userID uuid.UUID, code string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if !user.MFAEnabled || user.MFASecret == nil {
		return ErrMFANotEnabled
	}

	if !totp.Validate(code, *user.MFASecret) {
		return ErrInvalidCode
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"mfa_enabled": false,
		"mfa_secret":  nil,
	}).Error
}

// VerifyMFALogin completes a login for an MFA-enabled account.
func (s *AuthService) VerifyMFALogin(email, code string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.MFAEnabled || user.MFASecret == nil {
		return nil, ErrInvalidCredentials
	}

	if !totp.Validate(code, *user.MFASecret) {
		return nil, ErrInvalidCode
	}

	return &user, nil
}

// MFAStatus reports whether MFA is enabled for the user.
func (s *AuthService) MFAStatus(userID uuid.UUID) (bool, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return false, ErrUserNotFound
	}
	return user.MFAEnabled, nil
}
