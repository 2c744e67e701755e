package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrNotApproved        = errors.New("account pending admin approval")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

const bcryptCost = 12

// defaultTags are seeded on first registration so new boards have a
// usable label palette.
var defaultTags = []struct {
	Name  string
	Color string
}{
	{"Bug", "#ef4444"},
	{"Feature", "#3b82f6"},
	{"Urgent", "#f59e0b"},
	{"Enhancement", "#8b5cf6"},
	{"Documentation", "#10b981"},
	{"Design", "#ec4899"},
}

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	email *EmailService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, email *EmailService) *AuthService {
	return &AuthService{db: db, cfg: cfg, email: email}
}

// ValidatePassword enforces the strength rules: 8-128 characters with at
// least one lowercase letter, one uppercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return errors.New("password must be 128 characters or less")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one number")
	}
	return nil
}

// Register creates an unverified, unapproved user, seeds the default tag
// palette, and mails both the verification link and the admin approval
// request. A duplicate email returns ErrEmailTaken only after a dummy
// bcrypt hash so response timing does not reveal account existence.
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		// Equalize timing with the hash a fresh registration would pay for.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.seedDefaultTags()

	token, err := s.CreateEmailVerificationToken(user.ID)
	if err != nil {
		return nil, err
	}

	_ = s.email.SendVerificationEmail(user.Email, user.Name, token)
	_ = s.email.SendAdminApprovalEmail(
		user.ID.String(), user.Email, user.Name,
		GenerateApprovalToken(s.cfg, user.ID.String(), "approve"),
		GenerateApprovalToken(s.cfg, user.ID.String(), "reject"),
	)

	return &user, nil
}

func (s *AuthService) seedDefaultTags() {
	for _, t := range defaultTags {
		tag := models.Tag{ID: uuid.NewString(), Name: t.Name, Color: t.Color}
		s.db.Where("name = ?", t.Name).FirstOrCreate(&tag)
	}
}

// Login verifies credentials and account state. When MFA is enabled the
// caller must collect a TOTP code before a session is issued.
func (s *AuthService) Login(email, password string) (user *models.User, mfaRequired bool, err error) {
	var u models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, false, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, false, ErrInvalidCredentials
	}

	if !u.EmailVerified {
		return nil, false, ErrEmailNotVerified
	}
	if !u.Approved {
		return nil, false, ErrNotApproved
	}

	if u.MFAEnabled {
		return &u, true, nil
	}
	return &u, false, nil
}

func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// CreateEmailVerificationToken issues a fresh 24h token, superseding any
// prior tokens for the user.
func (s *AuthService) CreateEmailVerificationToken(userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.db.Where("user_id = ?", userID).Delete(&models.EmailVerificationToken{})

	record := models.EmailVerificationToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.VerificationTokenExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}
	return token, nil
}

// VerifyEmailToken consumes a verification token and marks the user verified.
func (s *AuthService) VerifyEmailToken(token string) (*models.User, error) {
	var record models.EmailVerificationToken
	if err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&record).Error; err != nil {
		return nil, ErrInvalidToken
	}

	s.db.Delete(&record)

	if err := s.db.Model(&models.User{}).Where("id = ?", record.UserID).
		Update("email_verified", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", record.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// RequestPasswordReset issues a reset token and mails it. Unknown emails
// are silently ignored so the endpoint can always answer success.
func (s *AuthService) RequestPasswordReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	s.db.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{})

	record := models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.PasswordResetTokenExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return s.email.SendPasswordResetEmail(user.Email, user.Name, token)
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	var record models.PasswordResetToken
	if err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&record).Error; err != nil {
		return ErrInvalidToken
	}

	s.db.Delete(&record)

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&models.User{}).Where("id = ?", record.UserID).
		Update("password_hash", string(hash)).Error
}

// RequestMagicLink issues a passwordless login token for a verified,
// approved account. Unknown emails return nil so the endpoint stays generic.
func (s *AuthService) RequestMagicLink(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	if !user.EmailVerified {
		return ErrEmailNotVerified
	}
	if !user.Approved {
		return ErrNotApproved
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	s.db.Where("email = ?", email).Delete(&models.MagicLinkToken{})

	record := models.MagicLinkToken{
		ID:        uuid.New(),
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.MagicLinkTokenExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store magic link token: %w", err)
	}

	return s.email.SendMagicLinkEmail(email, token)
}

// VerifyMagicLink consumes a magic-link token and re-checks account state
// before handing back the identity to log in.
func (s *AuthService) VerifyMagicLink(token string) (*models.User, error) {
	var record models.MagicLinkToken
	if err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&record).Error; err != nil {
		return nil, ErrInvalidToken
	}

	s.db.Delete(&record)

	var user models.User
	if err := s.db.Where("email = ?", record.Email).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if !user.Approved {
		return nil, ErrNotApproved
	}

	return &user, nil
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
