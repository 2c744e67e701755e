package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanskyhawk/kanban/internal/models"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Password1", true},
		{"aB3defgh", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"", false},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.valid {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("Alice@Example.com", "Password1", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email, "email should be normalized")
	assert.False(t, user.EmailVerified)
	assert.False(t, user.Approved)
	assert.NotEqual(t, "Password1", user.PasswordHash)

	// Registration issues a verification token.
	var count int64
	db.Model(&models.EmailVerificationToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// No board until approval.
	var boards int64
	db.Model(&models.Board{}).Count(&boards)
	assert.Zero(t, boards)
}

func TestRegisterSeedsDefaultTags(t *testing.T) {
	auth, db := newAuthService(t)

	_, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	var tags []models.Tag
	require.NoError(t, db.Find(&tags).Error)
	names := make(map[string]string, len(tags))
	for _, tag := range tags {
		names[tag.Name] = tag.Color
	}
	assert.Len(t, tags, 6)
	assert.Equal(t, "#ef4444", names["Bug"])
	assert.Equal(t, "#3b82f6", names["Feature"])

	// A second registration must not duplicate the palette.
	_, err = auth.Register("b@example.com", "Password1", "B")
	require.NoError(t, err)
	var count int64
	db.Model(&models.Tag{}).Count(&count)
	assert.EqualValues(t, 6, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	_, err = auth.Register("a@example.com", "Password1", "A again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginGates(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	_, _, err = auth.Login("a@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("missing@example.com", "Password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("a@example.com", "Password1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	require.NoError(t, db.Model(user).Update("email_verified", true).Error)
	_, _, err = auth.Login("a@example.com", "Password1")
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = auth.Approve(user.ID)
	require.NoError(t, err)

	got, mfaRequired, err := auth.Login("a@example.com", "Password1")
	require.NoError(t, err)
	assert.False(t, mfaRequired)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	var record models.EmailVerificationToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)

	verified, err := auth.VerifyEmailToken(record.Token)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	_, err = auth.VerifyEmailToken(record.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmailTokenExpired(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.EmailVerificationToken{}).
		Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	var record models.EmailVerificationToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)

	_, err = auth.VerifyEmailToken(record.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewVerificationTokenSupersedesOld(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	var old models.EmailVerificationToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&old).Error)

	fresh, err := auth.CreateEmailVerificationToken(user.ID)
	require.NoError(t, err)

	_, err = auth.VerifyEmailToken(old.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.VerifyEmailToken(fresh)
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	require.NoError(t, auth.RequestPasswordReset("a@example.com"))

	var record models.PasswordResetToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)

	require.NoError(t, auth.ResetPassword(record.Token, "NewPassword2"))

	_, _, err := auth.Login("a@example.com", "Password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("a@example.com", "NewPassword2")
	assert.NoError(t, err)

	// Consumed tokens cannot be replayed.
	err = auth.ResetPassword(record.Token, "Another3rd")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	auth, db := newAuthService(t)

	require.NoError(t, auth.RequestPasswordReset("nobody@example.com"))

	var count int64
	db.Model(&models.PasswordResetToken{}).Count(&count)
	assert.Zero(t, count)
}

func TestMagicLinkFlow(t *testing.T) {
	auth, db := newAuthService(t)
	registerApproved(t, auth, db, "a@example.com")

	require.NoError(t, auth.RequestMagicLink("a@example.com"))

	var record models.MagicLinkToken
	require.NoError(t, db.Where("email = ?", "a@example.com").First(&record).Error)

	user, err := auth.VerifyMagicLink(record.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	_, err = auth.VerifyMagicLink(record.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMagicLinkRequiresVerifiedApprovedAccount(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)

	assert.ErrorIs(t, auth.RequestMagicLink("a@example.com"), ErrEmailNotVerified)

	require.NoError(t, db.Model(user).Update("email_verified", true).Error)
	assert.ErrorIs(t, auth.RequestMagicLink("a@example.com"), ErrNotApproved)

	// Unknown address gets a silent nil so the endpoint stays generic.
	assert.NoError(t, auth.RequestMagicLink("nobody@example.com"))
}
