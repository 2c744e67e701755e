package services

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMFASecret(t *testing.T) {
	auth, _ := newAuthService(t)

	secret, otpauthURL, qrDataURL, err := auth.GenerateMFASecret("a@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, otpauthURL, "otpauth://totp/")
	assert.Contains(t, otpauthURL, "a@example.com")
	assert.Contains(t, qrDataURL, "data:image/png;base64,")
}

func TestEnableMFARequiresValidCode(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	secret, _, _, err := auth.GenerateMFASecret(user.Email)
	require.NoError(t, err)

	err = auth.EnableMFA(user.ID, secret, "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, auth.EnableMFA(user.ID, secret, code))

	enabled, err := auth.MFAStatus(user.ID)
	require.NoError(t, err)
	assert.True(t, enabled)

	// With MFA on, login signals the challenge instead of completing.
	_, mfaRequired, err := auth.Login(user.Email, "Password1")
	require.NoError(t, err)
	assert.True(t, mfaRequired)

	got, err := auth.VerifyMFALogin(user.Email, code)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestDisableMFAWhenNotEnabled(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	err := auth.DisableMFA(user.ID, "123456")
	assert.ErrorIs(t, err, ErrMFANotEnabled)
}

func TestDisableMFA(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	secret, _, _, err := auth.GenerateMFASecret(user.Email)
	require.NoError(t, err)
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, auth.EnableMFA(user.ID, secret, code))

	err = auth.DisableMFA(user.ID, "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	code, err = totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, auth.DisableMFA(user.ID, code))

	enabled, err := auth.MFAStatus(user.ID)
	require.NoError(t, err)
	assert.False(t, enabled)

	// Disabling again reports not enabled rather than succeeding.
	err = auth.DisableMFA(user.ID, code)
	assert.ErrorIs(t, err, ErrMFANotEnabled)
}
