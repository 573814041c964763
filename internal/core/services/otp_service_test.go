package services

import (
	"context"
	"testing"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "9876543210"

func newOTPFixture() (*OTPService, *fakeOTPRepo) {
	repo := &fakeOTPRepo{}
	return NewOTPService(repo, newDisabledSMS()), repo
}

func TestOTPSendCode(t *testing.T) {
	svc, repo := newOTPFixture()

	require.NoError(t, svc.SendCode(context.Background(), testPhone, models.OTPPurposeDelivery))

	require.Len(t, repo.codes, 1)
	code := repo.codes[0]
	assert.Len(t, code.Code, 6)
	assert.Equal(t, testPhone, code.Phone)
	assert.False(t, code.IsUsed)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), code.ExpiresAt, 5*time.Second)
}

func TestOTPSendCode_CooldownBlocksResend(t *testing.T) {
	svc, _ := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))
	err := svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery)

	assert.ErrorIs(t, err, domain.ErrOTPTooSoon)
}

func TestOTPSendCode_ResendAllowedAfterCooldown(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))
	repo.codes[0].CreatedAt = time.Now().Add(-2 * time.Minute)

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))
	assert.Len(t, repo.codes, 2)
}

func TestOTPVerify_ConsumesCodeOnSuccess(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))
	code := repo.codes[0].Code

	require.NoError(t, svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, code))

	// Single use: the same code cannot be redeemed twice.
	err := svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, code)
	assert.ErrorIs(t, err, domain.ErrOTPUsed)
}

func TestOTPVerify_WrongCode(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))

	err := svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, "not-it")
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	assert.Equal(t, 1, repo.codes[0].Attempts)

	// The right code still works while attempts remain.
	require.NoError(t, svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, repo.codes[0].Code))
}

func TestOTPVerify_MaxAttempts(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))

	for i := 0; i < otpMaxAttempts; i++ {
		assert.ErrorIs(t, svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, "wrong"), domain.ErrOTPInvalid)
	}

	// Even the right code is refused once the budget is spent.
	err := svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, repo.codes[0].Code)
	assert.ErrorIs(t, err, domain.ErrOTPMaxAttempts)
}

func TestOTPVerify_Expired(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, testPhone, models.OTPPurposeDelivery))
	repo.codes[0].ExpiresAt = time.Now().Add(-time.Second)

	err := svc.Verify(ctx, testPhone, models.OTPPurposeDelivery, repo.codes[0].Code)
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestOTPVerify_NoCodeRequested(t *testing.T) {
	svc, _ := newOTPFixture()

	err := svc.Verify(context.Background(), testPhone, models.OTPPurposeDelivery, "123456")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestOTPCleanupExpired(t *testing.T) {
	svc, repo := newOTPFixture()
	ctx := context.Background()

	repo.Create(ctx, &models.OTPCode{Phone: testPhone, Purpose: models.OTPPurposeDelivery, ExpiresAt: time.Now().Add(-time.Hour)})
	repo.Create(ctx, &models.OTPCode{Phone: testPhone, Purpose: models.OTPPurposeDelivery, ExpiresAt: time.Now().Add(time.Hour)})

	require.NoError(t, svc.CleanupExpired(ctx))
	assert.Len(t, repo.codes, 1)
}
