package services

import (
	"context"
	"testing"
	"time"

	"godavari-scm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStatus(t *testing.T) {
	expiry := date(2025, time.June, 15)

	tests := []struct {
		name     string
		status   string
		now      time.Time
		expected string
	}{
		{"active well before expiry", models.StorageStatusActive, date(2025, time.May, 1), models.StorageStatusActive},
		{"expiring exactly at window start", models.StorageStatusActive, date(2025, time.June, 8), models.StorageStatusExpiring},
		{"expiring inside window", models.StorageStatusActive, date(2025, time.June, 12), models.StorageStatusExpiring},
		{"expired at expiry instant", models.StorageStatusActive, date(2025, time.June, 15), models.StorageStatusExpired},
		{"expired after expiry", models.StorageStatusExpiring, date(2025, time.July, 1), models.StorageStatusExpired},
		{"delivered is terminal before expiry", models.StorageStatusDelivered, date(2025, time.May, 1), models.StorageStatusDelivered},
		{"delivered is terminal after expiry", models.StorageStatusDelivered, date(2025, time.July, 1), models.StorageStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateStatus(tt.status, expiry, tt.now))
		})
	}
}

func TestEvaluateStatus_Idempotent(t *testing.T) {
	expiry := date(2025, time.June, 15)
	now := date(2025, time.June, 10)

	first := EvaluateStatus(models.StorageStatusActive, expiry, now)
	second := EvaluateStatus(first, expiry, now)

	assert.Equal(t, first, second)
}

func TestSweepStatuses(t *testing.T) {
	repo := newFakeStorageRepo()
	now := date(2025, time.June, 10)

	active := repo.add(&models.Storage{Status: models.StorageStatusActive, ExpiryDate: date(2025, time.August, 1)})
	expiring := repo.add(&models.Storage{Status: models.StorageStatusActive, ExpiryDate: date(2025, time.June, 14)})
	expired := repo.add(&models.Storage{Status: models.StorageStatusExpiring, ExpiryDate: date(2025, time.June, 1)})
	delivered := repo.add(&models.Storage{Status: models.StorageStatusDelivered, ExpiryDate: date(2025, time.June, 1)})

	require.NoError(t, SweepStatuses(context.Background(), repo, now))

	assert.Equal(t, models.StorageStatusActive, repo.storages[active.ID].Status)
	assert.Equal(t, models.StorageStatusExpiring, repo.storages[expiring.ID].Status)
	assert.Equal(t, models.StorageStatusExpired, repo.storages[expired.ID].Status)
	assert.Equal(t, models.StorageStatusDelivered, repo.storages[delivered.ID].Status)
}
