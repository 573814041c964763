package services

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
)

// EvaluateStatus returns the status a storage record should carry at the
// given instant. DELIVERED is terminal and never re-evaluated. The function
// is pure and idempotent: the same inputs always yield the same status.
func EvaluateStatus(status string, expiryDate, now time.Time) string {
	if status == models.StorageStatusDelivered {
		return models.StorageStatusDelivered
	}

	if !now.Before(expiryDate) {
		return models.StorageStatusExpired
	}

	if !now.Before(expiryDate.Add(-ExpiringWindow)) {
		return models.StorageStatusExpiring
	}

	return models.StorageStatusActive
}

// SweepStatuses pushes ACTIVE records into EXPIRING inside the reminder
// window and ACTIVE/EXPIRING records past their expiry into EXPIRED.
// It runs before listings and on the cron schedule so a read never serves
// a status staler than its own latency.
func SweepStatuses(ctx context.Context, repo repositories.StorageRepository, now time.Time) error {
	if err := repo.MarkExpired(ctx, now); err != nil {
		return err
	}
	return repo.MarkExpiring(ctx, now, ExpiringWindow)
}
