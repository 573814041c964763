package services

import "time"

// Pricing policy for ash-pot storage. These are fixed business constants of
// the trust, not tunable configuration: the first month is covered by the
// initial registration fee, every additional month bills at the renewal rate.
const (
	// InitialStorageFee covers the first month of storage (in rupees).
	InitialStorageFee = 500.0

	// RenewalRatePerMonth is the charge for each month beyond the first.
	RenewalRatePerMonth = 300.0
)

// ExpiringWindow is how long before the expiry date a storage record is
// flagged EXPIRING and the renewal reminders start going out.
const ExpiringWindow = 7 * 24 * time.Hour
