package services

import (
	"context"
	"log"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/pkg/datemath"

	"github.com/robfig/cron/v3"
)

// Grace period between expiry and the final disposal warning.
const finalWarningAfter = 3 * 24 * time.Hour

// CronService runs the scheduled jobs: hourly status sweeps, the morning
// reminder batch and nightly cleanup of expired codes and tokens.
type CronService struct {
	cron             *cron.Cron
	storageRepo      repositories.StorageRepository
	notificationRepo repositories.NotificationRepository
	notifyService    *NotificationService
	otpService       *OTPService
	authService      *AuthService
}

// NewCronService creates a new cron service
func NewCronService(
	storageRepo repositories.StorageRepository,
	notificationRepo repositories.NotificationRepository,
	notifyService *NotificationService,
	otpService *OTPService,
	authService *AuthService,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		storageRepo:      storageRepo,
		notificationRepo: notificationRepo,
		notifyService:    notifyService,
		otpService:       otpService,
		authService:      authService,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	s.cron.AddFunc("0 * * * *", s.runStatusSweep)
	s.cron.AddFunc("30 8 * * *", s.runReminderBatch)
	s.cron.AddFunc("0 3 * * *", s.runCleanup)

	s.cron.Start()
	log.Println("✅ Cron jobs scheduled (sweep hourly, reminders 08:30, cleanup 03:00)")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron jobs stopped")
}

func (s *CronService) runStatusSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := SweepStatuses(ctx, s.storageRepo, time.Now()); err != nil {
		log.Printf("❌ Status sweep failed: %v", err)
	}
}

// runReminderBatch sends renewal reminders to EXPIRING records and final
// warnings to records expired beyond the grace period. Each record gets at
// most one reminder per day and one final warning ever.
func (s *CronService) runReminderBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	if err := SweepStatuses(ctx, s.storageRepo, now); err != nil {
		log.Printf("❌ Pre-reminder sweep failed: %v", err)
	}

	s.sendRenewalReminders(ctx, now)
	s.sendFinalWarnings(ctx, now)
}

func (s *CronService) sendRenewalReminders(ctx context.Context, now time.Time) {
	storages, err := s.storageRepo.ListByStatus(ctx, models.StorageStatusExpiring)
	if err != nil {
		log.Printf("❌ Failed to list expiring storages: %v", err)
		return
	}

	since := now.Add(-24 * time.Hour)
	sent := 0
	for _, storage := range storages {
		if storage.Customer == nil {
			continue
		}

		already, err := s.notificationRepo.ExistsSince(ctx, storage.ID, models.NotifyTypeRenewalReminder, since)
		if err != nil || already {
			continue
		}

		venueName := "our facility"
		if storage.Location != nil {
			venueName = storage.Location.Name
		}

		daysLeft := datemath.DaysBetween(now, storage.ExpiryDate)
		if daysLeft < 0 {
			daysLeft = 0
		}

		s.notifyService.Emit(ctx,
			models.NotifyTypeRenewalReminder,
			RenewalReminderMessage(venueName, daysLeft),
			storage.Customer.Phone,
			storage.ID,
			nil,
		)
		sent++
	}

	if sent > 0 {
		log.Printf("📱 Sent %d renewal reminders", sent)
	}
}

func (s *CronService) sendFinalWarnings(ctx context.Context, now time.Time) {
	storages, err := s.storageRepo.ListByStatus(ctx, models.StorageStatusExpired)
	if err != nil {
		log.Printf("❌ Failed to list expired storages: %v", err)
		return
	}

	sent := 0
	for _, storage := range storages {
		if storage.Customer == nil {
			continue
		}
		if now.Sub(storage.ExpiryDate) < finalWarningAfter {
			continue
		}

		// One final warning per storage record, ever.
		already, err := s.notificationRepo.ExistsSince(ctx, storage.ID, models.NotifyTypeFinalWarning, storage.ExpiryDate)
		if err != nil || already {
			continue
		}

		s.notifyService.Emit(ctx,
			models.NotifyTypeFinalWarning,
			FinalWarningMessage(),
			storage.Customer.Phone,
			storage.ID,
			nil,
		)
		sent++
	}

	if sent > 0 {
		log.Printf("⚠️ Sent %d final warnings", sent)
	}
}

func (s *CronService) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.otpService.CleanupExpired(ctx); err != nil {
		log.Printf("❌ OTP cleanup failed: %v", err)
	}
	if err := s.authService.CleanupExpiredTokens(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
