package services

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService computes the operator dashboard aggregates
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats is the summary block shown on the dashboard
type DashboardStats struct {
	TotalStorages     int64   `json:"total_storages"`
	ActiveStorages    int64   `json:"active_storages"`
	ExpiringStorages  int64   `json:"expiring_storages"`
	ExpiredStorages   int64   `json:"expired_storages"`
	DeliveredStorages int64   `json:"delivered_storages"`
	TotalCustomers    int64   `json:"total_customers"`
	TodayEntries      int64   `json:"today_entries"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthRevenue      float64 `json:"month_revenue"`
}

// Stats computes the dashboard aggregates, scoped to the actor's location
// for operators
func (s *DashboardService) Stats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	stats := &DashboardStats{}

	storageQuery := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Storage{})
		if actor.Role == models.RoleOperator && actor.LocationID != nil {
			q = q.Where("location_id = ?", *actor.LocationID)
		}
		return q
	}

	if err := storageQuery().Count(&stats.TotalStorages).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		status string
		target *int64
	}{
		{models.StorageStatusActive, &stats.ActiveStorages},
		{models.StorageStatusExpiring, &stats.ExpiringStorages},
		{models.StorageStatusExpired, &stats.ExpiredStorages},
		{models.StorageStatusDelivered, &stats.DeliveredStorages},
	}
	for _, sc := range statusCounts {
		if err := storageQuery().Where("status = ?", sc.status).Count(sc.target).Error; err != nil {
			return nil, err
		}
	}

	customerQuery := s.db.WithContext(ctx).Model(&models.Customer{})
	if actor.Role == models.RoleOperator && actor.LocationID != nil {
		customerQuery = customerQuery.Where("location_id = ?", *actor.LocationID)
	}
	if err := customerQuery.Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	todayStart := startOfDay(time.Now())
	if err := storageQuery().Where("created_at >= ?", todayStart).Count(&stats.TodayEntries).Error; err != nil {
		return nil, err
	}

	revenueQuery := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Payment{}).
			Joins("JOIN storages ON storages.id = payments.storage_id").
			Where("payments.status = ?", models.PaymentStatusCompleted)
		if actor.Role == models.RoleOperator && actor.LocationID != nil {
			q = q.Where("storages.location_id = ?", *actor.LocationID)
		}
		return q
	}

	if err := revenueQuery().
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	monthStart := startOfMonth(time.Now())
	if err := revenueQuery().
		Where("payments.payment_date >= ?", monthStart).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&stats.MonthRevenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// startOfDay returns midnight of t's day in t's own zone. Truncate would
// snap to UTC midnight, which is the previous evening for this business.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
