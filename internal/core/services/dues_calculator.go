package services

import (
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/pkg/datemath"
)

// DuesSnapshot is the derived payment position of a storage record.
// It is computed on demand and never persisted.
type DuesSnapshot struct {
	MonthsCovered   int               `json:"months_covered"`
	ExpectedPayment float64           `json:"expected_payment"`
	TotalPaid       float64           `json:"total_paid"`
	TotalDue        float64           `json:"total_due"`
	HasPendingDues  bool              `json:"has_pending_dues"`
	OverduePayments []OverduePayment  `json:"overdue_payments"`
	Payments        []models.Payment  `json:"payments"`
	StorageDetails  DuesStorageDetail `json:"storage_details"`
}

// OverduePayment is a PENDING payment surfaced for display. It does not
// reduce the outstanding due.
type OverduePayment struct {
	ID      uint      `json:"id"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`
}

// DuesStorageDetail echoes the storage fields relevant to the snapshot.
type DuesStorageDetail struct {
	NumberOfPots     int       `json:"number_of_pots"`
	RegistrationDate time.Time `json:"registration_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	MonthsCovered    int       `json:"months_covered"`
}

// ComputeDues computes the dues snapshot for a storage record:
// the expected payment for the covered span (initial fee for the first
// month plus the renewal rate per additional month) against the sum of
// COMPLETED payments. Overpayment never produces a negative due.
func ComputeDues(storage *models.Storage) *DuesSnapshot {
	monthsCovered := datemath.MonthsCovered(storage.RegistrationDate, storage.ExpiryDate)

	expectedPayment := InitialStorageFee + float64(maxInt(0, monthsCovered-1))*RenewalRatePerMonth

	var totalPaid float64
	overdue := make([]OverduePayment, 0)
	for _, payment := range storage.Payments {
		switch payment.Status {
		case models.PaymentStatusCompleted:
			totalPaid += payment.Amount
		case models.PaymentStatusPending:
			overdue = append(overdue, OverduePayment{
				ID:      payment.ID,
				Amount:  payment.Amount,
				DueDate: payment.PaymentDate,
			})
		}
	}

	totalDue := expectedPayment - totalPaid
	if totalDue < 0 {
		totalDue = 0
	}

	return &DuesSnapshot{
		MonthsCovered:   monthsCovered,
		ExpectedPayment: expectedPayment,
		TotalPaid:       totalPaid,
		TotalDue:        totalDue,
		HasPendingDues:  totalPaid < expectedPayment,
		OverduePayments: overdue,
		Payments:        storage.Payments,
		StorageDetails: DuesStorageDetail{
			NumberOfPots:     storage.NumberOfPots,
			RegistrationDate: storage.RegistrationDate,
			ExpiryDate:       storage.ExpiryDate,
			MonthsCovered:    monthsCovered,
		},
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
