package services

import (
	"testing"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/pkg/datemath"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completedPayment(amount float64) models.Payment {
	return models.Payment{Amount: amount, Status: models.PaymentStatusCompleted, PaymentDate: time.Now()}
}

func pendingPayment(amount float64) models.Payment {
	return models.Payment{Amount: amount, Status: models.PaymentStatusPending, PaymentDate: time.Now()}
}

func TestComputeDues_FirstMonthFullyPaid(t *testing.T) {
	storage := &models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.February, 1),
		Payments:         []models.Payment{completedPayment(500)},
	}

	dues := ComputeDues(storage)

	assert.Equal(t, 1, dues.MonthsCovered)
	assert.Equal(t, 500.0, dues.ExpectedPayment)
	assert.Equal(t, 500.0, dues.TotalPaid)
	assert.Equal(t, 0.0, dues.TotalDue)
	assert.False(t, dues.HasPendingDues)
}

func TestComputeDues_AfterRenewals(t *testing.T) {
	storage := &models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.April, 1),
		Payments: []models.Payment{
			completedPayment(500),
			completedPayment(600),
		},
	}

	dues := ComputeDues(storage)

	assert.Equal(t, 3, dues.MonthsCovered)
	assert.Equal(t, 1100.0, dues.ExpectedPayment) // 500 + 2 * 300
	assert.Equal(t, 1100.0, dues.TotalPaid)
	assert.Equal(t, 0.0, dues.TotalDue)
	assert.False(t, dues.HasPendingDues)
}

func TestComputeDues_PendingPaymentsDoNotCount(t *testing.T) {
	storage := &models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.April, 1),
		Payments: []models.Payment{
			completedPayment(500),
			pendingPayment(600),
		},
	}

	dues := ComputeDues(storage)

	assert.Equal(t, 1100.0, dues.ExpectedPayment)
	assert.Equal(t, 500.0, dues.TotalPaid)
	assert.Equal(t, 600.0, dues.TotalDue)
	assert.True(t, dues.HasPendingDues)
	assert.Len(t, dues.OverduePayments, 1)
	assert.Equal(t, 600.0, dues.OverduePayments[0].Amount)
}

func TestComputeDues_OverpaymentNeverGoesNegative(t *testing.T) {
	storage := &models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.February, 1),
		Payments:         []models.Payment{completedPayment(2000)},
	}

	dues := ComputeDues(storage)

	assert.Equal(t, 0.0, dues.TotalDue)
	assert.False(t, dues.HasPendingDues)
}

func TestComputeDues_ExpectedPaymentNeverDecreases(t *testing.T) {
	reg := date(2025, time.January, 1)
	prev := 0.0
	for months := 1; months <= 24; months++ {
		dues := ComputeDues(&models.Storage{
			RegistrationDate: reg,
			ExpiryDate:       datemath.AddMonths(reg, months),
		})
		assert.GreaterOrEqual(t, dues.ExpectedPayment, prev, "months=%d", months)
		prev = dues.ExpectedPayment
	}
}

func TestComputeDues_NoPayments(t *testing.T) {
	storage := &models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.February, 1),
	}

	dues := ComputeDues(storage)

	assert.Equal(t, 500.0, dues.TotalDue)
	assert.True(t, dues.HasPendingDues)
	assert.Empty(t, dues.OverduePayments)
}
