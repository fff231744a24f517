package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPayment(t *testing.T) *Payment {
	t.Helper()
	payment, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(4500), PaymentTypeMonthly, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return payment
}

func TestNewPayment(t *testing.T) {
	tests := []struct {
		name        string
		homeownerID uuid.UUID
		lotID       uuid.UUID
		amount      valueobject.Money
		paymentType PaymentType
		dueDate     time.Time
		wantErr     bool
	}{
		{"valid monthly", uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(4500), PaymentTypeMonthly, time.Now(), false},
		{"valid quarterly", uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(13500), PaymentTypeQuarterly, time.Now(), false},
		{"nil homeowner", uuid.Nil, uuid.New(), valueobject.NewMoneyPHPFromFloat(4500), PaymentTypeMonthly, time.Now(), true},
		{"nil lot", uuid.New(), uuid.Nil, valueobject.NewMoneyPHPFromFloat(4500), PaymentTypeMonthly, time.Now(), true},
		{"zero amount", uuid.New(), uuid.New(), valueobject.ZeroPHP(), PaymentTypeMonthly, time.Now(), true},
		{"negative amount", uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(-100), PaymentTypeMonthly, time.Now(), true},
		{"bad type", uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(4500), PaymentType("weekly"), time.Now(), true},
		{"zero due date", uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(4500), PaymentTypeMonthly, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := NewPayment(tt.homeownerID, tt.lotID, tt.amount, tt.paymentType, tt.dueDate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, payment.IsPaid())
			assert.Equal(t, tt.paymentType.MonthsCovered(), payment.MonthsCovered)
			assert.NotEmpty(t, payment.GetDomainEvents())
		})
	}
}

func TestPayment_MarkPaid(t *testing.T) {
	payment := createTestPayment(t)
	paidOn := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, payment.MarkPaid(paidOn, "OR-2025-0042"))

	assert.True(t, payment.IsPaid())
	assert.Equal(t, paidOn, *payment.PaymentDate)
	assert.Equal(t, "OR-2025-0042", payment.ReferenceNumber)
	assert.Equal(t, PaymentStatusPaid, payment.StatusAt(time.Now()))
}

func TestPayment_MarkPaid_Twice(t *testing.T) {
	payment := createTestPayment(t)
	paidOn := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, payment.MarkPaid(paidOn, "OR-2025-0042"))

	err := payment.MarkPaid(paidOn.AddDate(0, 0, 1), "OR-2025-0043")
	assert.Error(t, err)
	assert.Equal(t, "OR-2025-0042", payment.ReferenceNumber)
	assert.Equal(t, paidOn, *payment.PaymentDate)
}

func TestPayment_MarkPaid_ZeroDate(t *testing.T) {
	payment := createTestPayment(t)
	assert.Error(t, payment.MarkPaid(time.Time{}, ""))
	assert.False(t, payment.IsPaid())
}

func TestPayment_StatusAt(t *testing.T) {
	payment := createTestPayment(t)

	assert.Equal(t, PaymentStatusPending, payment.StatusAt(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, PaymentStatusOverdue, payment.StatusAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, PaymentStatusUpcoming, payment.StatusAt(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPayment_PeriodEnd(t *testing.T) {
	monthly := createTestPayment(t)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), monthly.PeriodEnd())

	quarterly, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyPHPFromFloat(13500), PaymentTypeQuarterly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), quarterly.PeriodEnd())
}

func TestPaymentType_MonthsCovered(t *testing.T) {
	assert.Equal(t, 1, PaymentTypeMonthly.MonthsCovered())
	assert.Equal(t, 3, PaymentTypeQuarterly.MonthsCovered())
	assert.Equal(t, 12, PaymentTypeAnnually.MonthsCovered())
}

func TestDueRate_Deactivate(t *testing.T) {
	rate := createTestRate(t, PaymentTypeMonthly, 4500, "2024-01-01", true)

	require.NoError(t, rate.Deactivate())
	assert.False(t, rate.IsActive)
	assert.False(t, rate.AppliesOn(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	assert.Error(t, rate.Deactivate())
}

func TestNewDueRate_Validation(t *testing.T) {
	effective := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewDueRate(PaymentType("weekly"), valueobject.NewMoneyPHPFromFloat(4500), effective, uuid.New())
	assert.Error(t, err)

	_, err = NewDueRate(PaymentTypeMonthly, valueobject.ZeroPHP(), effective, uuid.New())
	assert.Error(t, err)

	_, err = NewDueRate(PaymentTypeMonthly, valueobject.NewMoneyPHPFromFloat(4500), time.Time{}, uuid.New())
	assert.Error(t, err)

	_, err = NewDueRate(PaymentTypeMonthly, valueobject.NewMoneyPHPFromFloat(4500), effective, uuid.Nil)
	assert.Error(t, err)
}

func TestNewDueRate_NormalizesEffectiveDateInItsOwnZone(t *testing.T) {
	manila := time.FixedZone("UTC+8", 8*60*60)

	// 06:30 local is still the previous day in UTC; the stored effective
	// date must stay on the local calendar day
	rate, err := NewDueRate(PaymentTypeMonthly, valueobject.NewMoneyPHPFromFloat(4500), time.Date(2024, 3, 1, 6, 30, 0, 0, manila), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, manila), rate.EffectiveDate)
	assert.True(t, rate.AppliesOn(time.Date(2024, 3, 1, 0, 0, 0, 0, manila)))
	assert.False(t, rate.AppliesOn(time.Date(2024, 2, 29, 0, 0, 0, 0, manila)))
}
