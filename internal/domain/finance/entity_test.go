package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPaymentTerms(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		dueDate time.Time
		want    PaymentTerms
	}{
		{"due today", today, PaymentTermsImmediate},
		{"already overdue", today.AddDate(0, 0, -10), PaymentTermsImmediate},
		{"due tomorrow", today.AddDate(0, 0, 1), PaymentTermsNet30},
		{"within thirty days", today.AddDate(0, 0, 15), PaymentTermsNet30},
		{"exactly thirty days", today.AddDate(0, 0, 30), PaymentTermsNet30},
		{"within forty five days", today.AddDate(0, 0, 40), PaymentTermsNet45},
		{"within sixty days", today.AddDate(0, 0, 55), PaymentTermsNet60},
		{"beyond sixty days", today.AddDate(0, 0, 80), PaymentTermsNet90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPaymentTerms(tc.dueDate, today))
		})
	}
}

func TestClassifyPaymentTerms_IgnoresClockTime(t *testing.T) {
	// A midnight due date tomorrow is still one day out at 15:00 today.
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, PaymentTermsNet30, ClassifyPaymentTerms(due, now))
	assert.Equal(t, PaymentTermsImmediate, ClassifyPaymentTerms(due, due.Add(5*time.Hour)))
}
