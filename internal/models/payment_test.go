package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentValidate(t *testing.T) {
	courseID := 1
	lessonID := 2

	tests := []struct {
		name    string
		payment Payment
		wantErr bool
	}{
		{
			name: "наличный платеж за курс",
			payment: Payment{
				PaymentMethod: PaymentMethodCash,
				PaidCourseID:  &courseID,
				Amount:        1000,
			},
		},
		{
			name: "перевод за урок со stripe-полями",
			payment: Payment{
				PaymentMethod:   PaymentMethodTransfer,
				PaidLessonID:    &lessonID,
				Amount:          500,
				StripePaymentID: "cs_test_123",
				StripeStatus:    "complete",
			},
		},
		{
			name: "неизвестный способ оплаты",
			payment: Payment{
				PaymentMethod: "CRYPTO",
				PaidCourseID:  &courseID,
			},
			wantErr: true,
		},
		{
			name: "указаны и курс и урок",
			payment: Payment{
				PaymentMethod: PaymentMethodCash,
				PaidCourseID:  &courseID,
				PaidLessonID:  &lessonID,
			},
			wantErr: true,
		},
		{
			name: "не указана цель платежа",
			payment: Payment{
				PaymentMethod: PaymentMethodCash,
			},
			wantErr: true,
		},
		{
			name: "перевод без stripe-полей",
			payment: Payment{
				PaymentMethod: PaymentMethodTransfer,
				PaidCourseID:  &courseID,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
