package models

import (
	"fmt"
	"time"
)

// Способы оплаты.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
)

// Payment представляет платеж пользователя за курс или урок.
// Заполнено ровно одно из полей PaidCourseID / PaidLessonID.
// Для метода TRANSFER обязательны StripePaymentID и StripeStatus,
// это проверяется методом Validate перед сохранением.
type Payment struct {
	ID              int
	UserUID         string
	PaidCourseID    *int
	PaidLessonID    *int
	Amount          int    // Сумма в минимальных единицах валюты
	PaymentMethod   string // CASH или TRANSFER
	StripePaymentID string
	StripeStatus    string
	PaymentDate     time.Time
}

// Validate проверяет инварианты платежа перед сохранением.
func (p *Payment) Validate() error {
	const op = "models.Payment.Validate"
	if p.PaymentMethod != PaymentMethodCash && p.PaymentMethod != PaymentMethodTransfer {
		return fmt.Errorf("%s: %w: unknown payment method %q", op, ErrValidation, p.PaymentMethod)
	}
	if (p.PaidCourseID == nil) == (p.PaidLessonID == nil) {
		return fmt.Errorf("%s: %w: exactly one of paid_course or paid_lesson must be set", op, ErrValidation)
	}
	if p.PaymentMethod == PaymentMethodTransfer && (p.StripePaymentID == "" || p.StripeStatus == "") {
		return fmt.Errorf("%s: %w: transfer payment requires stripe_payment_id and stripe_status", op, ErrValidation)
	}
	return nil
}

// CheckoutResult возвращается при создании платежной сессии.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutStatus описывает состояние платежной сессии провайдера.
type CheckoutStatus struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// PaymentInfo описывает платеж в ответах API.
type PaymentInfo struct {
	ID              int       `json:"id"`
	UserUID         string    `json:"user_uid"`
	PaidCourseID    *int      `json:"paid_course_id,omitempty"`
	PaidLessonID    *int      `json:"paid_lesson_id,omitempty"`
	Amount          int       `json:"amount"`
	PaymentMethod   string    `json:"payment_method"`
	StripePaymentID string    `json:"stripe_payment_id,omitempty"`
	StripeStatus    string    `json:"stripe_status,omitempty"`
	PaymentDate     time.Time `json:"payment_date"`
}
