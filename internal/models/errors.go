package models

import "errors"

// Доменные ошибки. Обработчики HTTP транслируют их в коды ответов:
// ErrUnauthenticated - 401, ErrForbidden - 403, ErrNotFound - 404,
// ErrValidation и ErrPaymentProvider - 400.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPaymentProvider = errors.New("payment provider failure")
)
