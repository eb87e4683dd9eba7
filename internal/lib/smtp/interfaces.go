// Package smtp предоставляет транспорт для отправки писем уведомлений.
package smtp

import "io"

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс для SMTP транспорта.
// Выделен, чтобы сервис отправки можно было тестировать без сети.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
