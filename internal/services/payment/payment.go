// Package payment содержит оркестрацию платежей: ленивую подготовку
// продукта и цены у провайдера, открытие платежных сессий и список платежей.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
)

// Repository определяет методы хранилища, используемые платежным сервисом.
type Repository interface {
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// SetStripeProductID записывает ID продукта, если он ещё не задан.
	SetStripeProductID(ctx context.Context, id int, productID string) (bool, error)
	// SetStripePriceID записывает ID цены, если он ещё не задан.
	SetStripePriceID(ctx context.Context, id int, priceID string) (bool, error)
	// CreatePayment сохраняет платеж.
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	// ListPayments возвращает платежи по фильтру.
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.PaymentInfo, error)
	// UpdatePaymentStatusBySession обновляет статус платежа по ID сессии.
	UpdatePaymentStatusBySession(ctx context.Context, sessionID, status string) (int, error)
}

// Provider описывает операции платежного провайдера.
type Provider interface {
	CreateProduct(name, description string) (*paymentprovider.Product, error)
	CreatePrice(productID string, unitAmount int, currency string) (*paymentprovider.Price, error)
	CreateCheckoutSession(priceID, successURL, cancelURL string) (*paymentprovider.CheckoutSession, error)
	RetrieveSession(sessionID string) (*paymentprovider.CheckoutSession, error)
}

// PaymentService реализует оркестрацию платежей.
type PaymentService struct {
	repo     Repository
	provider Provider
	cfg      config.Stripe
	log      *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo Repository, provider Provider, cfg config.Stripe, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// ensureProduct лениво создает продукт у провайдера и записывает его ID
// на курс условной записью: проигравший гонку запрос перечитывает
// победивший ID. Уже записанный ID переиспользуется без обращения к провайдеру.
func (s *PaymentService) ensureProduct(ctx context.Context, course *models.Course) (string, error) {
	const op = "payment.ensureProduct"
	if course.StripeProductID != "" {
		return course.StripeProductID, nil
	}

	product, err := s.provider.CreateProduct(course.Title, course.Description)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, models.ErrPaymentProvider, err)
	}

	written, err := s.repo.SetStripeProductID(ctx, course.ID, product.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !written {
		refreshed, err := s.repo.ReadCourse(ctx, course.ID)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return refreshed.StripeProductID, nil
	}
	s.log.Info("provisioned stripe product",
		slog.Int("course_id", course.ID), slog.String("product_id", product.ID))
	return product.ID, nil
}

func (s *PaymentService) ensurePrice(ctx context.Context, course *models.Course, productID string) (string, error) {
	const op = "payment.ensurePrice"
	if course.StripePriceID != "" {
		return course.StripePriceID, nil
	}

	price, err := s.provider.CreatePrice(productID, course.Price, s.cfg.Currency)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, models.ErrPaymentProvider, err)
	}

	written, err := s.repo.SetStripePriceID(ctx, course.ID, price.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !written {
		refreshed, err := s.repo.ReadCourse(ctx, course.ID)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return refreshed.StripePriceID, nil
	}
	s.log.Info("provisioned stripe price",
		slog.Int("course_id", course.ID), slog.String("price_id", price.ID))
	return price.ID, nil
}

// CreateCheckout открывает платежную сессию для курса. Продукт и цена
// провайдера создаются при первом обращении и переиспользуются дальше;
// каждая успешная сессия записывается как платеж со способом TRANSFER.
func (s *PaymentService) CreateCheckout(ctx context.Context, actorUID string, courseID int) (*models.CheckoutResult, error) {
	const op = "payment.CreateCheckout"

	course, err := s.repo.ReadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	productID, err := s.ensureProduct(ctx, course)
	if err != nil {
		return nil, err
	}
	priceID, err := s.ensurePrice(ctx, course, productID)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(priceID, s.cfg.SuccessURL, s.cfg.CancelURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrPaymentProvider, err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("%s: %w: provider returned empty session", op, models.ErrPaymentProvider)
	}

	status := session.Status
	if status == "" {
		status = "open"
	}
	record := models.Payment{
		UserUID:         actorUID,
		PaidCourseID:    &courseID,
		Amount:          course.Price,
		PaymentMethod:   models.PaymentMethodTransfer,
		StripePaymentID: session.ID,
		StripeStatus:    status,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.CreatePayment(ctx, record); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout session created",
		slog.Int("course_id", courseID), slog.String("session_id", session.ID))
	return &models.CheckoutResult{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// CheckoutStatus возвращает состояние платежной сессии и обновляет
// статус сохранённого платежа.
func (s *PaymentService) CheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error) {
	const op = "payment.CheckoutStatus"

	session, err := s.provider.RetrieveSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrPaymentProvider, err)
	}

	if session.PaymentStatus != "" {
		if _, err := s.repo.UpdatePaymentStatusBySession(ctx, sessionID, session.PaymentStatus); err != nil {
			s.log.Warn("failed to update stored payment status",
				slog.String("session_id", sessionID), slog.Any("err", err))
		}
	}

	return &models.CheckoutStatus{
		SessionID:     session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		CustomerEmail: session.Email(),
	}, nil
}

// RecordPayment валидирует и сохраняет платеж, созданный вне платежной
// сессии (например, наличный).
func (s *PaymentService) RecordPayment(ctx context.Context, payment models.Payment) (int, error) {
	if err := payment.Validate(); err != nil {
		return 0, err
	}
	return s.repo.CreatePayment(ctx, payment)
}

// List возвращает платежи по фильтру.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]*models.PaymentInfo, error) {
	return s.repo.ListPayments(ctx, filter)
}
