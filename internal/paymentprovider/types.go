package paymentprovider

// Product представляет продукт платежного провайдера.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Price представляет цену, привязанную к продукту.
type Price struct {
	ID         string `json:"id"`
	Product    string `json:"product"`
	UnitAmount int    `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// CheckoutSession представляет платежную сессию.
// Поле URL используется для редиректа покупателя, Status и PaymentStatus
// отдаются при проверке состояния сессии.
type CheckoutSession struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	CustomerEmail  string `json:"customer_email"`
	AmountTotal    int    `json:"amount_total"`
	Currency       string `json:"currency"`
	CustomerDetail *struct {
		Email string `json:"email"`
	} `json:"customer_details,omitempty"`
}

// Email возвращает адрес покупателя из любого заполненного поля сессии.
func (s *CheckoutSession) Email() string {
	if s.CustomerEmail != "" {
		return s.CustomerEmail
	}
	if s.CustomerDetail != nil {
		return s.CustomerDetail.Email
	}
	return ""
}

// apiError описывает тело ошибки провайдера.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
