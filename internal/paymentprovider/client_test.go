package paymentprovider

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Go Basics", r.PostForm.Get("name"))
		assert.Equal(t, "Введение в Go", r.PostForm.Get("description"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"prod_123","name":"Go Basics","description":"Введение в Go"}`))
	}))
	defer server.Close()

	client := NewClientWithURL("sk_test_123", server.URL)

	product, err := client.CreateProduct("Go Basics", "Введение в Go")
	require.NoError(t, err)
	assert.Equal(t, "prod_123", product.ID)
	assert.Equal(t, "Go Basics", product.Name)
}

func TestCreatePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "prod_123", r.PostForm.Get("product"))
		assert.Equal(t, "150000", r.PostForm.Get("unit_amount"))
		assert.Equal(t, "rub", r.PostForm.Get("currency"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"price_456","product":"prod_123","unit_amount":150000,"currency":"rub"}`))
	}))
	defer server.Close()

	client := NewClientWithURL("sk_test_123", server.URL)

	price, err := client.CreatePrice("prod_123", 150000, "rub")
	require.NoError(t, err)
	assert.Equal(t, "price_456", price.ID)
	assert.Equal(t, 150000, price.UnitAmount)
}

func TestCreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "price_456", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "https://example.com/ok", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://example.com/cancel", r.PostForm.Get("cancel_url"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_789","url":"https://checkout.stripe.com/pay/cs_789","status":"open","payment_status":"unpaid"}`))
	}))
	defer server.Close()

	client := NewClientWithURL("sk_test_123", server.URL)

	session, err := client.CreateCheckoutSession("price_456", "https://example.com/ok", "https://example.com/cancel")
	require.NoError(t, err)
	assert.Equal(t, "cs_789", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_789", session.URL)
	assert.Equal(t, "open", session.Status)
}

func TestRetrieveSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/checkout/sessions/cs_789", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_789","status":"complete","payment_status":"paid","customer_details":{"email":"buyer@example.com"}}`))
	}))
	defer server.Close()

	client := NewClientWithURL("sk_test_123", server.URL)

	session, err := client.RetrieveSession("cs_789")
	require.NoError(t, err)
	assert.Equal(t, "complete", session.Status)
	assert.Equal(t, "paid", session.PaymentStatus)
	assert.Equal(t, "buyer@example.com", session.Email())
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	}))
	defer server.Close()

	client := NewClientWithURL("sk_bad", server.URL)

	_, err := client.CreateProduct("Go Basics", "Введение в Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}

func TestAPIErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithURL("sk_test_123", server.URL)

	_, err := client.RetrieveSession("cs_789")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestSessionEmailFallback(t *testing.T) {
	s := &CheckoutSession{CustomerEmail: "direct@example.com"}
	assert.Equal(t, "direct@example.com", s.Email())

	s = &CheckoutSession{}
	assert.Equal(t, "", s.Email())
}
