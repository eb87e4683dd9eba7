// Package paymentprovider реализует тонкий клиент Stripe API.
// Используются только создание продукта, цены, платежной сессии
// и чтение сессии; запросы кодируются формой, как требует API.
package paymentprovider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client клиент Stripe API.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент с секретным ключом.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithURL создаёт клиент с иным базовым адресом API.
// Используется в тестах с httptest-сервером.
func NewClientWithURL(secretKey, apiURL string) *Client {
	c := NewClient(secretKey)
	c.apiURL = apiURL
	return c
}

func (c *Client) do(method, path string, form url.Values, out any) error {
	const op = "paymentprovider.do"

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s: %s: %s", op, resp.Status, apiErr.Error.Message)
		}
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateProduct создает продукт и возвращает его.
func (c *Client) CreateProduct(name, description string) (*Product, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("description", description)

	var product Product
	if err := c.do(http.MethodPost, "/products", form, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreatePrice создает цену для продукта в минимальных единицах валюты.
func (c *Client) CreatePrice(productID string, unitAmount int, currency string) (*Price, error) {
	form := url.Values{}
	form.Set("product", productID)
	form.Set("unit_amount", strconv.Itoa(unitAmount))
	form.Set("currency", currency)

	var price Price
	if err := c.do(http.MethodPost, "/prices", form, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// CreateCheckoutSession открывает платежную сессию с редиректами.
func (c *Client) CreateCheckoutSession(priceID, successURL, cancelURL string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	var session CheckoutSession
	if err := c.do(http.MethodPost, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveSession возвращает платежную сессию по её ID.
func (c *Client) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
