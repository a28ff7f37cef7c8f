package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PaymentIntentRequest запрос на создание платежного намерения.
// Вызывается только после того, как слот зарезервирован.
type PaymentIntentRequest struct {
	BookingReference string  `json:"booking_reference"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	CustomerEmail    string  `json:"customer_email"`
}

// PaymentIntent созданное платежное намерение
type PaymentIntent struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
}

// Client клиент внешнего платежного сервиса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр платежного клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateIntent создает платежное намерение для бронирования.
// Недоступность платежного сервиса не отменяет бронирование: возвращается
// ErrServiceDegraded, бронирование остается неоплаченным.
func (c *Client) CreateIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := c.baseURL + "/internal/payments/intents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Payments service unavailable for reference=%s: %v", req.BookingReference, err)
		return nil, fmt.Errorf("%w: reference=%s: %v", ErrServiceDegraded, req.BookingReference, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Payment intent created: reference=%s, intent_id=%s", req.BookingReference, intent.ID)
	return &intent, nil
}
