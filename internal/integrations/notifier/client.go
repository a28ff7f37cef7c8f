package notifier

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

// Client клиент сервиса уведомлений.
// Доставка уведомлений - внешняя обязанность: клиент только публикует
// события о создании и отмене бронирований.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBookingCreated отправляет событие создания бронирования.
// Недоступность сервиса уведомлений не отменяет бронирование - применяется
// graceful degradation: ошибка логируется и возвращается как ErrServiceDegraded.
func (c *Client) NotifyBookingCreated(ctx context.Context, event *BookingCreatedEvent) error {
	if err := c.post(ctx, "/internal/notifications/booking-created", event); err != nil {
		c.log.Error("Notifier unavailable, booking-created event dropped: reference=%s, error=%v",
			event.Reference, err)
		return fmt.Errorf("%w: reference=%s: %v", ErrServiceDegraded, event.Reference, err)
	}

	c.log.Info("Booking-created event delivered: reference=%s", event.Reference)
	return nil
}

// NotifyBookingCancelled отправляет событие отмены бронирования
func (c *Client) NotifyBookingCancelled(ctx context.Context, event *BookingCancelledEvent) error {
	if err := c.post(ctx, "/internal/notifications/booking-cancelled", event); err != nil {
		c.log.Error("Notifier unavailable, booking-cancelled event dropped: reference=%s, error=%v",
			event.Reference, err)
		return fmt.Errorf("%w: reference=%s: %v", ErrServiceDegraded, event.Reference, err)
	}

	c.log.Info("Booking-cancelled event delivered: reference=%s", event.Reference)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
