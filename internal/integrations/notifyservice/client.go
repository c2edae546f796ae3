package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Ядро расписания только дёргает хук после коммита перехода состояния.
// Доставка уведомлений - ответственность NotifyService, ошибки отправки
// логируются и не влияют на результат операции.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет событие в NotifyService
// Вызывается строго после коммита транзакции
func (c *Client) Notify(ctx context.Context, event Event, payload Payload) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notifyRequest{
		Event:   string(event),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	return nil
}

// NotifyAsync отправляет событие, не блокируя вызывающую операцию
// Ошибки отправки только логируются
func (c *Client) NotifyAsync(event Event, payload Payload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Notify(ctx, event, payload); err != nil {
			c.log.Error("NotifyAsync: failed to send %s for booking ref=%s: %v", event, payload.BookingReference, err)
			return
		}
		c.log.Info("NotifyAsync: sent %s for booking ref=%s", event, payload.BookingReference)
	}()
}
