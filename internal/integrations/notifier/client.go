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

// Client клиент сервиса уведомлений. Сервис берет на себя доставку
// (почта, мессенджеры); здесь только сборка полезной нагрузки и отправка.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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

// SendConfirmation отправляет посетителю подтверждение заявки
// с ICS вложением. Ошибка отправки не откатывает заявку:
// бронирования уже закоммичены, вызывающий код только логирует сбой.
func (c *Client) SendConfirmation(ctx context.Context, msg *ConfirmationMessage) error {
	calendar, err := BuildCalendar(msg)
	if err != nil {
		// Без вложения подтверждение все равно полезно
		c.log.Warn("SendConfirmation: failed to build calendar for code=%s: %v", msg.ConfirmationCode, err)
	} else {
		msg.Calendar = calendar
	}

	return c.post(ctx, "/internal/notifications/confirmation", msg)
}

// SendOrganizerDigest отправляет организатору сводку бронирований на дату
func (c *Client) SendOrganizerDigest(ctx context.Context, msg *DigestMessage) error {
	return c.post(ctx, "/internal/notifications/digest", msg)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
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
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
