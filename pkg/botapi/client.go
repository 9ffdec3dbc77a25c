package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// APIError is returned when the Telegram Bot API responds with ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %d %s", e.Code, e.Description)
}

// Telegram allows roughly 30 messages per second bot-wide.
const globalSendRate = 30

type client struct {
	http    *http.Client
	limiter *rate.Limiter
}

func newClient() *client {
	return &client{
		// No client-side timeout: getUpdates long polling holds the
		// connection open for up to the requested poll timeout.
		http:    &http.Client{Timeout: 0},
		limiter: rate.NewLimiter(rate.Limit(globalSendRate), globalSendRate),
	}
}

func (c *client) postJSON(ctx context.Context, url string, payload any, res APIResponse) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return check(res)
}

func check(res APIResponse) error {
	base := res.Base()
	if base.Ok {
		return nil
	}
	return &APIError{
		Code:        base.ErrorCode,
		Description: base.Description,
	}
}
