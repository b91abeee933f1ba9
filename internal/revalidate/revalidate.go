// Package revalidate tells the frontend which rendered pages are stale after a catalog change.
package revalidate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/penguins/internal/config"
)

//go:generate mockgen -source=revalidate.go -destination=../mocks/revalidate/mock_revalidate.go -package=mock_revalidate

// SecretHeader carries the shared secret the frontend checks before revalidating.
const SecretHeader = "X-Revalidate-Secret"

// Page paths cached by the frontend.
const (
	PenguinsPath = "/penguins"
	AdminPath    = "/admin"
	MemoriesPath = "/memories"
)

// PenguinPath returns the detail page path of a penguin.
func PenguinPath(id string) string {
	return PenguinsPath + "/" + id
}

// Revalidator marks rendered pages as stale.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

// Nop is used when no frontend is configured.
type Nop struct{}

func (Nop) Revalidate(context.Context, ...string) error {
	return nil
}

// New returns a Client for cfg, or Nop when cfg has no base URL.
func New(cfg config.RevalidateConfig) Revalidator {
	if cfg.BaseURL == "" {
		return Nop{}
	}
	return NewClient(cfg)
}

// Client posts stale page paths to the frontend.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient creates a Client for the frontend at cfg.BaseURL.
func NewClient(cfg config.RevalidateConfig) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader(SecretHeader, cfg.Secret)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: cfg.RetryAttempts,
		retryDelay:       100 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Request is the body sent to the frontend revalidation endpoint.
type Request struct {
	Paths []string `json:"paths"`
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.code, e.body)
}

// isRetryableError reports whether another attempt may succeed: transport
// failures, rate limiting and server errors.
func isRetryableError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Revalidate posts paths to the frontend, retrying transient failures.
func (client *Client) Revalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	return retry.Do(
		func() error {
			err := client.revalidate(ctx, paths)
			if err != nil && !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (client *Client) revalidate(ctx context.Context, paths []string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(Request{Paths: paths}).
		Post("/api/revalidate")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return &statusError{code: response.StatusCode(), body: response.String()}
	}
	return nil
}
