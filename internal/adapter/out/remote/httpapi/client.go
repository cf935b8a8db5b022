// Package httpapi talks to the board's REST service.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bulletin/internal/adapter/out/remote"
	"bulletin/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	adminIDHeader   = "X-USER-ID"
)

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// RetryCount applies to GET requests only.
	RetryCount int
}

// Client implements every remote port over HTTP. The session cookie the
// service hands out on login is kept in the client's cookie jar.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	c := &Client{
		limiter: rate.NewLimiter(limit, burst),
	}

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(retryIdempotent).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.beforeRequest).
		OnAfterResponse(afterResponse)

	return c
}

func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if err := c.limiter.Wait(r.Context()); err != nil {
		return err
	}
	if r.Header.Get(requestIDHeader) == "" {
		r.SetHeader(requestIDHeader, uuid.NewString())
	}
	return nil
}

func afterResponse(_ *resty.Client, resp *resty.Response) error {
	logger.FromContext(resp.Request.Context()).Debug("remote call",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("took", resp.Time()),
		zap.String("request_id", resp.Request.Header.Get(requestIDHeader)),
	)
	return nil
}

func retryIdempotent(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) request(ctx context.Context, hint remote.AuthHint) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if hint.CurrentUserID != nil {
		r.SetQueryParam("currentUserId", strconv.FormatInt(*hint.CurrentUserID, 10))
	}
	r.SetQueryParam("isAdmin", strconv.FormatBool(hint.IsAdmin))
	return r
}

// send executes r and turns transport failures and error statuses into the
// remote sentinels.
func send(r *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, transportError(r, method, path, err)
	}
	if resp.IsError() {
		return resp, statusError(method, path, resp.StatusCode(), resp.String())
	}
	return resp, nil
}

func transportError(r *resty.Request, method, path string, err error) error {
	if ctxErr := r.Context().Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s %s: %w", remote.ErrTransient, method, path, ctxErr)
	}
	return fmt.Errorf("%w: %s %s: %v", remote.ErrTransient, method, path, err)
}

func statusError(method, path string, code int, body string) error {
	var base error
	switch {
	case code == http.StatusUnauthorized:
		base = remote.ErrAuthenticationRequired
	case code == http.StatusForbidden:
		base = remote.ErrAccessDenied
	case code == http.StatusNotFound:
		base = remote.ErrNotFound
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		base = remote.ErrInvalidRequest
	case code == http.StatusConflict:
		base = remote.ErrConflict
	default:
		base = remote.ErrInternalError
	}

	body = strings.TrimSpace(body)
	if len(body) > 200 {
		body = body[:200]
	}
	if body == "" {
		return fmt.Errorf("%w: %s %s: status %d", base, method, path, code)
	}
	return fmt.Errorf("%w: %s %s: status %d: %s", base, method, path, code, body)
}
