package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	defaultTimeout = 10 * time.Second
	maxDetailLen   = 256
	requestIDKey   = "X-Request-Id"
)

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client is the configured REST client of the store backend. It is built
// once at process start and injected into every component.
type Client struct {
	c   *Config
	cli *resty.Client
}

func New(c *Config) *Client {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	cli := resty.New()
	cli.SetBaseURL(c.BaseURL)
	cli.SetTimeout(c.Timeout)
	cli.SetHeader("Accept", "application/json")
	cli.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(requestIDKey) == "" {
			r.SetHeader(requestIDKey, uuid.NewString())
		}
		return nil
	})
	cli.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		slog.Default().DebugContext(resp.Request.Context(), "store api response",
			slog.String("method", resp.Request.Method),
			slog.String("url", resp.Request.URL),
			slog.Int("status", resp.StatusCode()),
			slog.Duration("took", resp.Time()),
			slog.String("request_id", resp.Request.Header.Get(requestIDKey)),
		)
		return nil
	})

	return &Client{c: c, cli: cli}
}

func (c *Client) BaseURL() string {
	return c.c.BaseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.cli.R().SetContext(ctx)
}

// check classifies the outcome of a request. 4xx responses get clientKind.
func check(op string, resp *resty.Response, err error, clientKind gerr.Kind) error {
	if err != nil {
		return gerr.Network(op, err)
	}
	sc := resp.StatusCode()
	switch {
	case sc >= 500:
		return &gerr.Error{Kind: gerr.KindServer, Op: op, Status: sc, Detail: detail(resp.Body())}
	case sc >= 400:
		return &gerr.Error{Kind: clientKind, Op: op, Status: sc, Detail: detail(resp.Body())}
	}
	return nil
}

func decode(op string, resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return gerr.Format(op, fmt.Sprintf("could not unmarshal response: %v", err))
	}
	return nil
}

func detail(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxDetailLen {
		s = s[:maxDetailLen] + "..."
	}
	return s
}
