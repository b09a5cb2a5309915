// Package transport is the single entry point every feature uses to talk to the
// car-share backend. Depending on the current settings a call is answered by the
// in-process mock dispatcher or sent as GraphQL over HTTP to the configured
// endpoint.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/pkg/dto"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultProbeTimeout = 5 * time.Second

	maxResponseBytes = 10 << 20
	maxErrorBody     = 512
)

type SettingsReader interface {
	UseMockData() bool
	APIEndpoint() string
}

type Dispatcher interface {
	Execute(ctx context.Context, kind operations.Kind, vars operations.Variables) (operations.Response, error)
}

// Observer is told about every finished call.
type Observer interface {
	ObserveOperation(operation, mode string, err error, elapsed time.Duration)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.probeTimeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

type Client struct {
	settings     SettingsReader
	dispatcher   Dispatcher
	httpClient   *http.Client
	timeout      time.Duration
	probeTimeout time.Duration
	logger       *slog.Logger
	observer     Observer

	mu    sync.RWMutex
	token string
}

func New(settings SettingsReader, dispatcher Dispatcher, opts ...Option) *Client {
	c := &Client{
		settings:     settings,
		dispatcher:   dispatcher,
		timeout:      DefaultTimeout,
		probeTimeout: DefaultProbeTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearAuthToken() {
	c.SetAuthToken("")
}

func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Mode reports "mock" or "api" for the current settings.
func (c *Client) Mode() string {
	if c.settings.UseMockData() {
		return "mock"
	}
	return "api"
}

// Execute runs kind with vars and decodes the result fields into out, which may be
// nil when the caller only cares about success.
func (c *Client) Execute(ctx context.Context, kind operations.Kind, vars operations.Variables, out any) error {
	start := time.Now()
	mode := c.Mode()
	endpoint := c.settings.APIEndpoint()

	c.logger.Debug("graphql request",
		"operation", kind.String(),
		"mode", mode,
		"endpoint", endpoint,
		"variables", redact(vars),
		"timestamp", start.UTC().Format(time.RFC3339Nano),
	)

	var err error
	if mode == "mock" {
		err = c.executeMock(ctx, kind, vars, out)
	} else {
		err = c.executeRemote(ctx, endpoint, kind, vars, out)
	}

	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveOperation(kind.String(), mode, err, elapsed)
	}
	if err != nil {
		c.logger.Debug("graphql request failed", "operation", kind.String(), "mode", mode, "duration", elapsed, "error", err)
		return err
	}
	return nil
}

func (c *Client) executeMock(ctx context.Context, kind operations.Kind, vars operations.Variables, out any) error {
	if c.dispatcher == nil {
		return ErrNoDispatcher
	}
	resp, err := c.dispatcher.Execute(ctx, kind, vars)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode %s response: %w", kind, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", kind, err)
	}
	return nil
}

func (c *Client) executeRemote(ctx context.Context, endpoint string, kind operations.Kind, vars operations.Variables, out any) error {
	body, err := json.Marshal(dto.GraphQLRequest{
		Query:         kind.Document(),
		OperationName: kind.String(),
		Variables:     vars,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", kind, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if perr := c.probe(ctx, endpoint); perr != nil {
			return &ConnectivityError{Endpoint: endpoint, Err: err}
		}
		return fmt.Errorf("failed to execute %s: %w", kind, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", kind, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	var gr dto.GraphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		if !ok {
			return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw))}
		}
		return fmt.Errorf("failed to decode %s response: %w", kind, err)
	}
	if len(gr.Errors) > 0 {
		upstream := &UpstreamError{}
		for _, e := range gr.Errors {
			upstream.Messages = append(upstream.Messages, e.Message)
			upstream.Codes = append(upstream.Codes, e.Code())
		}
		return upstream
	}
	if !ok {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw))}
	}

	if out == nil || len(gr.Data) == 0 || string(gr.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", kind, err)
	}
	return nil
}

// Ping checks that the backend answers. The mock backend always does.
func (c *Client) Ping(ctx context.Context) error {
	if c.settings.UseMockData() {
		if c.dispatcher == nil {
			return ErrNoDispatcher
		}
		return nil
	}
	endpoint := c.settings.APIEndpoint()
	if err := c.probe(ctx, endpoint); err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// probe reports whether anything answers HTTP at endpoint. Any status counts.
func (c *Client) probe(ctx context.Context, endpoint string) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return resp.Body.Close()
}

// client returns the HTTP client for one request, attaching the bearer token when
// one is set.
func (c *Client) client() *http.Client {
	token := c.AuthToken()
	if token == "" {
		return c.httpClient
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	hc.Timeout = c.httpClient.Timeout
	return hc
}

// secretVariables are masked wherever they appear in a logged payload.
var secretVariables = map[string]bool{"password": true, "vcode": true}

func redact(vars operations.Variables) map[string]any {
	if vars == nil {
		return nil
	}
	return redactMap(vars)
}

func redactMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch {
		case secretVariables[k]:
			out[k] = "[REDACTED]"
		default:
			if nested, ok := v.(map[string]any); ok {
				out[k] = redactMap(nested)
			} else {
				out[k] = v
			}
		}
	}
	return out
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
