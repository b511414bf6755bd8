package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go_chat_client/models"
	"go_chat_client/pkg/logging"
)

const (
	sessionPath  = "/api/session"
	chatPath     = "/api/chat"
	feedbackPath = "/api/feedback"
	healthPath   = "/api/health"
)

// ChatClient talks to the book chat backend. It keeps no state besides its
// configuration and is safe for concurrent use.
type ChatClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

type ChatClientOption func(*ChatClient)

// WithHTTPClient swaps the transport. The default client has no timeout;
// callers bound calls through ctx.
func WithHTTPClient(client *http.Client) ChatClientOption {
	return func(c *ChatClient) {
		c.client = client
	}
}

func WithLogger(logger *slog.Logger) ChatClientOption {
	return func(c *ChatClient) {
		c.logger = logger
	}
}

func NewChatClient(baseURL string, opts ...ChatClientOption) *ChatClient {
	c := &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logging.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChatClient) BaseURL() string {
	return c.baseURL
}

// CreateSession opens a backend session. An empty userIdentifier is left out
// of the request body.
func (c *ChatClient) CreateSession(ctx context.Context, userIdentifier string) (*models.SessionCreateResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, sessionPath, models.SessionCreateRequest{UserIdentifier: userIdentifier})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, mapStatus(resp, nil, genericError("create session"))
	}
	var out models.SessionCreateResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendQuery asks a question. 429 and 400 answers come back as
// ErrRateLimited and ErrInvalidRequest.
func (c *ChatClient) SendQuery(ctx context.Context, req models.ChatQueryRequest) (*models.ChatResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, chatPath, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, mapStatus(resp, chatRules, genericError("send query"))
	}
	var out models.ChatResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ChatClient) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) error {
	resp, err := c.do(ctx, http.MethodPost, feedbackPath, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return mapStatus(resp, feedbackRules, genericError("submit feedback"))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *ChatClient) HealthCheck(ctx context.Context) (*models.HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, mapStatus(resp, nil, healthError)
	}
	var out models.HealthResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues exactly one request. The caller closes the body.
func (c *ChatClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("fail calling backend", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)
	return resp, nil
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func decode(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
