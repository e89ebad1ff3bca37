// Package heyvr uploads game builds to the heyVR developer API.
package heyvr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEndpoint receives build uploads.
const DefaultEndpoint = "https://heyvr.io/api/developer/game/upload-build"

// Multipart form field names.
const (
	FieldGameSlug   = "game_slug"
	FieldGameFile   = "game_file"
	FieldVersion    = "version"
	FieldSDKVersion = "sdk_version"
)

// RequestIDHeader carries the per-run id on every request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Build is one upload.
type Build struct {
	GameSlug string
	// Version is the increment keyword: major, minor or patch.
	Version    string
	SDKVersion string
	FileName   string
	File       io.Reader
}

// Result is a successful upload.
type Result struct {
	StatusCode int
	Message    string
	RequestID  string
	Duration   time.Duration
}

// APIError is returned for any response other than 200 OK.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("upload rejected (HTTP %d): %s", e.StatusCode, msg)
}

// Client talks to the upload endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	requestID  string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestID fixes the request id instead of generating one.
func WithRequestID(id string) Option {
	return func(c *Client) { c.requestID = id }
}

// NewClient creates a client authenticating with the bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.requestID == "" {
		c.requestID = uuid.NewString()
	}
	return c
}

// Endpoint returns the upload URL.
func (c *Client) Endpoint() string { return c.endpoint }

// RequestID returns the id sent with every request.
func (c *Client) RequestID() string { return c.requestID }

// Upload sends the build in one multipart POST. It is never retried.
func (c *Client) Upload(ctx context.Context, b Build) (*Result, error) {
	body, contentType, err := encodeForm(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, c.requestID)

	c.logger.Info("uploading build",
		"endpoint", c.endpoint,
		"game", b.GameSlug,
		"version", b.Version,
		"sdk_version", b.SDKVersion,
		"bytes", body.Len(),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	elapsed := time.Since(start)

	c.logger.Info("received response", "status", resp.Status, "duration", elapsed)

	msg := responseMessage(respBody)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			RequestID:  c.requestID,
		}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Message:    msg,
		RequestID:  c.requestID,
		Duration:   elapsed,
	}, nil
}

func encodeForm(b Build) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{FieldGameSlug, b.GameSlug},
		{FieldVersion, b.Version},
		{FieldSDKVersion, b.SDKVersion},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	name := b.FileName
	if name == "" {
		name = b.GameSlug + ".zip"
	}
	fw, err := mw.CreateFormFile(FieldGameFile, name)
	if err != nil {
		return nil, "", err
	}
	if b.File != nil {
		if _, err := io.Copy(fw, b.File); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return body, mw.FormDataContentType(), nil
}

// responseMessage extracts a human readable message: the JSON "message" or
// "error" field when present, else the trimmed body.
func responseMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
