// Package client is the typed HTTP client for the TalentFlow API. It is
// the single choke point for network calls: timeouts, JSON negotiation
// and error normalization live here, so callers only ever see typed
// results or an *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/talentflow/talentflow/internal/logger"
)

const defaultTimeout = 30 * time.Second

// Response is the normalized outcome of a successful request.
type Response struct {
	Data    json.RawMessage
	Status  int
	Message string
	Success bool
}

// Client talks to the API, real or simulated. Swapping between the two is
// a transport choice; nothing else changes.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Requests that exceed it fail
// with an APIError of status 408.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport replaces the underlying round tripper. Passing a
// simulator transport here keeps every request in-process.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpc.Transport = rt }
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		httpc:   &http.Client{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

func (c *Client) delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes one request. Every failure path collapses into *APIError:
// deadline exceeded becomes 408, transport failures become status 0 with
// the network message, and non-2xx statuses carry the server's envelope
// message resolved through the status table.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("api request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &APIError{Status: http.StatusRequestTimeout, Message: MsgTimeout}
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Debug().Err(err).Str("url", u).Msg("transport failure")
		return nil, &APIError{Message: MsgNetwork, Response: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: MsgNetwork, Response: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:   resp.StatusCode,
			Message:  messageFor(resp.StatusCode, envelopeMessage(resp, raw)),
			Response: string(raw),
		}
	}

	out := &Response{Status: resp.StatusCode, Success: true}
	if isJSON(resp) {
		out.Data = raw
	} else {
		// non-JSON bodies (plain text, file tokens) still round-trip
		out.Data, _ = json.Marshal(string(raw))
		out.Message = string(raw)
	}
	return out, nil
}

// uploadFile posts a multipart body. The content type is set from the
// multipart writer, never by hand, so the boundary always matches.
func (c *Client) uploadFile(ctx context.Context, path, fieldName, fileName string, contents io.Reader) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &APIError{Status: http.StatusRequestTimeout, Message: MsgTimeout}
		}
		return nil, &APIError{Message: MsgNetwork, Response: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: MsgNetwork, Response: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:   resp.StatusCode,
			Message:  messageFor(resp.StatusCode, envelopeMessage(resp, raw)),
			Response: string(raw),
		}
	}
	return &Response{Data: raw, Status: resp.StatusCode, Success: true}, nil
}

func isJSON(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}

// envelopeMessage pulls the message out of the server's error envelope,
// if the body is one.
func envelopeMessage(resp *http.Response, raw []byte) string {
	if !isJSON(resp) {
		return strings.TrimSpace(string(raw))
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// decodeInto unmarshals a response's data into T.
func decodeInto[T any](resp *Response) (T, error) {
	var out T
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
