// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "prop-server/dev"
	maxErrorBodyLen  = 512
)

// ErrorKind separates transport problems from bad answers.
type ErrorKind int

const (
	// NetworkFailure means the request never produced a readable response.
	NetworkFailure ErrorKind = iota
	// ServerFailure means a response arrived but was non-2xx, HTML or malformed.
	ServerFailure
)

func (k ErrorKind) String() string {
	if k == NetworkFailure {
		return "network failure"
	}
	return "server failure"
}

// Error is returned by every HTTPClient call that fails.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// HTML is set when the server answered with an HTML page instead of JSON.
	HTML bool
	// Body holds the start of the response body, when there was one.
	Body string
	Err  error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetworkFailure reports whether err is a transport-level api.Error.
func IsNetworkFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == NetworkFailure
}

// IsServerFailure reports whether err is a response-level api.Error.
func IsServerFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == ServerFailure
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	// Headers are sent with every request.
	Headers map[string]string
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		Headers: map[string]string{
			"User-Agent": defaultUserAgent,
		},
	}
}

// Request makes an HTTP request to the API and decodes the JSON response.
// An empty 2xx body leaves response untouched.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	resBody, err := c.Do(ctx, method, endpoint, headers, body)
	if err != nil {
		return err
	}

	if response == nil || len(bytes.TrimSpace(resBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(resBody, response); err != nil {
		return &Error{
			Kind: ServerFailure,
			Body: truncate(resBody),
			Err:  fmt.Errorf("failed to decode response from %s: %w", endpoint, err),
		}
	}
	return nil
}

// Do sends the request and returns the raw body of a 2xx, non-HTML response.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}) ([]byte, error) {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	url := c.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	log.Debugf("[HTTPClient] %s %s", method, url)
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, StatusCode: res.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	log.Debugf("[HTTPClient] %s %s -> %d (%d bytes)", method, url, res.StatusCode, len(resBody))

	if IsHTML(resBody) {
		return nil, &Error{
			Kind:       ServerFailure,
			StatusCode: res.StatusCode,
			HTML:       true,
			Body:       truncate(resBody),
			Err:        errors.New("server error (HTML response instead of JSON)"),
		}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &Error{
			Kind:       ServerFailure,
			StatusCode: res.StatusCode,
			Body:       truncate(resBody),
			Err:        errors.New("unexpected status code: " + res.Status),
		}
	}

	return resBody, nil
}

// IsHTML recognizes the error pages some upstream proxies return with a 200.
func IsHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html") ||
		strings.Contains(trimmed, "Whitelabel Error")
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyLen {
		return s[:maxErrorBodyLen]
	}
	return s
}

// PostForResult posts body and reads the repository's success/failure envelope.
// A 2xx answer with an empty or non-JSON body counts as success, since the
// repository has already stored the record by then.
func (c *HTTPClient) PostForResult(ctx context.Context, endpoint string, body interface{}) (*models.WriteResult, error) {
	raw, err := c.Do(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &models.WriteResult{Success: true}, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		log.Warnf("[HTTPClient] POST %s returned an unparseable body", endpoint)
		return nil, &Error{
			Kind: ServerFailure,
			Body: truncate(trimmed),
			Err:  fmt.Errorf("failed to decode response: %w", err),
		}
	}

	result := &models.WriteResult{Success: true}
	if m, ok := decoded.(map[string]interface{}); ok {
		if s, ok := m["success"].(bool); ok {
			result.Success = s
		}
		if msg, ok := m["message"].(string); ok {
			result.Message = msg
		}
		result.Data = m
	}
	return result, nil
}
