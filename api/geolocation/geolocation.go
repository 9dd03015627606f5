// Package geolocation obtains a one-shot position reading for a client.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"prop-server/models"

	log "github.com/sirupsen/logrus"
)

type Reason string

const (
	PermissionDenied Reason = "PERMISSION_DENIED"
	Unavailable      Reason = "UNAVAILABLE"
	Timeout          Reason = "TIMEOUT"
)

const (
	DEFAULT_TIMEOUT     = 10 * time.Second
	DEFAULT_MAX_AGE     = 5 * time.Minute
	DEFAULT_MAX_RETRIES = 2
	DEFAULT_RETRY_DELAY = 500 * time.Millisecond
)

// LocationError is the only error type a Locator returns.
type LocationError struct {
	Reason Reason
	Err    error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location %s: %v", e.Reason, e.Err)
	}
	return "location " + string(e.Reason)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the Reason from err, or "" when err is not a LocationError.
func ReasonOf(err error) Reason {
	var le *LocationError
	if errors.As(err, &le) {
		return le.Reason
	}
	return ""
}

type clientIPKey struct{}

// WithClientIP attaches the address of the client a reading is taken for.
// IPLocator substitutes it for an "{ip}" placeholder in its URL.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// Locator produces the current position of the caller.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// IPLocator resolves a position from an IP geolocation endpoint answering
// {"latitude": .., "longitude": ..}.
type IPLocator struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
	maxAge     time.Duration
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	last     *models.Coordinate
	lastTime time.Time
}

type Option func(*IPLocator)

func WithTimeout(timeout time.Duration) Option {
	return func(l *IPLocator) {
		l.timeout = timeout
	}
}

// WithMaxAge sets how old a previous reading may be and still be reused.
func WithMaxAge(maxAge time.Duration) Option {
	return func(l *IPLocator) {
		l.maxAge = maxAge
	}
}

func WithMaxRetries(maxRetries int) Option {
	return func(l *IPLocator) {
		l.maxRetries = maxRetries
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(l *IPLocator) {
		l.retryDelay = delay
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(l *IPLocator) {
		l.httpClient = c
	}
}

func NewIPLocator(url string, opts ...Option) *IPLocator {
	l := &IPLocator{
		httpClient: &http.Client{},
		url:        url,
		timeout:    DEFAULT_TIMEOUT,
		maxAge:     DEFAULT_MAX_AGE,
		maxRetries: DEFAULT_MAX_RETRIES,
		retryDelay: DEFAULT_RETRY_DELAY,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns a cached reading younger than the max age, or asks the
// endpoint within the configured timeout.
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	l.mu.Lock()
	if l.last != nil && l.now().Sub(l.lastTime) <= l.maxAge {
		c := *l.last
		l.mu.Unlock()
		log.Debugf("[IPLocator] Reusing reading from %s", l.lastTime.Format(time.RFC3339))
		return c, nil
	}
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			delay := l.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[IPLocator] Retrying location request (attempt %d/%d) after %v", attempt+1, l.maxRetries+1, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return models.Coordinate{}, &LocationError{Reason: Timeout, Err: ctx.Err()}
			}
		}

		c, retriable, err := l.locateOnce(ctx)
		if err == nil {
			l.mu.Lock()
			l.last = &c
			l.lastTime = l.now()
			l.mu.Unlock()
			return c, nil
		}
		lastErr = err
		if !retriable {
			break
		}
	}
	log.Printf("[IPLocator] Could not locate: %v", lastErr)
	return models.Coordinate{}, lastErr
}

func (l *IPLocator) locateOnce(ctx context.Context) (models.Coordinate, bool, error) {
	target := l.url
	if ip := ClientIP(ctx); ip != "" {
		target = strings.ReplaceAll(target, "{ip}", ip)
	} else {
		target = strings.ReplaceAll(target, "{ip}/", "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.Coordinate{}, false, &LocationError{Reason: Unavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return models.Coordinate{}, false, &LocationError{Reason: Timeout, Err: err}
		}
		return models.Coordinate{}, true, &LocationError{Reason: Unavailable, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return models.Coordinate{}, false, &LocationError{Reason: PermissionDenied, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		retriable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return models.Coordinate{}, retriable, &LocationError{Reason: Unavailable, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return models.Coordinate{}, false, &LocationError{Reason: Unavailable, Err: fmt.Errorf("unexpected content-type: %s", contentType)}
	}

	var c models.Coordinate
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return models.Coordinate{}, false, &LocationError{Reason: Unavailable, Err: fmt.Errorf("failed to parse location: %w", err)}
	}
	if !c.Valid() {
		return models.Coordinate{}, false, &LocationError{Reason: Unavailable, Err: fmt.Errorf("coordinate out of range: %s", c)}
	}
	return c, false, nil
}

// StaticLocator always answers with a fixed coordinate, or with Err when set.
type StaticLocator struct {
	Coordinate models.Coordinate
	Err        error
}

func (s *StaticLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	if s.Err != nil {
		return models.Coordinate{}, s.Err
	}
	return s.Coordinate, nil
}
