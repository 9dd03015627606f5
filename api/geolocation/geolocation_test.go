package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/models"
)

func jsonServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestIPLocator_Success(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"latitude":17.385,"longitude":78.4867,"city":"Hyderabad"}`, nil)
	defer srv.Close()

	c, err := NewIPLocator(srv.URL).Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: 17.385, Longitude: 78.4867}, c)
}

func TestIPLocator_ReusesReadingWithinMaxAge(t *testing.T) {
	var hits int32
	srv := jsonServer(t, http.StatusOK, `{"latitude":1,"longitude":2}`, &hits)
	defer srv.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	locator := NewIPLocator(srv.URL, WithMaxAge(5*time.Minute))
	locator.now = func() time.Time { return now }

	_, err := locator.Locate(context.Background())
	require.NoError(t, err)
	now = now.Add(4 * time.Minute)
	_, err = locator.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	now = now.Add(2 * time.Minute)
	_, err = locator.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestIPLocator_PermissionDenied(t *testing.T) {
	var hits int32
	srv := jsonServer(t, http.StatusForbidden, `{}`, &hits)
	defer srv.Close()

	_, err := NewIPLocator(srv.URL, WithRetryDelay(time.Millisecond)).Locate(context.Background())

	assert.Equal(t, PermissionDenied, ReasonOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "permission errors are not retried")
}

func TestIPLocator_UnavailableAfterRetries(t *testing.T) {
	var hits int32
	srv := jsonServer(t, http.StatusServiceUnavailable, `{}`, &hits)
	defer srv.Close()

	_, err := NewIPLocator(srv.URL, WithMaxRetries(2), WithRetryDelay(time.Millisecond)).Locate(context.Background())

	assert.Equal(t, Unavailable, ReasonOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestIPLocator_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewIPLocator(srv.URL, WithTimeout(50*time.Millisecond)).Locate(context.Background())

	var le *LocationError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, Timeout, le.Reason)
}

func TestIPLocator_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"html", "text/html", "<html></html>"},
		{"malformed", "application/json", `{"latitude":`},
		{"out of range", "application/json", `{"latitude":123,"longitude":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewIPLocator(srv.URL).Locate(context.Background())

			assert.Equal(t, Unavailable, ReasonOf(err))
		})
	}
}

func TestStaticLocator(t *testing.T) {
	ok := &StaticLocator{Coordinate: models.Coordinate{Latitude: 3, Longitude: 4}}
	c, err := ok.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Latitude)

	denied := &StaticLocator{Err: &LocationError{Reason: PermissionDenied}}
	_, err = denied.Locate(context.Background())
	assert.Equal(t, PermissionDenied, ReasonOf(err))
	assert.Equal(t, "location PERMISSION_DENIED", err.Error())
}

func TestIPLocator_ClientIPPlaceholder(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":1,"longitude":2}`))
	}))
	defer srv.Close()

	_, err := NewIPLocator(srv.URL + "/{ip}/json").Locate(WithClientIP(context.Background(), "203.0.113.9"))
	require.NoError(t, err)
	_, err = NewIPLocator(srv.URL + "/{ip}/json").Locate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/203.0.113.9/json", "/json"}, paths)
}
