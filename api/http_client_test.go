package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Request_Success(t *testing.T) {
	// Mock server setup
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if r.Header.Get("X-Extra") != "yes" {
			t.Errorf("Expected X-Extra header to be forwarded")
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "GET", "/test-endpoint", map[string]string{"X-Extra": "yes"}, nil, &response)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "success", response["message"])
}

func TestHTTPClient_Request_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Email already exists"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "POST", "/test-endpoint", nil, map[string]string{"key": "value"}, &response)

	// Assert
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ServerFailure, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Email already exists")
	assert.Equal(t, "unexpected status code: 400 Bad Request", apiErr.Err.Error())
	assert.True(t, IsServerFailure(err))
	assert.False(t, IsNetworkFailure(err))
}

func TestHTTPClient_Request_HTMLBodyOnSuccessStatus(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<!DOCTYPE html><html><body>Whitelabel Error Page</body></html>"))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	err := client.Request(context.Background(), "GET", "/properties", nil, nil, &response)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ServerFailure, apiErr.Kind)
	assert.True(t, apiErr.HTML)
}

func TestHTTPClient_Request_MalformedJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"invalid_json`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	err := client.Request(context.Background(), "GET", "/properties", nil, nil, &response)

	assert.True(t, IsServerFailure(err))
}

func TestHTTPClient_Request_NetworkFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := mockServer.URL
	mockServer.Close()

	client := NewHTTPClient(url)

	err := client.Request(context.Background(), "GET", "/properties", nil, nil, nil)

	assert.True(t, IsNetworkFailure(err))
}

func TestHTTPClient_Request_EmptyBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	response := map[string]string{"untouched": "yes"}

	err := client.Request(context.Background(), "POST", "/inquiries", nil, map[string]string{"a": "b"}, &response)

	require.NoError(t, err)
	assert.Equal(t, "yes", response["untouched"])
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"<!DOCTYPE html><html></html>", true},
		{"  <html><body>oops</body></html>", true},
		{"<HTML>", true},
		{"Whitelabel Error Page", true},
		{`{"ok":true}`, false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHTML([]byte(tt.body)), "IsHTML(%q)", tt.body)
	}
}

func TestHTTPClient_PostForResult(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantHTML    bool
		wantSuccess bool
		wantMessage string
	}{
		{name: "envelope success", status: 200, body: `{"success":true,"message":"saved"}`, wantSuccess: true, wantMessage: "saved"},
		{name: "envelope failure", status: 200, body: `{"success":false,"message":"duplicate"}`, wantSuccess: false, wantMessage: "duplicate"},
		{name: "plain object", status: 201, body: `{"id":7}`, wantSuccess: true},
		{name: "empty body", status: 201, body: ``, wantSuccess: true},
		{name: "invalid json", status: 200, body: `ok`, wantErr: true},
		{name: "html body", status: 200, body: `<html>boom</html>`, wantErr: true, wantHTML: true},
		{name: "server error", status: 500, body: `{"message":"boom"}`, wantErr: true},
		{name: "truncated json", status: 201, body: `{"success":tr`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewHTTPClient(srv.URL)
			result, err := client.PostForResult(context.Background(), "/inquiries", map[string]string{"a": "b"})

			if tt.wantErr {
				require.Error(t, err)
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, ServerFailure, apiErr.Kind)
				assert.Equal(t, tt.wantHTML, apiErr.HTML)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}
