package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/config"
)

func TestHTTPClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(&config.ClientConfig{URL: srv.URL + "/", Timeout: time.Second})
	resp, err := c.Health(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestHTTPClient_ExpandRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "k|expand: v", string(body))
		_, _ = w.Write([]byte(`{"k":"v"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(&config.ClientConfig{URL: srv.URL, Timeout: time.Second, Retries: 1, Format: "json"})
	c.backoff = time.Millisecond
	body, err := c.Expand(t.Context(), []byte("k|expand: v"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, body)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_ExpandFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no expand tags found in document", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewHTTPClient(&config.ClientConfig{URL: srv.URL, Timeout: time.Second})
	_, err := c.Expand(t.Context(), []byte("a: b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "no expand tags found")
}

func TestHTTPClient_RetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int32
	}{
		{name: "bad request is not retried", status: http.StatusBadRequest, wantCalls: 1},
		{name: "unprocessable is not retried", status: http.StatusUnprocessableEntity, wantCalls: 1},
		{name: "server error is retried", status: http.StatusBadGateway, wantCalls: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				http.Error(w, http.StatusText(tt.status), tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(&config.ClientConfig{URL: srv.URL, Timeout: time.Second, Retries: 3})
			c.backoff = time.Millisecond
			_, err := c.Expand(t.Context(), []byte("a|expand: b"))

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestHTTPClient_RetryStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(&config.ClientConfig{URL: srv.URL, Timeout: time.Second, Retries: 5})
	c.backoff = time.Hour
	_, err := c.Expand(ctx, []byte("a|expand: b"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}
