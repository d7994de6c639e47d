package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) Config {
	return Config{
		URL:         url,
		APIKey:      "test-key",
		From:        "Greetly",
		To:          "+12025550123",
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		BackoffBase: 5 * time.Millisecond,
	}
}

func TestClient_Deliver(t *testing.T) {
	t.Run("Should succeed on the first attempt and carry the provider id", func(t *testing.T) {
		var gotAuth, gotContentType string
		var gotBody sendRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"messageId":"msg-42","status":"queued"}`))
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "happy birthday")

		assert.True(t, outcome.Success)
		assert.Equal(t, "msg-42", outcome.MessageID)
		assert.Equal(t, 1, outcome.Attempts)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, sendRequest{To: "+12025550123", From: "Greetly", Message: "happy birthday"}, gotBody)
	})

	t.Run("Should retry twice then succeed", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"message_id":"msg-7"}`))
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")

		assert.True(t, outcome.Success)
		assert.Equal(t, 3, outcome.Attempts)
		assert.Equal(t, "msg-7", outcome.MessageID)
	})

	t.Run("Should exhaust attempts with exponential waits on persistent failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		start := time.Now()
		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		elapsed := time.Since(start)

		assert.False(t, outcome.Success)
		assert.Equal(t, 3, outcome.Attempts)
		assert.Equal(t, int32(3), calls.Load())
		assert.Contains(t, outcome.ErrorDescription, "gateway returned status 500")
		// Waits of base and 2*base between the three attempts.
		assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
	})

	t.Run("Should classify authentication rejections", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.ErrorDescription, "authentication rejected")
	})

	t.Run("Should classify malformed-request rejections", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		assert.Contains(t, outcome.ErrorDescription, "gateway rejected request")
	})

	t.Run("Should classify transport failures and still retry", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		assert.False(t, outcome.Success)
		assert.Equal(t, 3, outcome.Attempts)
		assert.Contains(t, outcome.ErrorDescription, "request failed")
	})

	t.Run("Should fall back to a sentinel message id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"sent"}`))
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		assert.True(t, outcome.Success)
		assert.Equal(t, "unknown", outcome.MessageID)
	})

	t.Run("Should never leak the bearer credential into the outcome", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad key"}`))
		}))
		defer srv.Close()

		outcome := NewClient(testConfig(srv.URL)).Deliver(context.Background(), "hi")
		assert.NotContains(t, outcome.ErrorDescription, "test-key")
	})

	t.Run("Should stamp the outcome with the injected clock", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"x"}`))
		}))
		defer srv.Close()

		fixed := time.Date(2026, time.August, 23, 8, 0, 0, 0, time.UTC)
		c := NewClient(testConfig(srv.URL))
		c.now = func() time.Time { return fixed }

		outcome := c.Deliver(context.Background(), "hi")
		assert.Equal(t, fixed, outcome.Timestamp)
	})
}
