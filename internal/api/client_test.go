package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 0
	return New(cfg, NoopObserver{})
}

func TestClient_AuthHeaderSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Token = "secret-token"
	client := New(cfg, NoopObserver{})

	_, err := client.ListScenarios(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_NotFoundMapped(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetScenario(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_UnauthorizedMapped(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListScenarios(context.Background(), false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ServerErrorCarriesMessage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "scenario is locked"})
	}))

	_, err := client.GetScenario(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario is locked")
	assert.Contains(t, err.Error(), "500")
}

func TestClient_UnavailableServer(t *testing.T) {
	cfg := DefaultConfig()
	// Reserved port that nothing listens on.
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.MaxRetries = 0
	client := New(cfg, NoopObserver{})

	_, err := client.ListScenarios(context.Background(), false)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_GetRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 1
	client := New(cfg, NoopObserver{})

	_, err := client.ListScenarios(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 3
	client := New(cfg, NoopObserver{})

	_, err := client.GetScenario(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ObserverSeesOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	var events []CallEvent
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 0
	client := New(cfg, observerFunc(func(e CallEvent) { events = append(events, e) }))

	_, err := client.ListScenarios(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, http.MethodGet, events[0].Method)
	assert.Equal(t, "/api/scenarios", events[0].Path)
	assert.True(t, events[0].Success)
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CAPACINATOR_URL", "http://capacity.internal:8080")
	t.Setenv("CAPACINATOR_TOKEN", "tok")
	t.Setenv("CAPACINATOR_TIMEOUT_MS", "2500")
	t.Setenv("CAPACINATOR_MAX_RETRIES", "2")

	cfg := LoadConfig()
	assert.Equal(t, "http://capacity.internal:8080", cfg.BaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CAPACINATOR_TIMEOUT_MS", "not-a-number")
	t.Setenv("CAPACINATOR_MAX_RETRIES", "-3")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultConfig().MaxRetries, cfg.MaxRetries)
}
