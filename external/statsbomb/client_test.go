package statsbomb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pitchmart/internal/platform/resilience"
)

func TestEventsRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"a1"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		RawDir:     t.TempDir(),
		Timeout:    2 * time.Second,
		MaxRetries: 2,
	})

	raw, err := client.Events(context.Background(), 42, false)
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if string(raw) != `[{"id":"a1"}]` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestEventsServesFromRawCache(t *testing.T) {
	rawDir := t.TempDir()
	cached := filepath.Join(rawDir, "events", "42.json")
	if err := os.MkdirAll(filepath.Dir(cached), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cached, []byte(`[{"id":"cached"}]`), 0o644); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("cached fetch must not hit the network")
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, RawDir: rawDir, Timeout: time.Second})

	raw, err := client.Events(context.Background(), 42, false)
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if string(raw) != `[{"id":"cached"}]` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestFetchWritesRawCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	rawDir := t.TempDir()
	client := NewClient(ClientConfig{BaseURL: server.URL, RawDir: rawDir, Timeout: time.Second})

	if _, err := client.Matches(context.Background(), 43, 106, false); err != nil {
		t.Fatalf("fetch matches: %v", err)
	}

	cached, err := os.ReadFile(filepath.Join(rawDir, "matches", "43", "106.json"))
	if err != nil {
		t.Fatalf("expected raw cache file: %v", err)
	}
	if string(cached) != `[]` {
		t.Fatalf("unexpected cache contents: %s", cached)
	}
}

func TestNonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.Events(context.Background(), 1, false); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("404 must not retry, got %d attempts", calls.Load())
	}
}
