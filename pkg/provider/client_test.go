package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matchday-lens/core/internal/config"
)

func newTestClient(url string) *Client {
	cfg := &config.Config{}
	cfg.Provider.BaseURL = url
	cfg.Provider.APIKey = "test-key"
	cfg.Provider.TimeoutSeconds = 5
	return NewClient(cfg, nil)
}

func TestDispatchSendsIntentEnvelope(t *testing.T) {
	var got dispatchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": {"total": []}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payload, err := client.Dispatch(context.Background(), IntentLeagueTable, map[string]any{"leagueId": "39"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Intent != IntentLeagueTable {
		t.Errorf("expected intent %q, got %q", IntentLeagueTable, got.Intent)
	}
	if got.Args["leagueId"] != "39" {
		t.Errorf("expected leagueId arg, got %v", got.Args)
	}

	// The result wrapper must survive untouched for the extraction layer.
	obj, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", payload)
	}
	if _, ok := obj["result"]; !ok {
		t.Error("expected result envelope to be preserved")
	}
}

func TestDispatchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Dispatch(context.Background(), IntentEventsList, nil)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T", err)
	}
	if netErr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", netErr.Status)
	}
	if netErr.Intent != IntentEventsList {
		t.Errorf("expected intent %q, got %q", IntentEventsList, netErr.Intent)
	}
}

func TestDispatchProviderErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "invalid league id"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Dispatch(context.Background(), IntentLeagueTable, nil)
	if err == nil {
		t.Fatal("expected error for provider error envelope")
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T", err)
	}
	if netErr.Message != "invalid league id" {
		t.Errorf("unexpected message %q", netErr.Message)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 5; i++ {
		if _, err := client.Dispatch(context.Background(), IntentOddsLive, nil); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	// Breaker is open now; the next call must fail without reaching upstream.
	_, err := client.Dispatch(context.Background(), IntentOddsLive, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if netErr.Status != 0 {
		t.Errorf("expected breaker error without HTTP status, got %d", netErr.Status)
	}
}
