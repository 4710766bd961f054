// Package provider talks to the upstream sports-data gateway: a single
// intent-dispatch endpoint that accepts {intent, args} and returns untyped
// JSON. Nothing here assumes anything about a response beyond "object or
// array"; shaping the data is the normalization layer's job.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/matchday-lens/core/internal/config"
	"github.com/matchday-lens/core/pkg/logger"
)

// NetworkError is the only error class this package surfaces: transport
// failures, non-2xx statuses, an open circuit breaker, or a provider-level
// error envelope. Handlers render it as a section-scoped message; it is
// never fatal to the application.
type NetworkError struct {
	Intent  string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s failed: %v", e.Intent, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("provider %s returned status %d: %s", e.Intent, e.Status, e.Message)
	}
	return fmt.Sprintf("provider %s failed: %s", e.Intent, e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client dispatches intents to the provider gateway. Calls run through a
// circuit breaker so a struggling upstream degrades sections quickly instead
// of stacking slow requests.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewClient creates a gateway client from config.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "provider-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL: cfg.Provider.BaseURL,
		apiKey:  cfg.Provider.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  log,
	}
}

type dispatchRequest struct {
	Intent string         `json:"intent"`
	Args   map[string]any `json:"args,omitempty"`
}

// Dispatch sends one intent and returns the decoded payload. The provider
// wraps payloads inconsistently; the body is returned as decoded, untyped
// JSON and envelope handling is left to the extraction layer.
func (c *Client) Dispatch(ctx context.Context, intent string, args map[string]any) (any, error) {
	start := time.Now()

	payload, err := c.breaker.Execute(func() (any, error) {
		return c.post(ctx, intent, args)
	})

	if c.logger != nil {
		c.logger.LogProviderCall(intent, time.Since(start), err)
	}
	if err != nil {
		if netErr, ok := err.(*NetworkError); ok {
			return nil, netErr
		}
		return nil, &NetworkError{Intent: intent, Err: err}
	}
	return payload, nil
}

func (c *Client) post(ctx context.Context, intent string, args map[string]any) (any, error) {
	body, err := json.Marshal(dispatchRequest{Intent: intent, Args: args})
	if err != nil {
		return nil, &NetworkError{Intent: intent, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Intent: intent, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Intent: intent, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Intent: intent, Status: resp.StatusCode, Message: resp.Status}
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &NetworkError{Intent: intent, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if err := checkEnvelope(intent, decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// checkEnvelope surfaces a provider-level {error: "..."} response as a
// NetworkError. The data/result wrappers are left in place: locating the
// payload inside them is the extraction layer's job, not the transport's.
func checkEnvelope(intent string, decoded any) error {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return &NetworkError{Intent: intent, Message: msg}
	}
	return nil
}
