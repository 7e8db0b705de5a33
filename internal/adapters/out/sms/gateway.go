// Package sms implements ports.SmsSender.
//
// HTTPGateway posts messages to a JSON SMS API. LogSender only logs them and
// is used when no gateway is configured.
package sms

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

	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// GatewayConfig configures HTTPGateway.
type GatewayConfig struct {
	// URL is the full endpoint messages are posted to.
	URL    string
	APIKey string
	// From is the sender id shown to recipients. Optional.
	From string
	// RatePerSecond throttles sends across all goroutines. Zero disables throttling.
	RatePerSecond float64
	// Timeout bounds one request. Zero selects 10s.
	Timeout time.Duration
}

// HTTPGateway sends messages through an HTTP JSON API:
//
//	POST <URL>
//	Authorization: Bearer <APIKey>
//	{"to": "+61400000000", "from": "PODOWL", "body": "..."}
//
// and expects {"id": "<message id>"} back. It is safe for concurrent use.
type HTTPGateway struct {
	session *http.Client
	url     string
	apiKey  string
	from    string
	limiter *rate.Limiter
}

type sendRequest struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Body string `json:"body"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// StatusError is returned for responses with status 400 and above.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sms gateway: status %d: %s", e.Code, e.Body)
}

// NewHTTPGateway validates cfg and builds a gateway client.
func NewHTTPGateway(cfg GatewayConfig) (*HTTPGateway, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("sms gateway url is empty")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("sms gateway api key is empty")
	}
	if cfg.RatePerSecond < 0 {
		return nil, fmt.Errorf("sms gateway rate must not be negative, got %v", cfg.RatePerSecond)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	g := &HTTPGateway{
		session: &http.Client{Timeout: timeout},
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
	}
	if cfg.RatePerSecond > 0 {
		burst := max(1, int(cfg.RatePerSecond))
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return g, nil
}

// Send posts one message and returns the provider message id.
func (g *HTTPGateway) Send(ctx context.Context, phone, text string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("sms gateway: wait for rate limit: %w", err)
		}
	}

	payload, err := json.Marshal(sendRequest{To: phone, From: g.from, Body: text})
	if err != nil {
		return "", fmt.Errorf("sms gateway: encode request: %w", err)
	}

	req, err := g.newRequest(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	resp, err := g.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out sendResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("sms gateway: decode response: %w", err)
	}

	return out.ID, nil
}

func (g *HTTPGateway) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("sms gateway: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (g *HTTPGateway) do(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms gateway: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
