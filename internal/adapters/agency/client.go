package agency

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
)

// Client is the typed HTTP client for the travel-agency REST API. It holds
// the bearer token for admin routes (set on login, cleared on logout) and a
// client-side rate limiter. Requests are never retried: every call maps to
// exactly one HTTP round trip.
type Client struct {
	base string
	hc   *http.Client

	rl *rate.Limiter

	mu    sync.RWMutex
	token string
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

func (c *Client) ClearToken() { c.SetToken("") }

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is the single remote-failure shape every endpoint maps onto.
// Fields carries server-side field-keyed validation messages when present.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string

	// remote is set when Message came from the response body rather than
	// the client's own status fallback.
	remote bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agency: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

func (e *APIError) FieldErrors() map[string]string { return e.Fields }

// RemoteMessage is the server-provided message, or "" when the response
// body carried none.
func (e *APIError) RemoteMessage() string {
	if !e.remote {
		return ""
	}
	return e.Message
}

// envelope is the API's uniform response wrapper.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// do performs one request. endpoint is the metrics label (templated path,
// no ids). out, when non-nil, receives the envelope's data payload.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("agency: encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(req, endpoint, out)
}

// roundTrip finishes headers, executes, and maps the response.
func (c *Client) roundTrip(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "atlas-travel/1.0")
	if t := c.bearer(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		observability.ObserveAPI(endpoint, req.Method, 0, time.Since(start))
		return fmt.Errorf("agency: %s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveAPI(endpoint, req.Method, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("agency: decode response: %w", err)
		}
		if len(env.Data) == 0 {
			return errors.New("agency: response has no data")
		}
		return json.Unmarshal(env.Data, out)

	default:
		return apiError(resp)
	}
}

func apiError(resp *http.Response) error {
	e := &APIError{Status: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env envelope
	if json.Unmarshal(b, &env) == nil {
		if env.Message != "" {
			e.Message = env.Message
			e.remote = true
		}
		if len(env.Errors) > 0 {
			e.Fields = env.Errors
		}
	}
	return e
}

func statusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "validation failed"
	default:
		return fmt.Sprintf("server error (%d)", status)
	}
}
