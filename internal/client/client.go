// Package client is the Go client for the goals API. The editor sits on
// top of it; the CLI uses it directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stafflens/goalboard/internal/models"
)

const defaultRequestTimeout = 30 * time.Second

// APIError is a non-2xx response from the goals API, carrying the server's
// error message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to the goals API over HTTP with bearer-token auth.
// Transient transport failures and gateway errors are retried with
// exponential backoff; 4xx responses are never retried.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxTries   uint
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMaxTries overrides the retry budget per request.
func WithMaxTries(tries uint) Option {
	return func(c *Client) {
		c.maxTries = tries
	}
}

// New creates a client for the API at baseURL, authenticating with token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		maxTries:   3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// goalsResponse is the wire shape of both goals operations.
type goalsResponse struct {
	Success bool           `json:"success"`
	Goals   models.GoalSet `json:"goals"`
	Error   string         `json:"error"`
}

// FetchGoals retrieves the organization's stored goal set. A new tenant
// yields an empty set, not an error.
func (c *Client) FetchGoals(ctx context.Context) (models.GoalSet, error) {
	var resp goalsResponse
	if err := c.do(ctx, http.MethodGet, "/api/goals", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Goals == nil {
		resp.Goals = models.GoalSet{}
	}
	return resp.Goals, nil
}

// SaveGoals submits a full goal set, replacing the stored record, and
// returns the mapping as stored.
func (c *Client) SaveGoals(ctx context.Context, goals models.GoalSet) (models.GoalSet, error) {
	body, err := json.Marshal(goals)
	if err != nil {
		return nil, fmt.Errorf("failed to encode goals: %w", err)
	}

	var resp goalsResponse
	if err := c.do(ctx, http.MethodPost, "/api/goals", body, &resp); err != nil {
		return nil, err
	}
	if resp.Goals == nil {
		resp.Goals = models.GoalSet{}
	}
	return resp.Goals, nil
}

// OrganizationView is the wire shape of the caller's organization.
type OrganizationView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Organization retrieves the caller's resolved organization.
func (c *Client) Organization(ctx context.Context) (*OrganizationView, error) {
	var resp struct {
		Organization OrganizationView `json:"organization"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/org", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Organization, nil
}

// do runs one API round trip with retries, decoding the response into out.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport failure, retryable
			return struct{}{}, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return struct{}{}, err
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode}
			var errBody struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(data, &errBody); err == nil {
				apiErr.Message = errBody.Error
			}

			// Gateway errors are worth another try. Everything else is
			// terminal: a 4xx will not change on retry.
			switch resp.StatusCode {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return struct{}{}, apiErr
			default:
				return struct{}{}, backoff.Permanent(apiErr)
			}
		}

		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return struct{}{}, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}

		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}
