package invitesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the invitation service. Administrative calls (invite,
// ledger, sweep) require AdminToken; key lookup, registration and health
// probes do not.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// AdminToken is sent as a bearer token on administrative endpoints.
	AdminToken string
}

// NewClient creates a client for the invitation service.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a typed error decoded from an ErrorResponse body.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("invitesdk: %s (%d): %s", e.Code, e.StatusCode, e.Description)
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	payload any,
	admin bool,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a response body into target, turning non-2xx bodies
// into a typed *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		var er ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			return &APIError{
				StatusCode:  resp.StatusCode,
				Code:        er.Error,
				Description: er.ErrorDescription,
			}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        "unexpected_status",
			Description: strings.TrimSpace(string(raw)),
		}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Invite creates and delivers invitations for each recipient.
func (c *Client) Invite(ctx context.Context, req InviteRequest) (*InviteResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/invitations", req, true)
	if err != nil {
		return nil, err
	}

	var out InviteResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBulkKey creates one key redeemable multiple times.
func (c *Client) CreateBulkKey(ctx context.Context, req BulkKeyRequest) (*KeyResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/bulk", req, true)
	if err != nil {
		return nil, err
	}

	var out KeyResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetKey checks an invitation key. Expired, exhausted and unknown keys come
// back as *APIError with distinct codes.
func (c *Client) GetKey(ctx context.Context, key string) (*KeyResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(key), nil, false)
	if err != nil {
		return nil, err
	}

	var out KeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account through an invitation key. This is the public
// signup call.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/register", req, false)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Remaining reports a user's allocation standing.
func (c *Client) Remaining(ctx context.Context, userID string) (*RemainingResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet,
		"/v1/invitations/remaining/"+url.PathEscape(userID), nil, true)
	if err != nil {
		return nil, err
	}

	var out RemainingResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopOff raises allocations so remaining reaches the target.
func (c *Client) TopOff(ctx context.Context, req TopOffRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/ledger/topoff", req, true)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// Grant raises allocations by a delta.
func (c *Client) Grant(ctx context.Context, req GrantRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/ledger/grant", req, true)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// Sweep removes expired invitation keys immediately.
func (c *Client) Sweep(ctx context.Context) (*SweepResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/admin/sweep", nil, true)
	if err != nil {
		return nil, err
	}

	var out SweepResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil, false)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, false)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
