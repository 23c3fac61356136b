// Package courier wraps the SteadFast-style courier HTTP API.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production portal endpoint.
const DefaultBaseURL = "https://portal.packzy.com/api/v1"

const requestTimeout = 10 * time.Second

// Credentials are per-call because the admin can rotate the keys in shop
// settings at any time.
type Credentials struct {
	APIKey    string
	SecretKey string
}

func (c Credentials) Empty() bool {
	return c.APIKey == "" || c.SecretKey == ""
}

type CreateOrderRequest struct {
	Invoice          string `json:"invoice"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	CODAmount        int64  `json:"cod_amount"`
	Note             string `json:"note"`
}

type Consignment struct {
	ID     string
	Status string
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

type createOrderResponse struct {
	Status      int `json:"status"`
	Consignment struct {
		ConsignmentID json.Number `json:"consignment_id"`
		Status        string      `json:"status"`
	} `json:"consignment"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

type statusResponse struct {
	Status         int    `json:"status"`
	DeliveryStatus string `json:"delivery_status"`
	Message        string `json:"message"`
}

// CreateOrder registers a consignment with the courier and returns its id
// and initial status.
func (c *Client) CreateOrder(ctx context.Context, creds Credentials, req CreateOrderRequest) (*Consignment, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(req); err != nil {
		return nil, fmt.Errorf("courier: encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/create_order", &body)
	if err != nil {
		return nil, fmt.Errorf("courier: build request: %w", err)
	}
	c.setHeaders(httpReq, creds)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("courier: create order: %w", err)
	}
	defer resp.Body.Close()

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("courier: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || out.Status != http.StatusOK {
		return nil, fmt.Errorf("courier: create order rejected: %s", apiError(out.Message, out.Errors))
	}

	return &Consignment{
		ID:     out.Consignment.ConsignmentID.String(),
		Status: out.Consignment.Status,
	}, nil
}

// Status fetches the current delivery status for a consignment id.
func (c *Client) Status(ctx context.Context, creds Credentials, consignmentID string) (string, error) {
	url := fmt.Sprintf("%s/status_by_cid/%s", c.BaseURL, consignmentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("courier: build request: %w", err)
	}
	c.setHeaders(httpReq, creds)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("courier: status query: %w", err)
	}
	defer resp.Body.Close()

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("courier: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || out.Status != http.StatusOK {
		return "", fmt.Errorf("courier: status query rejected: %s", apiError(out.Message, nil))
	}

	return out.DeliveryStatus, nil
}

func (c *Client) setHeaders(req *http.Request, creds Credentials) {
	req.Header.Set("api-key", creds.APIKey)
	req.Header.Set("secret-key", creds.SecretKey)
	req.Header.Set("Content-Type", "application/json")
}

func apiError(message string, errs json.RawMessage) string {
	if message != "" {
		return message
	}
	if len(errs) > 0 {
		return string(errs)
	}
	return "unknown error"
}
