package paystack

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

// DefaultBaseURL is the production Paystack API endpoint
const DefaultBaseURL = "https://api.paystack.co"

// Client is a Paystack API client. All calls are blocking and
// single-attempt with a fixed request timeout; failures are reported to
// the caller, never retried.
type Client struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

// NewClient creates a new Paystack API client
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// TransactionData is the transaction object Paystack returns from the
// verify endpoint. Raw keeps the full payload for the audit trail.
type TransactionData struct {
	Status    string                 `json:"status"`
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Channel   string                 `json:"channel"`
	PaidAt    string                 `json:"paid_at"`
	Raw       map[string]interface{} `json:"-"`
}

// InitializeRequest is the payload for starting a checkout session
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"` // minor units
	Reference   string `json:"reference"`
	Currency    string `json:"currency,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}

// InitializeData is the session Paystack opens for a checkout attempt
type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// VerifyTransaction calls GET /transaction/verify/:reference and returns
// the gateway's view of the transaction. A non-success gateway status is
// not an error; the caller inspects TransactionData.Status.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*TransactionData, error) {
	endpoint := c.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack verify returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("paystack verify response: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", envelope.Message)
	}

	return decodeTransactionData(envelope.Data)
}

// InitializeTransaction calls POST /transaction/initialize and opens a
// hosted checkout session scoped to the given reference and amount.
func (c *Client) InitializeTransaction(ctx context.Context, init InitializeRequest) (*InitializeData, error) {
	payload, err := json.Marshal(init)
	if err != nil {
		return nil, err
	}

	endpoint := c.BaseURL + "/transaction/initialize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack initialize returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("paystack initialize response: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", envelope.Message)
	}

	var data InitializeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// decodeTransactionData unmarshals the data payload twice, once into the
// typed struct and once into a map so the raw payload can be persisted
// alongside the stored transaction.
func decodeTransactionData(raw json.RawMessage) (*TransactionData, error) {
	var data TransactionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &data.Raw); err != nil {
		return nil, err
	}
	return &data, nil
}
