package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/up2ustore/bundles-backend/internal/models"
)

// BackendClient submits settled transactions to the persistence
// service's HTTP API. Single attempt, fixed timeout, no retries.
type BackendClient struct {
	BaseURL string
	client  *http.Client
}

// NewBackendClient creates a new BackendClient
func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts the transaction to POST /api/transactions
func (c *BackendClient) Submit(ctx context.Context, req models.CreateTransactionRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/transactions", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
