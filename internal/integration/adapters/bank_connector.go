package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/adapter"
)

const (
	defaultBankTimeout = 20 * time.Second
	exchangePath       = "/item/public_token/exchange"
)

// BankClient exchanges public link tokens with the bank aggregator.
type BankClient struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

// Ensure BankClient implements adapter.BankConnector
var _ adapter.BankConnector = (*BankClient)(nil)

// NewBankClient creates a new bank aggregator client.
func NewBankClient(cfg *config.BankConfig) *BankClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBankTimeout
	}
	return &BankClient{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// IsConfigured reports whether the aggregator URL and credentials are set.
func (c *BankClient) IsConfigured() bool {
	return c.baseURL != "" && c.clientID != "" && c.clientSecret != ""
}

type exchangeRequest struct {
	ClientID      string `json:"client_id"`
	Secret        string `json:"secret"`
	PublicToken   string `json:"public_token"`
	InstitutionID string `json:"institution_id"`
	ClientUserID  string `json:"client_user_id"`
}

type exchangeResponse struct {
	ItemID          string `json:"item_id"`
	InstitutionName string `json:"institution_name"`
	Status          string `json:"status"`
}

// bankErrorResponse is the error body returned by the aggregator.
type bankErrorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// Connect exchanges the public token for a long-lived item.
func (c *BankClient) Connect(ctx context.Context, request adapter.BankConnectRequest) (*adapter.BankConnectResult, error) {
	payload, err := json.Marshal(exchangeRequest{
		ClientID:      c.clientID,
		Secret:        c.clientSecret,
		PublicToken:   request.PublicToken,
		InstitutionID: request.InstitutionID,
		ClientUserID:  request.UserID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+exchangePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp bankErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.ErrorCode == "" {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("API error (status %d): %s - %s", resp.StatusCode, errResp.ErrorCode, errResp.ErrorMessage)
	}

	var exchange exchangeResponse
	if err := json.Unmarshal(body, &exchange); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &adapter.BankConnectResult{
		ItemID:          exchange.ItemID,
		InstitutionName: exchange.InstitutionName,
		Status:          exchange.Status,
	}, nil
}
