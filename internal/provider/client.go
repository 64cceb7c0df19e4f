package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/models"
	"go.uber.org/zap"
)

const orderCurrency = "INR"

// Client talks to the external top-up provider. All requests carry the x-api-key
// header and run under the configured bounded timeout.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(cfg *config.Config, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.ProviderBaseURL,
		apiKey:  cfg.ProviderAPIKey,
		client:  &http.Client{Timeout: cfg.ProviderRequestTimeout},
		logger:  logger,
	}
}

// Fulfill places a delivery order with the provider. Success is only what the
// provider explicitly reports; it is never inferred from the absence of an error.
func (c *Client) Fulfill(ctx context.Context, productID string, accountID string, zoneID string) (models.FulfillResult, error) {
	c.logger.Infow("placing provider order", "productId", productID, "zoneId", zoneID)

	reqBody := models.ProviderOrderRequest{
		PlayerID:  accountID,
		ZoneID:    zoneID,
		ProductID: productID,
		Currency:  orderCurrency,
	}

	var respBody models.ProviderOrderResponse
	if err := c.post(ctx, "/api-service/order", reqBody, &respBody); err != nil {
		return models.FulfillResult{}, err
	}

	return models.FulfillResult{
		Success:     respBody.Success,
		ProviderRef: respBody.OrderID,
		Message:     respBody.Message,
	}, nil
}

// VerifyPlayer is a best-effort identifier check. Callers must treat an error as
// "cannot confirm", never as invalid.
func (c *Client) VerifyPlayer(ctx context.Context, accountID string, zoneID string) (models.ProviderValidateResponse, error) {
	reqBody := models.ProviderValidateRequest{
		PlayerID: accountID,
		ZoneID:   zoneID,
	}

	var respBody models.ProviderValidateResponse
	if err := c.post(ctx, "/api-service/validate", reqBody, &respBody); err != nil {
		return models.ProviderValidateResponse{}, err
	}

	return respBody, nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]models.ProviderProduct, error) {
	url := c.baseURL + "/api-service/products"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var respBody models.ProviderProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !respBody.Success {
		return nil, fmt.Errorf("provider refused product list")
	}

	return respBody.Data, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody any, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
