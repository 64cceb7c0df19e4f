package models

import "github.com/shopspring/decimal"

// Shapes of the external fulfillment provider API.

type ProviderOrderRequest struct {
	PlayerID  string `json:"playerId"`
	ZoneID    string `json:"zoneId"`
	ProductID string `json:"productId"`
	Currency  string `json:"currency"`
}

type ProviderOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type ProviderValidateRequest struct {
	PlayerID string `json:"playerId"`
	ZoneID   string `json:"zoneId"`
}

type ProviderValidateResponse struct {
	Success  bool   `json:"success"`
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ProviderProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type ProviderProductsResponse struct {
	Success bool              `json:"success"`
	Data    []ProviderProduct `json:"data"`
}

// FulfillResult is what the orchestrator sees after a fulfillment attempt.
type FulfillResult struct {
	Success     bool
	ProviderRef string
	Message     string
}

// Identifier verification is advisory. VerifyUnknown means "cannot confirm" and
// must never be treated as invalid.
const (
	VerifyValid   = "valid"
	VerifyInvalid = "invalid"
	VerifyUnknown = "unknown"
)

type VerifyIDRequest struct {
	AccountID string `json:"accountId"`
	ZoneID    string `json:"zoneId"`
}

type VerifyIDResponse struct {
	Valid       string `json:"valid"`
	DisplayName string `json:"displayName,omitempty"`
}
