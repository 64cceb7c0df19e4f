package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

func (s OrderStatus) String() string {
	return string(s)
}

// Terminal statuses are final: an order is mutated exactly once after PENDING.
const (
	OrderPending          OrderStatus = "PENDING"
	OrderCompleted        OrderStatus = "COMPLETED"
	OrderRejected         OrderStatus = "REJECTED"
	OrderFulfillmentError OrderStatus = "FULFILLMENT_ERROR"
)

type Order struct {
	OrderID          string          `json:"orderId"`
	AccountID        string          `json:"accountId"`
	ZoneID           string          `json:"zoneId"`
	PackID           string          `json:"packId"`
	ClaimedPrice     decimal.Decimal `json:"claimedPrice"`
	PaymentReference string          `json:"paymentReference"`
	SubmitterID      string          `json:"submitterId"`
	Status           OrderStatus     `json:"status"`
	ProviderOrderRef string          `json:"providerOrderRef,omitempty"`
	ErrorDetail      string          `json:"errorDetail,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type SubmitOrderRequest struct {
	AccountID        string          `json:"accountId"`
	ZoneID           string          `json:"zoneId"`
	PackID           string          `json:"packId"`
	ClaimedPrice     decimal.Decimal `json:"claimedPrice"`
	PaymentReference string          `json:"paymentReference"`
	SubmitterID      string          `json:"submitterId"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"orderId"`
}

type ProcessOrderRequest struct {
	OrderID string `json:"orderId"`
	Action  string `json:"action"`
}

type ProcessOrderResponse struct {
	Status           OrderStatus `json:"status"`
	ProviderOrderRef string      `json:"providerOrderRef,omitempty"`
}
