package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pack is a catalog entry. FinalPrice = ProviderPrice + MarginAmount; the catalog
// sync worker owns these rows, the order pipeline only reads them.
type Pack struct {
	PackID            string          `json:"packId"`
	Name              string          `json:"name"`
	ProviderProductID string          `json:"providerProductId"`
	ProviderPrice     decimal.Decimal `json:"providerPrice"`
	MarginAmount      decimal.Decimal `json:"marginAmount"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	Active            bool            `json:"active"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
