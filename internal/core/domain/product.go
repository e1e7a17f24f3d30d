package domain

import "github.com/shopspring/decimal"

// Product represents an item available for sale.
// Stock never goes below zero; sales decrement it and restocks increment it.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int             `json:"stock"`
	AuditFields
}
