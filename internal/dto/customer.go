package dto

import (
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to register a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers distinguish omitted fields from zero-value updates. The
// outstanding balance is deliberately absent: only sale creation and
// installment collection may move it.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID         string          `json:"customerID"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	JoinDate           time.Time       `json:"joinDate"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Phone:              c.Phone,
		Address:            c.Address,
		OutstandingBalance: c.OutstandingBalance,
		JoinDate:           c.JoinDate,
		CreatedAt:          c.CreatedAt,
		LastUpdatedAt:      c.LastUpdatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to DTOs.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}
