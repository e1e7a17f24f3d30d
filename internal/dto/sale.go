package dto

import (
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to issue a new invoice.
// TermMonths is required for INSTALLMENT sales and must come from the fixed
// term menu (validated as "saleterm"); it is ignored for CASH sales.
type CreateSaleRequest struct {
	CustomerID    string          `json:"customerID" binding:"required"`
	ProductID     string          `json:"productID" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=CASH INSTALLMENT"`
	DownPayment   decimal.Decimal `json:"downPayment"`
	TermMonths    int             `json:"termMonths" binding:"omitempty,saleterm"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID            string          `json:"saleID"`
	CustomerID        string          `json:"customerID"`
	CustomerName      string          `json:"customerName,omitempty"`
	ProductID         string          `json:"productID"`
	ProductName       string          `json:"productName,omitempty"`
	PaymentMethod     string          `json:"paymentMethod"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	SaleDate          time.Time       `json:"saleDate"`
	InstallmentsCount int             `json:"installmentsCount"`
}

// CreateSaleResponse returns the created sale together with its generated
// installment schedule.
type CreateSaleResponse struct {
	Sale         SaleResponse          `json:"sale"`
	Installments []InstallmentResponse `json:"installments"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:            s.SaleID,
		CustomerID:        s.CustomerID,
		ProductID:         s.ProductID,
		PaymentMethod:     string(s.PaymentMethod),
		TotalAmount:       s.TotalAmount,
		DownPayment:       s.DownPayment,
		SaleDate:          s.SaleDate,
		InstallmentsCount: s.InstallmentsCount,
	}
}

// ToSaleReportResponse converts an enriched report row to a SaleResponse.
func ToSaleReportResponse(row *domain.SaleReportRow) SaleResponse {
	resp := ToSaleResponse(&row.Sale)
	resp.CustomerName = row.CustomerName
	resp.ProductName = row.ProductName
	return resp
}
