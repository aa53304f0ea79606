package dto

import (
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data an agent submits to record a sale.
type CreateSaleRequest struct {
	AgentID            string `json:"agentID"` // Admin only; agents always record for themselves
	BuyerName          string `json:"buyerName" validate:"required"`
	TotalContractPrice string `json:"totalContractPrice" validate:"required,posdecimal"`
	Project            string `json:"project" validate:"required"`
	Block              string `json:"block" validate:"required"`
	Lot                string `json:"lot" validate:"required"`
	ReservationDate    string `json:"reservationDate" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	ReceiptPath        string `json:"receiptPath"`                                             // Optional
	SecondReceiptPath  string `json:"secondReceiptPath"`                                       // Optional
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	AgentID string `form:"agentID"`
	Status  string `form:"status"`
	Page    int    `form:"page,default=1"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID             string            `json:"saleID"`
	AgentID            string            `json:"agentID"`
	SellerName         string            `json:"sellerName"`
	BuyerName          string            `json:"buyerName"`
	TotalContractPrice decimal.Decimal   `json:"totalContractPrice"`
	Project            string            `json:"project"`
	Block              string            `json:"block"`
	Lot                string            `json:"lot"`
	ReservationDate    string            `json:"reservationDate"`
	Status             domain.SaleStatus `json:"status"`
	Version            int               `json:"version"`
	CreatedAt          time.Time         `json:"createdAt"`
	LastUpdatedAt      time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy      string            `json:"lastUpdatedBy"`
}

// ListSalesResponse wraps a page of sales with its pagination metadata.
type ListSalesResponse struct {
	Sales      []SaleResponse `json:"sales"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:             s.SaleID,
		AgentID:            s.AgentID,
		SellerName:         s.SellerName,
		BuyerName:          s.BuyerName,
		TotalContractPrice: s.TotalContractPrice,
		Project:            s.Project,
		Block:              s.Block,
		Lot:                s.Lot,
		ReservationDate:    s.ReservationDate.Format(domain.PaymentDateLayout),
		Status:             s.Status,
		Version:            s.Version,
		CreatedAt:          s.CreatedAt,
		LastUpdatedAt:      s.LastUpdatedAt,
		LastUpdatedBy:      s.LastUpdatedBy,
	}
}

// ToListSaleResponse converts a slice of domain.Sale to a slice of SaleResponse DTOs
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
