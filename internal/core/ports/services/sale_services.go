package services

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
)

// SaleReaderSvc defines read operations for sale data
type SaleReaderSvc interface {
	// ListSales retrieves one page of sales. Agents only see their own.
	ListSales(ctx context.Context, params dto.ListSalesParams, actor domain.Actor) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines sale submission and review
type SaleWriterSvc interface {
	// SubmitSale records a pending sale for an active agent.
	SubmitSale(ctx context.Context, req dto.CreateSaleRequest, actor domain.Actor) (*domain.Sale, error)

	// ConfirmSale marks a pending sale confirmed so it counts toward commission.
	ConfirmSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error)

	// RejectSale marks a pending sale rejected.
	RejectSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
