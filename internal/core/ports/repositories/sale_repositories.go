package repositories

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// SaleFilter holds conjunctive exact-match filters for listing sales.
type SaleFilter struct {
	AgentID string
	Status  domain.SaleStatus
}

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a page of sales matching the filter, newest first.
	ListSales(ctx context.Context, filter SaleFilter, limit int, offset int) ([]domain.Sale, error)

	// CountSales counts sales matching the filter.
	CountSales(ctx context.Context, filter SaleFilter) (int, error)

	// ListConfirmedSales retrieves every confirmed sale in creation order.
	ListConfirmedSales(ctx context.Context) ([]domain.Sale, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// SaveSale persists a new sale.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// UpdateSaleStatus moves a sale to status if its version still equals
	// expectedVersion. A stale version yields apperrors.ErrConflict.
	UpdateSaleStatus(ctx context.Context, saleID string, expectedVersion int, status domain.SaleStatus, actorID string, now time.Time) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
