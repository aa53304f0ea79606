package repositories

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// BalanceReader defines read operations for property balance snapshots.
type BalanceReader interface {
	// FindBalance retrieves the ledger for one client property.
	FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)

	// ListBalances retrieves balances for clientName, or all balances when it is empty.
	ListBalances(ctx context.Context, clientName string) ([]domain.Balance, error)
}
