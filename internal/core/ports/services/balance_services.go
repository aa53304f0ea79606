package services

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// BalanceSvc exposes read-only property balance snapshots.
type BalanceSvc interface {
	// ListBalances lists balances for clientName. Clients are always scoped to themselves.
	ListBalances(ctx context.Context, clientName string, actor domain.Actor) ([]domain.Balance, error)

	// GetBalance retrieves the ledger for a single property.
	GetBalance(ctx context.Context, key domain.BalanceKey, actor domain.Actor) (*domain.Balance, error)
}
