package services

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CommissionSvc computes leaderboard and tier standings from current sales.
// Nothing is cached; every call re-reads the record store.
type CommissionSvc interface {
	// Leaderboard ranks every active agent by confirmed sales.
	Leaderboard(ctx context.Context, actor domain.Actor) (*domain.Leaderboard, error)

	// AgentStanding returns an agent's rank and tier progress.
	AgentStanding(ctx context.Context, agentID string, actor domain.Actor) (*domain.AgentStanding, error)

	// CumulativeConfirmedSales totals an agent's confirmed sales.
	CumulativeConfirmedSales(ctx context.Context, agentID string, actor domain.Actor) (decimal.Decimal, error)

	// Tiers lists the configured commission brackets in ascending order.
	Tiers() []domain.Tier
}
