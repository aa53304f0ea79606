package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// CommissionService computes the leaderboard and agent standings on every call
// from the current agents and confirmed sales.
type CommissionService struct {
	BaseService
	agentRepo portsrepo.AgentReader
	saleRepo  portsrepo.SaleReader
	tiers     domain.TierTable
	observers aggregationObservers
}

// CommissionOption is a functional option for configuring the commission service
type CommissionOption func(*CommissionService)

// WithTierTable overrides the default commission tiers.
func WithTierTable(tiers domain.TierTable) CommissionOption {
	return func(s *CommissionService) {
		s.tiers = tiers
	}
}

// WithAggregationObserver registers an observer for aggregation timings.
func WithAggregationObserver(o AggregationObserver) CommissionOption {
	return func(s *CommissionService) {
		s.observers = append(s.observers, o)
	}
}

// NewCommissionService creates a new commission service
func NewCommissionService(agentRepo portsrepo.AgentReader, saleRepo portsrepo.SaleReader, options ...CommissionOption) *CommissionService {
	svc := &CommissionService{
		agentRepo: agentRepo,
		saleRepo:  saleRepo,
		tiers:     domain.DefaultTierTable(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CommissionSvc = (*CommissionService)(nil)

// Leaderboard ranks every active agent. Any store failure is returned; a
// partial ranking is never produced.
func (s *CommissionService) Leaderboard(ctx context.Context, actor domain.Actor) (*domain.Leaderboard, error) {
	if err := s.AuthorizeRole(ctx, actor, "view the leaderboard", domain.RoleAdmin, domain.RoleAgent); err != nil {
		return nil, err
	}
	board, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// AgentStanding derives an agent's standing from the same aggregation run used
// for the leaderboard. Agents may only ask about themselves.
func (s *CommissionService) AgentStanding(ctx context.Context, agentID string, actor domain.Actor) (*domain.AgentStanding, error) {
	if err := s.authorizeAgent(ctx, agentID, actor); err != nil {
		return nil, err
	}
	board, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	standing, ok := domain.StandingFor(board, agentID, s.tiers)
	if !ok {
		return nil, apperrors.NewNotFoundError("active agent " + agentID + " not found")
	}
	return &standing, nil
}

// CumulativeConfirmedSales totals an agent's confirmed sales.
func (s *CommissionService) CumulativeConfirmedSales(ctx context.Context, agentID string, actor domain.Actor) (decimal.Decimal, error) {
	standing, err := s.AgentStanding(ctx, agentID, actor)
	if err != nil {
		return decimal.Zero, err
	}
	return standing.TotalConfirmed, nil
}

// Tiers lists the configured commission brackets.
func (s *CommissionService) Tiers() []domain.Tier {
	return s.tiers.Tiers()
}

func (s *CommissionService) authorizeAgent(ctx context.Context, agentID string, actor domain.Actor) error {
	if err := s.AuthorizeRole(ctx, actor, "view agent standings", domain.RoleAdmin, domain.RoleAgent); err != nil {
		return err
	}
	if actor.Role == domain.RoleAgent && actor.ID != agentID {
		return apperrors.NewForbiddenError("agents may only view their own standing")
	}
	return nil
}

func (s *CommissionService) aggregate(ctx context.Context) (domain.Leaderboard, error) {
	start := time.Now()
	agents, err := s.agentRepo.ListActiveAgents(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active agents")
		return domain.Leaderboard{}, err
	}
	sales, err := s.saleRepo.ListConfirmedSales(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list confirmed sales")
		return domain.Leaderboard{}, err
	}

	board := domain.RankAgents(agents, sales)
	elapsed := time.Since(start)
	s.observers.AggregationCompleted(ctx, elapsed, len(agents), len(sales))
	if board.UnattributedCount > 0 {
		s.LogDebug(ctx, "Confirmed sales without an active agent",
			slog.Int("count", board.UnattributedCount),
			slog.String("total", board.UnattributedTotal.String()))
	}
	return board, nil
}
