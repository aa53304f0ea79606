package services

import (
	"context"
	"strings"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
)

// BalanceService exposes property balance snapshots. It never writes.
type BalanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceReader
}

// NewBalanceService creates a new balance service
func NewBalanceService(balanceRepo portsrepo.BalanceReader) *BalanceService {
	return &BalanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvc = (*BalanceService)(nil)

// ListBalances lists balances for clientName; an administrator passing an
// empty name gets every balance.
func (s *BalanceService) ListBalances(ctx context.Context, clientName string, actor domain.Actor) ([]domain.Balance, error) {
	if err := s.AuthorizeRole(ctx, actor, "list balances", domain.RoleAdmin, domain.RoleClient); err != nil {
		return nil, err
	}
	clientName = strings.TrimSpace(clientName)
	if actor.Role == domain.RoleClient {
		clientName = actor.Name
	}
	balances, err := s.balanceRepo.ListBalances(ctx, clientName)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances")
		return nil, err
	}
	return balances, nil
}

// GetBalance retrieves a single property ledger.
func (s *BalanceService) GetBalance(ctx context.Context, key domain.BalanceKey, actor domain.Actor) (*domain.Balance, error) {
	if err := s.AuthorizeRole(ctx, actor, "view balances", domain.RoleAdmin, domain.RoleClient); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && key.ClientName != actor.Name {
		return nil, apperrors.NewForbiddenError("clients may only view their own balances")
	}
	return s.balanceRepo.FindBalance(ctx, key)
}
