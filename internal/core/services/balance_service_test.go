package services_test

import (
	"context"
	"testing"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceService_ListBalances(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBalanceRepository)
	svc := services.NewBalanceService(repo)

	repo.On("ListBalances", ctx, "Maria Santos").Return([]domain.Balance{*palmGroveBalance()}, nil).Twice()
	repo.On("ListBalances", ctx, "").Return([]domain.Balance{}, nil).Once()

	// Clients are always scoped to their own name
	balances, err := svc.ListBalances(ctx, "Someone Else", client)
	require.NoError(t, err)
	assert.Len(t, balances, 1)

	_, err = svc.ListBalances(ctx, " Maria Santos ", admin)
	require.NoError(t, err)

	_, err = svc.ListBalances(ctx, "", admin)
	require.NoError(t, err)

	_, err = svc.ListBalances(ctx, "", agentActor)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	repo.AssertExpectations(t)
}

func TestBalanceService_GetBalance(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBalanceRepository)
	svc := services.NewBalanceService(repo)
	key := domain.BalanceKey{ClientName: "Maria Santos", Project: "Palm Grove", Block: "3", Lot: "12"}

	repo.On("FindBalance", ctx, key).Return(palmGroveBalance(), nil).Once()

	balance, err := svc.GetBalance(ctx, key, client)
	require.NoError(t, err)
	assert.Equal(t, "B3-L12", balance.BlockLot())

	other := key
	other.ClientName = "Juan Dela Cruz"
	_, err = svc.GetBalance(ctx, other, client)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
