package dto

import "github.com/Omniportal2025/omniportal-sub001/internal/core/domain"

// ListBalancesParams defines query parameters for listing balances.
type ListBalancesParams struct {
	Client string `form:"client"`
}

// ListBalancesResponse wraps balance snapshots.
type ListBalancesResponse struct {
	Balances []domain.Balance `json:"balances"`
}

// GetBalanceParams identifies one property ledger.
type GetBalanceParams struct {
	Client  string `form:"client" binding:"required"`
	Project string `form:"project" binding:"required"`
	Block   string `form:"block" binding:"required"`
	Lot     string `form:"lot" binding:"required"`
}

// ToBalanceKey converts the query into a balance key.
func (p GetBalanceParams) ToBalanceKey() domain.BalanceKey {
	return domain.BalanceKey{ClientName: p.Client, Project: p.Project, Block: p.Block, Lot: p.Lot}
}
