package mapping

import (
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
)

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		BalanceID:          m.BalanceID,
		ClientName:         m.ClientName,
		Project:            m.Project,
		Block:              m.Block,
		Lot:                m.Lot,
		TotalContractPrice: m.TotalContractPrice,
		AmountPaid:         m.AmountPaid,
		RemainingBalance:   m.RemainingBalance,
		MonthsPaid:         m.MonthsPaid,
		TermMonths:         m.TermMonths,
		PricePerSqm:        m.PricePerSqm,
		LotAreaSqm:         m.LotAreaSqm,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToDomainBalanceSlice converts a slice of model Balances to a slice of domain Balances
func ToDomainBalanceSlice(ms []models.Balance) []domain.Balance {
	ds := make([]domain.Balance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalance(m)
	}
	return ds
}
