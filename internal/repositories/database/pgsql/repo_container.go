package pgsql

import (
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories with the given receipt store.
func NewRepositoryProvider(dbPool *pgxpool.Pool, receipts portsrepo.ReceiptStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AgentRepo:    newPgxAgentRepository(dbPool),
		SaleRepo:     newPgxSaleRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		BalanceRepo:  newPgxBalanceRepository(dbPool),
		ReceiptStore: receipts,
	}
}
