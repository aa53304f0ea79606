package pgsql

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectBalanceQuery = `
	SELECT balance_id, client_name, project, block, lot, total_contract_price, amount_paid,
		remaining_balance, months_paid, term_months, price_per_sqm, lot_area_sqm, updated_at
	FROM balances`

// PgxBalanceRepository reads the per-property ledger maintained elsewhere.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)

func (r *PgxBalanceRepository) getBalances(ctx context.Context, filter string, args ...any) ([]domain.Balance, error) {
	rows, err := r.Pool.Query(ctx, selectBalanceQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query balances", err)
	}
	balances, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan balances", err)
	}
	return mapping.ToDomainBalanceSlice(balances), nil
}

// FindBalance matches all four key parts exactly.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	balances, err := r.getBalances(ctx,
		" WHERE client_name = $1 AND project = $2 AND block = $3 AND lot = $4",
		key.ClientName, key.Project, key.Block, key.Lot,
	)
	if err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, apperrors.NewNotFoundError("no balance for " + key.ClientName + " " + key.Project + " " + domain.FormatBlockLot(key.Block, key.Lot))
	}
	return &balances[0], nil
}

func (r *PgxBalanceRepository) ListBalances(ctx context.Context, clientName string) ([]domain.Balance, error) {
	w := &whereClause{}
	if clientName != "" {
		w.add("client_name = $%d", clientName)
	}
	return r.getBalances(ctx, w.String()+" ORDER BY client_name, project, block, lot", w.args...)
}
