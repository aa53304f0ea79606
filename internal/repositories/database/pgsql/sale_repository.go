package pgsql

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectSaleQuery = `
	SELECT sale_id, agent_id, seller_name, buyer_name, total_contract_price, project, block, lot,
		reservation_date, receipt_path, second_receipt_path, status, version,
		created_at, created_by, last_updated_at, last_updated_by
	FROM sales`

const saleExistsQuery = "SELECT EXISTS (SELECT 1 FROM sales WHERE sale_id = $1)"

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func saleWhere(filter portsrepo.SaleFilter) *whereClause {
	w := &whereClause{}
	if filter.AgentID != "" {
		w.add("agent_id = $%d", filter.AgentID)
	}
	if filter.Status != "" {
		w.add("status = $%d", string(filter.Status))
	}
	return w
}

func (r *PgxSaleRepository) getSales(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query sales", err)
	}
	sales, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan sales", err)
	}
	return mapping.ToDomainSaleSlice(sales), nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sales, err := r.getSales(ctx, selectSaleQuery+" WHERE sale_id = $1", saleID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, apperrors.NewNotFoundError("sale " + saleID + " not found")
	}
	return &sales[0], nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit int, offset int) ([]domain.Sale, error) {
	w := saleWhere(filter)
	query := selectSaleQuery + w.String() + " ORDER BY created_at DESC, sale_id DESC LIMIT " + w.next(limit) + " OFFSET " + w.next(offset)
	return r.getSales(ctx, query, w.args...)
}

func (r *PgxSaleRepository) CountSales(ctx context.Context, filter portsrepo.SaleFilter) (int, error) {
	w := saleWhere(filter)
	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM sales"+w.String(), w.args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("failed to count sales", err)
	}
	return total, nil
}

func (r *PgxSaleRepository) ListConfirmedSales(ctx context.Context) ([]domain.Sale, error) {
	return r.getSales(ctx, selectSaleQuery+" WHERE status = $1 ORDER BY created_at, sale_id", string(domain.SaleConfirmed))
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (sale_id, agent_id, seller_name, buyer_name, total_contract_price, project, block, lot,
			reservation_date, receipt_path, second_receipt_path, status, version,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SaleID, m.AgentID, m.SellerName, m.BuyerName, m.TotalContractPrice, m.Project, m.Block, m.Lot,
		m.ReservationDate, m.ReceiptPath, m.SecondReceiptPath, m.Status, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("sale " + sale.SaleID + " already exists")
		}
		return apperrors.NewStoreError("failed to save sale "+sale.SaleID, err)
	}
	return nil
}

func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, expectedVersion int, status domain.SaleStatus, actorID string, now time.Time) error {
	query := `
		UPDATE sales
		SET status = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE sale_id = $4 AND version = $5;
	`
	return r.execVersioned(ctx, "sale", saleID, saleExistsQuery, query,
		string(status), now, actorID, saleID, expectedVersion)
}
