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

const selectPaymentQuery = `
	SELECT payment_id, payer_name, project, block, lot, amount, penalty, due_date, payment_date,
		payment_period, reference_number, vat, status, receipt_path, acknowledgment_path, version,
		deleted_at, created_at, created_by, last_updated_at, last_updated_by
	FROM payments`

const paymentExistsQuery = "SELECT EXISTS (SELECT 1 FROM payments WHERE payment_id = $1 AND deleted_at IS NULL)"

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// paymentWhere always excludes soft-deleted rows.
func paymentWhere(filter portsrepo.PaymentFilter) *whereClause {
	w := &whereClause{}
	w.addRaw("deleted_at IS NULL")
	if filter.PayerNameContains != "" {
		w.add("payer_name ILIKE '%%' || $%d || '%%'", escapeLike(filter.PayerNameContains))
	}
	if filter.PayerNameExact != "" {
		w.add("payer_name = $%d", filter.PayerNameExact)
	}
	if filter.Project != "" {
		w.add("project = $%d", filter.Project)
	}
	if filter.Status != "" {
		w.add("status = $%d", string(filter.Status))
	}
	if filter.MissingAcknowledgment {
		w.addRaw("acknowledgment_path IS NULL")
	}
	return w
}

func (r *PgxPaymentRepository) getPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query payments", err)
	}
	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan payments", err)
	}
	return mapping.ToDomainPaymentSlice(payments), nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payments, err := r.getPayments(ctx, selectPaymentQuery+" WHERE payment_id = $1 AND deleted_at IS NULL", paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}
	return &payments[0], nil
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, limit int, offset int) ([]domain.Payment, error) {
	w := paymentWhere(filter)
	query := selectPaymentQuery + w.String() + " ORDER BY created_at DESC, payment_id DESC LIMIT " + w.next(limit) + " OFFSET " + w.next(offset)
	return r.getPayments(ctx, query, w.args...)
}

func (r *PgxPaymentRepository) CountPayments(ctx context.Context, filter portsrepo.PaymentFilter) (int, error) {
	w := paymentWhere(filter)
	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM payments"+w.String(), w.args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("failed to count payments", err)
	}
	return total, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m, err := mapping.ToModelPayment(payment)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO payments (payment_id, payer_name, project, block, lot, amount, penalty, due_date, payment_date,
			payment_period, reference_number, vat, status, receipt_path, acknowledgment_path, version,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.PaymentID, m.PayerName, m.Project, m.Block, m.Lot, m.Amount, m.Penalty, m.DueDate, m.PaymentDate,
		m.PaymentPeriod, m.ReferenceNumber, m.VAT, m.Status, m.ReceiptPath, m.AcknowledgmentPath, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("payment " + payment.PaymentID + " already exists")
		}
		return apperrors.NewStoreError("failed to save payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, expectedVersion int, status domain.PaymentStatus, actorID string, now time.Time) error {
	query := `
		UPDATE payments
		SET status = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE payment_id = $4 AND version = $5 AND deleted_at IS NULL;
	`
	return r.execVersioned(ctx, "payment", paymentID, paymentExistsQuery, query,
		string(status), now, actorID, paymentID, expectedVersion)
}

func (r *PgxPaymentRepository) UpdateAcknowledgmentPath(ctx context.Context, paymentID string, expectedVersion int, path string, actorID string, now time.Time) error {
	query := `
		UPDATE payments
		SET acknowledgment_path = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE payment_id = $4 AND version = $5 AND deleted_at IS NULL;
	`
	return r.execVersioned(ctx, "payment", paymentID, paymentExistsQuery, query,
		path, now, actorID, paymentID, expectedVersion)
}

// UpdatePaymentDetails rewrites the editable columns; status and receipts are untouched.
func (r *PgxPaymentRepository) UpdatePaymentDetails(ctx context.Context, payment domain.Payment, expectedVersion int) error {
	m, err := mapping.ToModelPayment(payment)
	if err != nil {
		return err
	}
	query := `
		UPDATE payments
		SET payer_name = $1, project = $2, block = $3, lot = $4, amount = $5, penalty = $6, due_date = $7,
			payment_date = $8, payment_period = $9, reference_number = $10, vat = $11,
			last_updated_at = $12, last_updated_by = $13, version = version + 1
		WHERE payment_id = $14 AND version = $15 AND deleted_at IS NULL;
	`
	return r.execVersioned(ctx, "payment", payment.PaymentID, paymentExistsQuery, query,
		m.PayerName, m.Project, m.Block, m.Lot, m.Amount, m.Penalty, m.DueDate,
		m.PaymentDate, m.PaymentPeriod, m.ReferenceNumber, m.VAT,
		m.LastUpdatedAt, m.LastUpdatedBy, m.PaymentID, expectedVersion,
	)
}

func (r *PgxPaymentRepository) MarkPaymentDeleted(ctx context.Context, paymentID string, deletedAt time.Time, actorID string) error {
	query := `
		UPDATE payments
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE payment_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, actorID, paymentID)
	if err != nil {
		return apperrors.NewStoreError("failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}
	return nil
}
