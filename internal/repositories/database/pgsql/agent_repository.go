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

const selectAgentQuery = `
	SELECT agent_id, full_name, email, status, created_at, created_by, last_updated_at, last_updated_by
	FROM agents`

// PgxAgentRepository reads agents provisioned outside this service.
type PgxAgentRepository struct {
	BaseRepository
}

func newPgxAgentRepository(pool *pgxpool.Pool) *PgxAgentRepository {
	return &PgxAgentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgentReader = (*PgxAgentRepository)(nil)

func (r *PgxAgentRepository) getAgents(ctx context.Context, filter string, args ...any) ([]domain.Agent, error) {
	rows, err := r.Pool.Query(ctx, selectAgentQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query agents", err)
	}
	agents, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Agent])
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan agents", err)
	}
	return mapping.ToDomainAgentSlice(agents), nil
}

func (r *PgxAgentRepository) FindAgentByID(ctx context.Context, agentID string) (*domain.Agent, error) {
	agents, err := r.getAgents(ctx, " WHERE agent_id = $1", agentID)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, apperrors.NewNotFoundError("agent " + agentID + " not found")
	}
	return &agents[0], nil
}

// ListActiveAgents orders by creation then id so leaderboard ties are stable.
func (r *PgxAgentRepository) ListActiveAgents(ctx context.Context) ([]domain.Agent, error) {
	return r.getAgents(ctx, " WHERE status = $1 ORDER BY created_at, agent_id", string(domain.AgentActive))
}
