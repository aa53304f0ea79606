package repositories

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// AgentReader defines read operations for agent data. Agents are provisioned
// outside this core, so there is no writer.
type AgentReader interface {
	// FindAgentByID retrieves a specific agent by its unique identifier.
	FindAgentByID(ctx context.Context, agentID string) (*domain.Agent, error)

	// ListActiveAgents retrieves every active agent in a stable order
	// (creation time, then agent ID).
	ListActiveAgents(ctx context.Context) ([]domain.Agent, error)
}
