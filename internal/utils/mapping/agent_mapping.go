package mapping

import (
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
)

// ToDomainAgent converts a model Agent to a domain Agent
func ToDomainAgent(m models.Agent) domain.Agent {
	return domain.Agent{
		AgentID:     m.AgentID,
		FullName:    m.FullName,
		Email:       m.Email,
		Status:      domain.AgentStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAgentSlice converts a slice of model Agents to a slice of domain Agents
func ToDomainAgentSlice(ms []models.Agent) []domain.Agent {
	ds := make([]domain.Agent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAgent(m)
	}
	return ds
}
