package domain

// AgentStatus indicates whether an agent participates in commission computation.
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

// Agent is a sales agent. Agents are provisioned administratively outside this core.
type Agent struct {
	AgentID  string      `json:"agentID"`
	FullName string      `json:"fullName"` // Legacy join key against Sale.SellerName
	Email    string      `json:"email"`
	Status   AgentStatus `json:"status"`
	AuditFields
}

// IsActive reports whether the agent takes part in tiers and the leaderboard.
func (a Agent) IsActive() bool {
	return a.Status == AgentActive
}
