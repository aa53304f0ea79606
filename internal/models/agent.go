package models

// Agent is the row shape of the agents table.
type Agent struct {
	AgentID  string `db:"agent_id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Status   string `db:"status"`
	AuditFields
}
