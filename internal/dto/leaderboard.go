package dto

import (
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LeaderboardParams defines query parameters for the leaderboard.
type LeaderboardParams struct {
	Limit int `form:"limit,default=0"` // 0 returns the full ranking
}

// LeaderboardResponse is the ranked list returned to dashboards.
type LeaderboardResponse struct {
	Entries    []domain.LeaderboardEntry `json:"entries"`
	AgentCount int                       `json:"agentCount"`
}

// TierResponse describes one commission bracket.
type TierResponse struct {
	Label     string          `json:"label"`
	Threshold decimal.Decimal `json:"threshold"`
	Allowance decimal.Decimal `json:"allowance"`
}

// ToLeaderboardResponse truncates a leaderboard to limit entries for display.
func ToLeaderboardResponse(board *domain.Leaderboard, limit int) LeaderboardResponse {
	return LeaderboardResponse{
		Entries:    board.Top(limit),
		AgentCount: len(board.Entries),
	}
}

// ToTierResponses converts tiers for the tier listing endpoint.
func ToTierResponses(tiers []domain.Tier) []TierResponse {
	res := make([]TierResponse, len(tiers))
	for i, t := range tiers {
		res[i] = TierResponse{Label: t.Label, Threshold: t.Threshold, Allowance: t.Allowance}
	}
	return res
}

// ConfirmedTotalResponse reports an agent's cumulative confirmed sales.
type ConfirmedTotalResponse struct {
	AgentID        string          `json:"agentID"`
	TotalConfirmed decimal.Decimal `json:"totalConfirmed"`
}
