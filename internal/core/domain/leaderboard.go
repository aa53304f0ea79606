package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one agent's ranked standing.
type LeaderboardEntry struct {
	Rank           int             `json:"rank"`
	AgentID        string          `json:"agentID"`
	AgentName      string          `json:"agentName"`
	TotalConfirmed decimal.Decimal `json:"totalConfirmed"`
	ConfirmedCount int             `json:"confirmedCount"`
}

// Leaderboard is the full ranked list of active agents. Sales that could not
// be attributed to an active agent are tallied separately and affect no rank.
type Leaderboard struct {
	Entries           []LeaderboardEntry `json:"entries"`
	UnattributedTotal decimal.Decimal    `json:"unattributedTotal"`
	UnattributedCount int                `json:"unattributedCount"`
}

// AgentStanding is an agent's personal position and commission progress.
type AgentStanding struct {
	LeaderboardEntry
	AgentCount      int             `json:"agentCount"`
	CurrentTier     Tier            `json:"currentTier"`
	NextTier        *Tier           `json:"nextTier,omitempty"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
}

// CountsTowardCommission is the single predicate shared by every total: the
// sale is confirmed and its agent is active.
func CountsTowardCommission(agent Agent, sale Sale) bool {
	return agent.IsActive() && sale.IsConfirmed()
}

// Top returns at most n leading entries; n <= 0 returns all of them.
func (l Leaderboard) Top(n int) []LeaderboardEntry {
	if n <= 0 || n >= len(l.Entries) {
		return l.Entries
	}
	return l.Entries[:n]
}

// Find returns the entry for agentID.
func (l Leaderboard) Find(agentID string) (LeaderboardEntry, bool) {
	for _, e := range l.Entries {
		if e.AgentID == agentID {
			return e, true
		}
	}
	return LeaderboardEntry{}, false
}

// RankAgents aggregates confirmed sales per active agent and ranks them by
// total descending. Ties keep the order of agents as given, so callers must
// pass agents in a deterministic order.
//
// A sale carrying an AgentID is attributed by id only. A legacy sale without
// one is attributed by exact, case-sensitive SellerName match against the
// first active agent with that full name.
func RankAgents(agents []Agent, sales []Sale) Leaderboard {
	entries := make([]LeaderboardEntry, 0, len(agents))
	members := make([]Agent, 0, len(agents))
	byID := make(map[string]int, len(agents))
	byName := make(map[string]int, len(agents))
	for _, a := range agents {
		if !a.IsActive() {
			continue
		}
		if _, dup := byID[a.AgentID]; dup {
			continue
		}
		idx := len(entries)
		entries = append(entries, LeaderboardEntry{
			AgentID:        a.AgentID,
			AgentName:      a.FullName,
			TotalConfirmed: decimal.Zero,
		})
		members = append(members, a)
		byID[a.AgentID] = idx
		if _, taken := byName[a.FullName]; !taken {
			byName[a.FullName] = idx
		}
	}

	board := Leaderboard{UnattributedTotal: decimal.Zero}
	for _, s := range sales {
		if !s.IsConfirmed() {
			continue
		}
		var (
			idx int
			ok  bool
		)
		if s.AgentID != "" {
			idx, ok = byID[s.AgentID]
		} else {
			idx, ok = byName[s.SellerName]
		}
		if !ok || !CountsTowardCommission(members[idx], s) {
			board.UnattributedTotal = board.UnattributedTotal.Add(s.TotalContractPrice)
			board.UnattributedCount++
			continue
		}
		entries[idx].TotalConfirmed = entries[idx].TotalConfirmed.Add(s.TotalContractPrice)
		entries[idx].ConfirmedCount++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalConfirmed.GreaterThan(entries[j].TotalConfirmed)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	board.Entries = entries
	return board
}

// StandingFor derives an agent's standing from an already ranked leaderboard.
func StandingFor(board Leaderboard, agentID string, tiers TierTable) (AgentStanding, bool) {
	entry, ok := board.Find(agentID)
	if !ok {
		return AgentStanding{}, false
	}
	standing := AgentStanding{
		LeaderboardEntry: entry,
		AgentCount:       len(board.Entries),
		CurrentTier:      tiers.TierFor(entry.TotalConfirmed),
		ProgressPercent:  tiers.ProgressToNextTier(entry.TotalConfirmed),
	}
	if next, has := tiers.NextTier(entry.TotalConfirmed); has {
		standing.NextTier = &next
	}
	return standing, true
}
