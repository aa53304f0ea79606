package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commissionHandler serves the leaderboard and tier standings.
type commissionHandler struct {
	commissionService portssvc.CommissionSvc
}

func newCommissionHandler(cs portssvc.CommissionSvc) *commissionHandler {
	return &commissionHandler{commissionService: cs}
}

func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvc) {
	h := newCommissionHandler(commissionService)

	rg.GET("/leaderboard", h.getLeaderboard)
	rg.GET("/commission/tiers", h.listTiers)

	agents := rg.Group("/agents")
	{
		agents.GET("/:agentID/standing", h.getAgentStanding)
		agents.GET("/:agentID/confirmed-total", h.getConfirmedTotal)
	}
}

func (h *commissionHandler) getLeaderboard(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.LeaderboardParams
	if err := c.ShouldBindQuery(&params); err != nil || params.Limit < 0 {
		logger.Warn("Invalid leaderboard limit", slog.String("limit", c.Query("limit")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	board, err := h.commissionService.Leaderboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to compute leaderboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaderboardResponse(board, params.Limit))
}

func (h *commissionHandler) getAgentStanding(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	standing, err := h.commissionService.AgentStanding(c.Request.Context(), c.Param("agentID"), actor)
	if err != nil {
		respondError(c, err, "Failed to compute agent standing")
		return
	}
	c.JSON(http.StatusOK, standing)
}

func (h *commissionHandler) getConfirmedTotal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	agentID := c.Param("agentID")
	total, err := h.commissionService.CumulativeConfirmedSales(c.Request.Context(), agentID, actor)
	if err != nil {
		respondError(c, err, "Failed to compute confirmed sales")
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmedTotalResponse{AgentID: agentID, TotalConfirmed: total})
}

func (h *commissionHandler) listTiers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToTierResponses(h.commissionService.Tiers()))
}
