package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(bs portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.listBalances)
		balances.GET("/property", h.getBalance)
	}
}

func (h *balanceHandler) listBalances(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balances, err := h.balanceService.ListBalances(c.Request.Context(), params.Client, actor)
	if err != nil {
		respondError(c, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ListBalancesResponse{Balances: balances})
}

func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.GetBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for GetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "client, project, block and lot are required"})
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), params.ToBalanceKey(), actor)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}
