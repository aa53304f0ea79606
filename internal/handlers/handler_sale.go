package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to agent sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.submitSale)
		sales.GET("", h.listSales)
		sales.POST("/:saleID/confirm", h.confirmSale)
		sales.POST("/:saleID/reject", h.rejectSale)
	}
}

func (h *saleHandler) submitSale(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.SubmitSale(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to submit sale")
		return
	}

	logger.Info("Sale submitted", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListSales", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *saleHandler) confirmSale(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sale, err := h.saleService.ConfirmSale(c.Request.Context(), c.Param("saleID"), actor)
	if err != nil {
		respondError(c, err, "Failed to confirm sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) rejectSale(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sale, err := h.saleService.RejectSale(c.Request.Context(), c.Param("saleID"), actor)
	if err != nil {
		respondError(c, err, "Failed to reject sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
