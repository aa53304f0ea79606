package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	receiptFormField       = "receipt"
	defaultMaxReceiptBytes = 10 << 20
	// formOverheadBytes leaves room for the text fields of a receipt upload.
	formOverheadBytes = 1 << 20
)

// paymentHandler handles HTTP requests related to client payments.
type paymentHandler struct {
	paymentService  portssvc.PaymentSvcFacade
	maxReceiptBytes int64
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, maxReceiptBytes int64) *paymentHandler {
	if maxReceiptBytes <= 0 {
		maxReceiptBytes = defaultMaxReceiptBytes
	}
	return &paymentHandler{paymentService: ps, maxReceiptBytes: maxReceiptBytes}
}

// registerPaymentRoutes registers payment routes. Receipt uploads pass
// through uploadLimit first.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, maxReceiptBytes int64, uploadLimit gin.HandlerFunc) {
	h := newPaymentHandler(paymentService, maxReceiptBytes)

	payments := rg.Group("/payments")
	{
		payments.POST("", uploadLimit, h.submitPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.PUT("/:paymentID", h.updatePayment)
		payments.DELETE("/:paymentID", h.deletePayment)
		payments.POST("/:paymentID/approve", h.approvePayment)
		payments.POST("/:paymentID/reject", h.rejectPayment)
		payments.POST("/:paymentID/acknowledgment", uploadLimit, h.attachAcknowledgment)
		payments.GET("/:paymentID/receipt", h.downloadReceipt(domain.ReceiptPayer))
		payments.GET("/:paymentID/acknowledgment", h.downloadReceipt(domain.ReceiptAcknowledgment))
	}
}

// limitUploadBody caps the request body before the multipart form is parsed.
func (h *paymentHandler) limitUploadBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxReceiptBytes+formOverheadBytes)
}

// readReceipt loads the uploaded receipt part of a multipart request, never
// buffering more than maxReceiptBytes+1 bytes of it.
func (h *paymentHandler) readReceipt(c *gin.Context) (dto.ReceiptFile, error) {
	fh, err := c.FormFile(receiptFormField)
	if err != nil {
		return dto.ReceiptFile{}, fmt.Errorf("receipt file is required: %w", err)
	}
	tooLarge := fmt.Errorf("receipt exceeds %d bytes", h.maxReceiptBytes)
	if fh.Size > h.maxReceiptBytes {
		return dto.ReceiptFile{}, tooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return dto.ReceiptFile{}, fmt.Errorf("failed to open receipt: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.maxReceiptBytes+1))
	if err != nil {
		return dto.ReceiptFile{}, fmt.Errorf("failed to read receipt: %w", err)
	}
	if int64(len(content)) > h.maxReceiptBytes {
		return dto.ReceiptFile{}, tooLarge
	}
	return dto.ReceiptFile{Filename: fh.Filename, Content: content}, nil
}

// submitPayment accepts a client payment with its payer receipt.
func (h *paymentHandler) submitPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	h.limitUploadBody(c)
	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		logger.Warn("Failed to bind form for SubmitPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	receipt, err := h.readReceipt(c)
	if err != nil {
		logger.Warn("Rejected receipt for SubmitPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.SubmitPayment(c.Request.Context(), req, receipt, actor)
	if err != nil {
		respondError(c, err, "Failed to submit payment")
		return
	}

	logger.Info("Payment submitted", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"), actor)
	if err != nil {
		respondError(c, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// updatePayment applies administrator corrections to a pending payment.
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.UpdatePaymentDetails(c.Request.Context(), c.Param("paymentID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("paymentID"), actor); err != nil {
		respondError(c, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) approvePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.ApprovePayment(c.Request.Context(), c.Param("paymentID"), actor)
	if err != nil {
		respondError(c, err, "Failed to approve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) rejectPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.RejectPayment(c.Request.Context(), c.Param("paymentID"), actor)
	if err != nil {
		respondError(c, err, "Failed to reject payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) attachAcknowledgment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	h.limitUploadBody(c)
	receipt, err := h.readReceipt(c)
	if err != nil {
		logger.Warn("Rejected receipt for AttachAcknowledgment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.AttachAcknowledgmentReceipt(c.Request.Context(), c.Param("paymentID"), receipt, actor)
	if err != nil {
		respondError(c, err, "Failed to attach acknowledgment receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// downloadReceipt streams the payer or acknowledgment receipt as an attachment.
func (h *paymentHandler) downloadReceipt(kind domain.ReceiptKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		file, err := h.paymentService.DownloadReceipt(c.Request.Context(), c.Param("paymentID"), kind, actor)
		if err != nil {
			respondError(c, err, "Failed to download receipt")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Data(http.StatusOK, http.DetectContentType(file.Content), file.Content)
	}
}
