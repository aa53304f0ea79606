// posthog_client.go provides a wrapper around the posthog.Client to make it easier to use and handle when its not initialized.
package utils

import (
	"context"
	"log/slog"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper forwards product analytics events. A zero value is a
// no-op, so callers never need to check whether analytics is configured.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns a no-op wrapper when apiKey is empty.
func InitializePosthogClient(apiKey string, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctId string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctId), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctId,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}

// PaymentSubmitted records a client payment upload.
func (w *PosthogClientWrapper) PaymentSubmitted(_ context.Context, actor domain.Actor, p domain.Payment) {
	w.Enqueue(actor.ID, "payment_submitted", map[string]any{
		"payment_id": p.PaymentID,
		"project":    p.Project,
		"amount":     FormatPeso(p.Amount),
		"due_date":   string(p.DueDate),
		"vat":        string(p.VAT),
	})
}

// PaymentTransitioned records an administrator action on a payment.
func (w *PosthogClientWrapper) PaymentTransitioned(_ context.Context, actor domain.Actor, p domain.Payment, action domain.PaymentAction) {
	w.Enqueue(actor.ID, "payment_reviewed", map[string]any{
		"payment_id": p.PaymentID,
		"action":     string(action),
		"status":     string(p.Status),
	})
}

// ReceiptCompensated is not tracked as a product event.
func (w *PosthogClientWrapper) ReceiptCompensated(context.Context, string, error) {}

// SaleSubmitted records an agent sale.
func (w *PosthogClientWrapper) SaleSubmitted(_ context.Context, actor domain.Actor, s domain.Sale) {
	w.Enqueue(actor.ID, "sale_submitted", map[string]any{
		"sale_id":              s.SaleID,
		"agent_id":             s.AgentID,
		"project":              s.Project,
		"total_contract_price": FormatPeso(s.TotalContractPrice),
	})
}

// SaleReviewed records a confirmation or rejection.
func (w *PosthogClientWrapper) SaleReviewed(_ context.Context, actor domain.Actor, s domain.Sale) {
	w.Enqueue(actor.ID, "sale_reviewed", map[string]any{
		"sale_id":  s.SaleID,
		"agent_id": s.AgentID,
		"status":   string(s.Status),
	})
}

// AggregationCompleted is not tracked as a product event.
func (w *PosthogClientWrapper) AggregationCompleted(context.Context, time.Duration, int, int) {}
