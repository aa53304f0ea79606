package utils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPosthogClientWrapper_DisabledIsNoop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := InitializePosthogClient("", "https://eu.i.posthog.com", logger)
	assert.False(t, w.IsInitialized())

	var nilWrapper *PosthogClientWrapper
	assert.False(t, nilWrapper.IsInitialized())

	ctx := context.Background()
	actor := domain.Actor{ID: "client-1", Role: domain.RoleClient}
	assert.NotPanics(t, func() {
		w.PaymentSubmitted(ctx, actor, domain.Payment{PaymentID: "pay-1"})
		w.PaymentTransitioned(ctx, actor, domain.Payment{PaymentID: "pay-1"}, domain.ActionApprove)
		w.SaleSubmitted(ctx, actor, domain.Sale{SaleID: "sale-1"})
		w.SaleReviewed(ctx, actor, domain.Sale{SaleID: "sale-1"})
		nilWrapper.Enqueue("client-1", "payment_submitted", nil)
		nilWrapper.Close()
		w.Close()
	})
}
