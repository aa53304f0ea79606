package services

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// PaymentObserver is notified after payment lifecycle events are persisted.
// Implementations must not block.
type PaymentObserver interface {
	PaymentSubmitted(ctx context.Context, actor domain.Actor, payment domain.Payment)
	PaymentTransitioned(ctx context.Context, actor domain.Actor, payment domain.Payment, action domain.PaymentAction)
	ReceiptCompensated(ctx context.Context, bucket string, err error)
}

// SaleObserver is notified after sales are recorded or reviewed.
type SaleObserver interface {
	SaleSubmitted(ctx context.Context, actor domain.Actor, sale domain.Sale)
	SaleReviewed(ctx context.Context, actor domain.Actor, sale domain.Sale)
}

// AggregationObserver receives the cost of each leaderboard computation.
type AggregationObserver interface {
	AggregationCompleted(ctx context.Context, elapsed time.Duration, agents int, sales int)
}

type paymentObservers []PaymentObserver

func (o paymentObservers) PaymentSubmitted(ctx context.Context, actor domain.Actor, payment domain.Payment) {
	for _, obs := range o {
		obs.PaymentSubmitted(ctx, actor, payment)
	}
}

func (o paymentObservers) PaymentTransitioned(ctx context.Context, actor domain.Actor, payment domain.Payment, action domain.PaymentAction) {
	for _, obs := range o {
		obs.PaymentTransitioned(ctx, actor, payment, action)
	}
}

func (o paymentObservers) ReceiptCompensated(ctx context.Context, bucket string, err error) {
	for _, obs := range o {
		obs.ReceiptCompensated(ctx, bucket, err)
	}
}

type saleObservers []SaleObserver

func (o saleObservers) SaleSubmitted(ctx context.Context, actor domain.Actor, sale domain.Sale) {
	for _, obs := range o {
		obs.SaleSubmitted(ctx, actor, sale)
	}
}

func (o saleObservers) SaleReviewed(ctx context.Context, actor domain.Actor, sale domain.Sale) {
	for _, obs := range o {
		obs.SaleReviewed(ctx, actor, sale)
	}
}

type aggregationObservers []AggregationObserver

func (o aggregationObservers) AggregationCompleted(ctx context.Context, elapsed time.Duration, agents int, sales int) {
	for _, obs := range o {
		obs.AggregationCompleted(ctx, elapsed, agents, sales)
	}
}
