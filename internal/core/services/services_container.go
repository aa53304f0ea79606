package services

import (
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/platform/config"
)

// Observers groups the listeners wired into the services at startup.
type Observers struct {
	Payment     []PaymentObserver
	Sale        []SaleObserver
	Aggregation []AggregationObserver
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, observers Observers) *portssvc.ServiceContainer {
	paymentOpts := []PaymentOption{
		WithReceiptBuckets(cfg.PayerReceiptBucket, cfg.AckReceiptBucket),
		WithPaymentPageSize(cfg.PaymentPageSize),
		WithMaxReceiptBytes(cfg.MaxReceiptBytes),
	}
	for _, o := range observers.Payment {
		paymentOpts = append(paymentOpts, WithPaymentObserver(o))
	}

	saleOpts := []SaleOption{WithSalePageSize(cfg.PaymentPageSize)}
	for _, o := range observers.Sale {
		saleOpts = append(saleOpts, WithSaleObserver(o))
	}

	var commissionOpts []CommissionOption
	if len(cfg.CommissionTiers.Tiers()) > 0 {
		commissionOpts = append(commissionOpts, WithTierTable(cfg.CommissionTiers))
	}
	for _, o := range observers.Aggregation {
		commissionOpts = append(commissionOpts, WithAggregationObserver(o))
	}

	return &portssvc.ServiceContainer{
		Payment:    NewPaymentService(repos.PaymentRepo, repos.BalanceRepo, repos.ReceiptStore, paymentOpts...),
		Sale:       NewSaleService(repos.SaleRepo, repos.AgentRepo, saleOpts...),
		Commission: NewCommissionService(repos.AgentRepo, repos.SaleRepo, commissionOpts...),
		Balance:    NewBalanceService(repos.BalanceRepo),
	}
}
