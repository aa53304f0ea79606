package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils/pagination"
	"github.com/google/uuid"
)

// SaleService records agent sales and lets administrators review them.
type SaleService struct {
	BaseService
	saleRepo  portsrepo.SaleRepositoryFacade
	agentRepo portsrepo.AgentReader
	pageSize  int
	observers saleObservers
	newID     func() string
}

// SaleOption is a functional option for configuring the sale service
type SaleOption func(*SaleService)

// WithSalePageSize sets the listing page size.
func WithSalePageSize(size int) SaleOption {
	return func(s *SaleService) {
		s.pageSize = size
	}
}

// WithSaleObserver registers an observer for sale events.
func WithSaleObserver(o SaleObserver) SaleOption {
	return func(s *SaleService) {
		s.observers = append(s.observers, o)
	}
}

// WithSaleClock overrides the service clock.
func WithSaleClock(now func() time.Time) SaleOption {
	return func(s *SaleService) {
		s.now = now
	}
}

// WithSaleIDGenerator overrides sale ID generation.
func WithSaleIDGenerator(newID func() string) SaleOption {
	return func(s *SaleService) {
		s.newID = newID
	}
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, agentRepo portsrepo.AgentReader, options ...SaleOption) *SaleService {
	svc := &SaleService{
		saleRepo:  saleRepo,
		agentRepo: agentRepo,
		pageSize:  pagination.DefaultPageSize,
		newID:     uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

// SubmitSale records a pending sale. The seller name and agent ID are taken
// from the agent record, never from the request.
func (s *SaleService) SubmitSale(ctx context.Context, req dto.CreateSaleRequest, actor domain.Actor) (*domain.Sale, error) {
	if err := s.AuthorizeRole(ctx, actor, "submit sales", domain.RoleAgent, domain.RoleAdmin); err != nil {
		return nil, err
	}

	agentID := actor.ID
	if actor.IsAdmin() && strings.TrimSpace(req.AgentID) != "" {
		agentID = strings.TrimSpace(req.AgentID)
	}

	for _, f := range []*string{&req.BuyerName, &req.TotalContractPrice, &req.Project, &req.Block, &req.Lot, &req.ReservationDate} {
		*f = strings.TrimSpace(*f)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	reservationDate, err := utils.ParsePaymentDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}

	agent, err := s.agentRepo.FindAgentByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("agent " + agentID + " does not exist")
		}
		return nil, err
	}
	if !agent.IsActive() {
		return nil, apperrors.NewValidationFailedError("agent " + agentID + " is not active")
	}

	now := s.Now()
	sale := domain.Sale{
		SaleID:             s.newID(),
		AgentID:            agent.AgentID,
		SellerName:         agent.FullName,
		BuyerName:          req.BuyerName,
		TotalContractPrice: parseAmount(req.TotalContractPrice),
		Project:            req.Project,
		Block:              req.Block,
		Lot:                req.Lot,
		ReservationDate:    reservationDate,
		ReceiptPath:        strings.TrimSpace(req.ReceiptPath),
		SecondReceiptPath:  strings.TrimSpace(req.SecondReceiptPath),
		Status:             domain.SalePending,
		Version:            1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save sale", slog.String("sale_id", sale.SaleID))
		return nil, err
	}

	s.observers.SaleSubmitted(ctx, actor, sale)
	s.LogInfo(ctx, "Sale submitted",
		slog.String("sale_id", sale.SaleID),
		slog.String("agent_id", sale.AgentID))
	return &sale, nil
}

// ConfirmSale confirms a pending sale so it counts toward commission.
func (s *SaleService) ConfirmSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	return s.review(ctx, saleID, domain.SaleConfirmed, actor)
}

// RejectSale rejects a pending sale.
func (s *SaleService) RejectSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	return s.review(ctx, saleID, domain.SaleRejected, actor)
}

func (s *SaleService) review(ctx context.Context, saleID string, target domain.SaleStatus, actor domain.Actor) (*domain.Sale, error) {
	if err := s.AuthorizeRole(ctx, actor, "review sales", domain.RoleAdmin); err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	next, err := sale.NextStatus(target)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, sale.Version, next, actor.ID, now); err != nil {
		s.LogError(ctx, err, "Failed to update sale status", slog.String("sale_id", saleID))
		return nil, err
	}
	sale.Status = next
	sale.Version++
	sale.Touch(actor.ID, now)

	s.observers.SaleReviewed(ctx, actor, *sale)
	s.LogInfo(ctx, "Sale reviewed",
		slog.String("sale_id", saleID),
		slog.String("status", string(next)))
	return sale, nil
}

// ListSales lists sales newest first. Agents are restricted to their own.
func (s *SaleService) ListSales(ctx context.Context, params dto.ListSalesParams, actor domain.Actor) (*dto.ListSalesResponse, error) {
	if err := s.AuthorizeRole(ctx, actor, "list sales", domain.RoleAdmin, domain.RoleAgent); err != nil {
		return nil, err
	}

	filter := portsrepo.SaleFilter{
		AgentID: strings.TrimSpace(params.AgentID),
		Status:  domain.SaleStatus(params.Status),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationFailedError("status must be one of pending, confirmed, rejected")
	}
	if actor.Role == domain.RoleAgent {
		filter.AgentID = actor.ID
	}

	page := pagination.NewPage(params.Page, s.pageSize)
	total, err := s.saleRepo.CountSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListSales(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return &dto.ListSalesResponse{
		Sales:      dto.ToListSaleResponse(sales),
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
	}, nil
}
