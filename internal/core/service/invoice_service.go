package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const listInvoicesLimit = 500

type InvoiceService struct {
	repo   ports.InvoiceRepository
	logger zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, logger: logger}
}

// Create inserts an admin-issued invoice. UserID and a positive amount are
// mandatory; no derived fields are computed.
func (s *InvoiceService) Create(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if input.UserID == "" || input.Amount <= 0 {
		return nil, domain.ErrMissingFields
	}

	invoice := &domain.Invoice{
		UserID:      input.UserID,
		ProjectID:   input.ProjectID,
		Description: input.Description,
		Amount:      input.Amount,
		Status:      domain.InvoicePending,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create invoice")
		return nil, err
	}

	s.logger.Info().Str("invoice_id", created.ID).Str("user_id", created.UserID).Float64("amount", created.Amount).Msg("invoice created")
	return created, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns invoices newest-first, capped at 500 rows.
func (s *InvoiceService) List(ctx context.Context) ([]*domain.Invoice, error) {
	return s.repo.List(ctx, listInvoicesLimit)
}

// MarkPaid flips the invoice to paid and records a manual transaction.
//
// This is a two-step write: invoice update, then transaction insert. If the
// insert fails the update is NOT rolled back, and a second MarkPaid on an
// already-paid invoice records a second transaction.
func (s *InvoiceService) MarkPaid(ctx context.Context, id, markedBy string) (*ports.MarkPaidResult, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated, err := s.repo.MarkPaid(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	tx, err := s.repo.InsertTransaction(ctx, &domain.Transaction{
		InvoiceID:       id,
		Amount:          invoice.Amount,
		Provider:        "manual_admin",
		Status:          "success",
		ProviderPayload: map[string]any{"marked_by": markedBy},
		CreatedAt:       now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("transaction insert failed after invoice update")
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	s.logger.Info().Str("invoice_id", id).Str("marked_by", markedBy).Msg("invoice marked paid")
	return &ports.MarkPaidResult{Invoice: updated, Transaction: tx}, nil
}
