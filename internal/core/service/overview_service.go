package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// CommissionRate is the fixed platform share of paid invoice amounts.
const CommissionRate = 0.12

const topUsersLimit = 10

type OverviewService struct {
	profiles ports.ProfileRepository
	projects ports.ProjectRepository
	invoices ports.InvoiceRepository
	logger   zerolog.Logger
}

func NewOverviewService(
	profiles ports.ProfileRepository,
	projects ports.ProjectRepository,
	invoices ports.InvoiceRepository,
	logger zerolog.Logger,
) *OverviewService {
	return &OverviewService{profiles: profiles, projects: projects, invoices: invoices, logger: logger}
}

// Overview aggregates counts and invoice totals for the admin dashboard.
// The per-user aggregate is best-effort: if the repository cannot provide it
// the list stays empty rather than failing the whole view.
func (s *OverviewService) Overview(ctx context.Context) (*ports.Overview, error) {
	totalUsers, err := s.profiles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	invoices, err := s.invoices.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	var totalInvoiced, totalPaid float64
	for _, inv := range invoices {
		totalInvoiced += inv.Amount
		if inv.Status == domain.InvoicePaid {
			totalPaid += inv.Amount
		}
	}

	topUsers, err := s.invoices.TotalsByUser(ctx, topUsersLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("per-user invoice aggregate unavailable")
		topUsers = []ports.UserInvoiceTotal{}
	}

	return &ports.Overview{
		TotalUsers:      totalUsers,
		TotalProjects:   totalProjects,
		TotalInvoices:   len(invoices),
		TotalInvoiced:   round2(totalInvoiced),
		TotalPaid:       round2(totalPaid),
		AdminCommission: round2(totalPaid * CommissionRate),
		PayoutsDue:      round2(totalPaid * (1 - CommissionRate)),
		TopUsers:        topUsers,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
