package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

func TestOverviewService_Totals(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.profiles["p1"] = &domain.Profile{ID: "p1"}
	profiles.profiles["p2"] = &domain.Profile{ID: "p2"}

	projects := &stubProjectRepo{projects: []*domain.Project{{ID: "pr1"}}}

	invoices := newStubInvoiceRepo()
	invoices.invoices["i1"] = &domain.Invoice{ID: "i1", UserID: "p1", Amount: 100, Status: domain.InvoicePaid}
	invoices.invoices["i2"] = &domain.Invoice{ID: "i2", UserID: "p2", Amount: 50, Status: domain.InvoicePending}
	invoices.totals = []ports.UserInvoiceTotal{{UserID: "p1", Total: 100}}

	svc := NewOverviewService(profiles, projects, invoices, zerolog.Nop())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if overview.TotalUsers != 2 {
		t.Fatalf("expected 2 users, got %d", overview.TotalUsers)
	}
	if overview.TotalProjects != 1 {
		t.Fatalf("expected 1 project, got %d", overview.TotalProjects)
	}
	if overview.TotalInvoices != 2 {
		t.Fatalf("expected 2 invoices, got %d", overview.TotalInvoices)
	}
	if overview.TotalInvoiced != 150.00 {
		t.Fatalf("expected 150.00 invoiced, got %v", overview.TotalInvoiced)
	}
	if overview.TotalPaid != 100.00 {
		t.Fatalf("expected 100.00 paid, got %v", overview.TotalPaid)
	}
	if overview.AdminCommission != 12.00 {
		t.Fatalf("expected 12.00 commission, got %v", overview.AdminCommission)
	}
	if overview.PayoutsDue != 88.00 {
		t.Fatalf("expected 88.00 payouts, got %v", overview.PayoutsDue)
	}
	if len(overview.TopUsers) != 1 || overview.TopUsers[0].UserID != "p1" {
		t.Fatalf("unexpected top users: %+v", overview.TopUsers)
	}
}

func TestOverviewService_RoundsToCents(t *testing.T) {
	profiles := newStubProfileRepo()
	projects := &stubProjectRepo{}

	invoices := newStubInvoiceRepo()
	invoices.invoices["i1"] = &domain.Invoice{ID: "i1", Amount: 99.99, Status: domain.InvoicePaid}

	svc := NewOverviewService(profiles, projects, invoices, zerolog.Nop())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.AdminCommission != 12.00 {
		t.Fatalf("expected commission rounded to 12.00, got %v", overview.AdminCommission)
	}
	if overview.PayoutsDue != 87.99 {
		t.Fatalf("expected payouts rounded to 87.99, got %v", overview.PayoutsDue)
	}
}

// The per-user aggregate is best-effort: an error from the repository leaves
// topUsers empty instead of failing the whole view.
func TestOverviewService_TopUsersSoftFail(t *testing.T) {
	invoices := newStubInvoiceRepo()
	invoices.totalsErr = errors.New("aggregation unsupported")

	svc := NewOverviewService(newStubProfileRepo(), &stubProjectRepo{}, invoices, zerolog.Nop())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.TopUsers == nil || len(overview.TopUsers) != 0 {
		t.Fatalf("expected empty top users, got %+v", overview.TopUsers)
	}
}
