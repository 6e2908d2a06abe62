package ports

import (
	"context"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// ProjectRepository defines persistence operations for project listings.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns projects newest-first, capped at limit.
	List(ctx context.Context, limit int64) ([]*domain.Project, error)
	Count(ctx context.Context) (int64, error)
}
