package ports

import (
	"context"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// AttachmentInput is the metadata for one file attached to a project.
type AttachmentInput struct {
	Name        string
	URL         string
	ContentType string
	SizeBytes   int64
}

// CreateProjectInput carries all data needed to create a project listing.
// OwnerID comes from the session, never from the request body.
type CreateProjectInput struct {
	OwnerID      string
	Title        string
	Category     string
	Description  string
	Requirements string
	Budget       *float64
	Deadline     string
	Location     string
	Files        []AttachmentInput
}

// ProjectService defines use-case operations for project listings.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}
