package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const listProjectsLimit = 200

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// Create inserts a new project listing owned by the caller. Title and
// category are the only mandatory fields.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.Title == "" || input.Category == "" {
		return nil, domain.ErrMissingFields
	}

	files := make([]domain.Attachment, 0, len(input.Files))
	for _, f := range input.Files {
		files = append(files, domain.Attachment{
			Name:        f.Name,
			URL:         f.URL,
			ContentType: f.ContentType,
			SizeBytes:   f.SizeBytes,
		})
	}

	project := &domain.Project{
		OwnerID:      input.OwnerID,
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		Requirements: input.Requirements,
		Budget:       input.Budget,
		Deadline:     input.Deadline,
		Location:     input.Location,
		Files:        files,
		Status:       domain.ProjectOpen,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", created.OwnerID).Str("category", created.Category).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx, listProjectsLimit)
}
