package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type stubProjectRepo struct {
	projects  []*domain.Project
	listLimit int64
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	clone := *p
	if clone.ID == "" {
		clone.ID = "project_1"
	}
	r.projects = append(r.projects, &clone)
	return &clone, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) List(_ context.Context, limit int64) ([]*domain.Project, error) {
	r.listLimit = limit
	return r.projects, nil
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

func TestProjectService_Create_Success(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := NewProjectService(repo, zerolog.Nop())

	budget := 1500.0
	project, err := svc.Create(context.Background(), ports.CreateProjectInput{
		OwnerID:  "profile_1",
		Title:    "Landing page",
		Category: "web",
		Budget:   &budget,
		Files: []ports.AttachmentInput{
			{Name: "brief.pdf", URL: "/api/uploads/abc", ContentType: "application/pdf", SizeBytes: 2048},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if project.Status != domain.ProjectOpen {
		t.Fatalf("expected status open, got %s", project.Status)
	}
	if project.OwnerID != "profile_1" {
		t.Fatalf("owner not set: %+v", project)
	}
	if len(project.Files) != 1 || project.Files[0].Name != "brief.pdf" {
		t.Fatalf("attachments not carried over: %+v", project.Files)
	}
}

func TestProjectService_Create_MissingFields(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{}, zerolog.Nop())

	cases := []ports.CreateProjectInput{
		{OwnerID: "profile_1", Category: "web"},
		{OwnerID: "profile_1", Title: "No category"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); err != domain.ErrMissingFields {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", input, err)
		}
	}
}

func TestProjectService_Create_NoOwner(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateProjectInput{Title: "t", Category: "c"}); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProjectService_List_AppliesCap(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := NewProjectService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.listLimit != listProjectsLimit {
		t.Fatalf("expected limit %d, got %d", listProjectsLimit, repo.listLimit)
	}
}
