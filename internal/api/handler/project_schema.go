package handler

import (
	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type attachmentRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type createProjectRequest struct {
	Title        string              `json:"title"    validate:"required"`
	Category     string              `json:"category" validate:"required"`
	Description  string              `json:"description"`
	Requirements string              `json:"requirements"`
	Budget       *float64            `json:"budget"`
	Deadline     string              `json:"deadline"`
	Location     string              `json:"location"`
	Files        []attachmentRequest `json:"files"`
}

func (r createProjectRequest) toInput(ownerID string) ports.CreateProjectInput {
	files := make([]ports.AttachmentInput, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, ports.AttachmentInput{
			Name:        f.Name,
			URL:         f.URL,
			ContentType: f.ContentType,
			SizeBytes:   f.SizeBytes,
		})
	}
	return ports.CreateProjectInput{
		OwnerID:      ownerID,
		Title:        r.Title,
		Category:     r.Category,
		Description:  r.Description,
		Requirements: r.Requirements,
		Budget:       r.Budget,
		Deadline:     r.Deadline,
		Location:     r.Location,
		Files:        files,
	}
}

type projectResponse struct {
	Project *domain.Project `json:"project"`
}

type projectListResponse struct {
	Projects []*domain.Project `json:"projects"`
}
