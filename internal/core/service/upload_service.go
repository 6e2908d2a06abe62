package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// maxUploadBytes caps a single attachment at 25 MiB.
const maxUploadBytes = 25 << 20

type uploadService struct {
	store ports.UploadStore
	log   zerolog.Logger
}

// NewUploadService returns an UploadService implementation.
func NewUploadService(store ports.UploadStore, log zerolog.Logger) ports.UploadService {
	return &uploadService{store: store, log: log}
}

// Store writes files one at a time. Each file succeeds or fails on its own;
// errors are accumulated as human-readable messages and never abort the
// remaining files.
func (s *uploadService) Store(ctx context.Context, ownerID string, files []ports.UploadFile) *ports.UploadResult {
	result := &ports.UploadResult{Uploaded: []ports.UploadedFile{}}

	for _, f := range files {
		if f.SizeBytes > maxUploadBytes {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: file exceeds %d MB limit", f.Name, maxUploadBytes>>20))
			continue
		}

		url, err := s.store.Save(ctx, f.Name, f.ContentType, f.SizeBytes, f.Content)
		if err != nil {
			s.log.Error().Err(err).Str("file", f.Name).Str("owner_id", ownerID).Msg("upload failed")
			result.Errors = append(result.Errors, fmt.Sprintf("%s: upload failed", f.Name))
			continue
		}

		result.Uploaded = append(result.Uploaded, ports.UploadedFile{
			Name:        f.Name,
			URL:         url,
			ContentType: f.ContentType,
			SizeBytes:   f.SizeBytes,
		})
	}

	s.log.Info().Str("owner_id", ownerID).Int("uploaded", len(result.Uploaded)).Int("failed", len(result.Errors)).Msg("upload batch finished")
	return result
}
