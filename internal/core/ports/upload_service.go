package ports

import (
	"context"
	"io"
)

// UploadStore persists attachment content and returns a public URL for it.
type UploadStore interface {
	Save(ctx context.Context, name, contentType string, size int64, r io.Reader) (string, error)
	// Open streams a stored file back by its id.
	Open(ctx context.Context, id string) (*StoredFile, error)
}

// StoredFile is an opened attachment ready to be streamed to a client.
// Callers must close Content.
type StoredFile struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Content     io.ReadCloser
}

// UploadFile is one file submitted in a multi-file upload.
type UploadFile struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

// UploadedFile is the stored metadata for one successfully uploaded file.
type UploadedFile struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// UploadResult reports per-file outcomes of a batch upload. A failure on one
// file never aborts the remaining files.
type UploadResult struct {
	Uploaded []UploadedFile `json:"uploaded"`
	Errors   []string       `json:"errors,omitempty"`
}

// UploadService stores attachment files one at a time.
type UploadService interface {
	Store(ctx context.Context, ownerID string, files []UploadFile) *UploadResult
}
