package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type stubUploadStore struct {
	failOn string
	saved  []string
}

func (s *stubUploadStore) Save(_ context.Context, name, contentType string, size int64, r io.Reader) (string, error) {
	if name == s.failOn {
		return "", errors.New("gridfs write failed")
	}
	s.saved = append(s.saved, name)
	return "/api/uploads/" + name, nil
}

func (s *stubUploadStore) Open(_ context.Context, id string) (*ports.StoredFile, error) {
	return nil, domain.ErrUploadNotFound
}

func TestUploadService_Store_Success(t *testing.T) {
	store := &stubUploadStore{}
	svc := NewUploadService(store, zerolog.Nop())

	result := svc.Store(context.Background(), "profile_1", []ports.UploadFile{
		{Name: "a.txt", ContentType: "text/plain", SizeBytes: 3, Content: strings.NewReader("abc")},
		{Name: "b.txt", ContentType: "text/plain", SizeBytes: 3, Content: strings.NewReader("def")},
	})

	if len(result.Uploaded) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(result.Uploaded))
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Uploaded[0].URL != "/api/uploads/a.txt" {
		t.Fatalf("unexpected url: %s", result.Uploaded[0].URL)
	}
}

// One failing file must not abort the rest of the batch.
func TestUploadService_Store_PartialFailure(t *testing.T) {
	store := &stubUploadStore{failOn: "bad.bin"}
	svc := NewUploadService(store, zerolog.Nop())

	result := svc.Store(context.Background(), "profile_1", []ports.UploadFile{
		{Name: "ok1.txt", SizeBytes: 1, Content: strings.NewReader("x")},
		{Name: "bad.bin", SizeBytes: 1, Content: strings.NewReader("x")},
		{Name: "ok2.txt", SizeBytes: 1, Content: strings.NewReader("x")},
	})

	if len(result.Uploaded) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(result.Uploaded))
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "bad.bin:") {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func TestUploadService_Store_SizeLimit(t *testing.T) {
	store := &stubUploadStore{}
	svc := NewUploadService(store, zerolog.Nop())

	result := svc.Store(context.Background(), "profile_1", []ports.UploadFile{
		{Name: "huge.zip", SizeBytes: maxUploadBytes + 1, Content: strings.NewReader("")},
	})

	if len(result.Uploaded) != 0 {
		t.Fatalf("oversize file must be rejected: %+v", result.Uploaded)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if len(store.saved) != 0 {
		t.Fatalf("oversize file reached the store")
	}
}
