package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const uploadsBucket = "project_files"

// UploadStore implements ports.UploadStore on a GridFS bucket. Stored files
// are addressed as <base URL>/api/uploads/<object id>.
type UploadStore struct {
	bucket  *gridfs.Bucket
	baseURL string
}

func NewUploadStore(db *mongo.Database, baseURL string) (*UploadStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(uploadsBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &UploadStore{bucket: bucket, baseURL: baseURL}, nil
}

func (s *UploadStore) Save(ctx context.Context, name, contentType string, size int64, r io.Reader) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"content_type": contentType,
		"size_bytes":   size,
	})

	oid := primitive.NewObjectID()
	if err := s.bucket.UploadFromStreamWithID(oid, name, r, opts); err != nil {
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	return fmt.Sprintf("%s/api/uploads/%s", s.baseURL, oid.Hex()), nil
}

func (s *UploadStore) Open(ctx context.Context, id string) (*ports.StoredFile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUploadNotFound
	}

	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("gridfs open: %w", err)
	}

	file := stream.GetFile()
	stored := &ports.StoredFile{
		Name:      file.Name,
		SizeBytes: file.Length,
		Content:   stream,
	}
	if file.Metadata != nil {
		var meta struct {
			ContentType string `bson:"content_type"`
		}
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			stored.ContentType = meta.ContentType
		}
	}
	return stored, nil
}
