package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project listing.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectClosed     ProjectStatus = "closed"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrUploadNotFound = errors.New("upload not found")
var ErrMissingFields = errors.New("missing required fields")

// Attachment describes a file attached to a project. The binary content
// lives in the upload store; projects only carry the metadata.
type Attachment struct {
	Name        string `json:"name" bson:"name"`
	URL         string `json:"url" bson:"url"`
	ContentType string `json:"content_type" bson:"content_type"`
	SizeBytes   int64  `json:"size_bytes" bson:"size_bytes"`
}

// Project is a work listing created by an authenticated user. Projects are
// never updated or deleted through the API once created.
type Project struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	OwnerID      string        `json:"owner_id" bson:"owner_id"`
	Title        string        `json:"title" bson:"title"`
	Category     string        `json:"category" bson:"category"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	Requirements string        `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Budget       *float64      `json:"budget,omitempty" bson:"budget,omitempty"`
	Deadline     string        `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Location     string        `json:"location,omitempty" bson:"location,omitempty"`
	Files        []Attachment  `json:"files" bson:"files"`
	Status       ProjectStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}
