package material

import (
	"context"
	"time"

	"github.com/tuitionlk/portal/core"
)

// Kind tells a recording (video link) apart from a document (file link).
type Kind string

const (
	KindRecording Kind = "recording"
	KindDocument  Kind = "document"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRecording, KindDocument:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Material is a learning resource record. An empty LecturerID means the
// material is public (unscoped); an empty CourseName means it is untagged.
type Material struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Kind        Kind      `json:"kind"`
	VideoURL    string    `json:"video_url,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	CourseName  string    `json:"course_name,omitempty"`
	LecturerID  string    `json:"lecturer_id,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewMaterial contains information needed to create a new Material.
// Exactly one content reference is required: a video URL for recordings,
// a file URL for documents (enforced by struct-level validation).
type NewMaterial struct {
	Title       string `json:"title" validate:"required"`
	Kind        Kind   `json:"kind" validate:"omitempty,materialkind"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
	CourseName  string `json:"course_name"`
	LecturerID  string `json:"lecturer_id"`
	Description string `json:"description"`
}

func (nm *NewMaterial) Validate(svc *Service) error {
	nm.Title = core.CleanString(nm.Title)
	nm.CourseName = core.CleanString(nm.CourseName)
	nm.LecturerID = core.CleanString(nm.LecturerID)
	if nm.Kind == "" {
		nm.Kind = KindRecording
	}
	return svc.validate.Struct(nm)
}

// UpdateMaterial defines what information may be provided to modify an existing Material.
type UpdateMaterial struct {
	Title       string `json:"title"`
	Kind        Kind   `json:"kind" validate:"omitempty,materialkind"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
	CourseName  string `json:"course_name"`
	LecturerID  string `json:"lecturer_id"`
	Description string `json:"description"`
}

// Validate resolves the update against the original record: unset fields
// fall back to orig, so the validated value is the full record to store.
// Repositories write every field through unchanged.
func (um *UpdateMaterial) Validate(ctx context.Context, orig Material, svc *Service) error {
	title := core.CleanString(um.Title)
	if title != "" {
		um.Title = title
	} else {
		um.Title = orig.Title
	}
	if um.Kind == "" {
		um.Kind = orig.Kind
	}
	um.CourseName = core.CleanString(um.CourseName)
	um.LecturerID = core.CleanString(um.LecturerID)
	if um.Description == "" {
		um.Description = orig.Description
	}

	// Only the content reference the kind calls for falls back to the
	// original; the other one stays empty so a kind switch does not carry
	// the stale reference along.
	switch um.Kind {
	case KindRecording:
		if um.VideoURL == "" {
			um.VideoURL = orig.VideoURL
		}
	case KindDocument:
		if um.FileURL == "" {
			um.FileURL = orig.FileURL
		}
	}
	return svc.validate.Struct(um)
}
