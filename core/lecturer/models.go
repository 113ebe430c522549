package lecturer

import (
	"context"

	"github.com/tuitionlk/portal/core"
)

// Lecturer is a non-login profile entity used for material attribution.
type Lecturer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	PhotoURL   string `json:"photo_url"`
}

// NewLecturer contains information needed to create a new Lecturer.
type NewLecturer struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	PhotoURL   string `json:"photo_url"`
}

func (nl *NewLecturer) Validate(ctx context.Context, svc *Service) error {
	nl.Name = core.CleanString(nl.Name)
	nl.Email = core.CleanString(nl.Email, true /* lower */)

	if err := svc.validate.Struct(nl); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, nl.Email)
}

// UpdateLecturer defines what information may be provided to modify an existing Lecturer.
type UpdateLecturer struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	PhotoURL   string `json:"photo_url"`
}

// Validate resolves the update against the original record: unset fields
// fall back to orig, so the validated value is the full record to store.
// Repositories write every field through unchanged.
func (ul *UpdateLecturer) Validate(ctx context.Context, orig Lecturer, svc *Service) error {
	name := core.CleanString(ul.Name)
	if name != "" {
		ul.Name = name
	} else {
		ul.Name = orig.Name
	}

	email := core.CleanString(ul.Email, true /* lower */)
	if email != "" {
		ul.Email = email
	} else {
		ul.Email = orig.Email
	}

	if ul.Department == "" {
		ul.Department = orig.Department
	}
	if ul.Bio == "" {
		ul.Bio = orig.Bio
	}
	if ul.PhotoURL == "" {
		ul.PhotoURL = orig.PhotoURL
	}

	if err := svc.validate.Struct(ul); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, ul.Email, orig)
}
