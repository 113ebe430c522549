package lecturer

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	// errors
	ErrNotFound    = errors.New("lecturer not found")
	ErrEmailExists = errors.New("a lecturer with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Lecturer) error
		CreateLecturer(ctx context.Context, lect Lecturer) (Lecturer, error)
		QueryAllLecturers(ctx context.Context) ([]Lecturer, error)
		GetLecturerByID(ctx context.Context, id string) (Lecturer, error)
		// GetLecturerNames resolves ids to display names; unknown ids are absent.
		GetLecturerNames(ctx context.Context, ids []string) (map[string]string, error)
		UpdateLecturer(ctx context.Context, lect Lecturer) (Lecturer, error)
		DeleteLecturersByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) CheckEmailUniqueness(ctx context.Context, email string, excl ...Lecturer) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excl...); err != nil {
		if err == ErrEmailExists {
			return core.NewDuplicateError(err, "email")
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nl NewLecturer) (Lecturer, error) {
	lect := Lecturer{
		Name:       nl.Name,
		Email:      nl.Email,
		Department: nl.Department,
		Bio:        nl.Bio,
		PhotoURL:   nl.PhotoURL,
	}
	return svc.repo.CreateLecturer(ctx, lect)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Lecturer, error) {
	return svc.repo.QueryAllLecturers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Lecturer, error) {
	lect, err := svc.repo.GetLecturerByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return Lecturer{}, core.NewNotFoundError(err)
		}
		return Lecturer{}, err
	}
	return lect, nil
}

func (svc *Service) Update(ctx context.Context, id string, ul UpdateLecturer) (Lecturer, error) {
	lect := Lecturer{
		ID:         id,
		Name:       ul.Name,
		Email:      ul.Email,
		Department: ul.Department,
		Bio:        ul.Bio,
		PhotoURL:   ul.PhotoURL,
	}
	updated, err := svc.repo.UpdateLecturer(ctx, lect)
	if err != nil {
		if err == ErrNotFound {
			return Lecturer{}, core.NewNotFoundError(err)
		}
		return Lecturer{}, err
	}
	return updated, nil
}

// Delete removes lecturers without touching materials that reference them;
// dangling material references are tolerated and resolved at read time.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLecturersByID(ctx, ids...)
}
