package material

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	// errors
	ErrNotFound = errors.New("material not found")
)

type (
	Repository interface {
		CreateMaterial(ctx context.Context, mat Material) (Material, error)
		// QueryAllMaterials returns all materials, newest first.
		QueryAllMaterials(ctx context.Context) ([]Material, error)
		// QueryVisibleMaterials applies the VisibilityFilter rules, newest first.
		QueryVisibleMaterials(ctx context.Context, filter VisibilityFilter) ([]Material, error)
		GetMaterialByID(ctx context.Context, id string) (Material, error)
		UpdateMaterial(ctx context.Context, mat Material) (Material, error)
		DeleteMaterialsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nm NewMaterial) (Material, error) {
	mat := Material{
		Title:       nm.Title,
		Kind:        nm.Kind,
		VideoURL:    nm.VideoURL,
		FileURL:     nm.FileURL,
		CourseName:  nm.CourseName,
		LecturerID:  nm.LecturerID,
		Description: nm.Description,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateMaterial(ctx, mat)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Material, error) {
	return svc.repo.QueryAllMaterials(ctx)
}

// ResolveVisible returns the materials a student is entitled to see,
// newest first. Read-only; no side effects.
func (svc *Service) ResolveVisible(ctx context.Context, filter VisibilityFilter) ([]Material, error) {
	filter.Clean()
	return svc.repo.QueryVisibleMaterials(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Material, error) {
	mat, err := svc.repo.GetMaterialByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return Material{}, core.NewNotFoundError(err)
		}
		return Material{}, err
	}
	return mat, nil
}

func (svc *Service) Update(ctx context.Context, id string, um UpdateMaterial) (Material, error) {
	mat := Material{
		ID:          id,
		Title:       um.Title,
		Kind:        um.Kind,
		VideoURL:    um.VideoURL,
		FileURL:     um.FileURL,
		CourseName:  um.CourseName,
		LecturerID:  um.LecturerID,
		Description: um.Description,
	}
	updated, err := svc.repo.UpdateMaterial(ctx, mat)
	if err != nil {
		if err == ErrNotFound {
			return Material{}, core.NewNotFoundError(err)
		}
		return Material{}, err
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteMaterialsByID(ctx, ids...)
}
