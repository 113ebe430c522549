package content

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	// errors
	ErrBannerNotFound = errors.New("banner not found")
	ErrNoHomeContent  = errors.New("home content not set")
)

type (
	Repository interface {
		CreateBanner(ctx context.Context, b Banner) (Banner, error)
		// QueryBanners returns banners ordered by display order, then newest first.
		QueryBanners(ctx context.Context, activeOnly bool) ([]Banner, error)
		GetBannerByID(ctx context.Context, id string) (Banner, error)
		UpdateBanner(ctx context.Context, b Banner, active *bool, order *int) (Banner, error)
		DeleteBannersByID(ctx context.Context, ids ...string) error

		GetHomeContent(ctx context.Context) (HomeContent, error)
		UpsertHomeContent(ctx context.Context, hc HomeContent) (HomeContent, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) CreateBanner(ctx context.Context, nb NewBanner) (Banner, error) {
	active := true
	if nb.Active != nil {
		active = *nb.Active
	}
	b := Banner{
		Title:     nb.Title,
		ImageURL:  nb.ImageURL,
		LinkURL:   nb.LinkURL,
		Active:    active,
		Order:     nb.Order,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateBanner(ctx, b)
}

// QueryBanners lists every banner for the admin console.
func (svc *Service) QueryBanners(ctx context.Context) ([]Banner, error) {
	return svc.repo.QueryBanners(ctx, false)
}

// ActiveBanners lists the banners shown publicly.
func (svc *Service) ActiveBanners(ctx context.Context) ([]Banner, error) {
	return svc.repo.QueryBanners(ctx, true)
}

func (svc *Service) GetBannerByID(ctx context.Context, id string) (Banner, error) {
	b, err := svc.repo.GetBannerByID(ctx, id)
	if err != nil {
		if err == ErrBannerNotFound {
			return Banner{}, core.NewNotFoundError(err)
		}
		return Banner{}, err
	}
	return b, nil
}

func (svc *Service) UpdateBanner(ctx context.Context, id string, ub UpdateBanner) (Banner, error) {
	b := Banner{
		ID:       id,
		Title:    ub.Title,
		ImageURL: ub.ImageURL,
		LinkURL:  ub.LinkURL,
	}
	updated, err := svc.repo.UpdateBanner(ctx, b, ub.Active, ub.Order)
	if err != nil {
		if err == ErrBannerNotFound {
			return Banner{}, core.NewNotFoundError(err)
		}
		return Banner{}, err
	}
	return updated, nil
}

func (svc *Service) DeleteBanners(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteBannersByID(ctx, ids...)
}

// HomeContent returns the hero block, falling back to the built-in default
// when none has been saved.
func (svc *Service) HomeContent(ctx context.Context) (HomeContent, error) {
	hc, err := svc.repo.GetHomeContent(ctx)
	if err != nil {
		if err == ErrNoHomeContent {
			return DefaultHomeContent(), nil
		}
		return HomeContent{}, err
	}
	return hc, nil
}

func (svc *Service) SetHomeContent(ctx context.Context, uh UpdateHomeContent) (HomeContent, error) {
	hc := HomeContent{
		HeroTitle:     uh.HeroTitle,
		HeroSubtitle:  uh.HeroSubtitle,
		BackgroundURL: uh.BackgroundURL,
		UpdatedAt:     time.Now().UTC(),
	}
	return svc.repo.UpsertHomeContent(ctx, hc)
}
