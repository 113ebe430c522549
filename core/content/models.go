package content

import (
	"context"
	"time"

	"github.com/tuitionlk/portal/core"
)

// Banner is a promotional image shown on the homepage and student dashboards.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewBanner contains information needed to create a new Banner.
type NewBanner struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
	Active   *bool  `json:"active"`
	Order    int    `json:"order"`
}

func (nb *NewBanner) Validate(svc *Service) error {
	nb.Title = core.CleanString(nb.Title)
	return svc.validate.Struct(nb)
}

// UpdateBanner defines what information may be provided to modify an existing Banner.
type UpdateBanner struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
	Active   *bool  `json:"active"`
	Order    *int   `json:"order"`
}

func (ub *UpdateBanner) Validate(ctx context.Context, orig Banner, svc *Service) error {
	title := core.CleanString(ub.Title)
	if title != "" {
		ub.Title = title
	} else {
		ub.Title = orig.Title
	}
	if ub.ImageURL == "" {
		ub.ImageURL = orig.ImageURL
	}
	return svc.validate.Struct(ub)
}

// HomeContent is the singleton homepage hero block.
type HomeContent struct {
	HeroTitle     string    `json:"hero_title"`
	HeroSubtitle  string    `json:"hero_subtitle"`
	BackgroundURL string    `json:"background_url"`
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// DefaultHomeContent is served when no hero block has been saved yet.
func DefaultHomeContent() HomeContent {
	return HomeContent{
		HeroTitle:    "Advanced Masterclass in Academic English Communication & Presentation Skills",
		HeroSubtitle: "Mode: 100% Online | Duration: 2 Months | Course Fee: LKR 12,000/- (Payable in two installments)",
	}
}

// UpdateHomeContent carries an admin edit of the hero block.
type UpdateHomeContent struct {
	HeroTitle     string `json:"hero_title" validate:"required"`
	HeroSubtitle  string `json:"hero_subtitle"`
	BackgroundURL string `json:"background_url" validate:"omitempty,url"`
}

func (uh *UpdateHomeContent) Validate(svc *Service) error {
	uh.HeroTitle = core.CleanString(uh.HeroTitle)
	uh.HeroSubtitle = core.CleanString(uh.HeroSubtitle)
	return svc.validate.Struct(uh)
}
