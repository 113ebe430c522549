package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/content"
)

type bannerRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	ImageURL  string    `db:"image_url"`
	LinkURL   string    `db:"link_url"`
	Active    bool      `db:"active"`
	Order     int       `db:"display_order"`
	CreatedAt time.Time `db:"created_at"`
}

func (r bannerRow) banner() content.Banner {
	return content.Banner(r)
}

type homeContentRow struct {
	HeroTitle     string    `db:"hero_title"`
	HeroSubtitle  string    `db:"hero_subtitle"`
	BackgroundURL string    `db:"background_url"`
	UpdatedAt     time.Time `db:"updated_at"`
}

const bannerColumns = `id, title, image_url, link_url, active, display_order, created_at`

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) CreateBanner(ctx context.Context, b content.Banner) (content.Banner, error) {
	b.ID = uuid.New().String()

	q := `
INSERT INTO banner (` + bannerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, q, b.ID, b.Title, b.ImageURL, b.LinkURL, b.Active, b.Order, b.CreatedAt)
	if err != nil {
		return content.Banner{}, errors.Wrap(err, "creating banner")
	}
	return b, nil
}

func (repo *contentRepository) QueryBanners(ctx context.Context, activeOnly bool) ([]content.Banner, error) {
	q := `SELECT ` + bannerColumns + ` FROM banner`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY display_order ASC, created_at DESC`

	var rows []bannerRow
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying banners")
	}
	banners := make([]content.Banner, len(rows))
	for i, row := range rows {
		banners[i] = row.banner()
	}
	return banners, nil
}

func (repo *contentRepository) GetBannerByID(ctx context.Context, id string) (content.Banner, error) {
	var row bannerRow
	q := `SELECT ` + bannerColumns + ` FROM banner WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return content.Banner{}, content.ErrBannerNotFound
		}
		return content.Banner{}, errors.Wrap(err, "getting banner")
	}
	return row.banner(), nil
}

func (repo *contentRepository) UpdateBanner(ctx context.Context, b content.Banner, active *bool, order *int) (content.Banner, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if b.Title != "" {
		set("title", b.Title)
	}
	if b.ImageURL != "" {
		set("image_url", b.ImageURL)
	}
	if b.LinkURL != "" {
		set("link_url", b.LinkURL)
	}
	if active != nil {
		set("active", *active)
	}
	if order != nil {
		set("display_order", *order)
	}
	if len(sets) == 0 {
		return repo.GetBannerByID(ctx, b.ID)
	}

	args = append(args, b.ID)
	q := fmt.Sprintf(
		`UPDATE banner SET %s WHERE id = $%d RETURNING `+bannerColumns,
		strings.Join(sets, ", "), len(args),
	)

	var row bannerRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return content.Banner{}, content.ErrBannerNotFound
		}
		return content.Banner{}, errors.Wrap(err, "updating banner")
	}
	return row.banner(), nil
}

func (repo *contentRepository) DeleteBannersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM banner WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, q, pq.StringArray(ids)); err != nil {
		return errors.Wrap(err, "deleting banners")
	}
	return nil
}

func (repo *contentRepository) GetHomeContent(ctx context.Context) (content.HomeContent, error) {
	var row homeContentRow
	q := `SELECT hero_title, hero_subtitle, background_url, updated_at FROM home_content WHERE id = 1`
	if err := repo.db.GetContext(ctx, &row, q); err != nil {
		if err == sql.ErrNoRows {
			return content.HomeContent{}, content.ErrNoHomeContent
		}
		return content.HomeContent{}, errors.Wrap(err, "getting home content")
	}
	return content.HomeContent(row), nil
}

func (repo *contentRepository) UpsertHomeContent(ctx context.Context, hc content.HomeContent) (content.HomeContent, error) {
	q := `
INSERT INTO home_content (id, hero_title, hero_subtitle, background_url, updated_at)
VALUES (1, $1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET hero_title = EXCLUDED.hero_title,
    hero_subtitle = EXCLUDED.hero_subtitle,
    background_url = EXCLUDED.background_url,
    updated_at = EXCLUDED.updated_at`
	_, err := repo.db.ExecContext(ctx, q, hc.HeroTitle, hc.HeroSubtitle, hc.BackgroundURL, hc.UpdatedAt)
	if err != nil {
		return content.HomeContent{}, errors.Wrap(err, "saving home content")
	}
	return hc, nil
}
