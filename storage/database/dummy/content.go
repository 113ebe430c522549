package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tuitionlk/portal/core/content"
)

type contentRepository struct {
	db *contentTable
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) *contentRepository {
	return &contentRepository{db: db.content}
}

func (repo *contentRepository) CreateBanner(_ context.Context, b content.Banner) (content.Banner, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	b.ID = uuid.New().String()
	repo.db.banners[b.ID] = &b
	return b, nil
}

func (repo *contentRepository) QueryBanners(_ context.Context, activeOnly bool) ([]content.Banner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	banners := make([]content.Banner, 0, len(repo.db.banners))
	for _, b := range repo.db.banners {
		if activeOnly && !b.Active {
			continue
		}
		banners = append(banners, *b)
	}
	sort.Slice(banners, func(i, j int) bool {
		if banners[i].Order != banners[j].Order {
			return banners[i].Order < banners[j].Order
		}
		return banners[i].CreatedAt.After(banners[j].CreatedAt)
	})
	return banners, nil
}

func (repo *contentRepository) GetBannerByID(_ context.Context, id string) (content.Banner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if b, ok := repo.db.banners[id]; ok {
		return *b, nil
	}
	return content.Banner{}, content.ErrBannerNotFound
}

func (repo *contentRepository) UpdateBanner(_ context.Context, b content.Banner, active *bool, order *int) (content.Banner, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.banners[b.ID]
	if !ok {
		return content.Banner{}, content.ErrBannerNotFound
	}

	if b.Title != "" {
		orig.Title = b.Title
	}
	if b.ImageURL != "" {
		orig.ImageURL = b.ImageURL
	}
	if b.LinkURL != "" {
		orig.LinkURL = b.LinkURL
	}
	if active != nil {
		orig.Active = *active
	}
	if order != nil {
		orig.Order = *order
	}
	return *orig, nil
}

func (repo *contentRepository) DeleteBannersByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.banners, id)
	}
	return nil
}

func (repo *contentRepository) GetHomeContent(_ context.Context) (content.HomeContent, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.db.home == nil {
		return content.HomeContent{}, content.ErrNoHomeContent
	}
	return *repo.db.home, nil
}

func (repo *contentRepository) UpsertHomeContent(_ context.Context, hc content.HomeContent) (content.HomeContent, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.home = &hc
	return hc, nil
}
