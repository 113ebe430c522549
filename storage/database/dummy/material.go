package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tuitionlk/portal/core/material"
)

type materialRepository struct {
	db *materialTable
}

var _ material.Repository = (*materialRepository)(nil) // interface compliance check

func NewMaterialRepository(db *DB) *materialRepository {
	return &materialRepository{db: db.material}
}

// query returns all materials, newest first.
func (repo *materialRepository) query() []material.Material {
	mats := make([]material.Material, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		mats = append(mats, *m)
	}
	sort.Slice(mats, func(i, j int) bool { return mats[i].CreatedAt.After(mats[j].CreatedAt) })
	return mats
}

func (repo *materialRepository) CreateMaterial(_ context.Context, mat material.Material) (material.Material, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mat.ID = uuid.New().String()
	repo.db.table[mat.ID] = &mat
	return mat, nil
}

func (repo *materialRepository) QueryAllMaterials(_ context.Context) ([]material.Material, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *materialRepository) QueryVisibleMaterials(_ context.Context, filter material.VisibilityFilter) ([]material.Material, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	visible := make([]material.Material, 0)
	for _, mat := range repo.query() {
		if filter.Match(mat) {
			visible = append(visible, mat)
		}
	}
	return visible, nil
}

func (repo *materialRepository) GetMaterialByID(_ context.Context, id string) (material.Material, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mat, ok := repo.db.table[id]; ok {
		return *mat, nil
	}
	return material.Material{}, material.ErrNotFound
}

func (repo *materialRepository) UpdateMaterial(_ context.Context, mat material.Material) (material.Material, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[mat.ID]
	if !ok {
		return material.Material{}, material.ErrNotFound
	}

	// UpdateMaterial.Validate resolves the full record against the original,
	// so every field is written through, same as the SQL backend.
	mat.CreatedAt = orig.CreatedAt
	repo.db.table[mat.ID] = &mat
	return mat, nil
}

func (repo *materialRepository) DeleteMaterialsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
