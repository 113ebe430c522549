package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tuitionlk/portal/core/lecturer"
)

type lecturerRepository struct {
	db *lecturerTable
}

var _ lecturer.Repository = (*lecturerRepository)(nil) // interface compliance check

func NewLecturerRepository(db *DB) *lecturerRepository {
	return &lecturerRepository{db: db.lecturer}
}

func (repo *lecturerRepository) query() []lecturer.Lecturer {
	lects := make([]lecturer.Lecturer, 0, len(repo.db.table))
	for _, l := range repo.db.table {
		lects = append(lects, *l)
	}
	sort.Slice(lects, func(i, j int) bool { return lects[i].Name < lects[j].Name })
	return lects
}

func (repo *lecturerRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...lecturer.Lecturer) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, lect := range repo.query() {
		if lect.Email != email {
			continue
		}
		var excl bool
		for _, ex := range excluded {
			if ex.ID == lect.ID {
				excl = true
				break
			}
		}
		if !excl {
			return lecturer.ErrEmailExists
		}
	}
	return nil
}

func (repo *lecturerRepository) CreateLecturer(_ context.Context, lect lecturer.Lecturer) (lecturer.Lecturer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	lect.ID = uuid.New().String()
	repo.db.table[lect.ID] = &lect
	return lect, nil
}

func (repo *lecturerRepository) QueryAllLecturers(_ context.Context) ([]lecturer.Lecturer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *lecturerRepository) GetLecturerByID(_ context.Context, id string) (lecturer.Lecturer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lect, ok := repo.db.table[id]; ok {
		return *lect, nil
	}
	return lecturer.Lecturer{}, lecturer.ErrNotFound
}

func (repo *lecturerRepository) GetLecturerNames(_ context.Context, ids []string) (map[string]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if lect, ok := repo.db.table[id]; ok {
			names[id] = lect.Name
		}
	}
	return names, nil
}

func (repo *lecturerRepository) UpdateLecturer(_ context.Context, lect lecturer.Lecturer) (lecturer.Lecturer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[lect.ID]; !ok {
		return lecturer.Lecturer{}, lecturer.ErrNotFound
	}

	// UpdateLecturer.Validate resolves the full record against the original,
	// so every field is written through, same as the SQL backend.
	repo.db.table[lect.ID] = &lect
	return lect, nil
}

func (repo *lecturerRepository) DeleteLecturersByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
