package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tuitionlk/portal/core/request"
)

type requestRepository struct {
	db *requestTable
}

var _ request.Repository = (*requestRepository)(nil) // interface compliance check

func NewRequestRepository(db *DB) *requestRepository {
	return &requestRepository{db: db.request}
}

// query returns all requests, newest first.
func (repo *requestRepository) query() []request.ProfileRequest {
	reqs := make([]request.ProfileRequest, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		reqs = append(reqs, *r)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.After(reqs[j].CreatedAt) })
	return reqs
}

func (repo *requestRepository) CreateRequest(_ context.Context, req request.ProfileRequest) (request.ProfileRequest, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	req.ID = uuid.New().String()
	repo.db.table[req.ID] = &req
	return req, nil
}

func (repo *requestRepository) QueryAllRequests(_ context.Context) ([]request.ProfileRequest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *requestRepository) QueryRequestsByStudent(_ context.Context, studentID string) ([]request.ProfileRequest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reqs := make([]request.ProfileRequest, 0)
	for _, req := range repo.query() {
		if req.StudentID == studentID {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (repo *requestRepository) GetRequestByID(_ context.Context, id string) (request.ProfileRequest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if req, ok := repo.db.table[id]; ok {
		return *req, nil
	}
	return request.ProfileRequest{}, request.ErrNotFound
}

func (repo *requestRepository) UpdateRequest(_ context.Context, req request.ProfileRequest) (request.ProfileRequest, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[req.ID]
	if !ok {
		return request.ProfileRequest{}, request.ErrNotFound
	}

	orig.Status = req.Status
	orig.AdminComment = req.AdminComment
	return *orig, nil
}

func (repo *requestRepository) DeleteRequestsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
