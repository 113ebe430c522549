package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/request"
)

type requestRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	StudentName  string    `db:"student_name"`
	StudentEmail string    `db:"student_email"`
	NewName      string    `db:"new_name"`
	NewEmail     string    `db:"new_email"`
	NewPhone     string    `db:"new_phone"`
	NewAddress   string    `db:"new_address"`
	Status       string    `db:"status"`
	AdminComment string    `db:"admin_comment"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r requestRow) request() request.ProfileRequest {
	return request.ProfileRequest{
		ID:           r.ID,
		StudentID:    r.StudentID,
		StudentName:  r.StudentName,
		StudentEmail: r.StudentEmail,
		Changes: request.ChangeSet{
			Name:    r.NewName,
			Email:   r.NewEmail,
			Phone:   r.NewPhone,
			Address: r.NewAddress,
		},
		Status:       request.Status(r.Status),
		AdminComment: r.AdminComment,
		CreatedAt:    r.CreatedAt,
	}
}

const requestColumns = `id, student_id, student_name, student_email, new_name, new_email, new_phone, new_address, status, admin_comment, created_at`

type requestRepository struct {
	db *sqlx.DB
}

var _ request.Repository = (*requestRepository)(nil) // interface compliance check

func NewRequestRepository(db *sqlx.DB) *requestRepository {
	return &requestRepository{db: db}
}

func (repo *requestRepository) CreateRequest(ctx context.Context, req request.ProfileRequest) (request.ProfileRequest, error) {
	req.ID = uuid.New().String()

	q := `
INSERT INTO profile_request (` + requestColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.db.ExecContext(ctx, q,
		req.ID, req.StudentID, req.StudentName, req.StudentEmail,
		req.Changes.Name, req.Changes.Email, req.Changes.Phone, req.Changes.Address,
		req.Status, req.AdminComment, req.CreatedAt,
	)
	if err != nil {
		return request.ProfileRequest{}, errors.Wrap(err, "creating profile request")
	}
	return req, nil
}

func (repo *requestRepository) QueryAllRequests(ctx context.Context) ([]request.ProfileRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM profile_request ORDER BY created_at DESC`
	return repo.query(ctx, q)
}

func (repo *requestRepository) QueryRequestsByStudent(ctx context.Context, studentID string) ([]request.ProfileRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM profile_request WHERE student_id = $1 ORDER BY created_at DESC`
	return repo.query(ctx, q, studentID)
}

func (repo *requestRepository) query(ctx context.Context, q string, args ...interface{}) ([]request.ProfileRequest, error) {
	var rows []requestRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying profile requests")
	}
	reqs := make([]request.ProfileRequest, len(rows))
	for i, row := range rows {
		reqs[i] = row.request()
	}
	return reqs, nil
}

func (repo *requestRepository) GetRequestByID(ctx context.Context, id string) (request.ProfileRequest, error) {
	var row requestRow
	q := `SELECT ` + requestColumns + ` FROM profile_request WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return request.ProfileRequest{}, request.ErrNotFound
		}
		return request.ProfileRequest{}, errors.Wrap(err, "getting profile request")
	}
	return row.request(), nil
}

func (repo *requestRepository) UpdateRequest(ctx context.Context, req request.ProfileRequest) (request.ProfileRequest, error) {
	q := `
UPDATE profile_request
SET status = $2, admin_comment = $3
WHERE id = $1
RETURNING ` + requestColumns
	var row requestRow
	if err := repo.db.GetContext(ctx, &row, q, req.ID, req.Status, req.AdminComment); err != nil {
		if err == sql.ErrNoRows {
			return request.ProfileRequest{}, request.ErrNotFound
		}
		return request.ProfileRequest{}, errors.Wrap(err, "updating profile request")
	}
	return row.request(), nil
}

func (repo *requestRepository) DeleteRequestsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM profile_request WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, q, pq.StringArray(ids)); err != nil {
		return errors.Wrap(err, "deleting profile requests")
	}
	return nil
}
