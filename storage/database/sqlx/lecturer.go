package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/lecturer"
)

type lecturerRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Department string `db:"department"`
	Bio        string `db:"bio"`
	PhotoURL   string `db:"photo_url"`
}

func (r lecturerRow) lecturer() lecturer.Lecturer {
	return lecturer.Lecturer(r)
}

const lecturerColumns = `id, name, email, department, bio, photo_url`

type lecturerRepository struct {
	db *sqlx.DB
}

var _ lecturer.Repository = (*lecturerRepository)(nil) // interface compliance check

func NewLecturerRepository(db *sqlx.DB) *lecturerRepository {
	return &lecturerRepository{db: db}
}

func (repo *lecturerRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...lecturer.Lecturer) error {
	q := `SELECT COUNT(*) FROM lecturer WHERE email = $1`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, len(excluded))
		for i, lect := range excluded {
			ids[i] = lect.ID
		}
		q += ` AND id <> ALL($2)`
		args = append(args, pq.StringArray(ids))
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return lecturer.ErrEmailExists
	}
	return nil
}

func (repo *lecturerRepository) CreateLecturer(ctx context.Context, lect lecturer.Lecturer) (lecturer.Lecturer, error) {
	lect.ID = uuid.New().String()

	q := `
INSERT INTO lecturer (` + lecturerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.ExecContext(ctx, q, lect.ID, lect.Name, lect.Email, lect.Department, lect.Bio, lect.PhotoURL)
	if err != nil {
		return lecturer.Lecturer{}, errors.Wrap(err, "creating lecturer")
	}
	return lect, nil
}

func (repo *lecturerRepository) QueryAllLecturers(ctx context.Context) ([]lecturer.Lecturer, error) {
	var rows []lecturerRow
	q := `SELECT ` + lecturerColumns + ` FROM lecturer ORDER BY name ASC`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying lecturers")
	}
	lects := make([]lecturer.Lecturer, len(rows))
	for i, row := range rows {
		lects[i] = row.lecturer()
	}
	return lects, nil
}

func (repo *lecturerRepository) GetLecturerByID(ctx context.Context, id string) (lecturer.Lecturer, error) {
	var row lecturerRow
	q := `SELECT ` + lecturerColumns + ` FROM lecturer WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return lecturer.Lecturer{}, lecturer.ErrNotFound
		}
		return lecturer.Lecturer{}, errors.Wrap(err, "getting lecturer")
	}
	return row.lecturer(), nil
}

func (repo *lecturerRepository) GetLecturerNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	type idName struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	var rows []idName
	q := `SELECT id, name FROM lecturer WHERE id = ANY($1)`
	if err := repo.db.SelectContext(ctx, &rows, q, pq.StringArray(ids)); err != nil {
		return nil, errors.Wrap(err, "resolving lecturer names")
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (repo *lecturerRepository) UpdateLecturer(ctx context.Context, lect lecturer.Lecturer) (lecturer.Lecturer, error) {
	q := `
UPDATE lecturer
SET name = $2, email = $3, department = $4, bio = $5, photo_url = $6
WHERE id = $1
RETURNING ` + lecturerColumns
	var row lecturerRow
	err := repo.db.GetContext(ctx, &row, q, lect.ID, lect.Name, lect.Email, lect.Department, lect.Bio, lect.PhotoURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return lecturer.Lecturer{}, lecturer.ErrNotFound
		}
		return lecturer.Lecturer{}, errors.Wrap(err, "updating lecturer")
	}
	return row.lecturer(), nil
}

func (repo *lecturerRepository) DeleteLecturersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM lecturer WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, q, pq.StringArray(ids)); err != nil {
		return errors.Wrap(err, "deleting lecturers")
	}
	return nil
}
