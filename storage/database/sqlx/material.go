package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/material"
)

type materialRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Kind        string         `db:"kind"`
	VideoURL    string         `db:"video_url"`
	FileURL     string         `db:"file_url"`
	CourseName  string         `db:"course_name"`
	LecturerID  sql.NullString `db:"lecturer_id"`
	Description string         `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r materialRow) material() material.Material {
	return material.Material{
		ID:          r.ID,
		Title:       r.Title,
		Kind:        material.Kind(r.Kind),
		VideoURL:    r.VideoURL,
		FileURL:     r.FileURL,
		CourseName:  r.CourseName,
		LecturerID:  r.LecturerID.String,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// nullLecturerID maps the empty id to NULL so that fully public materials
// stay distinguishable from ones assigned to a lecturer.
func nullLecturerID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

const materialColumns = `id, title, kind, video_url, file_url, course_name, lecturer_id, description, created_at`

type materialRepository struct {
	db *sqlx.DB
}

var _ material.Repository = (*materialRepository)(nil) // interface compliance check

func NewMaterialRepository(db *sqlx.DB) *materialRepository {
	return &materialRepository{db: db}
}

func (repo *materialRepository) CreateMaterial(ctx context.Context, mat material.Material) (material.Material, error) {
	mat.ID = uuid.New().String()

	q := `
INSERT INTO material (` + materialColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, q,
		mat.ID, mat.Title, mat.Kind, mat.VideoURL, mat.FileURL,
		mat.CourseName, nullLecturerID(mat.LecturerID), mat.Description, mat.CreatedAt,
	)
	if err != nil {
		return material.Material{}, errors.Wrap(err, "creating material")
	}
	return mat, nil
}

func (repo *materialRepository) QueryAllMaterials(ctx context.Context) ([]material.Material, error) {
	var rows []materialRow
	q := `SELECT ` + materialColumns + ` FROM material ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying materials")
	}
	return materials(rows), nil
}

func (repo *materialRepository) QueryVisibleMaterials(ctx context.Context, filter material.VisibilityFilter) ([]material.Material, error) {
	// Both filters admit the "public" case and otherwise require membership:
	// a NULL lecturer or one the student is assigned to, an empty course tag
	// or one the student is permitted, compared trimmed and case-folded.
	courses := make([]string, len(filter.PermittedCourses))
	for i, course := range filter.PermittedCourses {
		courses[i] = strings.ToLower(strings.TrimSpace(course))
	}

	q := `
SELECT ` + materialColumns + `
FROM material
WHERE (lecturer_id IS NULL OR lecturer_id = ANY($1))
  AND (TRIM(course_name) = '' OR LOWER(TRIM(course_name)) = ANY($2))
ORDER BY created_at DESC`

	var rows []materialRow
	err := repo.db.SelectContext(ctx, &rows, q,
		pq.StringArray(filter.AssignedLecturers), pq.StringArray(courses))
	if err != nil {
		return nil, errors.Wrap(err, "querying visible materials")
	}
	return materials(rows), nil
}

func (repo *materialRepository) GetMaterialByID(ctx context.Context, id string) (material.Material, error) {
	var row materialRow
	q := `SELECT ` + materialColumns + ` FROM material WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return material.Material{}, material.ErrNotFound
		}
		return material.Material{}, errors.Wrap(err, "getting material")
	}
	return row.material(), nil
}

func (repo *materialRepository) UpdateMaterial(ctx context.Context, mat material.Material) (material.Material, error) {
	// UpdateMaterial.Validate resolves the full record against the original,
	// so every field is written through. Clearing a course tag or
	// un-assigning a lecturer are legitimate updates.
	q := `
UPDATE material
SET title = $2, kind = $3, video_url = $4, file_url = $5, course_name = $6, lecturer_id = $7, description = $8
WHERE id = $1
RETURNING ` + materialColumns
	var row materialRow
	err := repo.db.GetContext(ctx, &row, q,
		mat.ID, mat.Title, mat.Kind, mat.VideoURL, mat.FileURL,
		mat.CourseName, nullLecturerID(mat.LecturerID), mat.Description,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return material.Material{}, material.ErrNotFound
		}
		return material.Material{}, errors.Wrap(err, "updating material")
	}
	return row.material(), nil
}

func (repo *materialRepository) DeleteMaterialsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM material WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, q, pq.StringArray(ids)); err != nil {
		return errors.Wrap(err, "deleting materials")
	}
	return nil
}

func materials(rows []materialRow) []material.Material {
	mats := make([]material.Material, len(rows))
	for i, row := range rows {
		mats[i] = row.material()
	}
	return mats
}
