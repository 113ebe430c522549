package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/stats"
)

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) GetUsageStats(ctx context.Context, signupsSince time.Time, topN int) (stats.Stats, error) {
	var st stats.Stats

	q := `
SELECT
	COUNT(*) FILTER (WHERE role = $1)          AS total_students,
	COUNT(*) FILTER (WHERE role = $2)          AS total_admins,
	COUNT(*) FILTER (WHERE NOT is_approved)    AS pending_count,
	COUNT(*) FILTER (WHERE created_at > $3)    AS recent_signups
FROM account`
	row := struct {
		TotalStudents int `db:"total_students"`
		TotalAdmins   int `db:"total_admins"`
		PendingCount  int `db:"pending_count"`
		RecentSignups int `db:"recent_signups"`
	}{}
	if err := repo.db.GetContext(ctx, &row, q, account.RoleStudent, account.RoleAdmin, signupsSince); err != nil {
		return stats.Stats{}, errors.Wrap(err, "counting accounts")
	}
	st.TotalStudents = row.TotalStudents
	st.TotalAdmins = row.TotalAdmins
	st.PendingAccounts = row.PendingCount
	st.SignupsLast7Days = row.RecentSignups

	if err := repo.db.GetContext(ctx, &st.TotalMaterials, `SELECT COUNT(*) FROM material`); err != nil {
		return stats.Stats{}, errors.Wrap(err, "counting materials")
	}
	if err := repo.db.GetContext(ctx, &st.TotalLecturers, `SELECT COUNT(*) FROM lecturer`); err != nil {
		return stats.Stats{}, errors.Wrap(err, "counting lecturers")
	}

	q = `
SELECT LOWER(TRIM(course_name)) AS course_name, COUNT(*) AS count
FROM material
WHERE TRIM(course_name) <> ''
GROUP BY LOWER(TRIM(course_name))
ORDER BY count DESC, course_name ASC
LIMIT $1`
	var top []struct {
		CourseName string `db:"course_name"`
		Count      int    `db:"count"`
	}
	if err := repo.db.SelectContext(ctx, &top, q, topN); err != nil {
		return stats.Stats{}, errors.Wrap(err, "counting course tags")
	}
	st.TopCourses = make([]stats.CourseCount, len(top))
	for i, cc := range top {
		st.TopCourses[i] = stats.CourseCount{CourseName: cc.CourseName, Count: cc.Count}
	}
	return st, nil
}
