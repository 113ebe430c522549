// Package stats exposes the public aggregate usage counters shown on the
// admin dashboard and the landing page.
package stats

import (
	"context"
	"time"
)

const (
	signupWindow = 7 * 24 * time.Hour
	topCourses   = 5
)

type (
	// CourseCount is a course name with its material tally.
	CourseCount struct {
		CourseName string `json:"course_name"`
		Count      int    `json:"count"`
	}

	Stats struct {
		TotalStudents    int           `json:"total_students"`
		TotalAdmins      int           `json:"total_admins"`
		PendingAccounts  int           `json:"pending_count"`
		TotalMaterials   int           `json:"total_materials"`
		TotalLecturers   int           `json:"total_lecturers"`
		SignupsLast7Days int           `json:"signups_last_7_days"`
		TopCourses       []CourseCount `json:"top_courses"`
	}

	Repository interface {
		// GetUsageStats counts accounts by role, pending approvals, materials,
		// lecturers, signups since the given time and the topN course tags by
		// material count (untagged materials excluded).
		GetUsageStats(ctx context.Context, signupsSince time.Time, topN int) (Stats, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Usage(ctx context.Context) (Stats, error) {
	since := time.Now().UTC().Add(-signupWindow)
	return svc.repo.GetUsageStats(ctx, since, topCourses)
}
