package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) GetUsageStats(_ context.Context, signupsSince time.Time, topN int) (stats.Stats, error) {
	var st stats.Stats

	repo.db.account.RLock()
	for _, acct := range repo.db.account.table {
		switch acct.Role {
		case account.RoleStudent:
			st.TotalStudents++
		case account.RoleAdmin:
			st.TotalAdmins++
		}
		if !acct.IsApproved {
			st.PendingAccounts++
		}
		if acct.CreatedAt.After(signupsSince) {
			st.SignupsLast7Days++
		}
	}
	repo.db.account.RUnlock()

	repo.db.lecturer.RLock()
	st.TotalLecturers = len(repo.db.lecturer.table)
	repo.db.lecturer.RUnlock()

	repo.db.material.RLock()
	st.TotalMaterials = len(repo.db.material.table)
	counts := make(map[string]int)
	for _, m := range repo.db.material.table {
		if course := core.CleanString(m.CourseName, true); course != "" {
			counts[course]++
		}
	}
	repo.db.material.RUnlock()

	top := make([]stats.CourseCount, 0, len(counts))
	for course, count := range counts {
		top = append(top, stats.CourseCount{CourseName: course, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return strings.Compare(top[i].CourseName, top[j].CourseName) < 0
	})
	if len(top) > topN {
		top = top[:topN]
	}
	st.TopCourses = top
	return st, nil
}
