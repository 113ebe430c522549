package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/stats"
)

func Test_statsRepository_GetUsageStats(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)
	ctx := context.Background()
	now := time.Now().UTC()

	acctRepo := NewAccountRepository(db)
	newAccount := func(role account.Role, approved bool, createdAt time.Time) {
		_, err := acctRepo.CreateAccount(ctx, account.Account{
			Name: "a", Email: createdAt.String(), Role: role, IsApproved: approved,
			CreatedAt: createdAt, UpdatedAt: createdAt,
		})
		require.NoError(t, err)
	}
	newAccount(account.RoleAdmin, true, now.Add(-30*24*time.Hour))
	newAccount(account.RoleStudent, true, now.Add(-10*24*time.Hour))
	newAccount(account.RoleStudent, true, now.Add(-time.Hour))
	newAccount(account.RoleStudent, false, now)

	lectRepo := NewLecturerRepository(db)
	_, err = lectRepo.CreateLecturer(ctx, lecturer.Lecturer{Name: "Dr. Kone", Email: "kone@test.cd"})
	require.NoError(t, err)

	matRepo := NewMaterialRepository(db)
	for _, course := range []string{"Maths", " maths ", "Physics", ""} {
		_, err := matRepo.CreateMaterial(ctx, material.Material{
			Title: "m", Kind: material.KindRecording, CourseName: course, CreatedAt: now,
		})
		require.NoError(t, err)
	}

	st, err := NewStatsRepository(db).GetUsageStats(ctx, now.Add(-7*24*time.Hour), 5)
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalStudents)
	assert.Equal(t, 1, st.TotalAdmins)
	assert.Equal(t, 1, st.PendingAccounts)
	assert.Equal(t, 4, st.TotalMaterials)
	assert.Equal(t, 1, st.TotalLecturers)
	assert.Equal(t, 2, st.SignupsLast7Days)
	// course tags are folded case-insensitively; untagged materials excluded
	assert.Equal(t, []stats.CourseCount{
		{CourseName: "maths", Count: 2},
		{CourseName: "physics", Count: 1},
	}, st.TopCourses)
}
