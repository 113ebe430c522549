package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/stats"
)

func TestPublicAPI_Banners(t *testing.T) {
	app := setupApp(t)

	now := time.Now().UTC()
	_, err := app.contRepo.CreateBanner(ctxBg(), content.Banner{
		Title: "Old intake", ImageURL: "https://cdn.test/old.png", Active: false, Order: 1, CreatedAt: now,
	})
	require.NoError(t, err)
	_, err = app.contRepo.CreateBanner(ctxBg(), content.Banner{
		Title: "New intake", ImageURL: "https://cdn.test/new.png", Active: true, Order: 2, CreatedAt: now,
	})
	require.NoError(t, err)

	rec := app.do(http.MethodGet, "/v1/banners")
	checkCode(t, rec, http.StatusOK)

	var banners []content.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banners))
	require.Len(t, banners, 1) // inactive banners are not served publicly
	assert.Equal(t, "New intake", banners[0].Title)
}

func TestPublicAPI_HomeContent(t *testing.T) {
	app := setupApp(t)

	rec := app.do(http.MethodGet, "/v1/home-content")
	checkCode(t, rec, http.StatusOK)

	var hc content.HomeContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hc))
	assert.Equal(t, content.DefaultHomeContent().HeroTitle, hc.HeroTitle)
}

func TestPublicAPI_Stats(t *testing.T) {
	app := setupApp(t)

	app.createStudent(t, "Nayana Silva", "nayana@test.lk", "n0neShallPass", true, nil, nil)
	app.createStudent(t, "Kasun Perera", "kasun@test.lk", "n0neShallPass", false, nil, nil)

	now := time.Now().UTC()
	app.createMaterial(t, "Algebra", "Maths", "", now.Add(-time.Hour))
	app.createMaterial(t, "Calculus", " maths ", "", now)

	rec := app.do(http.MethodGet, "/v1/stats")
	checkCode(t, rec, http.StatusOK)

	var st stats.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 2, st.TotalStudents)
	assert.Equal(t, 1, st.PendingAccounts)
	assert.Equal(t, 2, st.TotalMaterials)
	require.Len(t, st.TopCourses, 1) // course tags are case-folded before counting
	assert.Equal(t, stats.CourseCount{CourseName: "maths", Count: 2}, st.TopCourses[0])
}
