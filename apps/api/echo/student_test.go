package echoapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
)

func TestStudentAPI_QueryMaterials(t *testing.T) {
	app := setupApp(t)

	lect, err := app.lectRepo.CreateLecturer(ctxBg(), lecturer.Lecturer{Name: "Dr. Kone", Email: "kone@test.lk"})
	require.NoError(t, err)

	now := time.Now().UTC()
	app.createMaterial(t, "Orientation", "", "", now.Add(-4*time.Hour))
	app.createMaterial(t, "Algebra", "Maths", "", now.Add(-3*time.Hour))
	app.createMaterial(t, "Mechanics", "Physics", lect.ID, now.Add(-2*time.Hour))
	app.createMaterial(t, "Office Hours", "", lect.ID, now.Add(-time.Hour))

	tests := []struct {
		name       string
		query      url.Values
		wantTitles []string
	}{
		{
			name:       "no entitlements sees fully public only",
			query:      url.Values{},
			wantTitles: []string{"Orientation"},
		},
		{
			name:       "course entitlement unlocks tagged materials",
			query:      url.Values{"course": {"Maths"}},
			wantTitles: []string{"Algebra", "Orientation"},
		},
		{
			name:       "course matching tolerates case and padding",
			query:      url.Values{"course": {" mAtHs "}},
			wantTitles: []string{"Algebra", "Orientation"},
		},
		{
			name:       "assigned lecturer unlocks their untagged materials",
			query:      url.Values{"lecturer": {lect.ID}},
			wantTitles: []string{"Office Hours", "Orientation"},
		},
		{
			name:       "combined entitlements see everything",
			query:      url.Values{"course": {"Maths", "Physics"}, "lecturer": {lect.ID}},
			wantTitles: []string{"Office Hours", "Mechanics", "Algebra", "Orientation"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/v1/student/materials"
			if enc := tt.query.Encode(); enc != "" {
				path += "?" + enc
			}
			rec := app.do(http.MethodGet, path)
			checkCode(t, rec, http.StatusOK)

			var mats []material.Material
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mats))
			titles := make([]string, 0, len(mats))
			for _, m := range mats {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestStudentAPI_ProfileRequests(t *testing.T) {
	app := setupApp(t)

	student := app.createStudent(t, "Nayana Silva", "nayana@test.lk", "n0neShallPass", true, nil, nil)

	t.Run("submit", func(t *testing.T) {
		body := marshal(t, echoMap{
			"student_id":        student.ID,
			"requested_changes": echoMap{"phone": "+94 77 123 4567"},
		})
		rec := app.do(http.MethodPost, "/v1/student/profile-requests", body)
		checkCode(t, rec, http.StatusCreated)

		var req request.ProfileRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
		assert.Equal(t, student.ID, req.StudentID)
		assert.Equal(t, "Nayana Silva", req.StudentName)
		assert.Equal(t, request.StatusPending, req.Status)
	})

	t.Run("submit with empty changeset fails", func(t *testing.T) {
		body := marshal(t, echoMap{"student_id": student.ID, "requested_changes": echoMap{}})
		rec := app.do(http.MethodPost, "/v1/student/profile-requests", body)
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("submit for unknown student fails", func(t *testing.T) {
		body := marshal(t, echoMap{
			"student_id":        "does-not-exist",
			"requested_changes": echoMap{"phone": "+94 77 123 4567"},
		})
		rec := app.do(http.MethodPost, "/v1/student/profile-requests", body)
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("list own requests", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/student/profile-requests?student="+student.ID)
		checkCode(t, rec, http.StatusOK)

		var reqs []request.ProfileRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reqs))
		require.Len(t, reqs, 1)
		assert.Equal(t, "+94 77 123 4567", reqs[0].Changes.Phone)
	})

	t.Run("list without student param fails", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/student/profile-requests")
		checkCode(t, rec, http.StatusBadRequest)
		assert.True(t, jsonBytesEqual(t, rec.Body.Bytes(),
			marshal(t, echoMap{"student": "this query param is required"})))
	})
}
