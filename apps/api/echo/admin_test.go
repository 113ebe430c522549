package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
)

func TestAdminAPI_Users(t *testing.T) {
	app := setupApp(t)

	var created account.Account

	t.Run("create is auto-approved", func(t *testing.T) {
		body := marshal(t, echoMap{
			"name":              "Nayana Silva",
			"email":             "Nayana@Test.LK",
			"password":          "n0neShallPass",
			"permitted_courses": []string{"Maths"},
		})
		rec := app.do(http.MethodPost, "/v1/admin/users", body)
		checkCode(t, rec, http.StatusCreated)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "nayana@test.lk", created.Email)
		assert.Equal(t, account.RoleStudent, created.Role)
		assert.True(t, created.IsApproved)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		body := marshal(t, echoMap{"name": "Dup", "email": "nayana@test.lk", "password": "n0neShallPass"})
		rec := app.do(http.MethodPost, "/v1/admin/users", body)
		checkCode(t, rec, http.StatusConflict)
	})

	t.Run("retrieve", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/admin/users/"+created.ID)
		checkCode(t, rec, http.StatusOK)
		assert.True(t, jsonBytesEqual(t, rec.Body.Bytes(), marshal(t, created)))
	})

	t.Run("retrieve unknown id", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/admin/users/nope")
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		body := marshal(t, echoMap{"phone": "+94 77 123 4567"})
		rec := app.do(http.MethodPut, "/v1/admin/users/"+created.ID, body)
		checkCode(t, rec, http.StatusOK)

		var acct account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))
		assert.Equal(t, "+94 77 123 4567", acct.Phone)
		assert.Equal(t, "Nayana Silva", acct.Name)
		assert.Equal(t, []string{"Maths"}, acct.PermittedCourses)
	})

	t.Run("query by search term", func(t *testing.T) {
		app.createStudent(t, "Kasun Perera", "kasun@test.lk", "n0neShallPass", true, nil, nil)

		rec := app.do(http.MethodGet, "/v1/admin/users?search=kasun")
		checkCode(t, rec, http.StatusOK)

		var accts []account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accts))
		require.Len(t, accts, 1)
		assert.Equal(t, "kasun@test.lk", accts[0].Email)
	})

	t.Run("destroy", func(t *testing.T) {
		rec := app.do(http.MethodDelete, "/v1/admin/users/"+created.ID)
		checkCode(t, rec, http.StatusNoContent)

		rec = app.do(http.MethodGet, "/v1/admin/users/"+created.ID)
		checkCode(t, rec, http.StatusNotFound)
	})
}

func TestAdminAPI_Approval(t *testing.T) {
	app := setupApp(t)

	lect, err := app.lectRepo.CreateLecturer(ctxBg(), lecturer.Lecturer{Name: "Dr. Kone", Email: "kone@test.lk"})
	require.NoError(t, err)

	pending := app.createStudent(t, "Ishara Fernando", "ishara@test.lk", "n0neShallPass", false, nil, nil)
	rejected := app.createStudent(t, "Ruwan Perera", "ruwan@test.lk", "n0neShallPass", false, nil, nil)

	t.Run("pending users listed", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/admin/pending-users")
		checkCode(t, rec, http.StatusOK)

		var accts []account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accts))
		assert.Len(t, accts, 2)
	})

	t.Run("approve assigns lecturers", func(t *testing.T) {
		body := marshal(t, echoMap{"assigned_lecturers": []string{lect.ID}})
		rec := app.do(http.MethodPost, "/v1/admin/approve-user/"+pending.ID, body)
		checkCode(t, rec, http.StatusOK)

		var acct account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))
		assert.True(t, acct.IsApproved)
		assert.Equal(t, []string{lect.ID}, acct.AssignedLecturers)
	})

	t.Run("approve unknown id", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/admin/approve-user/nope", marshal(t, echoMap{}))
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("reject removes the account", func(t *testing.T) {
		rec := app.do(http.MethodDelete, "/v1/admin/reject-user/"+rejected.ID)
		checkCode(t, rec, http.StatusOK)

		rec = app.do(http.MethodGet, "/v1/admin/users/"+rejected.ID)
		checkCode(t, rec, http.StatusNotFound)
	})
}

func TestAdminAPI_Materials(t *testing.T) {
	app := setupApp(t)

	var created material.Material

	t.Run("create", func(t *testing.T) {
		body := marshal(t, echoMap{
			"title":       "Algebra I",
			"kind":        "recording",
			"video_url":   "https://videos.test/algebra-1",
			"course_name": "Maths",
		})
		rec := app.do(http.MethodPost, "/v1/admin/materials", body)
		checkCode(t, rec, http.StatusCreated)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, material.KindRecording, created.Kind)
	})

	t.Run("recording without video url fails", func(t *testing.T) {
		body := marshal(t, echoMap{"title": "Broken", "kind": "recording"})
		rec := app.do(http.MethodPost, "/v1/admin/materials", body)
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("update clears the course tag", func(t *testing.T) {
		body := marshal(t, echoMap{"video_url": created.VideoURL})
		rec := app.do(http.MethodPut, "/v1/admin/materials/"+created.ID, body)
		checkCode(t, rec, http.StatusOK)

		var mat material.Material
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mat))
		assert.Equal(t, "Algebra I", mat.Title)
		assert.Empty(t, mat.CourseName)
	})

	t.Run("update may not add a file to a recording", func(t *testing.T) {
		body := marshal(t, echoMap{"file_url": "https://files.test/algebra.pdf"})
		rec := app.do(http.MethodPut, "/v1/admin/materials/"+created.ID, body)
		checkCode(t, rec, http.StatusBadRequest)

		rec = app.do(http.MethodGet, "/v1/admin/materials/"+created.ID)
		checkCode(t, rec, http.StatusOK)

		var mat material.Material
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mat))
		assert.Empty(t, mat.FileURL)
		assert.Equal(t, created.VideoURL, mat.VideoURL)
	})

	t.Run("bulk delete", func(t *testing.T) {
		body := marshal(t, echoMap{"ids": []string{created.ID}})
		rec := app.do(http.MethodDelete, "/v1/admin/materials", body)
		checkCode(t, rec, http.StatusNoContent)

		rec = app.do(http.MethodGet, "/v1/admin/materials/"+created.ID)
		checkCode(t, rec, http.StatusNotFound)
	})
}

func TestAdminAPI_ProfileRequests(t *testing.T) {
	app := setupApp(t)

	student := app.createStudent(t, "Nayana Silva", "nayana@test.lk", "n0neShallPass", true, nil, nil)

	submit := func(t *testing.T) request.ProfileRequest {
		body := marshal(t, echoMap{
			"student_id":        student.ID,
			"requested_changes": echoMap{"email": "New.Mail@Test.LK"},
		})
		rec := app.do(http.MethodPost, "/v1/student/profile-requests", body)
		checkCode(t, rec, http.StatusCreated)

		var req request.ProfileRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
		return req
	}

	t.Run("approval copies changes onto the account", func(t *testing.T) {
		req := submit(t)

		body := marshal(t, echoMap{"status": "approved", "comment": "ok"})
		rec := app.do(http.MethodPut, "/v1/admin/profile-requests/"+req.ID, body)
		checkCode(t, rec, http.StatusOK)

		var resolved request.ProfileRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolved))
		assert.Equal(t, request.StatusApproved, resolved.Status)
		assert.Equal(t, "ok", resolved.AdminComment)

		acct, err := app.acctRepo.GetAccountByID(ctxBg(), student.ID)
		require.NoError(t, err)
		assert.Equal(t, "new.mail@test.lk", acct.Email)
	})

	t.Run("terminal requests cannot be re-resolved", func(t *testing.T) {
		req := submit(t)

		body := marshal(t, echoMap{"status": "rejected"})
		rec := app.do(http.MethodPut, "/v1/admin/profile-requests/"+req.ID, body)
		checkCode(t, rec, http.StatusOK)

		rec = app.do(http.MethodPut, "/v1/admin/profile-requests/"+req.ID, marshal(t, echoMap{"status": "approved"}))
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("resolving with a non-terminal status fails", func(t *testing.T) {
		req := submit(t)

		body := marshal(t, echoMap{"status": "pending"})
		rec := app.do(http.MethodPut, "/v1/admin/profile-requests/"+req.ID, body)
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("queue lists every request", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/admin/profile-requests")
		checkCode(t, rec, http.StatusOK)

		var reqs []request.ProfileRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reqs))
		assert.Len(t, reqs, 3)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		req := submit(t)

		rec := app.do(http.MethodDelete, "/v1/admin/profile-requests/"+req.ID)
		checkCode(t, rec, http.StatusNoContent)
		rec = app.do(http.MethodDelete, "/v1/admin/profile-requests/"+req.ID)
		checkCode(t, rec, http.StatusNoContent)
	})
}

func TestAdminAPI_Content(t *testing.T) {
	app := setupApp(t)

	var created content.Banner

	t.Run("create banner", func(t *testing.T) {
		body := marshal(t, echoMap{"title": "New intake", "image_url": "https://cdn.test/intake.png"})
		rec := app.do(http.MethodPost, "/v1/admin/banners", body)
		checkCode(t, rec, http.StatusCreated)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.True(t, created.Active) // defaults on
	})

	t.Run("partial banner update", func(t *testing.T) {
		body := marshal(t, echoMap{"active": false})
		rec := app.do(http.MethodPut, "/v1/admin/banners/"+created.ID, body)
		checkCode(t, rec, http.StatusOK)

		var b content.Banner
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		assert.False(t, b.Active)
		assert.Equal(t, "New intake", b.Title)
	})

	t.Run("set home content", func(t *testing.T) {
		body := marshal(t, echoMap{"hero_title": "January intake", "hero_subtitle": "Now open"})
		rec := app.do(http.MethodPut, "/v1/admin/home-content", body)
		checkCode(t, rec, http.StatusOK)

		var hc content.HomeContent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hc))
		assert.Equal(t, "January intake", hc.HeroTitle)
	})

	t.Run("home content without a hero title fails", func(t *testing.T) {
		body := marshal(t, echoMap{"hero_subtitle": "orphan"})
		rec := app.do(http.MethodPut, "/v1/admin/home-content", body)
		checkCode(t, rec, http.StatusBadRequest)
	})
}
