package material_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/material"
	dummydb "github.com/tuitionlk/portal/storage/database/dummy"
)

func setup(t *testing.T) (*material.Service, material.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewMaterialRepository(db)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	material.InitValidators(validate, translator)

	return material.NewService(repo, validate), repo
}

func createMaterial(t *testing.T, repo material.Repository, title, course, lecturerID string, createdAt time.Time) material.Material {
	mat := material.Material{
		Title:      title,
		Kind:       material.KindRecording,
		VideoURL:   "https://videos.test/" + title,
		CourseName: course,
		LecturerID: lecturerID,
		CreatedAt:  createdAt,
	}
	mat, err := repo.CreateMaterial(context.Background(), mat)
	if err != nil {
		t.Fatalf("createMaterial() failed: %v", err)
	}
	return mat
}

func Test_materialService_ResolveVisible(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()

	createMaterial(t, repo, "Algebra", "Maths", "", now.Add(-3*time.Hour))
	createMaterial(t, repo, "Seminar", "", "lect1", now.Add(-2*time.Hour))
	createMaterial(t, repo, "Mechanics", "Physics", "", now.Add(-time.Hour))
	createMaterial(t, repo, "Orientation", "", "", now)

	titles := func(mats []material.Material) []string {
		res := make([]string, len(mats))
		for i, m := range mats {
			res[i] = m.Title
		}
		return res
	}

	tests := []struct {
		name   string
		filter material.VisibilityFilter
		want   []string // newest first
	}{
		{
			name: "no entitlements: only fully public materials",
			want: []string{"Orientation"},
		},
		{
			name:   "permitted course admits its tag and untagged",
			filter: material.VisibilityFilter{PermittedCourses: []string{"Maths"}},
			want:   []string{"Orientation", "Algebra"},
		},
		{
			name:   "course match tolerates spacing and case",
			filter: material.VisibilityFilter{PermittedCourses: []string{" maths "}},
			want:   []string{"Orientation", "Algebra"},
		},
		{
			name:   "assigned lecturer unlocks their materials",
			filter: material.VisibilityFilter{AssignedLecturers: []string{"lect1"}},
			want:   []string{"Orientation", "Seminar"},
		},
		{
			name: "combined entitlements",
			filter: material.VisibilityFilter{
				PermittedCourses:  []string{"Maths", "Physics"},
				AssignedLecturers: []string{"lect1"},
			},
			want: []string{"Orientation", "Mechanics", "Seminar", "Algebra"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mats, err := svc.ResolveVisible(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(mats))
		})
	}
}

func Test_materialService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	t.Run("kind defaults to recording", func(t *testing.T) {
		data := material.NewMaterial{Title: "Intro", VideoURL: "https://videos.test/intro"}
		require.NoError(t, data.Validate(svc))
		assert.Equal(t, material.KindRecording, data.Kind)

		mat, err := svc.Create(ctx, data)
		require.NoError(t, err)
		assert.NotEmpty(t, mat.ID)
		assert.False(t, mat.CreatedAt.IsZero())
	})

	t.Run("recording requires a video URL", func(t *testing.T) {
		data := material.NewMaterial{Title: "Broken", Kind: material.KindRecording}
		err := data.Validate(svc)
		require.Error(t, err)
		assert.IsType(t, validator.ValidationErrors{}, err)
	})

	t.Run("document with a video URL is rejected", func(t *testing.T) {
		data := material.NewMaterial{
			Title:    "Mixed",
			Kind:     material.KindDocument,
			FileURL:  "https://files.test/doc.pdf",
			VideoURL: "https://videos.test/doc",
		}
		err := data.Validate(svc)
		require.Error(t, err)
	})
}

func Test_materialService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	mat := createMaterial(t, repo, "Calculus", "Maths", "lect1", time.Now().UTC())

	t.Run("clearing course tag and lecturer", func(t *testing.T) {
		data := material.UpdateMaterial{VideoURL: mat.VideoURL}
		require.NoError(t, data.Validate(ctx, mat, svc))

		updated, err := svc.Update(ctx, mat.ID, data)
		require.NoError(t, err)
		assert.Equal(t, "Calculus", updated.Title) // kept from orig
		assert.Empty(t, updated.CourseName)
		assert.Empty(t, updated.LecturerID)
	})

	t.Run("partial update keeps the content reference", func(t *testing.T) {
		orig, err := svc.GetByID(ctx, mat.ID)
		require.NoError(t, err)

		data := material.UpdateMaterial{Title: "Calculus II"}
		require.NoError(t, data.Validate(ctx, orig, svc))

		updated, err := svc.Update(ctx, mat.ID, data)
		require.NoError(t, err)
		assert.Equal(t, "Calculus II", updated.Title)
		assert.Equal(t, mat.VideoURL, updated.VideoURL)
	})

	t.Run("adding a file URL to a recording is rejected", func(t *testing.T) {
		orig, err := svc.GetByID(ctx, mat.ID)
		require.NoError(t, err)

		data := material.UpdateMaterial{FileURL: "https://files.test/calculus.pdf"}
		err = data.Validate(ctx, orig, svc)
		require.Error(t, err)
		assert.IsType(t, validator.ValidationErrors{}, err)
	})

	t.Run("switching kind swaps the content reference", func(t *testing.T) {
		orig, err := svc.GetByID(ctx, mat.ID)
		require.NoError(t, err)

		data := material.UpdateMaterial{
			Kind:    material.KindDocument,
			FileURL: "https://files.test/calculus.pdf",
		}
		require.NoError(t, data.Validate(ctx, orig, svc))

		updated, err := svc.Update(ctx, mat.ID, data)
		require.NoError(t, err)
		assert.Equal(t, material.KindDocument, updated.Kind)
		assert.Equal(t, "https://files.test/calculus.pdf", updated.FileURL)
		assert.Empty(t, updated.VideoURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", material.UpdateMaterial{Title: "x"})
		var nfErr *core.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}
