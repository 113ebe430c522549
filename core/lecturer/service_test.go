package lecturer_test

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/lecturer"
	dummydb "github.com/tuitionlk/portal/storage/database/dummy"
)

func setup(t *testing.T) *lecturer.Service {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewLecturerRepository(db)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	return lecturer.NewService(repo, validate)
}

func Test_lecturerService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	data := lecturer.NewLecturer{Name: " Dr. Kone ", Email: "Kone@Test.LK", Department: "Mathematics"}
	require.NoError(t, data.Validate(ctx, svc))
	assert.Equal(t, "Dr. Kone", data.Name)
	assert.Equal(t, "kone@test.lk", data.Email)

	lect, err := svc.Create(ctx, data)
	require.NoError(t, err)
	assert.NotEmpty(t, lect.ID)

	t.Run("duplicate email", func(t *testing.T) {
		dup := lecturer.NewLecturer{Name: "Imposter", Email: "KONE@test.lk"}
		err := dup.Validate(ctx, svc)
		var dupErr *core.DuplicateError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "email", dupErr.Field)
	})
}

func Test_lecturerService_Update(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	lect, err := svc.Create(ctx, lecturer.NewLecturer{Name: "Dr. Kone", Email: "kone@test.lk"})
	require.NoError(t, err)

	t.Run("unset fields fall back to the original", func(t *testing.T) {
		data := lecturer.UpdateLecturer{Department: "Physics"}
		require.NoError(t, data.Validate(ctx, lect, svc))

		updated, err := svc.Update(ctx, lect.ID, data)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Kone", updated.Name)
		assert.Equal(t, "kone@test.lk", updated.Email)
		assert.Equal(t, "Physics", updated.Department)
	})

	t.Run("profile fields survive later partial updates", func(t *testing.T) {
		orig, err := svc.GetByID(ctx, lect.ID)
		require.NoError(t, err)

		data := lecturer.UpdateLecturer{Name: "Prof. Kone", Bio: "Teaches mechanics."}
		require.NoError(t, data.Validate(ctx, orig, svc))

		updated, err := svc.Update(ctx, lect.ID, data)
		require.NoError(t, err)
		assert.Equal(t, "Prof. Kone", updated.Name)
		assert.Equal(t, "Physics", updated.Department)

		data = lecturer.UpdateLecturer{PhotoURL: "https://photos.test/kone.jpg"}
		require.NoError(t, data.Validate(ctx, updated, svc))

		updated, err = svc.Update(ctx, lect.ID, data)
		require.NoError(t, err)
		assert.Equal(t, "Teaches mechanics.", updated.Bio)
		assert.Equal(t, "https://photos.test/kone.jpg", updated.PhotoURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", lecturer.UpdateLecturer{Name: "x"})
		var nfErr *core.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func Test_lecturerService_Delete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	lect, err := svc.Create(ctx, lecturer.NewLecturer{Name: "Dr. Kone", Email: "kone@test.lk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, lect.ID))

	_, err = svc.GetByID(ctx, lect.ID)
	var nfErr *core.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
