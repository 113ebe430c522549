package request_test

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
	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/request"
	dummydb "github.com/tuitionlk/portal/storage/database/dummy"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (*request.Service, account.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	acctRepo := dummydb.NewAccountRepository(db)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	request.InitValidators(validate, translator)

	svc := request.NewService(dummydb.NewRequestRepository(db), acctRepo, validate, nopLogger{})
	return svc, acctRepo
}

func createStudent(t *testing.T, repo account.Repository, name, email string) account.Account {
	now := time.Now().UTC()
	acct := account.Account{
		Name:       name,
		Email:      email,
		Role:       account.RoleStudent,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	acct, err := repo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return acct
}

func Test_requestService_Submit(t *testing.T) {
	svc, acctRepo := setup(t)
	ctx := context.Background()

	student := createStudent(t, acctRepo, "Fatou Diop", "fatou@test.cd")

	t.Run("snapshot of the student is taken", func(t *testing.T) {
		data := request.NewProfileRequest{
			StudentID: student.ID,
			Changes:   request.ChangeSet{Phone: "+221 77 000 0000"},
		}
		require.NoError(t, data.Validate(svc))

		req, err := svc.Submit(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "Fatou Diop", req.StudentName)
		assert.Equal(t, "fatou@test.cd", req.StudentEmail)
		assert.Equal(t, request.StatusPending, req.Status)
	})

	t.Run("empty changeset rejected", func(t *testing.T) {
		data := request.NewProfileRequest{
			StudentID: student.ID,
			Changes:   request.ChangeSet{Name: "   "},
		}
		err := data.Validate(svc)
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown student", func(t *testing.T) {
		data := request.NewProfileRequest{
			StudentID: "nope",
			Changes:   request.ChangeSet{Phone: "+221 77 000 0000"},
		}
		require.NoError(t, data.Validate(svc))
		_, err := svc.Submit(ctx, data)
		var nfErr *core.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func Test_requestService_Resolve(t *testing.T) {
	svc, acctRepo := setup(t)
	ctx := context.Background()

	student := createStudent(t, acctRepo, "Omar Sy", "omar@test.cd")

	submit := func(t *testing.T, changes request.ChangeSet) request.ProfileRequest {
		req, err := svc.Submit(ctx, request.NewProfileRequest{StudentID: student.ID, Changes: changes})
		require.NoError(t, err)
		return req
	}

	t.Run("approval copies changes onto the account", func(t *testing.T) {
		req := submit(t, request.ChangeSet{Name: "Omar Sy Jr", Email: "Omar.Jr@Test.CD", Address: "Dakar"})

		resolved, err := svc.Resolve(ctx, req.ID, request.ResolveProfileRequest{
			Status:  request.StatusApproved,
			Comment: "ok",
		})
		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, resolved.Status)
		assert.Equal(t, "ok", resolved.AdminComment)

		acct, err := acctRepo.GetAccountByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Omar Sy Jr", acct.Name)
		assert.Equal(t, "omar.jr@test.cd", acct.Email) // lowercased
		assert.Equal(t, "Dakar", acct.Address)
	})

	t.Run("rejection leaves the account untouched", func(t *testing.T) {
		req := submit(t, request.ChangeSet{Phone: "+221 78 111 1111"})

		resolved, err := svc.Resolve(ctx, req.ID, request.ResolveProfileRequest{
			Status:  request.StatusRejected,
			Comment: "unverifiable",
		})
		require.NoError(t, err)
		assert.Equal(t, request.StatusRejected, resolved.Status)

		acct, err := acctRepo.GetAccountByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Empty(t, acct.Phone)
	})

	t.Run("terminal requests cannot be re-resolved", func(t *testing.T) {
		req := submit(t, request.ChangeSet{Phone: "+221 78 222 2222"})
		_, err := svc.Resolve(ctx, req.ID, request.ResolveProfileRequest{Status: request.StatusApproved})
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, req.ID, request.ResolveProfileRequest{Status: request.StatusRejected})
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("approval survives a deleted account", func(t *testing.T) {
		gone := createStudent(t, acctRepo, "Aya Toure", "aya@test.cd")
		req, err := svc.Submit(ctx, request.NewProfileRequest{
			StudentID: gone.ID,
			Changes:   request.ChangeSet{Name: "Aya T."},
		})
		require.NoError(t, err)
		require.NoError(t, acctRepo.DeleteAccountsByID(ctx, gone.ID))

		resolved, err := svc.Resolve(ctx, req.ID, request.ResolveProfileRequest{Status: request.StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, resolved.Status)
	})

	t.Run("only terminal verdicts pass validation", func(t *testing.T) {
		data := request.ResolveProfileRequest{Status: request.StatusPending}
		assert.Error(t, data.Validate(svc))
	})
}

func Test_requestService_Delete(t *testing.T) {
	svc, acctRepo := setup(t)
	ctx := context.Background()

	student := createStudent(t, acctRepo, "Moussa Traore", "moussa@test.cd")
	req, err := svc.Submit(ctx, request.NewProfileRequest{
		StudentID: student.ID,
		Changes:   request.ChangeSet{Phone: "+221 76 333 3333"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, req.ID))
	// deleting again is not an error
	require.NoError(t, svc.Delete(ctx, req.ID))

	reqs, err := svc.QueryByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}
