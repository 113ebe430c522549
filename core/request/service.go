package request

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
)

var (
	// errors
	ErrNotFound        = errors.New("profile request not found")
	ErrAlreadyResolved = errors.New("profile request has already been resolved")

	errEmptyChangeSet = errors.New("at least one change is required")
)

type (
	Repository interface {
		CreateRequest(ctx context.Context, req ProfileRequest) (ProfileRequest, error)
		// QueryAllRequests returns all requests, newest first.
		QueryAllRequests(ctx context.Context) ([]ProfileRequest, error)
		// QueryRequestsByStudent returns a student's own requests, newest first.
		QueryRequestsByStudent(ctx context.Context, studentID string) ([]ProfileRequest, error)
		GetRequestByID(ctx context.Context, id string) (ProfileRequest, error)
		UpdateRequest(ctx context.Context, req ProfileRequest) (ProfileRequest, error)
		// DeleteRequestsByID is idempotent: deleting absent ids is not an error.
		DeleteRequestsByID(ctx context.Context, ids ...string) error
	}

	// AccountDirectory is the slice of the account repository the approval
	// workflow needs to propagate accepted changes.
	AccountDirectory interface {
		GetAccountByID(ctx context.Context, id string) (account.Account, error)
		UpdateAccount(ctx context.Context, acct account.Account, isApproved *bool) (account.Account, error)
	}

	Service struct {
		repo     Repository
		accounts AccountDirectory
		validate *validator.Validate
		log      core.Logger
	}
)

func NewService(repo Repository, accounts AccountDirectory, validate *validator.Validate, log core.Logger) *Service {
	return &Service{repo: repo, accounts: accounts, validate: validate, log: log}
}

// Submit files a new pending request on behalf of a student. The student's
// current name and email are snapshotted onto the record.
func (svc *Service) Submit(ctx context.Context, nr NewProfileRequest) (ProfileRequest, error) {
	acct, err := svc.accounts.GetAccountByID(ctx, nr.StudentID)
	if err != nil {
		if err == account.ErrNotFound {
			return ProfileRequest{}, core.NewNotFoundError(account.ErrNotFound)
		}
		return ProfileRequest{}, err
	}

	req := ProfileRequest{
		StudentID:    acct.ID,
		StudentName:  acct.Name,
		StudentEmail: acct.Email,
		Changes:      nr.Changes,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateRequest(ctx, req)
}

func (svc *Service) QueryAll(ctx context.Context) ([]ProfileRequest, error) {
	return svc.repo.QueryAllRequests(ctx)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string) ([]ProfileRequest, error) {
	return svc.repo.QueryRequestsByStudent(ctx, studentID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (ProfileRequest, error) {
	req, err := svc.repo.GetRequestByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return ProfileRequest{}, core.NewNotFoundError(err)
		}
		return ProfileRequest{}, err
	}
	return req, nil
}

// Resolve applies an admin verdict to a pending request. The record is
// mutated in place regardless of outcome. On approval, each present field of
// the changeset is copied onto the referenced account; a missing account is
// tolerated silently, the status update still persists.
func (svc *Service) Resolve(ctx context.Context, id string, rr ResolveProfileRequest) (ProfileRequest, error) {
	req, err := svc.GetByID(ctx, id)
	if err != nil {
		return ProfileRequest{}, err
	}
	if req.Status.Terminal() {
		return ProfileRequest{}, core.NewValidationError(
			ErrAlreadyResolved,
			core.FieldError{Field: "status", Error: ErrAlreadyResolved.Error()},
		)
	}

	req.Status = rr.Status
	req.AdminComment = rr.Comment
	req, err = svc.repo.UpdateRequest(ctx, req)
	if err != nil {
		return ProfileRequest{}, err
	}

	if req.Status == StatusApproved {
		if err = svc.applyChanges(ctx, req); err != nil {
			return ProfileRequest{}, err
		}
	}
	return req, nil
}

// applyChanges copies the accepted changeset fields onto the account.
func (svc *Service) applyChanges(ctx context.Context, req ProfileRequest) error {
	acct, err := svc.accounts.GetAccountByID(ctx, req.StudentID)
	if err != nil {
		if err == account.ErrNotFound {
			// the account is gone; keep the resolved request as-is
			svc.log.Warn("approved profile request " + req.ID + ": account " + req.StudentID + " no longer exists, skipping field copy")
			return nil
		}
		return err
	}

	upd := account.Account{
		ID:        acct.ID,
		Name:      req.Changes.Name,
		Phone:     req.Changes.Phone,
		Address:   req.Changes.Address,
		UpdatedAt: time.Now().UTC(),
	}
	if req.Changes.Email != "" {
		upd.Email = core.CleanString(req.Changes.Email, true /* lower */)
	}
	_, err = svc.accounts.UpdateAccount(ctx, upd, nil)
	return err
}

// Delete removes requests unconditionally; a repeat delete still succeeds.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteRequestsByID(ctx, ids...)
}
