package account

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	// errors
	ErrNotFound        = errors.New("account not found")
	ErrEmailExists     = errors.New("an account with this email already exists")
	ErrWrongPassword   = errors.New("wrong password")
	ErrPendingApproval = errors.New("account is pending approval")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Account) error
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		// QueryAccounts applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Name or Email.
		QueryAccounts(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Account, error)
		GetAccountByID(ctx context.Context, id string) (Account, error)
		GetAccountByEmail(ctx context.Context, email string) (Account, error)
		// UpdateAccount applies non-zero fields of acct; isApproved is applied when non-nil.
		UpdateAccount(ctx context.Context, acct Account, isApproved *bool) (Account, error)
		DeleteAccountsByID(ctx context.Context, ids ...string) error
	}

	// LecturerDirectory resolves lecturer ids to display names.
	// Ids that no longer resolve are simply absent from the result.
	LecturerDirectory interface {
		GetLecturerNames(ctx context.Context, ids []string) (map[string]string, error)
	}

	Service struct {
		repo      Repository
		lecturers LecturerDirectory
		mailSvc   core.EmailService
		validate  *validator.Validate
		conf      *core.Config
	}
)

func NewService(
	repo Repository,
	lecturers LecturerDirectory,
	mailSvc core.EmailService,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	return &Service{
		repo:      repo,
		lecturers: lecturers,
		mailSvc:   mailSvc,
		validate:  validate,
		conf:      conf,
	}
}

func (svc *Service) CheckEmailUniqueness(ctx context.Context, email string, excl ...Account) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excl...); err != nil {
		if err == ErrEmailExists {
			return core.NewDuplicateError(err, "email")
		}
		return err
	}
	return nil
}

// Create registers a new account on behalf of an admin; it is approved right away.
func (svc *Service) Create(ctx context.Context, na NewAccount) (Account, error) {
	role := na.Role
	if role == "" {
		role = RoleStudent
	}
	now := time.Now().UTC()
	acct := Account{
		Name:              na.Name,
		Email:             na.Email,
		Role:              role,
		IsApproved:        true,
		PermittedCourses:  na.PermittedCourses,
		AssignedLecturers: na.AssignedLecturers,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, err
	}
	return svc.repo.CreateAccount(ctx, acct)
}

// Signup self-registers a student account; it awaits admin approval.
func (svc *Service) Signup(ctx context.Context, sa SignupAccount) (Account, error) {
	now := time.Now().UTC()
	acct := Account{
		Name:             sa.Name,
		Email:            sa.Email,
		Role:             RoleStudent,
		IsApproved:       false,
		PermittedCourses: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := acct.SetPassword(sa.Password); err != nil {
		return Account{}, err
	}
	acct, err := svc.repo.CreateAccount(ctx, acct)
	if err != nil {
		return Account{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.conf.AdminEmail},
		Subject:      "New account pending approval",
		TemplateName: "account-pending",
		TemplateData: acct,
	})
	return acct, nil
}

// Authenticate checks the given credentials and returns the login payload.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (LoginInfo, error) {
	acct, err := svc.repo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return LoginInfo{}, core.NewAuthError(ErrNotFound)
		}
		return LoginInfo{}, err
	}
	if err = acct.CheckPassword(pwd); err != nil {
		return LoginInfo{}, core.NewAuthError(ErrWrongPassword)
	}
	if !acct.IsAdmin() && !acct.IsApproved {
		return LoginInfo{}, core.NewAuthError(ErrPendingApproval, true /* pending */)
	}
	return svc.loginInfo(ctx, acct)
}

// loginInfo resolves assigned lecturer names in an explicit join step;
// dangling lecturer references are omitted.
func (svc *Service) loginInfo(ctx context.Context, acct Account) (LoginInfo, error) {
	info := LoginInfo{
		ID:                acct.ID,
		Name:              acct.Name,
		Email:             acct.Email,
		Role:              acct.Role,
		PermittedCourses:  acct.PermittedCourses,
		AssignedLecturers: []LecturerRef{},
	}
	if info.PermittedCourses == nil {
		info.PermittedCourses = []string{}
	}
	if len(acct.AssignedLecturers) == 0 {
		return info, nil
	}

	names, err := svc.lecturers.GetLecturerNames(ctx, acct.AssignedLecturers)
	if err != nil {
		return LoginInfo{}, err
	}
	for _, id := range acct.AssignedLecturers {
		if name, ok := names[id]; ok {
			info.AssignedLecturers = append(info.AssignedLecturers, LecturerRef{ID: id, Name: name})
		}
	}
	return info, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Account, error) {
	return svc.repo.QueryAccounts(ctx, filter, ordering)
}

// QueryPending returns self-signed-up accounts awaiting approval.
func (svc *Service) QueryPending(ctx context.Context) ([]Account, error) {
	approved := false
	return svc.repo.QueryAccounts(ctx, &QueryFilter{IsApproved: &approved}, nil)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Account, error) {
	acct, err := svc.repo.GetAccountByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, core.NewNotFoundError(err)
		}
		return Account{}, err
	}
	return acct, nil
}

// Approve marks a pending account approved; the assigned lecturer list may be
// set in the same step. The account holder is notified by email.
func (svc *Service) Approve(ctx context.Context, id string, lecturerIDs []string) (Account, error) {
	acct, err := svc.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}

	approved := true
	upd := Account{ID: acct.ID, UpdatedAt: time.Now().UTC()}
	if lecturerIDs != nil {
		upd.AssignedLecturers = lecturerIDs
	}
	acct, err = svc.repo.UpdateAccount(ctx, upd, &approved)
	if err != nil {
		return Account{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject:      "Your account has been approved",
		TemplateName: "account-approved",
		TemplateData: acct,
	})
	return acct, nil
}

// Reject hard-deletes an unapproved account.
func (svc *Service) Reject(ctx context.Context, id string) error {
	if _, err := svc.GetByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteAccountsByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ua UpdateAccount) (Account, error) {
	acct := Account{
		ID:                id,
		Name:              ua.Name,
		Email:             ua.Email,
		Role:              ua.Role,
		PermittedCourses:  ua.PermittedCourses,
		AssignedLecturers: ua.AssignedLecturers,
		Phone:             ua.Phone,
		Address:           ua.Address,
		UpdatedAt:         time.Now().UTC(),
	}
	updated, err := svc.repo.UpdateAccount(ctx, acct, ua.IsApproved)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, core.NewNotFoundError(err)
		}
		return Account{}, err
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteAccountsByID(ctx, ids...)
}
