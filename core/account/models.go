package account

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tuitionlk/portal/core"
)

// Role is an account's access level. The returned role string is the only
// authorization artifact the client holds; access is enforced UI-side.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
)

var AllRoles = []Role{RoleStudent, RoleLecturer, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleLecturer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

type Account struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	IsApproved        bool      `json:"is_approved"`
	PermittedCourses  []string  `json:"permitted_courses"`
	AssignedLecturers []string  `json:"assigned_lecturers"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	PasswordHash      []byte    `json:"-"`
	CreatedAt         time.Time `json:"created_at"` // UTC
	UpdatedAt         time.Time `json:"updated_at"` // UTC
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

func (a *Account) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a *Account) IsStudent() bool { return a.Role == RoleStudent }

// NewAccount contains information needed by an admin to create a new Account.
// Admin-created accounts are approved right away.
type NewAccount struct {
	Name              string   `json:"name" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Password          string   `json:"password" validate:"required"`
	Role              Role     `json:"role" validate:"omitempty,role"`
	PermittedCourses  []string `json:"permitted_courses"`
	AssignedLecturers []string `json:"assigned_lecturers"`
}

func (na *NewAccount) Validate(ctx context.Context, svc *Service) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)

	if err := svc.validate.Struct(na); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, na.Email)
}

// SignupAccount contains information a visitor provides to self-register.
// Role is forced to student and the account awaits admin approval.
type SignupAccount struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (sa *SignupAccount) Validate(ctx context.Context, svc *Service) error {
	sa.Name = core.CleanString(sa.Name)
	sa.Email = core.CleanString(sa.Email, true /* lower */)

	if err := svc.validate.Struct(sa); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, sa.Email)
}

// UpdateAccount defines what information may be provided to modify an existing Account.
type UpdateAccount struct {
	Name              string   `json:"name"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Role              Role     `json:"role" validate:"omitempty,role"`
	IsApproved        *bool    `json:"is_approved"`
	PermittedCourses  []string `json:"permitted_courses"`
	AssignedLecturers []string `json:"assigned_lecturers"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
}

func (ua *UpdateAccount) Validate(ctx context.Context, orig Account, svc *Service) error {
	name := core.CleanString(ua.Name)
	if name != "" {
		ua.Name = name
	} else {
		ua.Name = orig.Name
	}

	email := core.CleanString(ua.Email, true /* lower */)
	if email != "" {
		ua.Email = email
	} else {
		ua.Email = orig.Email
	}

	if ua.Role == "" {
		ua.Role = orig.Role
	}

	if err := svc.validate.Struct(ua); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, ua.Email, orig)
}

type QueryFilter struct {
	Search     string `query:"search"`
	Role       Role   `query:"role"`
	IsApproved *bool  `query:"is_approved"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.IsApproved == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// LecturerRef is the resolved (id, display name) pair of an assigned lecturer.
type LecturerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LoginInfo is the payload returned on a successful login. It is the sole
// authorization artifact the client retains.
type LoginInfo struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Role              Role          `json:"role"`
	PermittedCourses  []string      `json:"permitted_courses"`
	AssignedLecturers []LecturerRef `json:"assigned_lecturers"`
}
