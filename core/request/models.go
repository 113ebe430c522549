package request

import (
	"time"

	"github.com/tuitionlk/portal/core"
)

// Status is a ProfileRequest's lifecycle state. Pending requests may move to
// approved or rejected; both are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

func (s Status) String() string { return string(s) }

// ChangeSet is the partial set of account fields a student asks to change.
type ChangeSet struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (cs *ChangeSet) Clean() {
	cs.Name = core.CleanString(cs.Name)
	cs.Email = core.CleanString(cs.Email, true /* lower */)
	cs.Phone = core.CleanString(cs.Phone)
	cs.Address = core.CleanString(cs.Address)
}

func (cs ChangeSet) IsEmpty() bool {
	return cs.Name == "" && cs.Email == "" && cs.Phone == "" && cs.Address == ""
}

// ProfileRequest is a student-submitted, admin-resolved mutation proposal for
// Account fields. The student name/email pair is snapshotted at submission so
// the request stays displayable after the account is gone.
type ProfileRequest struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	Changes      ChangeSet `json:"requested_changes"`
	Status       Status    `json:"status"`
	AdminComment string    `json:"admin_comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

// NewProfileRequest contains information needed to submit a ProfileRequest.
type NewProfileRequest struct {
	StudentID string    `json:"student_id" validate:"required"`
	Changes   ChangeSet `json:"requested_changes"`
}

func (nr *NewProfileRequest) Validate(svc *Service) error {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Changes.Clean()

	if err := svc.validate.Struct(nr); err != nil {
		return err
	}
	if nr.Changes.IsEmpty() {
		return core.NewValidationError(
			errEmptyChangeSet,
			core.FieldError{Field: "requested_changes", Error: errEmptyChangeSet.Error()},
		)
	}
	return nil
}

// ResolveProfileRequest is an admin's verdict on a pending ProfileRequest.
type ResolveProfileRequest struct {
	Status  Status `json:"status" validate:"required,requeststatus"`
	Comment string `json:"comment"`
}

func (rr *ResolveProfileRequest) Validate(svc *Service) error {
	rr.Comment = core.CleanString(rr.Comment)
	return svc.validate.Struct(rr)
}
