package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
)

type accountRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Email             string         `db:"email"`
	PasswordHash      []byte         `db:"password_hash"`
	Role              string         `db:"role"`
	IsApproved        bool           `db:"is_approved"`
	PermittedCourses  pq.StringArray `db:"permitted_courses"`
	AssignedLecturers pq.StringArray `db:"assigned_lecturers"`
	Phone             string         `db:"phone"`
	Address           string         `db:"address"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r accountRow) account() account.Account {
	return account.Account{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Role:              account.Role(r.Role),
		IsApproved:        r.IsApproved,
		PermittedCourses:  r.PermittedCourses,
		AssignedLecturers: r.AssignedLecturers,
		Phone:             r.Phone,
		Address:           r.Address,
		PasswordHash:      r.PasswordHash,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

const accountColumns = `id, name, email, password_hash, role, is_approved, permitted_courses, assigned_lecturers, phone, address, created_at, updated_at`

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...account.Account) error {
	q := `SELECT COUNT(*) FROM account WHERE email = $1`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, len(excluded))
		for i, acct := range excluded {
			ids[i] = acct.ID
		}
		q += ` AND id <> ALL($2)`
		args = append(args, pq.StringArray(ids))
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return account.ErrEmailExists
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	acct.ID = uuid.New().String()

	q := `
INSERT INTO account (` + accountColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := repo.db.ExecContext(ctx, q,
		acct.ID, acct.Name, acct.Email, acct.PasswordHash, acct.Role, acct.IsApproved,
		pq.StringArray(acct.PermittedCourses), pq.StringArray(acct.AssignedLecturers),
		acct.Phone, acct.Address, acct.CreatedAt, acct.UpdatedAt,
	)
	if err != nil {
		return account.Account{}, errors.Wrap(err, "creating account")
	}
	return acct, nil
}

func (repo *accountRepository) QueryAccounts(ctx context.Context, filter *account.QueryFilter, ordering []core.DBOrdering) ([]account.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM account`

	var conds []string
	var args []interface{}
	if filter != nil {
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			n := len(args)
			conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", n, n))
		}
		if filter.Role != "" {
			args = append(args, string(filter.Role))
			conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
		}
		if filter.IsApproved != nil {
			args = append(args, *filter.IsApproved)
			conds = append(conds, fmt.Sprintf("is_approved = $%d", len(args)))
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY ` + orderingClause(ordering, map[string]bool{"name": true, "email": true, "created_at": true}, "created_at DESC")

	var rows []accountRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	accts := make([]account.Account, len(rows))
	for i, row := range rows {
		accts[i] = row.account()
	}
	return accts, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	return repo.get(ctx, `id = $1`, id)
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	return repo.get(ctx, `email = $1`, email)
}

func (repo *accountRepository) get(ctx context.Context, cond string, arg interface{}) (account.Account, error) {
	var row accountRow
	q := `SELECT ` + accountColumns + ` FROM account WHERE ` + cond
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "getting account")
	}
	return row.account(), nil
}

func (repo *accountRepository) UpdateAccount(ctx context.Context, acct account.Account, isApproved *bool) (account.Account, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if acct.Name != "" {
		set("name", acct.Name)
	}
	if acct.Email != "" {
		set("email", acct.Email)
	}
	if acct.Role != "" {
		set("role", string(acct.Role))
	}
	if acct.PermittedCourses != nil {
		set("permitted_courses", pq.StringArray(acct.PermittedCourses))
	}
	if acct.AssignedLecturers != nil {
		set("assigned_lecturers", pq.StringArray(acct.AssignedLecturers))
	}
	if acct.Phone != "" {
		set("phone", acct.Phone)
	}
	if acct.Address != "" {
		set("address", acct.Address)
	}
	if len(acct.PasswordHash) > 0 {
		set("password_hash", acct.PasswordHash)
	}
	if !acct.UpdatedAt.IsZero() {
		set("updated_at", acct.UpdatedAt)
	}
	if isApproved != nil {
		set("is_approved", *isApproved)
	}
	if len(sets) == 0 {
		return repo.GetAccountByID(ctx, acct.ID)
	}

	args = append(args, acct.ID)
	q := fmt.Sprintf(
		`UPDATE account SET %s WHERE id = $%d RETURNING `+accountColumns,
		strings.Join(sets, ", "), len(args),
	)

	var row accountRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "updating account")
	}
	return row.account(), nil
}

func (repo *accountRepository) DeleteAccountsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM account WHERE id = ANY($1)`
	if _, err := repo.db.ExecContext(ctx, q, pq.StringArray(ids)); err != nil {
		return errors.Wrap(err, "deleting accounts")
	}
	return nil
}
