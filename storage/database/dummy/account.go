package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
)

type accountRepository struct {
	db *accountTable
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *DB) *accountRepository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) query() []account.Account {
	accts := make([]account.Account, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		accts = append(accts, *a)
	}
	return accts
}

func (repo *accountRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...account.Account) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Email != email {
			continue
		}
		var excl bool
		for _, ex := range excluded {
			if ex.ID == acct.ID {
				excl = true
				break
			}
		}
		if !excl {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(_ context.Context, acct account.Account) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	acct.ID = uuid.New().String()
	repo.db.table[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) QueryAccounts(_ context.Context, filter *account.QueryFilter, ordering []core.DBOrdering) ([]account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	accts := repo.query()

	if filter != nil {
		if filter.Search != "" {
			var filtered []account.Account
			for _, a := range accts {
				if strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search)) ||
					strings.Contains(strings.ToLower(a.Email), strings.ToLower(filter.Search)) {
					filtered = append(filtered, a)
				}
			}
			accts = filtered
		}
		if filter.Role != "" {
			var filtered []account.Account
			for _, a := range accts {
				if a.Role == filter.Role {
					filtered = append(filtered, a)
				}
			}
			accts = filtered
		}
		if filter.IsApproved != nil {
			var filtered []account.Account
			for _, a := range accts {
				if a.IsApproved == *filter.IsApproved {
					filtered = append(filtered, a)
				}
			}
			accts = filtered
		}
	}

	sortAccounts(accts, ordering)
	return accts, nil
}

// sortAccounts supports the orderable fields exposed by the API.
func sortAccounts(accts []account.Account, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	ord := ordering[0]
	sort.SliceStable(accts, func(i, j int) bool {
		var less bool
		switch ord.Field {
		case "name":
			less = accts[i].Name < accts[j].Name
		case "email":
			less = accts[i].Email < accts[j].Email
		default: // created_at
			less = accts[i].CreatedAt.Before(accts[j].CreatedAt)
		}
		if ord.Ascending {
			return less
		}
		return !less
	})
}

func (repo *accountRepository) GetAccountByID(_ context.Context, id string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if acct, ok := repo.db.table[id]; ok {
		return *acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByEmail(_ context.Context, email string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Email == email {
			return acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) UpdateAccount(_ context.Context, acct account.Account, isApproved *bool) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[acct.ID]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}

	if acct.Name != "" {
		orig.Name = acct.Name
	}
	if acct.Email != "" {
		orig.Email = acct.Email
	}
	if acct.Role != "" {
		orig.Role = acct.Role
	}
	if acct.PermittedCourses != nil {
		orig.PermittedCourses = acct.PermittedCourses
	}
	if acct.AssignedLecturers != nil {
		orig.AssignedLecturers = acct.AssignedLecturers
	}
	if acct.Phone != "" {
		orig.Phone = acct.Phone
	}
	if acct.Address != "" {
		orig.Address = acct.Address
	}
	if len(acct.PasswordHash) > 0 {
		orig.PasswordHash = acct.PasswordHash
	}
	if !acct.UpdatedAt.IsZero() {
		orig.UpdatedAt = acct.UpdatedAt
	}
	if isApproved != nil {
		orig.IsApproved = *isApproved
	}
	return *orig, nil
}

func (repo *accountRepository) DeleteAccountsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
