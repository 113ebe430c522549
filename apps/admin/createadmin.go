package main

import (
	"context"
	"time"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
)

// createAdmin creates an approved admin account, or promotes an existing
// account whose email matches.
func (cli *commandLine) createAdmin(name, email, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	approved := true
	now := time.Now().UTC()

	acct, err := cli.acctRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		acct = account.Account{
			Name:       name,
			Email:      email,
			Role:       account.RoleAdmin,
			IsApproved: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err = acct.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.acctRepo.CreateAccount(ctx, acct)
		return err
	}

	upd := account.Account{
		ID:        acct.ID,
		Name:      name,
		Role:      account.RoleAdmin,
		UpdatedAt: now,
	}
	if err = upd.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.acctRepo.UpdateAccount(ctx, upd, &approved)
	return err
}
